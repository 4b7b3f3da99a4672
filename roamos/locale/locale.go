// Package locale holds the HUD and log strings, one gettext catalog per
// language, embedded in the binary.
package locale

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Message ids.
const (
	TasksRemaining = "TASKS_REMAINING"
	Score          = "SCORE"
	AllDone        = "ALL_DONE"
	NearTask       = "NEAR_TASK"
	ClickToPlay    = "CLICK_TO_PLAY"
	Controls       = "CONTROLS"
	TaskCompleted  = "TASK_COMPLETED"
	Collision      = "COLLISION"
	Panic          = "PANIC"
)

// Default is the fallback language.
const Default = "en"

//go:embed po/*.po
var catalogs embed.FS

// Catalog translates message ids for one language.
type Catalog struct {
	lang string
	po   *gotext.Po
}

// Load parses the embedded catalog for lang, e.g. "fr" or "fr_FR".
func Load(lang string) (*Catalog, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "_-."); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		lang = Default
	}
	raw, err := catalogs.ReadFile("po/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("locale %q: no catalog (have %s)", lang, strings.Join(Languages(), ", "))
	}
	po := gotext.NewPo()
	po.Parse(raw)
	return &Catalog{lang: lang, po: po}, nil
}

// MustLoad is Load that falls back to the default catalog.
func MustLoad(lang string) *Catalog {
	c, err := Load(lang)
	if err == nil {
		return c
	}
	c, err = Load(Default)
	if err != nil {
		panic(err)
	}
	return c
}

// Languages lists the embedded catalogs.
func Languages() []string {
	entries, _ := catalogs.ReadDir("po")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".po"))
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Lang() string { return c.lang }

// Get translates id and formats vars into the translation. Unknown ids come
// back unchanged, and vars are ignored when the translation has no verbs.
func (c *Catalog) Get(id string, vars ...any) string {
	s := c.po.Get(id)
	if len(vars) == 0 || !strings.Contains(s, "%") {
		return s
	}
	return fmt.Sprintf(s, vars...)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ASCII folds accented letters to their base letter for bitmap fonts that
// only cover printable ASCII. Anything still outside that range becomes '?'.
func ASCII(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		if r >= 0x20 && r < 0x7F {
			return r
		}
		return '?'
	}, out)
}
