package tuning

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"roam/roamos/world"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "roam://tuning.schema.json"

type Tuning struct {
	Seed   uint32 `yaml:"seed"`
	Locale string `yaml:"locale"`

	Room      Room      `yaml:"room"`
	Player    Player    `yaml:"player"`
	Obstacles Obstacles `yaml:"obstacles"`
	Tasks     Tasks     `yaml:"tasks"`
	Look      Look      `yaml:"look"`
	Render    Render    `yaml:"render"`
	Audio     Audio     `yaml:"audio"`
}

type Room struct {
	SpawnExtent float64 `yaml:"spawn_extent"`
	FloorSize   float64 `yaml:"floor_size"`
	RoofHeight  float64 `yaml:"roof_height"`
}

type Player struct {
	Start     []float64 `yaml:"start"`
	Size      []float64 `yaml:"size"`
	Speed     float64   `yaml:"speed"`
	EyeHeight float64   `yaml:"eye_height"`
}

type Obstacles struct {
	Count int       `yaml:"count"`
	Size  []float64 `yaml:"size"`
	Y     float64   `yaml:"y"`
}

type Tasks struct {
	Count          int       `yaml:"count"`
	Size           []float64 `yaml:"size"`
	Y              float64   `yaml:"y"`
	InteractRadius float64   `yaml:"interact_radius"`
}

type Look struct {
	Sensitivity float64 `yaml:"sensitivity"`
	FOVDeg      float64 `yaml:"fov_deg"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
}

type Render struct {
	Mode   string `yaml:"mode"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Scale  int    `yaml:"scale"`
}

type Audio struct {
	Enabled    bool `yaml:"enabled"`
	Volume     int  `yaml:"volume"`
	SampleRate int  `yaml:"sample_rate"`
}

// Default returns the stock room.
func Default() Tuning {
	p := world.DefaultParams()
	return Tuning{
		Locale: "en",
		Room: Room{
			SpawnExtent: p.SpawnExtent,
			FloorSize:   50,
			RoofHeight:  5,
		},
		Player: Player{
			Start:     vec(p.PlayerStart),
			Size:      vec(p.PlayerSize),
			Speed:     p.Speed,
			EyeHeight: p.EyeHeight,
		},
		Obstacles: Obstacles{
			Count: p.ObstacleCount,
			Size:  vec(p.ObstacleSize),
			Y:     p.ObstacleY,
		},
		Tasks: Tasks{
			Count:          p.TaskCount,
			Size:           vec(p.TaskSize),
			Y:              p.TaskY,
			InteractRadius: p.InteractRadius,
		},
		Look: Look{
			Sensitivity: 0.002,
			FOVDeg:      75,
			Near:        0.1,
			Far:         1000,
		},
		Render: Render{
			Mode:   "solid",
			Width:  320,
			Height: 240,
			Scale:  3,
		},
		Audio: Audio{
			Enabled:    true,
			Volume:     200,
			SampleRate: 22050,
		},
	}
}

// Load reads a YAML tuning file and merges it over Default. An empty path
// returns the defaults.
func Load(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, errors.Wrap(err, "read tuning")
	}
	t, err := Parse(raw)
	if err != nil {
		return Tuning{}, errors.Wrapf(err, "%s", path)
	}
	return t, nil
}

// Parse validates raw YAML against the embedded schema, merges it over
// Default, then normalizes and validates the result.
func Parse(raw []byte) (Tuning, error) {
	t := Default()
	if len(bytes.TrimSpace(raw)) == 0 {
		return t, nil
	}
	if err := checkSchema(raw); err != nil {
		return Tuning{}, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, errors.Wrap(err, "decode tuning")
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func checkSchema(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(err, "decode tuning")
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "tuning is not a JSON-compatible document")
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return errors.Wrap(err, "re-read tuning")
	}
	s, err := compileSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return errors.Wrap(err, "tuning schema")
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, errors.Wrap(err, "load tuning schema")
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, errors.Wrap(err, "compile tuning schema")
	}
	return s, nil
}

// Normalize fills zero values a partial file may leave behind and folds
// case-insensitive strings.
func (t *Tuning) Normalize() {
	d := Default()
	t.Locale = strings.ToLower(strings.TrimSpace(t.Locale))
	if t.Locale == "" {
		t.Locale = d.Locale
	}
	t.Render.Mode = strings.ToLower(strings.TrimSpace(t.Render.Mode))
	if t.Render.Mode == "" {
		t.Render.Mode = d.Render.Mode
	}
	if t.Render.Scale <= 0 {
		t.Render.Scale = d.Render.Scale
	}
	if t.Look.Far <= t.Look.Near {
		t.Look.Far = math.Max(d.Look.Far, t.Look.Near*10)
	}
	if t.Room.FloorSize < 2*t.Room.SpawnExtent {
		t.Room.FloorSize = 2 * t.Room.SpawnExtent
	}
}

// Validate reports the first inconsistent value.
func (t Tuning) Validate() error {
	for _, f := range []struct {
		name string
		v    []float64
	}{
		{"player.start", t.Player.Start},
		{"player.size", t.Player.Size},
		{"obstacles.size", t.Obstacles.Size},
		{"tasks.size", t.Tasks.Size},
	} {
		if len(f.v) != 3 {
			return errors.Errorf("%s: want 3 components, got %d", f.name, len(f.v))
		}
	}
	if t.Player.Speed <= 0 {
		return errors.Errorf("player.speed must be positive, got %v", t.Player.Speed)
	}
	if t.Tasks.InteractRadius <= 0 {
		return errors.Errorf("tasks.interact_radius must be positive, got %v", t.Tasks.InteractRadius)
	}
	if t.Room.SpawnExtent <= 0 {
		return errors.Errorf("room.spawn_extent must be positive, got %v", t.Room.SpawnExtent)
	}
	if t.Room.RoofHeight <= t.Player.Start[1]+t.Player.EyeHeight {
		return errors.Errorf("room.roof_height %v is below the eye", t.Room.RoofHeight)
	}
	if t.Render.Mode != "solid" && t.Render.Mode != "wireframe" {
		return errors.Errorf("render.mode: unknown mode %q", t.Render.Mode)
	}
	if t.Render.Width <= 0 || t.Render.Height <= 0 {
		return errors.Errorf("render: bad size %dx%d", t.Render.Width, t.Render.Height)
	}
	if t.Audio.Volume < 0 || t.Audio.Volume > 255 {
		return errors.Errorf("audio.volume out of range: %d", t.Audio.Volume)
	}
	return nil
}

// WorldParams converts the tuning into session parameters.
func (t Tuning) WorldParams() world.Params {
	return world.Params{
		SpawnExtent:    t.Room.SpawnExtent,
		PlayerStart:    v3(t.Player.Start),
		PlayerSize:     v3(t.Player.Size),
		Speed:          t.Player.Speed,
		EyeHeight:      t.Player.EyeHeight,
		ObstacleCount:  t.Obstacles.Count,
		ObstacleSize:   v3(t.Obstacles.Size),
		ObstacleY:      t.Obstacles.Y,
		TaskCount:      t.Tasks.Count,
		TaskSize:       v3(t.Tasks.Size),
		TaskY:          t.Tasks.Y,
		InteractRadius: t.Tasks.InteractRadius,
		Seed:           t.Seed,
	}
}

// FOVYRad returns the vertical field of view in radians.
func (l Look) FOVYRad() float64 { return l.FOVDeg * math.Pi / 180 }

func vec(v world.Vec3) []float64 { return []float64{v.X, v.Y, v.Z} }

func v3(s []float64) world.Vec3 {
	if len(s) != 3 {
		return world.Vec3{}
	}
	return world.V3(s[0], s[1], s[2])
}
