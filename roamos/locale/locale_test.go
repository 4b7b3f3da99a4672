package locale

import "testing"

func TestCatalogs(t *testing.T) {
	langs := Languages()
	if len(langs) != 2 || langs[0] != "en" || langs[1] != "fr" {
		t.Fatalf("unexpected languages %v", langs)
	}

	en, err := Load("en_US.UTF-8")
	if err != nil {
		t.Fatalf("load en: %v", err)
	}
	if got := en.Get(TasksRemaining, 3); got != "Tasks remaining: 3" {
		t.Fatalf("unexpected en text %q", got)
	}
	if got := en.Get(AllDone); got != "All tasks complete!" {
		t.Fatalf("unexpected en text %q", got)
	}

	fr, err := Load("FR")
	if err != nil {
		t.Fatalf("load fr: %v", err)
	}
	if fr.Lang() != "fr" {
		t.Fatalf("unexpected lang %q", fr.Lang())
	}
	if got := fr.Get(Score, 2); got != "Score : 2" {
		t.Fatalf("unexpected fr text %q", got)
	}
}

func TestEveryMessageTranslated(t *testing.T) {
	ids := []string{TasksRemaining, Score, AllDone, NearTask, ClickToPlay, Controls, TaskCompleted, Collision, Panic}
	for _, lang := range Languages() {
		c := MustLoad(lang)
		for _, id := range ids {
			if got := c.Get(id, 1); got == id {
				t.Fatalf("%s: %s not translated", lang, id)
			}
		}
	}
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	if _, err := Load("xx"); err == nil {
		t.Fatal("expected error for unknown language")
	}
	if c := MustLoad("xx"); c.Lang() != Default {
		t.Fatalf("expected fallback to %s, got %s", Default, c.Lang())
	}
}

func TestASCII(t *testing.T) {
	cases := map[string]string{
		"Tâches restantes : 4": "Taches restantes : 4",
		"Échap":                "Echap",
		"plain":                "plain",
		"→ go":                 "? go",
	}
	for in, want := range cases {
		if got := ASCII(in); got != want {
			t.Fatalf("ASCII(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetIgnoresVarsWithoutVerbs(t *testing.T) {
	en := MustLoad("en")
	if got := en.Get(AllDone, 1); got != "All tasks complete!" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := en.Get("UNKNOWN_%d"); got != "UNKNOWN_%d" {
		t.Fatalf("expected an unknown id back unchanged, got %q", got)
	}
	if got := en.Get(TasksRemaining); got != "Tasks remaining: %d" {
		t.Fatalf("expected the raw translation without vars, got %q", got)
	}
}
