package buildinfo

import "testing"

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	cases := []struct {
		version, commit, want string
	}{
		{"dev", "unknown", "dev"},
		{"dev", "abc123", "abc123"},
		{"v1.2.0", "abc123", "v1.2.0"},
		{"", "", "dev"},
	}
	for _, c := range cases {
		Version, Commit = c.version, c.commit
		if got := Short(); got != c.want {
			t.Fatalf("Short() with %q/%q = %q, want %q", c.version, c.commit, got, c.want)
		}
	}
}

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.0.0", "abc", "2026-01-02"
	if got, want := String(), "roam v1.0.0 (commit abc, built 2026-01-02)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
