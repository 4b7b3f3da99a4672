package hal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileLoggerRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "roam.log")
	l, err := openFileLogger(path, 64)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.WriteLineString("collision: first line that is fairly long")
	l.WriteLineString("task 1: second line pushes past the limit")
	l.WriteLineString("task 2: after rotation")

	rotated, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("expected a rotated file: %v", err)
	}
	if !strings.HasPrefix(string(rotated), "03:04:05.000 collision: first line") {
		t.Fatalf("unexpected rotated contents %q", rotated)
	}
	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read current: %v", err)
	}
	if got := string(current); got != "03:04:05.000 task 2: after rotation\n" {
		t.Fatalf("unexpected current contents %q", got)
	}
}

func TestFileLoggerKeepsWritingWhenRotateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roam.log")
	// A non-empty directory at path.1 makes the rename fail.
	if err := os.MkdirAll(filepath.Join(path+".1", "busy"), 0o755); err != nil {
		t.Fatal(err)
	}
	l, err := openFileLogger(path, 32)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer l.Close()
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.WriteLineString("task 1: long enough to hit the cap")
	l.WriteLineString("task 2: still logged")

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read current: %v", err)
	}
	want := "03:04:05.000 task 1: long enough to hit the cap\n03:04:05.000 task 2: still logged\n"
	if got := string(current); got != want {
		t.Fatalf("unexpected contents %q", got)
	}
}

func TestColorizeByPrefix(t *testing.T) {
	if got := colorize("plain line"); got != "plain line" {
		t.Fatalf("expected plain text untouched, got %q", got)
	}
	for _, s := range []string{"panic: boom", "collision: x", "task 1: done", "sound: no device"} {
		got := colorize(s)
		if got == s || !strings.Contains(got, s) {
			t.Fatalf("expected %q to be wrapped in color codes, got %q", s, got)
		}
	}
}

func TestHostLoggerPlain(t *testing.T) {
	var b strings.Builder
	l := &hostLogger{w: &b}
	l.WriteLineString("task 1: done")
	l.WriteLineBytes([]byte("second"))
	if got := b.String(); got != "task 1: done\nsecond\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
