package app

import (
	"strings"
	"testing"

	"roam/hal"
	"roam/roamos/kernel"
	"roam/roamos/locale"
	"roam/roamos/tuning"
)

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

type testAudio struct {
	starts int
	rate   uint32
	queued int
}

func (a *testAudio) Start(rate uint32) error {
	a.starts++
	a.rate = rate
	return nil
}

func (a *testAudio) Stop() error     { return nil }
func (a *testAudio) SetVolume(uint8) {}
func (a *testAudio) WriteSamples(s []int16) int {
	a.queued += len(s)
	return len(s)
}
func (a *testAudio) PendingSamples() int { return 0 }

type testKeyboard chan hal.KeyEvent

func (k testKeyboard) Events() <-chan hal.KeyEvent { return k }

type testPointer chan hal.PointerEvent

func (p testPointer) Events() <-chan hal.PointerEvent { return p }
func (p testPointer) RequestLock()                    {}
func (p testPointer) Unlock()                         {}
func (p testPointer) Locked() bool { return false }

type testHAL struct {
	log   *lines
	fb    *hal.MemFramebuffer
	keys  testKeyboard
	ptr   testPointer
	audio *testAudio
}

func newTestHAL() *testHAL {
	return &testHAL{
		log:   &lines{},
		fb:    hal.NewMemFramebuffer(96, 64),
		keys:  make(testKeyboard, 8),
		ptr:   make(testPointer, 8),
		audio: &testAudio{},
	}
}

func (h *testHAL) Logger() hal.Logger           { return h.log }
func (h *testHAL) Display() hal.Display         { return h }
func (h *testHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *testHAL) Input() hal.Input             { return h }
func (h *testHAL) Keyboard() hal.Keyboard       { return h.keys }
func (h *testHAL) Pointer() hal.Pointer         { return h.ptr }
func (h *testHAL) Audio() hal.Audio             { return h.audio }

func lit(fb hal.Framebuffer) int {
	buf := fb.Buffer()
	n := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] != 0 || buf[i+1] != 0 {
			n++
		}
	}
	return n
}

func TestSystemDrawsFrames(t *testing.T) {
	h := newTestHAL()
	tu := tuning.Default()
	tu.Seed = 7
	s := newSystem(h, Config{Tuning: tu})

	for i := 0; i < 3; i++ {
		if err := s.step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if lit(h.fb) == 0 {
		t.Fatal("expected a rendered frame")
	}
	if s.explore.Session().Remaining() != tu.Tasks.Count {
		t.Fatalf("expected %d tasks, got %d", tu.Tasks.Count, s.explore.Session().Remaining())
	}
	if len(*h.log) == 0 || !strings.HasPrefix((*h.log)[0], "roam ") || !strings.Contains((*h.log)[0], "seed=7") {
		t.Fatalf("expected a startup banner, got %q", *h.log)
	}
	if !strings.Contains((*h.log)[0], "audio=true") {
		t.Fatalf("expected audio enabled in the banner: %q", (*h.log)[0])
	}
}

func TestSystemMovesOnKeys(t *testing.T) {
	h := newTestHAL()
	tu := tuning.Default()
	tu.Obstacles.Count = 0
	s := newSystem(h, Config{Tuning: tu})

	h.keys <- hal.KeyEvent{Code: hal.KeyD, Press: true}
	for i := 0; i < 10; i++ {
		_ = s.step()
	}
	if p := s.explore.Session().Player(); p.X < 0.49 || p.X > 0.51 {
		t.Fatalf("expected ten frames of strafing right, got %+v", p)
	}
}

func TestAudioDisabledSkipsSoundService(t *testing.T) {
	h := newTestHAL()
	tu := tuning.Default()
	tu.Audio.Enabled = false
	_ = newSystem(h, Config{Tuning: tu})
	if !strings.Contains((*h.log)[0], "audio=false") {
		t.Fatalf("expected audio disabled in the banner: %q", (*h.log)[0])
	}
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	h := newTestHAL()
	tu := tuning.Default()
	tu.Locale = "xx"
	_ = newSystem(h, Config{Tuning: tu})
	if !strings.Contains((*h.log)[0], "locale=en") {
		t.Fatalf("expected the default locale, got %q", (*h.log)[0])
	}
	if len(*h.log) < 2 || !strings.HasPrefix((*h.log)[1], "locale: ") {
		t.Fatalf("expected the fallback to be logged, got %q", *h.log)
	}
}

func TestPanicScreen(t *testing.T) {
	fb := hal.NewMemFramebuffer(120, 80)
	info := kernel.PanicInfo{TaskID: 2, Value: "boom", Stack: []byte("goroutine 1 [running]:\n\tmain.go:12\n")}
	drawPanic(fb, locale.MustLoad("en"), info)

	buf := fb.Buffer()
	last := len(buf) - 2
	if buf[last] != 0xFF || buf[last+1] != 0xFF {
		t.Fatal("expected a white background")
	}
	dark := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] == 0 && buf[i+1] == 0 {
			dark++
		}
	}
	if dark == 0 {
		t.Fatal("expected panic text")
	}
}

func TestPanicLog(t *testing.T) {
	var l lines
	logPanic(&l, kernel.PanicInfo{TaskID: 3, Value: "boom", Stack: []byte("a\n\n\tb\n")})
	want := []string{"panic: task=3 boom", "a", "  b"}
	if len(l) != len(want) {
		t.Fatalf("got %q, want %q", l, want)
	}
	for i := range want {
		if l[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, l[i], want[i])
		}
	}
}

func TestPanicLinesWithoutStack(t *testing.T) {
	got := panicLines(locale.MustLoad("en"), kernel.PanicInfo{TaskID: 1, Value: "x"})
	if got[0] != "Something went wrong" || got[len(got)-1] != "stack: unavailable" {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestWrapRunes(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want []string
	}{
		{"", 4, []string{""}},
		{"abcd", 4, []string{"abcd"}},
		{"abcdef", 4, []string{"abcd", "ef"}},
		{"abcd  ef", 4, []string{"abcd", "ef"}},
		{"abcd    ", 4, []string{"abcd"}},
		{"ééééé", 2, []string{"éé", "éé", "é"}},
	}
	for _, c := range cases {
		got := wrapRunes(c.in, c.n)
		if strings.Join(got, "|") != strings.Join(c.want, "|") {
			t.Fatalf("wrapRunes(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}
