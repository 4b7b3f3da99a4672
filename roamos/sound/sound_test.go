package sound

import (
	"errors"
	"strings"
	"testing"

	"github.com/gopxl/beep"

	soundclient "roam/roamos/client/sound"
	"roam/roamos/kernel"
	"roam/roamos/proto"
)

type fakeAudio struct {
	startErr error
	starts   int
	rate     uint32
	vol      uint8
	pending  int
	capacity int
	written  []int16
}

func (a *fakeAudio) Start(rate uint32) error {
	a.starts++
	a.rate = rate
	return a.startErr
}

func (a *fakeAudio) Stop() error         { return nil }
func (a *fakeAudio) SetVolume(v uint8)   { a.vol = v }
func (a *fakeAudio) PendingSamples() int { return a.pending }

func (a *fakeAudio) WriteSamples(s []int16) int {
	n := len(s)
	if a.capacity > 0 && a.pending+n > a.capacity {
		n = a.capacity - a.pending
	}
	a.written = append(a.written, s[:n]...)
	a.pending += n
	return n
}

// drain simulates the device playing everything queued.
func (a *fakeAudio) drain() { a.pending = 0 }

type cueSender struct {
	to   kernel.Capability
	cues []proto.Cue
	vol  int
}

func (s *cueSender) Step(ctx *kernel.Context) {
	if s.vol >= 0 {
		soundclient.SetVolume(ctx, s.to, uint8(s.vol))
		s.vol = -1
	}
	for _, c := range s.cues {
		soundclient.Play(ctx, s.to, c)
	}
	s.cues = nil
	ctx.BlockOnTick()
}

func TestBankRendersEveryCue(t *testing.T) {
	b := NewBank(22050)
	sr := beep.SampleRate(22050)
	for _, c := range []proto.Cue{proto.CueTaskDone, proto.CueAllDone, proto.CueBump} {
		_, d := cueStreamer(c, sr)
		pcm := b.PCM(c)
		// Notes are truncated to whole samples, so a sequence may fall a
		// few samples short of the total.
		if n := sr.N(d); len(pcm) > n || len(pcm) < n-4 {
			t.Fatalf("%s: expected about %d samples, got %d", c, n, len(pcm))
		}
		peak := 0
		for _, v := range pcm {
			if a := int(v); a > peak {
				peak = a
			} else if -a > peak {
				peak = -a
			}
		}
		if peak < 1000 {
			t.Fatalf("%s: cue is nearly silent (peak %d)", c, peak)
		}
	}
	if b.PCM(proto.CueNone) != nil {
		t.Fatal("expected no samples for CueNone")
	}
}

func newSoundKernel(out *fakeAudio, cues []proto.Cue, vol int) (*kernel.Kernel, *Service, kernel.Capability) {
	k := kernel.New()
	soundEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	svc := New(out, NewBank(22050), soundEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), 200)
	k.AddTask(svc)
	k.AddTask(&cueSender{to: soundEP.Restrict(kernel.RightSend), cues: cues, vol: vol})
	return k, svc, logEP.Restrict(kernel.RightRecv)
}

func TestServicePlaysCue(t *testing.T) {
	out := &fakeAudio{}
	k, svc, _ := newSoundKernel(out, []proto.Cue{proto.CueTaskDone}, 90)

	for i := 0; i < 200 && (i < 2 || svc.Playing() > 0); i++ {
		k.Tick()
		k.RunUntilIdle(16)
		if out.pending > svc.lead {
			t.Fatalf("tick %d: sink over-filled: %d > %d", i, out.pending, svc.lead)
		}
		out.drain()
	}

	if out.starts != 1 || out.rate != 22050 {
		t.Fatalf("expected one start at 22050, got %d at %d", out.starts, out.rate)
	}
	if out.vol != 90 {
		t.Fatalf("expected volume 90, got %d", out.vol)
	}
	if svc.Playing() != 0 {
		t.Fatal("expected cue to finish")
	}
	if len(out.written) != len(svc.bank.PCM(proto.CueTaskDone)) {
		t.Fatalf("expected %d samples written, got %d", len(svc.bank.PCM(proto.CueTaskDone)), len(out.written))
	}
}

func TestServiceMixesOverlappingCues(t *testing.T) {
	out := &fakeAudio{capacity: 300}
	k, svc, _ := newSoundKernel(out, []proto.Cue{proto.CueBump, proto.CueAllDone}, -1)

	for i := 0; i < 1000 && (i < 2 || svc.Playing() > 0); i++ {
		k.Tick()
		k.RunUntilIdle(16)
		out.drain()
	}
	if got, want := len(out.written), len(svc.bank.PCM(proto.CueAllDone)); got != want {
		t.Fatalf("expected the longest cue length %d, got %d", want, got)
	}
	bump := svc.bank.PCM(proto.CueBump)
	all := svc.bank.PCM(proto.CueAllDone)
	for i := range bump {
		if want := clamp16(int32(bump[i]) + int32(all[i])); out.written[i] != want {
			t.Fatalf("sample %d: got %d, want %d", i, out.written[i], want)
		}
	}
}

func TestServiceStartFailureIsLoggedOnce(t *testing.T) {
	out := &fakeAudio{startErr: errors.New("no device")}
	k, svc, logRecv := newSoundKernel(out, []proto.Cue{proto.CueTaskDone, proto.CueTaskDone}, -1)

	for i := 0; i < 4; i++ {
		k.Tick()
		k.RunUntilIdle(16)
	}
	if out.starts != 1 {
		t.Fatalf("expected one start attempt, got %d", out.starts)
	}
	if svc.Playing() != 0 || len(out.written) != 0 {
		t.Fatal("expected nothing played")
	}

	var lines []string
	k.AddTask(&logDrain{ep: logRecv, lines: &lines})
	k.RunUntilIdle(16)
	if len(lines) != 1 || !strings.Contains(lines[0], "no device") {
		t.Fatalf("unexpected log lines %q", lines)
	}
}

type logDrain struct {
	ep    kernel.Capability
	lines *[]string
}

func (d *logDrain) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(d.ep)
		if !ok {
			break
		}
		*d.lines = append(*d.lines, string(msg.Payload()))
	}
	ctx.BlockOnTick()
}
