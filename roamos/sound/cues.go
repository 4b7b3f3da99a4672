// Package sound renders the short feedback cues and feeds them to the HAL
// audio sink from a kernel task.
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"roam/roamos/proto"
)

// envelope fades a stream in over attack samples and out over the last
// release samples of total.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

func newEnvelope(s beep.Streamer, sr beep.SampleRate, total, attack, release time.Duration) beep.Streamer {
	return &envelope{s: s, attack: sr.N(attack), release: sr.N(release), total: sr.N(total)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if left := e.total - e.pos; len(samples) > left {
		samples = samples[:left]
	}
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		}
		if rem := e.total - e.pos; rem < e.release {
			g = math.Min(g, float64(rem)/float64(e.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// note is a sine at freq shaped with a short attack and a release over the
// second half.
func note(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(sr.N(d))
	}
	return newEnvelope(beep.Take(sr.N(d), sine), sr, d, 5*time.Millisecond, d/2)
}

// chord plays a note with its octave on top.
func chord(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return beep.Mix(gain(note(sr, freq, d), 0.7), gain(note(sr, freq*2, d), 0.3))
}

// cueStreamer returns the streamer for c and its length.
func cueStreamer(c proto.Cue, sr beep.SampleRate) (beep.Streamer, time.Duration) {
	switch c {
	case proto.CueTaskDone:
		// B5 then E6.
		return gain(beep.Seq(
			chord(sr, 987.77, 80*time.Millisecond),
			chord(sr, 1318.51, 220*time.Millisecond),
		), 0.6), 300 * time.Millisecond
	case proto.CueAllDone:
		// C6 E6 G6 C7.
		return gain(beep.Seq(
			chord(sr, 1046.50, 90*time.Millisecond),
			chord(sr, 1318.51, 90*time.Millisecond),
			chord(sr, 1567.98, 90*time.Millisecond),
			chord(sr, 2093.00, 360*time.Millisecond),
		), 0.6), 630 * time.Millisecond
	case proto.CueBump:
		return gain(note(sr, 110, 60*time.Millisecond), 0.5), 60 * time.Millisecond
	default:
		return nil, 0
	}
}

// Bank holds every cue pre-rendered as mono 16-bit PCM.
type Bank struct {
	rate uint32
	pcm  map[proto.Cue][]int16
}

// NewBank renders all cues at sampleRate.
func NewBank(sampleRate uint32) *Bank {
	b := &Bank{rate: sampleRate, pcm: make(map[proto.Cue][]int16)}
	sr := beep.SampleRate(sampleRate)
	for _, c := range []proto.Cue{proto.CueTaskDone, proto.CueAllDone, proto.CueBump} {
		s, d := cueStreamer(c, sr)
		if s != nil {
			b.pcm[c] = render(beep.Take(sr.N(d), s))
		}
	}
	return b
}

func (b *Bank) SampleRate() uint32 { return b.rate }

// PCM returns the rendered samples for c, or nil.
func (b *Bank) PCM(c proto.Cue) []int16 { return b.pcm[c] }

// render drains s into mono int16, averaging the two channels.
func render(s beep.Streamer) []int16 {
	var out []int16
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, toPCM((buf[i][0]+buf[i][1])/2))
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toPCM(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}
