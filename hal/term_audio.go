//go:build cgo

package hal

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerAudio plays the sample ring through the beep speaker. The terminal
// host uses it because it runs without an Ebiten game loop.
type speakerAudio struct {
	mu      sync.Mutex
	ring    pcmRing
	gain    float64
	started bool
	scratch []int16
}

func newSpeakerAudio() Audio { return &speakerAudio{gain: 1} }

func (a *speakerAudio) Start(sampleRate uint32) error {
	if sampleRate == 0 {
		return errors.New("speaker: invalid sample rate")
	}
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	a.ring.reset(ringSize(sampleRate))
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(a)

	a.mu.Lock()
	a.started = true
	a.mu.Unlock()
	return nil
}

func (a *speakerAudio) Stop() error {
	a.mu.Lock()
	started := a.started
	a.started = false
	a.mu.Unlock()
	if started {
		speaker.Close()
	}
	return nil
}

func (a *speakerAudio) SetVolume(vol uint8) {
	a.mu.Lock()
	a.gain = float64(vol) / 255
	a.mu.Unlock()
}

func (a *speakerAudio) WriteSamples(s []int16) int { return a.ring.write(s) }
func (a *speakerAudio) PendingSamples() int        { return a.ring.pending() }

// Stream implements beep.Streamer. It never ends; an empty ring is silence.
func (a *speakerAudio) Stream(samples [][2]float64) (int, bool) {
	if cap(a.scratch) < len(samples) {
		a.scratch = make([]int16, len(samples))
	}
	s := a.scratch[:len(samples)]
	a.ring.read(s)

	a.mu.Lock()
	g := a.gain
	a.mu.Unlock()
	for i, v := range s {
		f := float64(v) / 32768 * g
		samples[i][0] = f
		samples[i][1] = f
	}
	return len(samples), true
}

func (a *speakerAudio) Err() error { return nil }
