//go:build cgo

package hal

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// hostAudio plays the sample ring through Ebiten's audio package.
type hostAudio struct {
	mu     sync.Mutex
	ctx    *audio.Context
	player *audio.Player
	ring   pcmRing
	closed bool
	vol    uint8
}

func newHostAudio() Audio { return &hostAudio{vol: 255} }

func (a *hostAudio) Start(sampleRate uint32) error {
	if sampleRate == 0 {
		return errors.New("host audio: invalid sample rate")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ctx == nil {
		if c := audio.CurrentContext(); c != nil {
			a.ctx = c
		} else {
			a.ctx = audio.NewContext(int(sampleRate))
		}
	}
	if a.ctx.SampleRate() != int(sampleRate) {
		return errors.New("host audio: ebiten audio context sample rate is fixed")
	}

	if a.player != nil {
		_ = a.player.Close()
		a.player = nil
	}
	a.ring.reset(ringSize(sampleRate))
	a.closed = false

	p, err := a.ctx.NewPlayer(&hostAudioReader{a: a})
	if err != nil {
		return err
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.SetVolume(float64(a.vol) / 255.0)
	p.Play()
	a.player = p
	return nil
}

func (a *hostAudio) Stop() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	p := a.player
	a.player = nil
	a.mu.Unlock()

	a.ring.reset(0)
	if p != nil {
		return p.Close()
	}
	return nil
}

func (a *hostAudio) SetVolume(vol uint8) {
	a.mu.Lock()
	a.vol = vol
	p := a.player
	a.mu.Unlock()

	if p != nil {
		p.SetVolume(float64(vol) / 255.0)
	}
}

func (a *hostAudio) WriteSamples(s []int16) int { return a.ring.write(s) }
func (a *hostAudio) PendingSamples() int        { return a.ring.pending() }

func (a *hostAudio) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

type hostAudioReader struct {
	a       *hostAudio
	scratch []int16
}

// Read never blocks: an empty ring plays silence.
func (r *hostAudioReader) Read(p []byte) (int, error) {
	if r.a.isClosed() {
		return 0, io.EOF
	}
	frames := len(p) / 4
	if cap(r.scratch) < frames {
		r.scratch = make([]int16, frames)
	}
	s := r.scratch[:frames]
	r.a.ring.read(s)

	// Ebiten audio expects 16-bit little-endian stereo.
	for i, v := range s {
		j := i * 4
		p[j+0] = byte(v)
		p[j+1] = byte(v >> 8)
		p[j+2] = byte(v)
		p[j+3] = byte(v >> 8)
	}
	return frames * 4, nil
}
