package sound

import (
	"roam/hal"
	logclient "roam/roamos/client/logger"
	"roam/roamos/kernel"
	"roam/roamos/proto"
)

type voice struct {
	pcm []int16
	pos int
}

// Service plays cues requested over IPC. Each tick it tops up the HAL sink to
// a small lead so cues start within a frame or two and never block the loop.
type Service struct {
	out    hal.Audio
	bank   *Bank
	ep     kernel.Capability
	logCap kernel.Capability

	vol     uint8
	lead    int
	started bool
	failed  bool

	voices []voice
	mix    []int16
}

// Lead is how far ahead of playback the service keeps the sink filled.
const Lead = 50 // ms

func New(out hal.Audio, bank *Bank, ep, logCap kernel.Capability, vol uint8) *Service {
	lead := int(bank.SampleRate()) * Lead / 1000
	return &Service{
		out:    out,
		bank:   bank,
		ep:     ep,
		logCap: logCap,
		vol:    vol,
		lead:   lead,
		mix:    make([]int16, lead),
	}
}

// Playing reports the number of cues still being written.
func (s *Service) Playing() int { return len(s.voices) }

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.TryRecv(s.ep)
		if !ok {
			break
		}
		s.handle(ctx, msg)
	}
	s.pump()
	ctx.BlockOnTick()
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgCuePlay:
		c, ok := proto.DecodeCuePlayPayload(msg.Payload())
		if !ok {
			return
		}
		pcm := s.bank.PCM(c)
		if len(pcm) == 0 || !s.start(ctx) {
			return
		}
		s.voices = append(s.voices, voice{pcm: pcm})
	case proto.MsgCueVolume:
		if v, ok := proto.DecodeCueVolumePayload(msg.Payload()); ok {
			s.vol = v
			if s.started {
				s.out.SetVolume(v)
			}
		}
	}
}

// start opens the sink on first use. A failure is logged once and mutes the
// service for the rest of the run.
func (s *Service) start(ctx *kernel.Context) bool {
	if s.started {
		return true
	}
	if s.failed || s.out == nil {
		return false
	}
	if err := s.out.Start(s.bank.SampleRate()); err != nil {
		s.failed = true
		logclient.Logf(ctx, s.logCap, "sound: %v", err)
		return false
	}
	s.out.SetVolume(s.vol)
	s.started = true
	return true
}

func (s *Service) pump() {
	if len(s.voices) == 0 {
		return
	}
	want := s.lead - s.out.PendingSamples()
	if want <= 0 {
		return
	}

	n := 0
	for _, v := range s.voices {
		if rem := len(v.pcm) - v.pos; rem > n {
			n = rem
		}
	}
	if n > want {
		n = want
	}
	buf := s.mix[:n]
	for i := range buf {
		var acc int32
		for _, v := range s.voices {
			if j := v.pos + i; j < len(v.pcm) {
				acc += int32(v.pcm[j])
			}
		}
		buf[i] = clamp16(acc)
	}

	wrote := s.out.WriteSamples(buf)
	live := s.voices[:0]
	for _, v := range s.voices {
		v.pos += wrote
		if v.pos < len(v.pcm) {
			live = append(live, v)
		}
	}
	s.voices = live
}

func clamp16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
