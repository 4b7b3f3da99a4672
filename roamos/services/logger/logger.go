package logger

import (
	"roam/hal"
	"roam/roamos/kernel"
	"roam/roamos/proto"
)

// Service drains MsgLogLine messages into the HAL logger.
type Service struct {
	log hal.Logger
	ep  kernel.Capability

	dropped int
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

// Dropped returns the number of messages of an unexpected kind.
func (s *Service) Dropped() int { return s.dropped }

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		if proto.Kind(msg.Kind) != proto.MsgLogLine {
			s.dropped++
			continue
		}
		if s.log != nil {
			s.log.WriteLineBytes(msg.Payload())
		}
	}
}
