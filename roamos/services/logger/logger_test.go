package logger

import (
	"testing"

	"roam/roamos/kernel"
	"roam/roamos/proto"
)

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

type sender struct {
	to    kernel.Capability
	kind  proto.Kind
	texts []string
}

func (s *sender) Step(ctx *kernel.Context) {
	for _, t := range s.texts {
		ctx.SendTo(s.to, uint16(s.kind), []byte(t))
	}
	s.texts = nil
	ctx.BlockOnTick()
}

func TestServiceWritesLogLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	var out lines
	svc := New(&out, ep.Restrict(kernel.RightRecv))
	k.AddTask(svc)
	k.AddTask(&sender{to: ep.Restrict(kernel.RightSend), kind: proto.MsgLogLine, texts: []string{"collision detected", "task completed"}})
	k.AddTask(&sender{to: ep.Restrict(kernel.RightSend), kind: proto.MsgCuePlay, texts: []string{"x"}})

	k.RunUntilIdle(32)

	if len(out) != 2 || out[0] != "collision detected" || out[1] != "task completed" {
		t.Fatalf("unexpected log output %q", out)
	}
	if svc.Dropped() != 1 {
		t.Fatalf("expected 1 dropped message, got %d", svc.Dropped())
	}
}
