package app

import (
	"fmt"

	"roam/hal"
	"roam/internal/buildinfo"
	"roam/roamos/kernel"
	"roam/roamos/locale"
	"roam/roamos/services/logger"
	"roam/roamos/sound"
	"roam/roamos/tasks/explore"
	"roam/roamos/tuning"
)

// DefaultStepBudget bounds kernel steps per frame. Three tasks that each park
// on the tick leave plenty of room for log and sound traffic.
const DefaultStepBudget = 64

type Config struct {
	Tuning tuning.Tuning

	// StepBudget caps kernel steps per frame; zero means DefaultStepBudget.
	StepBudget int
}

type system struct {
	k       *kernel.Kernel
	explore *explore.Task
	budget  int
}

// New wires the kernel, the services and the explore task onto h and returns
// the per-frame step function.
func New(h hal.HAL, cfg Config) func() error {
	return newSystem(h, cfg).step
}

func newSystem(h hal.HAL, cfg Config) *system {
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = DefaultStepBudget
	}
	tu := cfg.Tuning
	text, err := locale.Load(tu.Locale)
	if err != nil {
		text = locale.MustLoad(locale.Default)
	}

	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))

	var soundCap kernel.Capability
	if tu.Audio.Enabled && h.Audio() != nil {
		soundEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		svc := sound.New(h.Audio(), sound.NewBank(uint32(tu.Audio.SampleRate)), soundEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), uint8(tu.Audio.Volume))
		k.AddTask(svc)
		soundCap = soundEP.Restrict(kernel.RightSend)
	}

	ex := explore.New(h.Display(), h.Input(), explore.Config{
		Tuning:   tu,
		Text:     text,
		LogCap:   logEP.Restrict(kernel.RightSend),
		SoundCap: soundCap,
	})
	k.AddTask(ex)

	installPanicHandler(h, text)

	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("roam %s: seed=%d locale=%s tasks=%d obstacles=%d audio=%t",
			buildinfo.Short(), tu.Seed, text.Lang(), ex.Session().Remaining(), len(ex.Session().Obstacles()), soundCap.Valid()))
		if err != nil {
			l.WriteLineString(fmt.Sprintf("locale: %v, using %s", err, locale.Default))
		}
	}

	return &system{k: k, explore: ex, budget: cfg.StepBudget}
}

// step runs one frame. After a task panic the kernel is left alone so the
// panic screen stays up.
func (s *system) step() error {
	if kernel.InPanicMode() {
		return nil
	}
	s.k.Tick()
	s.k.RunUntilIdle(s.budget)
	return nil
}
