package sound

import (
	"roam/roamos/kernel"
	"roam/roamos/proto"
)

// Play asks the sound service to play a cue. Best-effort: the request is
// dropped when the service mailbox is full.
func Play(ctx *kernel.Context, soundCap kernel.Capability, c proto.Cue) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(soundCap, uint16(proto.MsgCuePlay), proto.CuePlayPayload(c), kernel.Capability{})
}

// SetVolume changes the output volume (0..255).
func SetVolume(ctx *kernel.Context, soundCap kernel.Capability, vol uint8) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(soundCap, uint16(proto.MsgCueVolume), proto.CueVolumePayload(vol), kernel.Capability{})
}
