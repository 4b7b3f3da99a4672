package logger

import (
	"fmt"

	"roam/roamos/kernel"
	"roam/roamos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full. Lines longer than a
// message payload are truncated.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(line, kernel.MaxMessageBytes), kernel.Capability{})
}

// Logf formats and sends a log line.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}
