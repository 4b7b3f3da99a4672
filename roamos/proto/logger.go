package proto

// LogLinePayload encodes a MsgLogLine payload.
//
// Convention:
// - Payload is UTF-8 bytes without a trailing newline.
// - Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(line string, max int) []byte {
	if max >= 0 && len(line) > max {
		line = line[:max]
	}
	return []byte(line)
}
