package proto

// Cue names a short pre-rendered sound effect.
type Cue uint8

const (
	CueNone Cue = iota
	CueTaskDone
	CueAllDone
	CueBump
)

func (c Cue) String() string {
	switch c {
	case CueTaskDone:
		return "task_done"
	case CueAllDone:
		return "all_done"
	case CueBump:
		return "bump"
	default:
		return "none"
	}
}

// CuePlayPayload encodes a MsgCuePlay request: a single byte cue id.
func CuePlayPayload(c Cue) []byte { return []byte{byte(c)} }

func DecodeCuePlayPayload(b []byte) (Cue, bool) {
	if len(b) != 1 || b[0] == byte(CueNone) {
		return CueNone, false
	}
	return Cue(b[0]), true
}

// CueVolumePayload encodes a MsgCueVolume request (0..255).
func CueVolumePayload(vol uint8) []byte { return []byte{vol} }

func DecodeCueVolumePayload(b []byte) (uint8, bool) {
	if len(b) != 1 {
		return 0, false
	}
	return b[0], true
}
