package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgCuePlay
	MsgCueVolume
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgCuePlay:
		return "cue_play"
	case MsgCueVolume:
		return "cue_volume"
	default:
		return "unknown"
	}
}
