package world

// Key is a logical input signal, decoupled from any host key codes.
type Key uint8

const (
	KeyNone Key = iota
	KeyForward
	KeyBackward
	KeyLeft
	KeyRight
	KeyInteract
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBackward:
		return "backward"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyInteract:
		return "interact"
	default:
		return "none"
	}
}

// Input holds the level-triggered movement flags. They are sampled once per
// frame by Session.Step.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Any reports whether at least one movement flag is held.
func (in Input) Any() bool {
	return in.Forward || in.Backward || in.Left || in.Right
}

// delta returns the per-frame displacement for the held flags. Opposing flags
// cancel because they act on the same axis.
func (in Input) delta(speed float64) Vec3 {
	var d Vec3
	if in.Forward {
		d.Z -= speed
	}
	if in.Backward {
		d.Z += speed
	}
	if in.Left {
		d.X -= speed
	}
	if in.Right {
		d.X += speed
	}
	return d
}

func (in *Input) set(k Key, held bool) {
	switch k {
	case KeyForward:
		in.Forward = held
	case KeyBackward:
		in.Backward = held
	case KeyLeft:
		in.Left = held
	case KeyRight:
		in.Right = held
	}
}
