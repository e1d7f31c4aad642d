package future

type State int32

const (
	StateNew State = iota
	Completing
	Normal
	Exceptional
	Cancelled
	Interrupting
	Interrupted
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "New"
	case Completing:
		return "Completing"
	case Normal:
		return "Normal"
	case Exceptional:
		return "Exceptional"
	case Cancelled:
		return "Cancelled"
	case Interrupting:
		return "Interrupting"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the outcome is settled.
func (s State) Terminal() bool {
	return s > Completing
}
