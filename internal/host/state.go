package host

// State is the lifecycle state of a Host.
type State int

const (
	// StateUninitialized - nothing loaded, or the last preview was cleared.
	StateUninitialized State = iota

	// StateLoading - a LoadPreview call is in progress, or was canceled.
	StateLoading

	// StateLoaded - a component is active.
	StateLoaded

	// StateError - the last load found no usable component.
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the result of one LoadPreview call.
type Outcome int

const (
	OutcomeLoaded Outcome = iota
	OutcomeError
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeError:
		return "error"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Size is an intrinsic preview size.
type Size struct {
	Width  int
	Height int
}
