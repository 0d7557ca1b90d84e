package plugin

// InitKind tags which initialization protocol a component supports.
type InitKind int

const (
	InitNone InitKind = iota
	InitStream
	InitPath
)

func (k InitKind) String() string {
	switch k {
	case InitStream:
		return "stream"
	case InitPath:
		return "path"
	default:
		return "none"
	}
}

// Init is the initialization protocol resolved for one activation.
// Exactly one of Stream and Path is set.
type Init struct {
	Kind   InitKind
	Stream StreamInitializer
	Path   PathInitializer
}

// ProbeInit resolves the initialization protocol of h. Stream
// initialization wins when a component offers both.
func ProbeInit(h Handler) (Init, error) {
	if s, ok := h.(StreamInitializer); ok {
		return Init{Kind: InitStream, Stream: s}, nil
	}
	if p, ok := h.(PathInitializer); ok {
		return Init{Kind: InitPath, Path: p}, nil
	}
	return Init{}, ErrNoInitializer
}
