package request

import "fmt"

// Depth limits how far down the pipeline a request may go to get its data.
type Depth int

const (
	Network Depth = iota
	Local
	Memory
)

var depthNames = map[Depth]string{
	Network: "NETWORK",
	Local:   "LOCAL",
	Memory:  "MEMORY",
}

func (d Depth) String() string {
	if name, ok := depthNames[d]; ok {
		return name
	}

	return fmt.Sprintf("Depth(%d)", int(d))
}

func ParseDepth(value string) (Depth, error) {
	normalized := normalizeEnumName(value)
	for depth, name := range depthNames {
		if name == normalized {
			return depth, nil
		}
	}

	return Network, fmt.Errorf("unknown depth: %q", value)
}

// DepthError is returned when a request's Depth forbids the stage that
// would have to run to satisfy it.
type DepthError struct {
	Depth Depth
	Stage string
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("request depth %s does not allow %s", e.Depth, e.Stage)
}
