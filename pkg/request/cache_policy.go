package request

import "fmt"

// CachePolicy controls reading from and writing to one cache tier.
type CachePolicy int

const (
	Enabled CachePolicy = iota
	ReadOnly
	WriteOnly
	Disabled
)

func (p CachePolicy) ReadEnabled() bool {
	return p == Enabled || p == ReadOnly
}

func (p CachePolicy) WriteEnabled() bool {
	return p == Enabled || p == WriteOnly
}

func (p CachePolicy) String() string {
	switch p {
	case Enabled:
		return "ENABLED"
	case ReadOnly:
		return "READ_ONLY"
	case WriteOnly:
		return "WRITE_ONLY"
	case Disabled:
		return "DISABLED"
	}

	return fmt.Sprintf("CachePolicy(%d)", int(p))
}
