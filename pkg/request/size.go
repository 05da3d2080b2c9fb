package request

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// IsEmpty reports whether either side is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) Area() int64 {
	return int64(s.Width) * int64(s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses the "WxH" form produced by Size.String.
func ParseSize(value string) (Size, error) {
	parts := strings.Split(strings.TrimSpace(value), "x")
	if len(parts) != 2 {
		return Size{}, ErrMalformedSize
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return Size{}, ErrMalformedSize
	}

	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return Size{}, ErrMalformedSize
	}

	return Size{width, height}, nil
}

var ErrMalformedSize = errors.New("size must be in WxH format")
