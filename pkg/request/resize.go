package request

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Precision decides how closely the decoded image has to match the
// requested size.
type Precision int

const (
	// LessPixels only samples the image down; the result keeps the source
	// aspect ratio and has roughly as many pixels as the target.
	LessPixels Precision = iota
	// SmallerSize samples and then scales so both sides fit in the target.
	SmallerSize
	// SameAspectRatio crops the source to the target aspect ratio and never
	// grows past the target size.
	SameAspectRatio
	// Exactly crops and scales to exactly the target size.
	Exactly
)

var precisionNames = map[Precision]string{
	LessPixels:      "LESS_PIXELS",
	SmallerSize:     "SMALLER_SIZE",
	SameAspectRatio: "SAME_ASPECT_RATIO",
	Exactly:         "EXACTLY",
}

func (p Precision) String() string {
	if name, ok := precisionNames[p]; ok {
		return name
	}

	return fmt.Sprintf("Precision(%d)", int(p))
}

// IsCropping reports whether this precision keeps the target aspect ratio.
func (p Precision) IsCropping() bool {
	return p == SameAspectRatio || p == Exactly
}

func ParsePrecision(value string) (Precision, error) {
	normalized := normalizeEnumName(value)
	for precision, name := range precisionNames {
		if name == normalized {
			return precision, nil
		}
	}

	return LessPixels, fmt.Errorf("%w: %q", ErrUnknownPrecision, value)
}

// Scale decides which part of the source is kept when cropping.
type Scale int

const (
	StartCrop Scale = iota
	CenterCrop
	EndCrop
	Fill
)

var scaleNames = map[Scale]string{
	StartCrop:  "START_CROP",
	CenterCrop: "CENTER_CROP",
	EndCrop:    "END_CROP",
	Fill:       "FILL",
}

func (s Scale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Scale(%d)", int(s))
}

func ParseScale(value string) (Scale, error) {
	normalized := normalizeEnumName(value)
	for scale, name := range scaleNames {
		if name == normalized {
			return scale, nil
		}
	}

	return CenterCrop, fmt.Errorf("%w: %q", ErrUnknownScale, value)
}

// Resize is the fully resolved resize descriptor of one request execution.
type Resize struct {
	Size      Size
	Precision Precision
	Scale     Scale
}

func NewResize(size Size, precision Precision, scale Scale) Resize {
	return Resize{Size: size, Precision: precision, Scale: scale}
}

func (r Resize) IsEmpty() bool {
	return r.Size.IsEmpty()
}

func (r Resize) Key() string {
	return fmt.Sprintf("Resize(%s,%s,%s)", r.Size, r.Precision, r.Scale)
}

func (r Resize) String() string {
	return r.Key()
}

// ShouldClip reports whether honouring this resize on an image of
// imageSize requires dropping part of the source.
func (r Resize) ShouldClip(imageSize Size) bool {
	if r.IsEmpty() || imageSize.IsEmpty() || !r.Precision.IsCropping() || r.Scale == Fill {
		return false
	}

	return aspectRatio(imageSize) != aspectRatio(r.Size)
}

// aspectRatio is rounded to one decimal so near-identical ratios do not
// trigger a crop of a pixel or two.
func aspectRatio(size Size) float64 {
	return math.Round(float64(size.Width)/float64(size.Height)*10) / 10
}

func normalizeEnumName(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	return strings.ReplaceAll(value, "-", "_")
}

var (
	ErrUnknownPrecision = errors.New("unknown precision")
	ErrUnknownScale     = errors.New("unknown scale")
)
