package transform

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/thebartekbanach/imload/pkg/request"
)

// MaxRadius bounds the blur and sharpen strength.
const MaxRadius = 100

// Rotate turns the image clockwise by Degrees. Uncovered corners stay
// transparent.
type Rotate struct {
	Degrees float64
}

func (t Rotate) Key() string {
	return fmt.Sprintf("Rotate(%s)", formatFloat(t.Degrees))
}

func (t Rotate) Transform(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !isFinite(t.Degrees) {
		return nil, invalidArgument(t.Key())
	}

	return imaging.Rotate(img, -t.Degrees, color.Transparent), nil
}

type Blur struct {
	Radius float64
}

func (t Blur) Key() string {
	return fmt.Sprintf("Blur(%s)", formatFloat(t.Radius))
}

func (t Blur) Transform(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !isValidRadius(t.Radius) {
		return nil, invalidArgument(t.Key())
	}

	return blur.Gaussian(img, t.Radius), nil
}

type Grayscale struct{}

func (t Grayscale) Key() string {
	return "Grayscale"
}

func (t Grayscale) Transform(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return effect.Grayscale(img), nil
}

type Sharpen struct {
	Sigma float64
}

func (t Sharpen) Key() string {
	return fmt.Sprintf("Sharpen(%s)", formatFloat(t.Sigma))
}

func (t Sharpen) Transform(ctx context.Context, img image.Image) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !isValidRadius(t.Sigma) {
		return nil, invalidArgument(t.Key())
	}

	return imaging.Sharpen(img, t.Sigma), nil
}

// Mask blends Color over every visible pixel with the given Opacity, keeping
// the pixel's own alpha.
type Mask struct {
	Color   colorful.Color
	Opacity float64
}

func NewMask(hex string, opacity float64) (Mask, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Mask{}, fmt.Errorf("%w: %v", ErrMalformedTransformation, err)
	}
	if !(opacity >= 0 && opacity <= 1) {
		return Mask{}, fmt.Errorf("%w: opacity %v is not in [0,1]", ErrMalformedTransformation, opacity)
	}

	return Mask{c, opacity}, nil
}

func (t Mask) Key() string {
	return fmt.Sprintf("Mask(%s,%s)", t.Color.Hex(), formatFloat(t.Opacity))
}

func (t Mask) Transform(ctx context.Context, img image.Image) (image.Image, error) {
	if !(t.Opacity >= 0 && t.Opacity <= 1) {
		return nil, invalidArgument(t.Key())
	}

	src := imaging.Clone(img)
	bounds := src.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := src.NRGBAAt(x, y)
			if pixel.A == 0 {
				continue
			}

			opaque := color.NRGBA{pixel.R, pixel.G, pixel.B, 255}
			c, _ := colorful.MakeColor(opaque)
			r, g, b := c.BlendRgb(t.Color, t.Opacity).Clamped().RGB255()
			src.SetNRGBA(x, y, color.NRGBA{r, g, b, pixel.A})
		}
	}

	return src, nil
}

// Parse reads a transformation from its short form, for example "blur:2",
// "rotate:90", "grayscale", "sharpen:0.5" or "mask:#ff0000:0.5".
func Parse(value string) (request.Transformation, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	name := strings.ToLower(parts[0])
	args := parts[1:]

	switch name {
	case "grayscale":
		if len(args) != 0 {
			return nil, malformed(value)
		}
		return Grayscale{}, nil

	case "rotate", "blur", "sharpen":
		if len(args) != 1 {
			return nil, malformed(value)
		}
		number, err := strconv.ParseFloat(args[0], 64)
		if err != nil || !isFinite(number) {
			return nil, malformed(value)
		}

		switch name {
		case "rotate":
			return Rotate{normalizeDegrees(number)}, nil
		case "blur":
			if !isValidRadius(number) {
				return nil, malformed(value)
			}
			return Blur{number}, nil
		default:
			if !isValidRadius(number) {
				return nil, malformed(value)
			}
			return Sharpen{number}, nil
		}

	case "mask":
		if len(args) < 1 || len(args) > 2 {
			return nil, malformed(value)
		}
		opacity := 0.5
		if len(args) == 2 {
			var err error
			if opacity, err = strconv.ParseFloat(args[1], 64); err != nil {
				return nil, malformed(value)
			}
		}
		return NewMask(args[0], opacity)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownTransformation, name)
}

// ParseList parses a comma separated list of transformations.
func ParseList(value string) ([]request.Transformation, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var transformations []request.Transformation
	for _, part := range strings.Split(value, ",") {
		transformation, err := Parse(part)
		if err != nil {
			return nil, err
		}
		transformations = append(transformations, transformation)
	}

	return transformations, nil
}

func isFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

func isValidRadius(value float64) bool {
	return value > 0 && value <= MaxRadius
}

// normalizeDegrees maps any angle to [0, 360) so equal rotations share a key.
func normalizeDegrees(degrees float64) float64 {
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}

	return degrees
}

func invalidArgument(key string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, key)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func malformed(value string) error {
	return fmt.Errorf("%w: %q", ErrMalformedTransformation, value)
}

var (
	ErrUnknownTransformation   = errors.New("unknown transformation")
	ErrMalformedTransformation = errors.New("malformed transformation")
	ErrInvalidArgument         = errors.New("invalid transformation argument")
)
