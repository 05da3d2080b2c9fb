package decode

import (
	"image"
	"math"

	"github.com/thebartekbanach/imload/pkg/request"
)

// Mapping maps the part of an image that is kept (SrcRect, in image
// coordinates) onto the output canvas (DestRect).
type Mapping struct {
	SrcRect  image.Rectangle
	DestRect image.Rectangle
}

func (m Mapping) IsIdentity(imageSize request.Size) bool {
	full := image.Rect(0, 0, imageSize.Width, imageSize.Height)
	return m.SrcRect == full && m.DestRect == full
}

func CalculateResizeMapping(imageSize request.Size, resize request.Resize) Mapping {
	full := image.Rect(0, 0, imageSize.Width, imageSize.Height)
	if resize.IsEmpty() || imageSize.IsEmpty() {
		return Mapping{full, full}
	}

	target := resize.Size
	switch resize.Precision {
	case request.SmallerSize:
		dest := fitInside(imageSize, target)
		return Mapping{full, image.Rect(0, 0, dest.Width, dest.Height)}

	case request.SameAspectRatio, request.Exactly:
		src := full
		if resize.Scale != request.Fill {
			src = cropRect(imageSize, target, resize.Scale)
		}

		if resize.Precision == request.Exactly {
			return Mapping{src, image.Rect(0, 0, target.Width, target.Height)}
		}

		var dest request.Size
		if resize.Scale == request.Fill {
			dest = shrinkToCover(target, imageSize)
		} else {
			dest = fitInside(request.NewSize(src.Dx(), src.Dy()), target)
		}
		return Mapping{src, image.Rect(0, 0, dest.Width, dest.Height)}
	}

	return Mapping{full, full}
}

// cropRect is the largest rect with the target's aspect ratio that fits in
// the image, anchored according to scale.
func cropRect(imageSize, target request.Size, scale request.Scale) image.Rectangle {
	w, h := imageSize.Width, imageSize.Height
	srcW, srcH := w, h
	if int64(w)*int64(target.Height) > int64(h)*int64(target.Width) {
		srcW = clampSide(roundInt(float64(h)*float64(target.Width)/float64(target.Height)), w)
	} else {
		srcH = clampSide(roundInt(float64(w)*float64(target.Height)/float64(target.Width)), h)
	}

	x := anchor(w, srcW, scale)
	y := anchor(h, srcH, scale)
	return image.Rect(x, y, x+srcW, y+srcH)
}

func anchor(total, part int, scale request.Scale) int {
	switch scale {
	case request.StartCrop:
		return 0
	case request.EndCrop:
		return total - part
	}

	return (total - part) / 2
}

func fitInside(size, target request.Size) request.Size {
	if size.Width <= target.Width && size.Height <= target.Height {
		return size
	}

	ratio := math.Min(float64(target.Width)/float64(size.Width), float64(target.Height)/float64(size.Height))
	return request.NewSize(
		clampSide(roundInt(float64(size.Width)*ratio), target.Width),
		clampSide(roundInt(float64(size.Height)*ratio), target.Height),
	)
}

// shrinkToCover scales target down so it is not larger than bounds on
// either side.
func shrinkToCover(target, bounds request.Size) request.Size {
	ratio := math.Min(1, math.Min(float64(bounds.Width)/float64(target.Width), float64(bounds.Height)/float64(target.Height)))
	return request.NewSize(
		clampSide(roundInt(float64(target.Width)*ratio), target.Width),
		clampSide(roundInt(float64(target.Height)*ratio), target.Height),
	)
}

func roundInt(value float64) int {
	return int(math.Round(value))
}

func clampSide(value, max int) int {
	if value < 1 {
		return 1
	}
	if value > max {
		return max
	}
	return value
}
