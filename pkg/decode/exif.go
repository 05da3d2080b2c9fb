package decode

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/thebartekbanach/imload/pkg/request"
)

const (
	OrientationUndefined      = 0
	OrientationNormal         = 1
	OrientationFlipHorizontal = 2
	OrientationRotate180      = 3
	OrientationFlipVertical   = 4
	OrientationTranspose      = 5
	OrientationRotate90       = 6
	OrientationTransverse     = 7
	OrientationRotate270      = 8
)

var orientationNames = map[int]string{
	OrientationUndefined:      "UNDEFINED",
	OrientationNormal:         "NORMAL",
	OrientationFlipHorizontal: "FLIP_HORIZONTAL",
	OrientationRotate180:      "ROTATE_180",
	OrientationFlipVertical:   "FLIP_VERTICAL",
	OrientationTranspose:      "TRANSPOSE",
	OrientationRotate90:       "ROTATE_90",
	OrientationTransverse:     "TRANSVERSE",
	OrientationRotate270:      "ROTATE_270",
}

func ExifOrientationName(orientation int) string {
	if name, ok := orientationNames[orientation]; ok {
		return name
	}

	return fmt.Sprintf("UNKNOWN(%d)", orientation)
}

// ExifOrientationHelper converts geometry between the stored (raw) space of
// an image and its display space. Forward transforms flip horizontally first
// and then rotate clockwise; reverse transforms undo them in opposite order.
type ExifOrientationHelper struct {
	orientation int
}

func NewExifOrientationHelper(orientation int) ExifOrientationHelper {
	if _, known := orientationNames[orientation]; !known {
		orientation = OrientationUndefined
	}

	return ExifOrientationHelper{orientation}
}

func (h ExifOrientationHelper) Orientation() int {
	return h.orientation
}

func (h ExifOrientationHelper) RotationDegrees() int {
	switch h.orientation {
	case OrientationRotate90, OrientationTransverse:
		return 90
	case OrientationRotate180, OrientationFlipVertical:
		return 180
	case OrientationRotate270, OrientationTranspose:
		return 270
	}

	return 0
}

func (h ExifOrientationHelper) IsFlipped() bool {
	switch h.orientation {
	case OrientationFlipHorizontal, OrientationFlipVertical, OrientationTranspose, OrientationTransverse:
		return true
	}

	return false
}

// IsIdentity reports whether the orientation leaves pixels untouched.
func (h ExifOrientationHelper) IsIdentity() bool {
	return h.RotationDegrees() == 0 && !h.IsFlipped()
}

func (h ExifOrientationHelper) ApplyToSize(size request.Size, reverse bool) request.Size {
	if h.RotationDegrees()%180 != 0 {
		return request.NewSize(size.Height, size.Width)
	}

	return size
}

// ApplyToRect maps rect, which lives in a space of spaceSize, to the other
// space. With reverse set rect is in display space and the result is in raw
// space.
func (h ExifOrientationHelper) ApplyToRect(rect image.Rectangle, spaceSize request.Size, reverse bool) image.Rectangle {
	degrees := h.RotationDegrees()
	if !reverse {
		if h.IsFlipped() {
			rect = flipRect(rect, spaceSize)
		}
		rect, _ = rotateRect(rect, spaceSize, degrees)
		return rect
	}

	rect, spaceSize = rotateRect(rect, spaceSize, (360-degrees)%360)
	if h.IsFlipped() {
		rect = flipRect(rect, spaceSize)
	}
	return rect
}

// ApplyToScale returns the scale to use on the matching axis of the other
// space. Rotations and flips may reverse the direction of an axis, which
// swaps start and end crops.
func (h ExifOrientationHelper) ApplyToScale(scale request.Scale, horizontal bool, reverse bool) request.Scale {
	if scale != request.StartCrop && scale != request.EndCrop {
		return scale
	}

	const side = 100
	space := request.NewSize(side, side)
	strip := image.Rect(0, 0, side, 10)
	if horizontal {
		strip = image.Rect(0, 0, 10, side)
	}

	mapped := h.ApplyToRect(strip, space, reverse)
	atEnd := mapped.Min.Y > 0
	if mapped.Dx() < mapped.Dy() {
		atEnd = mapped.Min.X > 0
	}

	if !atEnd {
		return scale
	}
	if scale == request.StartCrop {
		return request.EndCrop
	}
	return request.StartCrop
}

func (h ExifOrientationHelper) ApplyToImage(img image.Image, reverse bool) image.Image {
	if h.IsIdentity() {
		return img
	}

	degrees := h.RotationDegrees()
	if !reverse {
		if h.IsFlipped() {
			img = imaging.FlipH(img)
		}
		return rotateClockwise(img, degrees)
	}

	img = rotateClockwise(img, (360-degrees)%360)
	if h.IsFlipped() {
		img = imaging.FlipH(img)
	}
	return img
}

func rotateClockwise(img image.Image, degrees int) image.Image {
	// imaging rotates counter-clockwise.
	switch degrees {
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	}

	return img
}

func flipRect(rect image.Rectangle, space request.Size) image.Rectangle {
	return image.Rect(space.Width-rect.Max.X, rect.Min.Y, space.Width-rect.Min.X, rect.Max.Y)
}

// rotateRect rotates rect clockwise and returns it with the size of the
// rotated space.
func rotateRect(rect image.Rectangle, space request.Size, degrees int) (image.Rectangle, request.Size) {
	w, h := space.Width, space.Height
	l, t, r, b := rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y

	switch degrees {
	case 90:
		return image.Rect(h-b, l, h-t, r), request.NewSize(h, w)
	case 180:
		return image.Rect(w-r, h-b, w-l, h-t), space
	case 270:
		return image.Rect(t, w-r, b, w-l), request.NewSize(h, w)
	}

	return rect, space
}
