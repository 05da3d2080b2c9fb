package decode

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/thebartekbanach/imload/pkg/request"
)

// ApplyResize runs the final resize pass for resize over img and reports
// whether any pixels were changed. LessPixels never resizes, everything it
// needs is done by sampling.
func ApplyResize(img image.Image, resize request.Resize) (image.Image, bool) {
	if resize.IsEmpty() || resize.Precision == request.LessPixels {
		return img, false
	}

	size := ImageSize(img)
	mapping := CalculateResizeMapping(size, resize)
	if mapping.IsIdentity(size) {
		return img, false
	}

	bounds := img.Bounds()
	var out image.Image = img
	if mapping.SrcRect != image.Rect(0, 0, size.Width, size.Height) {
		out = imaging.Crop(img, mapping.SrcRect.Add(bounds.Min))
	}

	dest := mapping.DestRect.Size()
	if current := out.Bounds().Size(); current != dest {
		out = imaging.Resize(out, dest.X, dest.Y, imaging.Lanczos)
	}

	return out, true
}
