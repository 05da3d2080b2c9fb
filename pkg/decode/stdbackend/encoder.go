package stdbackend

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/thebartekbanach/imload/pkg/decode"
)

const DefaultJPEGQuality = 90

type Encoder struct {
	jpegQuality int
}

var _ decode.Encoder = (*Encoder)(nil)

func NewEncoder(jpegQuality int) *Encoder {
	if jpegQuality <= 0 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}

	return &Encoder{jpegQuality}
}

// Encode keeps the source format where an encoder exists for it and falls
// back to PNG otherwise.
func (e *Encoder) Encode(w io.Writer, img image.Image, mimeType string) (string, error) {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return "image/jpeg", jpeg.Encode(w, img, &jpeg.Options{Quality: e.jpegQuality})
	case "image/bmp":
		return "image/bmp", bmp.Encode(w, img)
	case "image/tiff":
		return "image/tiff", tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "image/gif":
		return "image/gif", imaging.Encode(w, img, imaging.GIF)
	}

	return "image/png", png.Encode(w, img)
}
