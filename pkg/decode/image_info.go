package decode

import (
	"fmt"

	"github.com/thebartekbanach/imload/pkg/request"
)

// ImageInfo describes the source image as reported by a backend before any
// pixels are decoded.
type ImageInfo struct {
	Width    int
	Height   int
	MimeType string
}

func (i ImageInfo) Size() request.Size {
	return request.NewSize(i.Width, i.Height)
}

func (i ImageInfo) IsValid() bool {
	return i.Width > 0 && i.Height > 0
}

func (i ImageInfo) String() string {
	return fmt.Sprintf("ImageInfo(%dx%d,%s)", i.Width, i.Height, i.MimeType)
}
