package decode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/thebartekbanach/imload/pkg/filefetcher"
)

type (
	// Backend decodes one image source. A backend is used by a single
	// goroutine at a time and must be closed after use.
	Backend interface {
		ImageInfo() ImageInfo
		ExifOrientation() int
		SupportsRegion() bool
		Decode(ctx context.Context, sampleSize int) (image.Image, error)
		DecodeRegion(ctx context.Context, rect image.Rectangle, sampleSize int) (image.Image, error)
		Close() error
	}

	BackendFactory interface {
		NewBackend(ctx context.Context, source filefetcher.DataSource) (Backend, error)
	}

	Encoder interface {
		// Encode writes img in the format closest to mimeType and returns
		// the mime type actually written.
		Encode(w io.Writer, img image.Image, mimeType string) (string, error)
	}
)

type DecodeError struct {
	URI string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %v", e.URI, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	ErrImageInvalid      = errors.New("decoded image has zero dimension")
	ErrRegionUnsupported = errors.New("region decode is not supported")
	ErrImageTooLarge     = errors.New("image has too many pixels")
)
