package stdbackend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
)

var regionFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
	"bmp":  true,
	"tiff": true,
}

// DefaultMaxPixels allows sources up to 8000x8000.
const DefaultMaxPixels = 64_000_000

// BackendFactory refuses sources whose header declares more than maxPixels
// pixels, since Decode always allocates the full raster.
type BackendFactory struct {
	maxPixels int64
}

var _ decode.BackendFactory = (*BackendFactory)(nil)

func NewBackendFactory(maxPixels int64) *BackendFactory {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	return &BackendFactory{maxPixels: maxPixels}
}

// NewBackend reads the whole source and inspects its header. Pixels are
// decoded lazily by Decode and DecodeRegion.
func (f *BackendFactory) NewBackend(ctx context.Context, source filefetcher.DataSource) (decode.Backend, error) {
	reader, err := source.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}

	if pixels := int64(config.Width) * int64(config.Height); pixels > f.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", decode.ErrImageTooLarge, config.Width, config.Height, f.maxPixels)
	}

	return &backend{
		data:   data,
		format: format,
		info: decode.ImageInfo{
			Width:    config.Width,
			Height:   config.Height,
			MimeType: "image/" + format,
		},
		orientation: readOrientation(data),
	}, nil
}

type backend struct {
	data        []byte
	format      string
	info        decode.ImageInfo
	orientation int
}

func (b *backend) ImageInfo() decode.ImageInfo {
	return b.info
}

func (b *backend) ExifOrientation() int {
	return b.orientation
}

func (b *backend) SupportsRegion() bool {
	return regionFormats[b.format]
}

func (b *backend) Decode(ctx context.Context, sampleSize int) (image.Image, error) {
	img, err := b.decode(ctx)
	if err != nil {
		return nil, err
	}

	return sample(img, sampleSize), nil
}

func (b *backend) DecodeRegion(ctx context.Context, rect image.Rectangle, sampleSize int) (image.Image, error) {
	if !b.SupportsRegion() {
		return nil, fmt.Errorf("%w: %s", decode.ErrRegionUnsupported, b.format)
	}

	full := image.Rect(0, 0, b.info.Width, b.info.Height)
	if rect.Empty() || !rect.In(full) {
		return nil, fmt.Errorf("%w: %v is outside of %v", decode.ErrRegionUnsupported, rect, full)
	}

	img, err := b.decode(ctx)
	if err != nil {
		return nil, err
	}

	region := imaging.Crop(img, rect.Add(img.Bounds().Min))
	return sample(region, sampleSize), nil
}

func (b *backend) Close() error {
	b.data = nil
	return nil
}

func (b *backend) decode(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.data == nil {
		return nil, ErrBackendClosed
	}

	img, _, err := image.Decode(bytes.NewReader(b.data))
	if err != nil {
		return nil, err
	}

	return img, nil
}

func sample(img image.Image, sampleSize int) image.Image {
	if sampleSize <= 1 {
		return img
	}

	bounds := img.Bounds()
	size := decode.SampledSize(decode.ImageSize(img), sampleSize)
	if size.Width == bounds.Dx() && size.Height == bounds.Dy() {
		return img
	}

	return imaging.Resize(img, size.Width, size.Height, imaging.Box)
}

func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return decode.OrientationUndefined
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return decode.OrientationUndefined
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return decode.OrientationUndefined
	}

	return orientation
}

var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrBackendClosed = errors.New("backend is closed")
)
