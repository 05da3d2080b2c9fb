package pipeline

import (
	"image"

	"github.com/thebartekbanach/imload/pkg/cache"
	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
	"github.com/thebartekbanach/imload/pkg/request"
)

// ImageData is the result of one request execution.
type ImageData struct {
	Image       image.Image
	ImageInfo   decode.ImageInfo
	Resize      request.Resize
	DataFrom    filefetcher.DataFrom
	Transformed []string
	Extras      map[string]string
}

func NewImageData(result decode.Result) ImageData {
	copied := result.With()
	return ImageData{
		Image:       copied.Image,
		ImageInfo:   copied.ImageInfo,
		Resize:      copied.Resize,
		DataFrom:    copied.DataFrom,
		Transformed: copied.Transformed,
		Extras:      copied.Extras,
	}
}

func (d ImageData) Metadata() cache.Metadata {
	return cache.NewMetadata(decode.Result{
		ImageInfo:   d.ImageInfo,
		Resize:      d.Resize,
		Transformed: d.Transformed,
		Extras:      d.Extras,
	})
}

func newImageDataFromValue(value *cache.ImageValue) ImageData {
	metadata := value.Metadata()
	return NewImageData(decode.Result{
		Image:       value.Image(),
		ImageInfo:   metadata.ImageInfo,
		Resize:      metadata.Resize,
		DataFrom:    filefetcher.DataFromMemoryCache,
		Transformed: metadata.Transformed,
		Extras:      metadata.Extras,
	})
}
