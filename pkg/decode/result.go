package decode

import (
	"image"

	"github.com/thebartekbanach/imload/pkg/filefetcher"
	"github.com/thebartekbanach/imload/pkg/request"
)

// Result is a decoded image with its provenance. Results are never modified
// in place, With returns an updated copy.
type Result struct {
	Image       image.Image
	ImageInfo   ImageInfo
	Resize      request.Resize
	DataFrom    filefetcher.DataFrom
	Transformed []string
	Extras      map[string]string
}

type ResultOption func(r *Result)

func (r Result) With(options ...ResultOption) Result {
	copied := r
	copied.Transformed = append([]string(nil), r.Transformed...)
	copied.Extras = make(map[string]string, len(r.Extras))
	for k, v := range r.Extras {
		copied.Extras[k] = v
	}

	for _, option := range options {
		option(&copied)
	}

	return copied
}

func WithImage(img image.Image) ResultOption {
	return func(r *Result) { r.Image = img }
}

func WithDataFrom(dataFrom filefetcher.DataFrom) ResultOption {
	return func(r *Result) { r.DataFrom = dataFrom }
}

func AddTransformed(tags ...string) ResultOption {
	return func(r *Result) { r.Transformed = append(r.Transformed, tags...) }
}

func WithExtra(key, value string) ResultOption {
	return func(r *Result) { r.Extras[key] = value }
}

func ImageSize(img image.Image) request.Size {
	bounds := img.Bounds()
	return request.NewSize(bounds.Dx(), bounds.Dy())
}
