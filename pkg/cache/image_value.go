package cache

import (
	"image"
)

// ImageValue is the memory cache value of a decoded image. Decoded images
// are owned by the garbage collector and never recycled, so a value only
// turns invalid when it holds no pixels.
type ImageValue struct {
	image    image.Image
	metadata Metadata
	size     int64
}

var _ Value = (*ImageValue)(nil)

func NewImageValue(img image.Image, metadata Metadata) *ImageValue {
	return &ImageValue{
		image:    img,
		metadata: metadata,
		size:     imageByteSize(img),
	}
}

func (v *ImageValue) Image() image.Image { return v.image }
func (v *ImageValue) Metadata() Metadata { return v.metadata }
func (v *ImageValue) Size() int64        { return v.size }

func (v *ImageValue) IsValid() bool {
	return v.image != nil && !v.image.Bounds().Empty()
}

func imageByteSize(img image.Image) int64 {
	if img == nil {
		return 0
	}

	bounds := img.Bounds()
	return int64(bounds.Dx()) * int64(bounds.Dy()) * int64(bytesPerPixel(img))
}

func bytesPerPixel(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Alpha, *image.Paletted:
		return 1
	case *image.Gray16, *image.Alpha16:
		return 2
	case *image.RGBA64, *image.NRGBA64:
		return 8
	case *image.YCbCr:
		return 3
	}

	return 4
}
