package decode

import (
	"context"
	"errors"
	"image"

	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/request"
)

type EngineConfig struct {
	// MaxSize caps the sampled size a backend is asked to produce. Empty
	// means unlimited.
	MaxSize request.Size
}

type Engine struct {
	config EngineConfig
	logger logrus.FieldLogger
}

func NewEngine(config EngineConfig, logger logrus.FieldLogger) *Engine {
	return &Engine{config, logger}
}

// Decode decodes backend for resize: it samples and, when the resize crops,
// decodes only the kept region if the backend can. Then it corrects the EXIF
// orientation unless ignoreExif is set and applies the remaining resize.
func (e *Engine) Decode(ctx context.Context, backend Backend, resize request.Resize, ignoreExif bool) (Result, error) {
	info := backend.ImageInfo()
	if !info.IsValid() {
		return Result{}, ErrImageInvalid
	}

	exif := NewExifOrientationHelper(OrientationUndefined)
	if !ignoreExif {
		exif = NewExifOrientationHelper(backend.ExifOrientation())
	}
	imageSize := exif.ApplyToSize(info.Size(), false)

	var decoded image.Image
	var transformed []string
	var err error

	if e.canDecodeRegion(backend, imageSize, resize) {
		decoded, transformed, err = e.decodeRegion(ctx, backend, exif, imageSize, resize)
		if errors.Is(err, ErrRegionUnsupported) {
			e.logger.WithError(err).WithField("imageInfo", info.String()).Warn("Region decode failed, falling back to full decode")
			decoded, transformed, err = nil, nil, nil
		}
		if err != nil {
			return Result{}, err
		}
	}

	if decoded == nil {
		decoded, transformed, err = e.decodeFull(ctx, backend, imageSize, resize)
		if err != nil {
			return Result{}, err
		}
		if decoded == nil {
			return Result{}, ErrImageInvalid
		}
	}

	if bounds := decoded.Bounds(); bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return Result{}, ErrImageInvalid
	}

	if !exif.IsIdentity() {
		decoded = exif.ApplyToImage(decoded, false)
		transformed = append(transformed, ExifOrientationTransformed(exif.Orientation()))
	}

	if resized, applied := ApplyResize(decoded, resize); applied {
		decoded = resized
		transformed = append(transformed, ResizeTransformed(resize))
	}

	if transformed == nil {
		transformed = []string{}
	}

	return Result{
		Image:       decoded,
		ImageInfo:   info,
		Resize:      resize,
		Transformed: transformed,
		Extras:      map[string]string{},
	}, nil
}

func (e *Engine) canDecodeRegion(backend Backend, imageSize request.Size, resize request.Resize) bool {
	return resize.Precision != request.LessPixels && resize.ShouldClip(imageSize) && backend.SupportsRegion()
}

func (e *Engine) decodeRegion(
	ctx context.Context,
	backend Backend,
	exif ExifOrientationHelper,
	imageSize request.Size,
	resize request.Resize,
) (image.Image, []string, error) {
	mapping := CalculateResizeMapping(imageSize, resize)
	srcSize := request.NewSize(mapping.SrcRect.Dx(), mapping.SrcRect.Dy())
	sampleSize := CalculateSampleSize(srcSize, resize.Size, true, e.config.MaxSize)

	rawRect := exif.ApplyToRect(mapping.SrcRect, imageSize, true)
	decoded, err := backend.DecodeRegion(ctx, rawRect, sampleSize)
	if err != nil {
		return nil, nil, err
	}

	transformed := []string{}
	if sampleSize > 1 {
		transformed = append(transformed, InSampledTransformed(sampleSize))
	}
	transformed = append(transformed, SubsamplingTransformed(rawRect))

	return decoded, transformed, nil
}

func (e *Engine) decodeFull(ctx context.Context, backend Backend, imageSize request.Size, resize request.Resize) (image.Image, []string, error) {
	sampleSize := CalculateSampleSize(imageSize, resize.Size, resize.Precision != request.LessPixels, e.config.MaxSize)
	decoded, err := backend.Decode(ctx, sampleSize)
	if err != nil {
		return nil, nil, err
	}

	transformed := []string{}
	if sampleSize > 1 {
		transformed = append(transformed, InSampledTransformed(sampleSize))
	}

	return decoded, transformed, nil
}
