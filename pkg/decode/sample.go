package decode

import (
	"github.com/thebartekbanach/imload/pkg/request"
)

// CalculateSampleSize returns the power of two sample size used to decode an
// image of imageSize for targetSize. It keeps doubling while the next sample
// size would still cover the target, so the sampled image never undershoots
// it. In smallerSizeMode both sides must cover the target, otherwise only the
// pixel count must. A non-empty maxSize additionally forces the sampled size
// to fit into it.
func CalculateSampleSize(imageSize, targetSize request.Size, smallerSizeMode bool, maxSize request.Size) int {
	if imageSize.IsEmpty() {
		return 1
	}

	sampleSize := 1
	for {
		current := SampledSize(imageSize, sampleSize)
		next := SampledSize(imageSize, sampleSize*2)

		fits := maxSize.IsEmpty() || (current.Width <= maxSize.Width && current.Height <= maxSize.Height)
		if fits && (targetSize.IsEmpty() || undershoots(next, targetSize, smallerSizeMode)) {
			return sampleSize
		}

		if next == current {
			return sampleSize
		}

		sampleSize *= 2
	}
}

// SampledSize is the size an image of size has after decoding with
// sampleSize, rounding partial pixels up.
func SampledSize(size request.Size, sampleSize int) request.Size {
	if sampleSize <= 1 {
		return size
	}

	return request.NewSize(ceilDiv(size.Width, sampleSize), ceilDiv(size.Height, sampleSize))
}

func undershoots(sampled, target request.Size, smallerSizeMode bool) bool {
	if smallerSizeMode {
		return sampled.Width < target.Width || sampled.Height < target.Height
	}

	return sampled.Area() < target.Area()
}

func ceilDiv(value, divisor int) int {
	return (value + divisor - 1) / divisor
}
