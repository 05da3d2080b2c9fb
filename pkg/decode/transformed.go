package decode

import (
	"fmt"
	"image"
	"strings"

	"github.com/thebartekbanach/imload/pkg/request"
)

func InSampledTransformed(sampleSize int) string {
	return fmt.Sprintf("InSampledTransformed(%d)", sampleSize)
}

func SubsamplingTransformed(rect image.Rectangle) string {
	return fmt.Sprintf("SubsamplingTransformed(%d,%d,%d,%d)", rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y)
}

func ExifOrientationTransformed(orientation int) string {
	return fmt.Sprintf("ExifOrientationTransformed(%s)", ExifOrientationName(orientation))
}

func ResizeTransformed(resize request.Resize) string {
	return fmt.Sprintf("ResizeTransformed(%s)", resize.Key())
}

func TransformationTransformed(key string) string {
	return fmt.Sprintf("TransformationTransformed(%s)", key)
}

// FindTransformed returns the first tag created by the given builder name,
// for example "InSampledTransformed".
func FindTransformed(transformed []string, name string) (string, bool) {
	prefix := name + "("
	for _, tag := range transformed {
		if strings.HasPrefix(tag, prefix) {
			return tag, true
		}
	}

	return "", false
}
