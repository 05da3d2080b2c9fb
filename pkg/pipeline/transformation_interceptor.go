package pipeline

import (
	"fmt"

	"github.com/thebartekbanach/imload/pkg/decode"
)

const TransformationInterceptorWeight = 90

// TransformationDecodeInterceptor applies the request transformations in
// order to the decoded image.
type TransformationDecodeInterceptor struct{}

var _ DecodeInterceptor = (*TransformationDecodeInterceptor)(nil)

func NewTransformationDecodeInterceptor() *TransformationDecodeInterceptor {
	return &TransformationDecodeInterceptor{}
}

func (i *TransformationDecodeInterceptor) Key() string     { return "TransformationDecodeInterceptor" }
func (i *TransformationDecodeInterceptor) SortWeight() int { return TransformationInterceptorWeight }

func (i *TransformationDecodeInterceptor) Intercept(chain DecodeChain) (decode.Result, error) {
	result, err := chain.Proceed()
	if err != nil {
		return result, err
	}

	ctx := chain.Context()
	for _, transformation := range chain.Request().Transformations() {
		if err := ctx.Err(); err != nil {
			return decode.Result{}, asCanceled(ctx, err)
		}

		transformed, err := transformation.Transform(ctx, result.Image)
		if err != nil {
			return decode.Result{}, fmt.Errorf("transformation %s failed: %w", transformation.Key(), asCanceled(ctx, err))
		}

		result = result.With(
			decode.WithImage(transformed),
			decode.AddTransformed(decode.TransformationTransformed(transformation.Key())),
		)
	}

	return result, nil
}
