package pipeline

import (
	"context"
	"errors"

	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
	"github.com/thebartekbanach/imload/pkg/request"
)

const EngineInterceptorWeight = 100

// EngineRequestInterceptor is the last request interceptor. It runs the
// decode chain inside a worker pool slot.
type EngineRequestInterceptor struct {
	pool         *WorkerPool
	interceptors []DecodeInterceptor
}

var _ RequestInterceptor = (*EngineRequestInterceptor)(nil)

func NewEngineRequestInterceptor(pool *WorkerPool, interceptors ...DecodeInterceptor) (*EngineRequestInterceptor, error) {
	sorted, err := sortInterceptors(interceptors)
	if err != nil {
		return nil, err
	}

	return &EngineRequestInterceptor{pool: pool, interceptors: sorted}, nil
}

func (i *EngineRequestInterceptor) Key() string     { return "EngineRequestInterceptor" }
func (i *EngineRequestInterceptor) SortWeight() int { return EngineInterceptorWeight }

func (i *EngineRequestInterceptor) DecodeInterceptors() []DecodeInterceptor {
	return append([]DecodeInterceptor(nil), i.interceptors...)
}

func (i *EngineRequestInterceptor) Intercept(chain RequestChain) (ImageData, error) {
	req := chain.Request()
	if req.Depth() == request.Memory {
		return ImageData{}, &request.DepthError{Depth: req.Depth(), Stage: "decode"}
	}

	var result decode.Result
	err := i.pool.Run(chain.Context(), func(ctx context.Context) error {
		var err error
		result, err = newDecodeChain(ctx, chain.RequestContext(), i.interceptors).Proceed()
		return err
	})
	if err != nil {
		return ImageData{}, asCanceled(chain.Context(), err)
	}

	return NewImageData(result), nil
}

// EngineDecodeInterceptor is the last decode interceptor: it fetches the
// source and decodes it with the engine.
type EngineDecodeInterceptor struct {
	fetcher        filefetcher.Fetcher
	backendFactory decode.BackendFactory
	engine         *decode.Engine
}

var _ DecodeInterceptor = (*EngineDecodeInterceptor)(nil)

func NewEngineDecodeInterceptor(fetcher filefetcher.Fetcher, backendFactory decode.BackendFactory, engine *decode.Engine) *EngineDecodeInterceptor {
	return &EngineDecodeInterceptor{fetcher, backendFactory, engine}
}

func (i *EngineDecodeInterceptor) Key() string     { return "EngineDecodeInterceptor" }
func (i *EngineDecodeInterceptor) SortWeight() int { return EngineInterceptorWeight }

func (i *EngineDecodeInterceptor) Intercept(chain DecodeChain) (decode.Result, error) {
	ctx := chain.Context()
	requestContext := chain.RequestContext()
	req := requestContext.Request()

	fetched, err := i.fetcher.Fetch(ctx, req)
	if err != nil {
		return decode.Result{}, asCanceled(ctx, err)
	}

	backend, err := i.backendFactory.NewBackend(ctx, fetched.Source)
	if err != nil {
		return decode.Result{}, wrapDecodeError(ctx, req.URI(), err)
	}
	defer backend.Close()

	result, err := i.engine.Decode(ctx, backend, requestContext.Resize(), req.IgnoreExifOrientation())
	if err != nil {
		return decode.Result{}, wrapDecodeError(ctx, req.URI(), err)
	}

	return result.With(decode.WithDataFrom(fetched.Source.DataFrom())), nil
}

func wrapDecodeError(ctx context.Context, uri string, err error) error {
	if err = asCanceled(ctx, err); IsCanceled(err) || errors.Is(err, decode.ErrImageInvalid) {
		return err
	}

	var decodeErr *decode.DecodeError
	if errors.As(err, &decodeErr) {
		return err
	}

	return &decode.DecodeError{URI: uri, Err: err}
}
