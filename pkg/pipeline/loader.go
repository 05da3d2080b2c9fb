package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/logging"
	"github.com/thebartekbanach/imload/pkg/request"
)

type LoaderConfig struct {
	// DefaultSize is used by requests that do not set a size.
	DefaultSize request.Size
}

// ImageLoader executes requests through the request interceptor chain.
type ImageLoader struct {
	config       LoaderConfig
	interceptors []RequestInterceptor
	logger       logrus.FieldLogger
}

func NewImageLoader(config LoaderConfig, logger logrus.FieldLogger, interceptors ...RequestInterceptor) (*ImageLoader, error) {
	sorted, err := sortInterceptors(interceptors)
	if err != nil {
		return nil, err
	}

	return &ImageLoader{
		config:       config,
		interceptors: sorted,
		logger:       logger.WithField("component", "imageLoader"),
	}, nil
}

func (l *ImageLoader) Interceptors() []RequestInterceptor {
	return append([]RequestInterceptor(nil), l.interceptors...)
}

// Execute runs req on the calling goroutine.
func (l *ImageLoader) Execute(ctx context.Context, req request.Request) (ImageData, error) {
	requestContext := request.NewContext(req, l.config.DefaultSize)
	logger := l.logger.WithFields(logging.RequestFields(requestContext))

	data, err := newRequestChain(ctx, requestContext, l.interceptors).Proceed()
	err = asCanceled(ctx, err)

	var depthErr *request.DepthError
	switch {
	case err == nil:
		logger.WithField("dataFrom", data.DataFrom.String()).Debug("request executed")
	case IsCanceled(err):
		logger.Debug("request canceled")
	case errors.As(err, &depthErr):
		logger.WithError(err).Info("request stopped by its depth")
	default:
		logger.WithError(err).Error("request failed")
	}

	return data, err
}

// Enqueue runs req on a new goroutine and passes the outcome to callback
// unless the returned Disposable was disposed first.
func (l *ImageLoader) Enqueue(ctx context.Context, req request.Request, callback func(ImageData, error)) *Disposable {
	ctx, cancel := context.WithCancel(ctx)
	disposable := &Disposable{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(disposable.done)
		defer cancel()

		data, err := l.Execute(ctx, req)
		if callback != nil && !disposable.IsDisposed() {
			callback(data, err)
		}
	}()

	return disposable
}

// Disposable controls an enqueued request.
type Disposable struct {
	cancel   context.CancelFunc
	done     chan struct{}
	disposed atomic.Bool
	once     sync.Once
}

// Dispose cancels the request. Its callback is not called afterwards
// unless it was already running.
func (d *Disposable) Dispose() {
	d.once.Do(func() {
		d.disposed.Store(true)
		d.cancel()
	})
}

func (d *Disposable) IsDisposed() bool {
	return d.disposed.Load()
}

// Wait blocks until the request finished, including its callback.
func (d *Disposable) Wait() {
	<-d.done
}

func (d *Disposable) Done() <-chan struct{} {
	return d.done
}
