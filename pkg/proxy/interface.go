package proxy

import (
	"context"
	"io"

	"github.com/thebartekbanach/imload/pkg/pipeline"
	"github.com/thebartekbanach/imload/pkg/request"
)

type ProxyResponseWriter interface {
	WriteOK(mimeType string, reader io.Reader)
	WriteError(code int, message string)
	WriteErrorWithFallback(code int, message string, fallbackImageReader io.ReadCloser)
}

type ImageLoader interface {
	Execute(ctx context.Context, req request.Request) (pipeline.ImageData, error)
}

type ProxyService interface {
	Handle(ctx context.Context, requestPath, callerOrigin string, responseWriter ProxyResponseWriter)
}
