package proxy

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"

	"github.com/ryanuber/go-glob"
	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
	"github.com/thebartekbanach/imload/pkg/pipeline"
	"github.com/thebartekbanach/imload/pkg/request"
)

type ProxyServiceConfig struct {
	AllowedDomains []string
	AllowedOrigins []string
	MaxSize        request.Size
}

type proxyService struct {
	config  ProxyServiceConfig
	loader  ImageLoader
	fetcher filefetcher.Fetcher
	encoder decode.Encoder
	logger  logrus.FieldLogger
}

var _ ProxyService = (*proxyService)(nil)

func NewProxyService(config ProxyServiceConfig, loader ImageLoader, fetcher filefetcher.Fetcher, encoder decode.Encoder, logger logrus.FieldLogger) ProxyService {
	return &proxyService{
		config:  config,
		loader:  loader,
		fetcher: fetcher,
		encoder: encoder,
		logger:  logger.WithField("component", "proxyService"),
	}
}

func (p *proxyService) Handle(ctx context.Context, rawRequestPath, callerOrigin string, responseWriter ProxyResponseWriter) {
	if !p.isAllowedOrigin(callerOrigin) {
		responseWriter.WriteError(403, "request origin not allowed")
		return
	}

	req, err := parseRequest(rawRequestPath, p.config.MaxSize)
	if err != nil {
		responseWriter.WriteError(400, err.Error())
		return
	}

	if !p.isAllowedImageSourceDomain(req.URI()) {
		responseWriter.WriteError(403, "source image domain not allowed")
		return
	}

	data, err := p.loader.Execute(ctx, req)
	if err != nil {
		p.writeLoadError(ctx, req, err, responseWriter)
		return
	}

	var output bytes.Buffer
	mimeType, err := p.encoder.Encode(&output, data.Image, data.ImageInfo.MimeType)
	if err != nil {
		p.logger.WithError(err).WithField("uri", req.URI()).Error("cannot encode image")
		responseWriter.WriteError(500, "image encoding error")
		return
	}

	responseWriter.WriteOK(mimeType, &output)
}

func (p *proxyService) writeLoadError(ctx context.Context, req request.Request, err error, responseWriter ProxyResponseWriter) {
	var depthErr *request.DepthError
	var decodeErr *decode.DecodeError

	switch {
	case errors.Is(err, filefetcher.ErrNotFound):
		responseWriter.WriteError(404, "image not found")
	case errors.As(err, &depthErr):
		responseWriter.WriteError(404, depthErr.Error())
	case pipeline.IsCanceled(err):
		responseWriter.WriteError(503, "request canceled")
	case errors.Is(err, filefetcher.ErrUnsupportedScheme):
		responseWriter.WriteError(400, "unsupported source uri scheme")
	case errors.Is(err, filefetcher.ErrSourceNotAllowed):
		responseWriter.WriteError(403, "source image not allowed")
	case errors.Is(err, decode.ErrImageTooLarge):
		responseWriter.WriteError(413, "source image too large")
	case errors.As(err, &decodeErr), errors.Is(err, decode.ErrImageInvalid):
		p.writeFallback(ctx, req, responseWriter)
	default:
		responseWriter.WriteError(500, "image loading error")
	}
}

// writeFallback answers with the untouched source when it cannot be decoded.
// Sources that are not recognised as images are never echoed back.
func (p *proxyService) writeFallback(ctx context.Context, req request.Request, responseWriter ProxyResponseWriter) {
	fetched, err := p.fetcher.Fetch(ctx, req)
	if err != nil {
		responseWriter.WriteError(404, "image not found")
		return
	}

	if !isImageSource(fetched.Source) {
		p.logger.WithField("uri", req.URI()).Warn("source is not an image, fallback refused")
		responseWriter.WriteError(500, "image decoding error")
		return
	}

	reader, err := fetched.Source.Open()
	if err != nil {
		responseWriter.WriteError(500, "image decoding error")
		return
	}

	responseWriter.WriteErrorWithFallback(500, "image decoding error", reader)
}

func isImageSource(source filefetcher.DataSource) bool {
	reader, err := source.Open()
	if err != nil {
		return false
	}
	defer reader.Close()

	_, _, err = image.DecodeConfig(reader)
	return err == nil
}

func (p *proxyService) isAllowedOrigin(origin string) bool {
	if len(p.config.AllowedOrigins) == 0 {
		return true
	}

	for _, allowedOrigin := range p.config.AllowedOrigins {
		if glob.Glob(allowedOrigin, origin) {
			return true
		}
	}

	return false
}

func (p *proxyService) isAllowedImageSourceDomain(sourceImageURL string) bool {
	if len(p.config.AllowedDomains) == 0 {
		return true
	}

	url, err := url.Parse(sourceImageURL)
	if err != nil {
		return false
	}

	sourceImageDomain := url.Hostname()
	for _, allowedDomain := range p.config.AllowedDomains {
		if glob.Glob(allowedDomain, sourceImageDomain) {
			return true
		}
	}

	return false
}

var (
	ErrMalformedRequest = errors.New("malformed request")
	ErrSizeNotAllowed   = errors.New("requested size not allowed")
)
