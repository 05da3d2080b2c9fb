package proxy_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/decode/stdbackend"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
	mock_filefetcher "github.com/thebartekbanach/imload/pkg/filefetcher/mocks"
	"github.com/thebartekbanach/imload/pkg/pipeline"
	"github.com/thebartekbanach/imload/pkg/proxy"
	mock_proxy "github.com/thebartekbanach/imload/pkg/proxy/mocks"
	"github.com/thebartekbanach/imload/pkg/request"
	"github.com/thebartekbanach/imload/pkg/transform"
)

type testingProxyServiceDeps struct {
	loader         *mock_proxy.MockImageLoader
	fetcher        *mock_filefetcher.MockFetcher
	responseWriter *mock_proxy.MockProxyResponseWriter
}

type testingProxyServiceCreationConfig struct {
	allowedDomains []string
	allowedOrigins []string
	maxSize        request.Size
}

func createTestingProxyService(t *testing.T, cfg testingProxyServiceCreationConfig) (proxy.ProxyService, *testingProxyServiceDeps) {
	mockCtrl := gomock.NewController(t)
	loader := mock_proxy.NewMockImageLoader(mockCtrl)
	fetcher := mock_filefetcher.NewMockFetcher(mockCtrl)
	responseWriter := mock_proxy.NewMockProxyResponseWriter(mockCtrl)
	logger, _ := test.NewNullLogger()

	if len(cfg.allowedDomains) == 0 {
		cfg.allowedDomains = []string{"*"}
	}

	if len(cfg.allowedOrigins) == 0 {
		cfg.allowedOrigins = []string{"*"}
	}

	config := proxy.ProxyServiceConfig{
		AllowedDomains: cfg.allowedDomains,
		AllowedOrigins: cfg.allowedOrigins,
		MaxSize:        cfg.maxSize,
	}

	proxyService := proxy.NewProxyService(config, loader, fetcher, stdbackend.NewEncoder(stdbackend.DefaultJPEGQuality), logger)
	return proxyService, &testingProxyServiceDeps{loader, fetcher, responseWriter}
}

func decodedImageData() pipeline.ImageData {
	return pipeline.ImageData{
		Image:     image.NewNRGBA(image.Rect(0, 0, 4, 4)),
		ImageInfo: decode.ImageInfo{Width: 8, Height: 8, MimeType: "image/png"},
	}
}

func encodedPNG(t *testing.T) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("Cannot encode test image: %v", err)
	}

	return buf.Bytes()
}

type requestMatcher struct {
	key string
}

func (m requestMatcher) Matches(x interface{}) bool {
	req, ok := x.(request.Request)
	return ok && request.NewContext(req, request.Size{}).MemoryCacheKey() == m.key
}

func (m requestMatcher) String() string {
	return "is request with key " + m.key
}

func requestFor(uri string, options ...request.Option) gomock.Matcher {
	return requestMatcher{request.NewContext(request.New(uri, options...), request.Size{}).MemoryCacheKey()}
}

func TestProxyService_ShouldExecuteRequestAndWriteEncodedImage(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{})

	requestURL := "/?url=http://google.com/image.png&w=100&h=50&precision=exactly&scale=fill&transform=grayscale"
	expectedRequest := requestFor("http://google.com/image.png",
		request.WithSize(100, 50),
		request.WithPrecision(request.Exactly),
		request.WithScale(request.Fill),
		request.WithTransformations(transform.Grayscale{}),
	)

	deps.loader.EXPECT().Execute(gomock.Any(), expectedRequest).Return(decodedImageData(), nil)
	deps.responseWriter.EXPECT().WriteOK("image/png", gomock.Any()).Do(func(mimeType string, reader io.Reader) {
		if _, _, err := image.Decode(reader); err != nil {
			t.Errorf("Expected encoded image, got: %v", err)
		}
	})

	proxy.Handle(context.Background(), requestURL, "github.com", deps.responseWriter)
}

func TestProxyService_ShouldAcceptSizeParameter(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{})

	deps.loader.EXPECT().Execute(gomock.Any(), requestFor("http://google.com/image.png", request.WithSize(30, 20))).Return(decodedImageData(), nil)
	deps.responseWriter.EXPECT().WriteOK(gomock.Any(), gomock.Any())

	proxy.Handle(context.Background(), "/?url=http://google.com/image.png&size=30x20", "", deps.responseWriter)
}

func TestProxyService_Returns400BadRequestOnRequestParsingError(t *testing.T) {
	requests := []string{
		"/?w=100&h=100",
		"/?url=http://google.com/image.png&w=100",
		"/?url=http://google.com/image.png&w=abc&h=10",
		"/?url=http://google.com/image.png&size=10",
		"/?url=http://google.com/image.png&precision=unknown",
		"/?url=http://google.com/image.png&scale=unknown",
		"/?url=http://google.com/image.png&depth=unknown",
		"/?url=http://google.com/image.png&transform=unknown",
		"/?url=http://google.com/image.png&transform=blur:Inf",
		"/?url=http://google.com/image.png&transform=rotate:NaN",
		"/?url=http://google.com/image.png&ignoreExif=maybe",
		"/%zz",
	}

	for _, requestURL := range requests {
		proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{})
		deps.responseWriter.EXPECT().WriteError(400, gomock.Any())

		proxy.Handle(context.Background(), requestURL, "", deps.responseWriter)
	}
}

func TestProxyService_Returns400WhenSizeExceedsMaxSize(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{maxSize: request.NewSize(100, 100)})
	deps.responseWriter.EXPECT().WriteError(400, gomock.Any())

	proxy.Handle(context.Background(), "/?url=http://google.com/image.png&w=200&h=50", "", deps.responseWriter)
}

func TestProxyService_RejectsRequestIfSourceImageDomainIsNotAllowed(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{
		allowedDomains: []string{"github.com"},
	})

	deps.responseWriter.EXPECT().WriteError(403, gomock.Any())

	proxy.Handle(context.Background(), "/?url=http://google.com/image.png", "", deps.responseWriter)
}

func TestProxyService_AllowsRequestIfSourceImageDomainIsAllowedUsingGlobPattern(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{
		allowedDomains: []string{"*.google.com"},
	})

	deps.loader.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(decodedImageData(), nil)
	deps.responseWriter.EXPECT().WriteOK(gomock.Any(), gomock.Any())

	proxy.Handle(context.Background(), "/?url=http://images.google.com/image.png", "", deps.responseWriter)
}

func TestProxyService_RejectsRequestIfRequesterOriginIsNotAllowed(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{
		allowedOrigins: []string{"github.com"},
	})

	deps.responseWriter.EXPECT().WriteError(403, gomock.Any())

	proxy.Handle(context.Background(), "/?url=http://google.com/image.png", "gitlab.com", deps.responseWriter)
}

func TestProxyService_AllowsRequestIfRequesterOriginIsAllowedUsingGlobPattern(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{
		allowedOrigins: []string{"*.github.com"},
	})

	deps.loader.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(decodedImageData(), nil)
	deps.responseWriter.EXPECT().WriteOK(gomock.Any(), gomock.Any())

	proxy.Handle(context.Background(), "/?url=http://google.com/image.png", "pages.github.com", deps.responseWriter)
}

func TestProxyService_HandlesDecodeErrorByReturningOriginalImageAsFallback(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{})
	original := encodedPNG(t)

	deps.loader.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(pipeline.ImageData{}, &decode.DecodeError{URI: "http://google.com/image.png", Err: errors.New("broken")})
	deps.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(filefetcher.FetchResult{
		Source:   filefetcher.NewBytesDataSource(original, filefetcher.DataFromNetwork),
		MimeType: "image/png",
	}, nil)
	deps.responseWriter.EXPECT().WriteErrorWithFallback(500, gomock.Any(), gomock.Any()).Do(func(code int, message string, reader io.ReadCloser) {
		defer reader.Close()
		data, _ := io.ReadAll(reader)
		if !bytes.Equal(data, original) {
			t.Errorf("Expected %s, got %s", original, data)
		}
	})

	proxy.Handle(context.Background(), "/?url=http://google.com/image.png", "", deps.responseWriter)
}

func TestProxyService_RefusesFallbackWhenSourceIsNotAnImage(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{})

	deps.loader.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(pipeline.ImageData{}, decode.ErrImageInvalid)
	deps.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(filefetcher.FetchResult{
		Source: filefetcher.NewBytesDataSource([]byte("TOP-SECRET-DB-PASSWORD"), filefetcher.DataFromLocal),
	}, nil)
	deps.responseWriter.EXPECT().WriteError(500, gomock.Any())
	deps.responseWriter.EXPECT().WriteErrorWithFallback(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	proxy.Handle(context.Background(), "/?url=file:///srv/images/secret.txt", "", deps.responseWriter)
}

func TestProxyService_HandlesDecodeErrorByReturning404IfImageDoesNotExist(t *testing.T) {
	proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{})

	deps.loader.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(pipeline.ImageData{}, decode.ErrImageInvalid)
	deps.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(filefetcher.FetchResult{}, filefetcher.ErrNotFound)
	deps.responseWriter.EXPECT().WriteError(404, gomock.Any())

	proxy.Handle(context.Background(), "/?url=http://google.com/image.png", "", deps.responseWriter)
}

func TestProxyService_MapsLoaderErrorsToStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{filefetcher.ErrNotFound, 404},
		{&request.DepthError{Depth: request.Memory, Stage: "decode"}, 404},
		{pipeline.ErrCanceled, 503},
		{filefetcher.ErrUnsupportedScheme, 400},
		{fmt.Errorf("%w: /etc/passwd", filefetcher.ErrSourceNotAllowed), 403},
		{&decode.DecodeError{URI: "http://google.com/image.png", Err: decode.ErrImageTooLarge}, 413},
		{errors.New("unexpected"), 500},
	}

	for _, c := range cases {
		proxy, deps := createTestingProxyService(t, testingProxyServiceCreationConfig{})
		deps.loader.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(pipeline.ImageData{}, c.err)
		deps.responseWriter.EXPECT().WriteError(c.code, gomock.Any())

		proxy.Handle(context.Background(), "/?url=http://google.com/image.png&depth=memory", "", deps.responseWriter)
	}
}
