package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
	"github.com/thebartekbanach/imload/pkg/config"
	testutils "github.com/thebartekbanach/imload/test/utils"
)

const testToken = "secret"

type testServer struct {
	handler http.Handler
	source  *testutils.TestHttpServer
	image   string
}

func newTestPNG(t *testing.T) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 4), uint8(y * 4), 200, 255})
		}
	}

	var buff bytes.Buffer
	if err := png.Encode(&buff, img); err != nil {
		t.Fatalf("cannot encode test image: %v", err)
	}

	return buff.Bytes()
}

// truncatedTestPNG keeps the png header intact but cuts the pixel data.
func truncatedTestPNG(t *testing.T) []byte {
	data := newTestPNG(t)
	return data[:len(data)/2]
}

func withLocalRoot(root string) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.LocalRoot = root
	}
}

func writeLocalFile(t *testing.T, dir, name string, data []byte) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("cannot write %s: %v", path, err)
	}

	return path
}

func fileRequest(path string) string {
	return "/?url=" + url.QueryEscape("file://"+filepath.ToSlash(path))
}

func startTestServer(t *testing.T, options ...func(*config.Config)) *testServer {
	source := testutils.NewTestHttpServer()
	source.ServeImage("/image.png", "image/png", newTestPNG(t))
	source.ServeImage("/truncated.png", "image/png", truncatedTestPNG(t))
	source.Start(t)

	cfg := &config.Config{
		MemoryCacheMaxSize:  64 * config.MB,
		DiskCacheDirectory:  t.TempDir(),
		DiskCacheMaxSize:    64 * config.MB,
		DiskCacheAppVersion: 1,
		Workers:             2,
		MaxWidth:            4096,
		MaxHeight:           4096,
		JPEGQuality:         90,
		AllowedDomains:      []string{"*"},
		AllowedOrigins:      []string{"*"},
		FetchTimeout:        5 * time.Second,
		MaxSourcePixels:     4096 * 4096,
		InvalidationToken:   testToken,
	}

	for _, option := range options {
		option(cfg)
	}

	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	srv, cleanup, err := InitializeServer(ctx, cfg, logger)
	if err != nil {
		cancel()
		t.Fatalf("cannot initialize server: %v", err)
	}

	t.Cleanup(func() {
		cancel()
		cleanup()
	})

	return &testServer{srv.routes(ctx), source, source.URL("/image.png")}
}

func (s *testServer) do(method, target string, authorized bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, nil)
	if authorized {
		r.Header.Set("Authorization", "Bearer "+testToken)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func (s *testServer) imagePath() string {
	return "/?url=" + url.QueryEscape(s.image) + "&w=16&h=16&transform=grayscale"
}

func assertImageResponse(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if contentType := w.Header().Get("Content-Type"); contentType != "image/png" {
		t.Errorf("Expected image/png, got %s", contentType)
	}

	img, _, err := image.Decode(w.Body)
	if err != nil {
		t.Fatalf("Expected image body, got: %v", err)
	}

	if bounds := img.Bounds(); bounds.Dx() != 16 || bounds.Dy() != 16 {
		t.Errorf("Expected 16x16 image, got %v", bounds)
	}
}

func TestServer_ShouldServeProcessedImageAndCacheIt(t *testing.T) {
	s := startTestServer(t)

	assertImageResponse(t, s.do(http.MethodGet, s.imagePath(), false))
	assertImageResponse(t, s.do(http.MethodGet, s.imagePath(), false))

	if requests := s.source.Requests("/image.png"); requests != 1 {
		t.Errorf("Expected source to be fetched once, got %d", requests)
	}
}

func TestServer_ShouldServeFromResultCacheAfterMemoryCacheIsTrimmed(t *testing.T) {
	s := startTestServer(t)

	assertImageResponse(t, s.do(http.MethodGet, s.imagePath(), false))

	if w := s.do(http.MethodPost, "/cache/trim?memory=0", true); w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	assertImageResponse(t, s.do(http.MethodGet, s.imagePath(), false))

	if requests := s.source.Requests("/image.png"); requests != 1 {
		t.Errorf("Expected source to be fetched once, got %d", requests)
	}
}

func TestServer_ShouldRefetchAfterCacheClear(t *testing.T) {
	s := startTestServer(t)

	assertImageResponse(t, s.do(http.MethodGet, s.imagePath(), false))

	if w := s.do(http.MethodDelete, "/cache", true); w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	assertImageResponse(t, s.do(http.MethodGet, s.imagePath(), false))

	if requests := s.source.Requests("/image.png"); requests != 2 {
		t.Errorf("Expected source to be fetched twice, got %d", requests)
	}
}

func TestServer_ShouldInvalidateAllVariantsOfSource(t *testing.T) {
	s := startTestServer(t)

	assertImageResponse(t, s.do(http.MethodGet, s.imagePath(), false))

	query := url.Values{
		"projectName":      {"project"},
		"latestCommitHash": {"abcdef"},
		"urls":             {s.image},
	}
	w := s.do(http.MethodDelete, "/invalidate?"+query.Encode(), true)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var invalidation cacherepositories.InvalidationModel
	if err := json.Unmarshal(w.Body.Bytes(), &invalidation); err != nil {
		t.Fatalf("Expected invalidation json, got: %v", err)
	}

	if len(invalidation.InvalidatedImages) == 0 {
		t.Errorf("Expected invalidated images, got none")
	}

	latest := s.do(http.MethodGet, "/invalidations?projectName=project", true)
	if latest.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", latest.Code)
	}

	assertImageResponse(t, s.do(http.MethodGet, s.imagePath(), false))

	if requests := s.source.Requests("/image.png"); requests != 2 {
		t.Errorf("Expected source to be fetched again after invalidation, got %d", requests)
	}
}

func TestServer_ShouldRejectAdminRequestsWithoutToken(t *testing.T) {
	s := startTestServer(t)

	for _, r := range []struct{ method, target string }{
		{http.MethodDelete, "/cache"},
		{http.MethodPost, "/cache/trim?memory=0"},
		{http.MethodDelete, "/invalidate?projectName=p&latestCommitHash=a&urls=b"},
		{http.MethodGet, "/invalidations?projectName=p"},
	} {
		if w := s.do(r.method, r.target, false); w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401 for %s %s, got %d", r.method, r.target, w.Code)
		}
	}
}

func TestServer_ShouldValidateAdminRequests(t *testing.T) {
	s := startTestServer(t)

	if w := s.do(http.MethodPost, "/cache/trim?memory=abc", true); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	if w := s.do(http.MethodGet, "/cache", true); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}

	if w := s.do(http.MethodDelete, "/invalidate?projectName=p", true); w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestServer_ShouldReturn404ForMissingSource(t *testing.T) {
	s := startTestServer(t)

	w := s.do(http.MethodGet, "/?url="+url.QueryEscape(s.source.URL("/missing.png")), false)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestServer_ShouldServeFallbackWithErrorStatusForUndecodableImage(t *testing.T) {
	s := startTestServer(t)
	truncated := truncatedTestPNG(t)

	w := s.do(http.MethodGet, "/?url="+url.QueryEscape(s.source.URL("/truncated.png")), false)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if w.Header().Get("X-Imload-Error") == "" {
		t.Errorf("Expected X-Imload-Error header to be set")
	}
	if !bytes.Equal(w.Body.Bytes(), truncated) {
		t.Errorf("Expected original source bytes in the body")
	}
}

func TestServer_ShouldNotServeLocalFilesWithoutLocalRoot(t *testing.T) {
	s := startTestServer(t)
	secret := writeLocalFile(t, t.TempDir(), "secret.txt", []byte("TOP-SECRET-DB-PASSWORD"))

	w := s.do(http.MethodGet, fileRequest(secret), false)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "TOP-SECRET") {
		t.Errorf("Expected file content not to be served, got %s", w.Body.String())
	}
}

func TestServer_ShouldNotServeLocalFilesOutsideOfLocalRoot(t *testing.T) {
	s := startTestServer(t, withLocalRoot(t.TempDir()))
	secret := writeLocalFile(t, t.TempDir(), "secret.txt", []byte("TOP-SECRET-DB-PASSWORD"))

	w := s.do(http.MethodGet, fileRequest(secret), false)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "TOP-SECRET") {
		t.Errorf("Expected file content not to be served, got %s", w.Body.String())
	}
}

func TestServer_ShouldNotEchoLocalFilesThatAreNotImages(t *testing.T) {
	root := t.TempDir()
	s := startTestServer(t, withLocalRoot(root))
	secret := writeLocalFile(t, root, "secret.txt", []byte("TOP-SECRET-DB-PASSWORD"))

	w := s.do(http.MethodGet, fileRequest(secret), false)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "TOP-SECRET") {
		t.Errorf("Expected file content not to be served, got %s", w.Body.String())
	}
}

func TestServer_ShouldServeLocalImagesInsideLocalRoot(t *testing.T) {
	root := t.TempDir()
	s := startTestServer(t, withLocalRoot(root))
	path := writeLocalFile(t, root, "image.png", newTestPNG(t))

	w := s.do(http.MethodGet, fileRequest(path)+"&w=16&h=16&transform=grayscale", false)

	assertImageResponse(t, w)
}

func TestServer_ShouldRejectNonFiniteTransformationArguments(t *testing.T) {
	s := startTestServer(t)

	for _, transformation := range []string{"blur:Inf", "rotate:NaN", "sharpen:1e308"} {
		w := s.do(http.MethodGet, "/?url="+url.QueryEscape(s.image)+"&transform="+transformation, false)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %s, got %d", transformation, w.Code)
		}
	}
}

func TestServer_ShouldRefuseSourcesAboveThePixelBudget(t *testing.T) {
	s := startTestServer(t, func(cfg *config.Config) { cfg.MaxSourcePixels = 32 * 32 })

	w := s.do(http.MethodGet, s.imagePath(), false)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413, got %d", w.Code)
	}
}
