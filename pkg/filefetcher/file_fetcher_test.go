package filefetcher

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/thebartekbanach/imload/pkg/request"
)

func writeTempFile(t *testing.T, dir, name string, data []byte) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Cannot write test file: %v", err)
	}

	return path
}

func newTestFileFetcher(t *testing.T, root string) *FileFetcher {
	fetcher, err := NewFileFetcher(root)
	if err != nil {
		t.Fatalf("Cannot create file fetcher: %v", err)
	}

	return fetcher
}

func TestFileFetcher_ShouldReturnLocalSourceForAbsolutePath(t *testing.T) {
	root := t.TempDir()
	testData := []byte{0x1, 0x2, 0x3}
	path := writeTempFile(t, root, "image.png", testData)

	result, err := newTestFileFetcher(t, root).Fetch(context.Background(), request.New(path))

	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if result.Source.DataFrom() != DataFromLocal {
		t.Errorf("Expected %v, got %v", DataFromLocal, result.Source.DataFrom())
	}
	if result.MimeType != "image/png" {
		t.Errorf("Expected image/png, got %v", result.MimeType)
	}
	if data := readAll(t, result.Source); !bytes.Equal(data, testData) {
		t.Errorf("Expected %v, got %v", testData, data)
	}
}

func TestFileFetcher_ShouldAcceptFileScheme(t *testing.T) {
	root := t.TempDir()
	path := writeTempFile(t, root, "image.jpg", []byte{0x1})

	_, err := newTestFileFetcher(t, root).Fetch(context.Background(), request.New("file://"+filepath.ToSlash(path)))

	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestFileFetcher_ShouldReturnNotFoundForMissingFile(t *testing.T) {
	root := t.TempDir()

	_, err := newTestFileFetcher(t, root).Fetch(context.Background(), request.New(filepath.Join(root, "missing.png")))

	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected %v, got %v", ErrNotFound, err)
	}
}

func TestFileFetcher_ShouldRefuseMemoryDepth(t *testing.T) {
	root := t.TempDir()
	path := writeTempFile(t, root, "image.png", []byte{0x1})

	_, err := newTestFileFetcher(t, root).Fetch(context.Background(), request.New(path, request.WithDepth(request.Memory)))

	var depthErr *request.DepthError
	if !errors.As(err, &depthErr) {
		t.Errorf("Expected DepthError, got %v", err)
	}
}

func TestFileFetcher_ShouldAllowLocalDepth(t *testing.T) {
	root := t.TempDir()
	path := writeTempFile(t, root, "image.png", []byte{0x1})

	_, err := newTestFileFetcher(t, root).Fetch(context.Background(), request.New(path, request.WithDepth(request.Local)))

	if err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestFileFetcher_ShouldRequireRoot(t *testing.T) {
	if _, err := NewFileFetcher(""); err == nil {
		t.Errorf("Expected error, got nil")
	}
}

func TestFileFetcher_ShouldRefusePathsOutsideOfRoot(t *testing.T) {
	root := t.TempDir()
	secret := writeTempFile(t, t.TempDir(), "secret.txt", []byte("password"))
	fetcher := newTestFileFetcher(t, root)

	uris := []string{
		secret,
		"file://" + filepath.ToSlash(secret),
		"file://" + filepath.ToSlash(filepath.Join(root, "..", filepath.Base(filepath.Dir(secret)), "secret.txt")),
		"file:///etc/passwd",
	}

	for _, uri := range uris {
		t.Run(uri, func(t *testing.T) {
			_, err := fetcher.Fetch(context.Background(), request.New(uri))

			if !errors.Is(err, ErrSourceNotAllowed) {
				t.Errorf("Expected %v, got %v", ErrSourceNotAllowed, err)
			}
		})
	}
}

func TestFileFetcher_ShouldRefuseSymlinksLeavingRoot(t *testing.T) {
	root := t.TempDir()
	secret := writeTempFile(t, t.TempDir(), "secret.txt", []byte("password"))
	link := filepath.Join(root, "image.png")
	if err := os.Symlink(secret, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := newTestFileFetcher(t, root).Fetch(context.Background(), request.New(link))

	if !errors.Is(err, ErrSourceNotAllowed) {
		t.Errorf("Expected %v, got %v", ErrSourceNotAllowed, err)
	}
}
