package filefetcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/thebartekbanach/imload/pkg/request"
)

// FileFetcher serves "file://" URIs and absolute paths located under root.
type FileFetcher struct {
	root string
}

var _ Fetcher = (*FileFetcher)(nil)

func NewFileFetcher(root string) (*FileFetcher, error) {
	if root == "" {
		return nil, errors.New("file fetcher root is required")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve file fetcher root: %w", err)
	}

	return &FileFetcher{root: filepath.Clean(absRoot)}, nil
}

func (fetcher *FileFetcher) Fetch(ctx context.Context, req request.Request) (FetchResult, error) {
	if req.Depth() == request.Memory {
		return FetchResult{}, &request.DepthError{Depth: req.Depth(), Stage: "local fetch"}
	}

	if err := ctx.Err(); err != nil {
		return FetchResult{}, err
	}

	path, err := filePath(req.URI())
	if err != nil {
		return FetchResult{}, err
	}

	path, err = fetcher.confine(path)
	if err != nil {
		return FetchResult{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FetchResult{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return FetchResult{}, err
	}
	if info.IsDir() {
		return FetchResult{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	return FetchResult{
		Source:   NewFileDataSource(path, DataFromLocal),
		MimeType: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

func (fetcher *FileFetcher) confine(path string) (string, error) {
	path = filepath.Clean(path)

	if !isWithin(fetcher.root, path) {
		return "", fmt.Errorf("%w: %s is outside of %s", ErrSourceNotAllowed, path, fetcher.root)
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		// missing files are reported by the stat that follows
		return path, nil
	}

	resolvedRoot, err := filepath.EvalSymlinks(fetcher.root)
	if err != nil {
		resolvedRoot = fetcher.root
	}

	if !isWithin(resolvedRoot, resolved) {
		return "", fmt.Errorf("%w: %s links outside of %s", ErrSourceNotAllowed, path, fetcher.root)
	}

	return resolved, nil
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func filePath(uri string) (string, error) {
	if filepath.IsAbs(uri) {
		return uri, nil
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}

	return filepath.FromSlash(parsed.Path), nil
}
