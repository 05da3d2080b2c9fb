package filefetcher

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/thebartekbanach/imload/pkg/request"
)

// Registry dispatches a request to the fetcher registered for its URI
// scheme. Plain absolute paths are treated as the "file" scheme.
type Registry struct {
	fetchers map[string]Fetcher
}

var _ Fetcher = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{fetchers: map[string]Fetcher{}}
}

func (r *Registry) Register(fetcher Fetcher, schemes ...string) *Registry {
	for _, scheme := range schemes {
		r.fetchers[strings.ToLower(scheme)] = fetcher
	}

	return r
}

func (r *Registry) Fetch(ctx context.Context, req request.Request) (FetchResult, error) {
	scheme := schemeOf(req.URI())
	fetcher, found := r.fetchers[scheme]
	if !found {
		return FetchResult{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}

	return fetcher.Fetch(ctx, req)
}

func schemeOf(uri string) string {
	if filepath.IsAbs(uri) {
		return "file"
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}

	return strings.ToLower(parsed.Scheme)
}
