package filefetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/ryanuber/go-glob"
	"github.com/thebartekbanach/imload/pkg/request"
)

type httpGetFunc func(ctx context.Context, url string) (resp *http.Response, err error)

type HTTPFetcherConfig struct {
	// AllowedDomains are glob patterns matched against the source host.
	// Empty means every domain is allowed.
	AllowedDomains []string
	// MaxBodySize limits how many bytes are read from a response; 0 means
	// no limit.
	MaxBodySize int64
}

type HTTPFetcher struct {
	config HTTPFetcherConfig
	getter httpGetFunc
}

var _ Fetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(config HTTPFetcherConfig, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	getFunc := func(ctx context.Context, url string) (resp *http.Response, err error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		return client.Do(req)
	}

	return &HTTPFetcher{config, getFunc}
}

func (fetcher *HTTPFetcher) Fetch(ctx context.Context, req request.Request) (FetchResult, error) {
	if req.Depth() != request.Network {
		return FetchResult{}, &request.DepthError{Depth: req.Depth(), Stage: "network fetch"}
	}

	if !fetcher.isAllowedDomain(req.URI()) {
		return FetchResult{}, ErrDomainNotAllowed
	}

	response, err := fetcher.getter(ctx, req.URI())
	if err != nil {
		return FetchResult{}, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return FetchResult{}, fmt.Errorf("%w: %s", ErrNotFound, req.URI())
	} else if response.StatusCode != http.StatusOK {
		return FetchResult{}, fmt.Errorf("%w: %d", ErrResponseStatusNotOK, response.StatusCode)
	}

	var body io.Reader = response.Body
	if fetcher.config.MaxBodySize > 0 {
		body = io.LimitReader(response.Body, fetcher.config.MaxBodySize+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return FetchResult{}, err
	}

	if fetcher.config.MaxBodySize > 0 && int64(len(data)) > fetcher.config.MaxBodySize {
		return FetchResult{}, ErrResponseTooLarge
	}

	return FetchResult{
		Source:   NewBytesDataSource(data, DataFromNetwork),
		MimeType: parseMimeType(response.Header.Get("Content-Type")),
	}, nil
}

func (fetcher *HTTPFetcher) isAllowedDomain(sourceURL string) bool {
	if len(fetcher.config.AllowedDomains) == 0 {
		return true
	}

	url, err := url.Parse(sourceURL)
	if err != nil {
		return false
	}

	sourceDomain := url.Hostname()
	for _, allowedDomain := range fetcher.config.AllowedDomains {
		if glob.Glob(allowedDomain, sourceDomain) {
			return true
		}
	}

	return false
}

func parseMimeType(contentType string) string {
	if contentType == "" {
		return ""
	}

	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}

	return mimeType
}

var (
	ErrResponseStatusNotOK = errors.New("response returned non-200 status code")
	ErrResponseTooLarge    = errors.New("response body exceeds size limit")
	ErrDomainNotAllowed    = errors.New("source domain not allowed")
)
