package filefetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	dbconnections "github.com/thebartekbanach/imload/pkg/connections"
	"github.com/thebartekbanach/imload/pkg/request"
)

// MinioFetcher serves "minio://bucket/object" URIs. Only the listed buckets
// are readable.
type MinioFetcher struct {
	conn    dbconnections.MinioBlockStorageConnection
	buckets map[string]struct{}
}

var _ Fetcher = (*MinioFetcher)(nil)

func NewMinioFetcher(conn dbconnections.MinioBlockStorageConnection, buckets ...string) *MinioFetcher {
	allowed := make(map[string]struct{}, len(buckets))
	for _, bucket := range buckets {
		allowed[bucket] = struct{}{}
	}

	return &MinioFetcher{conn: conn, buckets: allowed}
}

func (fetcher *MinioFetcher) Fetch(ctx context.Context, req request.Request) (FetchResult, error) {
	if req.Depth() != request.Network {
		return FetchResult{}, &request.DepthError{Depth: req.Depth(), Stage: "object storage fetch"}
	}

	bucket, object, err := parseObjectURI(req.URI())
	if err != nil {
		return FetchResult{}, err
	}

	if _, ok := fetcher.buckets[bucket]; !ok {
		return FetchResult{}, fmt.Errorf("%w: bucket %q", ErrSourceNotAllowed, bucket)
	}

	reader, info, err := fetcher.conn.GetObject(ctx, bucket, object)
	if err != nil {
		if errors.Is(err, dbconnections.ErrObjectNotFound) {
			return FetchResult{}, fmt.Errorf("%w: %s", ErrNotFound, req.URI())
		}
		return FetchResult{}, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return FetchResult{}, err
	}

	return FetchResult{
		Source:   NewBytesDataSource(data, DataFromNetwork),
		MimeType: info.ContentType,
	}, nil
}

func parseObjectURI(uri string) (bucket, object string, err error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", "", err
	}

	bucket = parsed.Host
	object = strings.TrimPrefix(parsed.Path, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("%w: %s", ErrMalformedObjectURI, uri)
	}

	return bucket, object, nil
}

var (
	ErrMalformedObjectURI = errors.New("object uri must have form minio://bucket/object")
)
