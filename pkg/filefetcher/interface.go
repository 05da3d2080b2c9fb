package filefetcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/thebartekbanach/imload/pkg/request"
)

// DataFrom records where the data of a result came from.
type DataFrom int

const (
	DataFromNetwork DataFrom = iota
	DataFromLocal
	DataFromMemory
	DataFromMemoryCache
	DataFromResultCache
)

var dataFromNames = map[DataFrom]string{
	DataFromNetwork:     "NETWORK",
	DataFromLocal:       "LOCAL",
	DataFromMemory:      "MEMORY",
	DataFromMemoryCache: "MEMORY_CACHE",
	DataFromResultCache: "RESULT_CACHE",
}

func (d DataFrom) String() string {
	if name, ok := dataFromNames[d]; ok {
		return name
	}

	return fmt.Sprintf("DataFrom(%d)", int(d))
}

type (
	// DataSource is a re-openable byte source. Open may be called more than
	// once; each returned reader must be closed by the caller.
	DataSource interface {
		DataFrom() DataFrom
		Open() (io.ReadCloser, error)
	}

	FetchResult struct {
		Source   DataSource
		MimeType string
	}

	Fetcher interface {
		Fetch(ctx context.Context, req request.Request) (FetchResult, error)
	}
)

var (
	ErrNotFound          = errors.New("source not found")
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
	ErrSourceNotAllowed  = errors.New("source not allowed")
)
