package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/request"
)

type (
	// RequestInterceptor wraps the request chain. Interceptors run in
	// ascending SortWeight order; the last one must not call Proceed.
	RequestInterceptor interface {
		Key() string
		SortWeight() int
		Intercept(chain RequestChain) (ImageData, error)
	}

	RequestChain interface {
		Context() context.Context
		RequestContext() *request.Context
		Request() request.Request
		Proceed() (ImageData, error)
	}

	// DecodeInterceptor wraps the decode chain the same way.
	DecodeInterceptor interface {
		Key() string
		SortWeight() int
		Intercept(chain DecodeChain) (decode.Result, error)
	}

	DecodeChain interface {
		Context() context.Context
		RequestContext() *request.Context
		Request() request.Request
		Proceed() (decode.Result, error)
	}
)

type sortable interface {
	Key() string
	SortWeight() int
}

// sortInterceptors returns a copy of interceptors ordered by weight. Equal
// weights keep their registration order.
func sortInterceptors[T sortable](interceptors []T) ([]T, error) {
	seen := map[string]bool{}
	for _, interceptor := range interceptors {
		if seen[interceptor.Key()] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateInterceptor, interceptor.Key())
		}
		seen[interceptor.Key()] = true
	}

	sorted := append([]T(nil), interceptors...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortWeight() < sorted[j].SortWeight()
	})

	return sorted, nil
}
