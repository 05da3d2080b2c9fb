package cache

import (
	"context"

	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
)

// Value is a memory cache entry. An invalid value is dropped on the next
// access instead of being returned.
type Value interface {
	Size() int64
	IsValid() bool
}

type PutResult int

const (
	PutOK PutResult = iota
	PutExists
	PutTooLarge
)

func (r PutResult) String() string {
	switch r {
	case PutOK:
		return "OK"
	case PutExists:
		return "EXISTS"
	case PutTooLarge:
		return "TOO_LARGE"
	}

	return "UNKNOWN"
}

type MemoryCache interface {
	Put(key string, value Value) PutResult
	Get(key string) (Value, bool)
	Exist(key string) bool
	Remove(key string) bool
	Trim(targetSize int64)
	Clear()
	Size() int64
	MaxSize() int64
	Keys() []string
	WithLock(ctx context.Context, key string, fn func() error) error
}

// ResultCache is the part of the disk cache the cache service needs to drop
// invalidated entries.
type ResultCache interface {
	Remove(key string) error
	Clear() error
	WithLock(ctx context.Context, key string, fn func() error) error
}

type CacheService interface {
	Register(ctx context.Context, image cacherepositories.CachedImageModel) error
	InvalidateAllEntriesForURL(ctx context.Context, sourceImageURL string) ([]cacherepositories.CachedImageModel, error)
	Clear() error
	Trim(memoryTargetSize int64)
}

type InvalidationService interface {
	GetLastKnownInvalidation(ctx context.Context, projectName string) (cacherepositories.InvalidationModel, error)
	Invalidate(ctx context.Context, projectName string, latestCommitHash string, urls []string) (cacherepositories.InvalidationModel, error)
}
