package cache

import (
	"context"

	"github.com/sirupsen/logrus"
	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
)

type cacheService struct {
	imagesRepository cacherepositories.CachedImagesRepository
	memoryCache      MemoryCache
	resultCache      ResultCache
	logger           logrus.FieldLogger
}

func NewCacheService(
	imagesRepository cacherepositories.CachedImagesRepository,
	memoryCache MemoryCache,
	resultCache ResultCache,
	logger logrus.FieldLogger,
) CacheService {
	return &cacheService{
		imagesRepository,
		memoryCache,
		resultCache,
		logger.WithField("component", "cacheService"),
	}
}

// Register remembers that image was cached for its source URI. Registering
// the same cache key twice is not an error.
func (s *cacheService) Register(ctx context.Context, image cacherepositories.CachedImageModel) error {
	err := s.imagesRepository.CreateCachedImageInfo(ctx, image)
	if err == cacherepositories.ErrCachedImageAlreadyExists {
		return nil
	}

	return err
}

func (s *cacheService) InvalidateAllEntriesForURL(ctx context.Context, sourceImageURL string) (removedEntries []cacherepositories.CachedImageModel, err error) {
	entries, err := s.imagesRepository.GetCachedImageInfosOfSource(ctx, sourceImageURL)
	if err != nil {
		return
	}

	for _, entry := range entries {
		err = s.memoryCache.WithLock(ctx, entry.CacheKey, func() error {
			s.memoryCache.Remove(entry.CacheKey)
			return nil
		})
		if err != nil {
			return
		}

		err = s.resultCache.WithLock(ctx, entry.CacheKey, func() error {
			return s.resultCache.Remove(entry.CacheKey)
		})
		if err != nil {
			return
		}

		err = s.imagesRepository.DeleteCachedImageInfo(ctx, entry.CacheKey)
		if err != nil && err != cacherepositories.ErrCachedImageNotFound {
			return
		}
		err = nil

		s.logger.WithFields(logrus.Fields{"source": sourceImageURL, "key": entry.CacheKey}).Info("invalidated cache entry")
		removedEntries = append(removedEntries, entry)
	}

	return
}

func (s *cacheService) Clear() error {
	s.memoryCache.Clear()
	return s.resultCache.Clear()
}

func (s *cacheService) Trim(memoryTargetSize int64) {
	s.memoryCache.Trim(memoryTargetSize)
}
