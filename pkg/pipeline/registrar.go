package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"
	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
)

// CacheRegistrar records which cache keys were produced for a source so they
// can be invalidated together. cache.CacheService implements it.
type CacheRegistrar interface {
	Register(ctx context.Context, image cacherepositories.CachedImageModel) error
}

func register(ctx context.Context, registrar CacheRegistrar, logger logrus.FieldLogger, image cacherepositories.CachedImageModel) {
	if registrar == nil {
		return
	}

	if err := registrar.Register(ctx, image); err != nil {
		logger.WithError(err).WithField("key", image.CacheKey).Warn("cannot register cached image")
	}
}
