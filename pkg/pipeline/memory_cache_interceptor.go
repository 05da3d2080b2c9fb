package pipeline

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/cache"
	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
	"github.com/thebartekbanach/imload/pkg/request"
)

const MemoryCacheInterceptorWeight = 90

// MemoryCacheRequestInterceptor answers requests from the memory cache and
// stores the results of the rest of the chain in it. The whole
// read-else-compute-then-write sequence runs under the key lock, so
// concurrent identical requests decode once.
type MemoryCacheRequestInterceptor struct {
	memoryCache cache.MemoryCache
	registrar   CacheRegistrar
	logger      logrus.FieldLogger
}

var _ RequestInterceptor = (*MemoryCacheRequestInterceptor)(nil)

func NewMemoryCacheRequestInterceptor(memoryCache cache.MemoryCache, registrar CacheRegistrar, logger logrus.FieldLogger) *MemoryCacheRequestInterceptor {
	return &MemoryCacheRequestInterceptor{
		memoryCache: memoryCache,
		registrar:   registrar,
		logger:      logger.WithField("interceptor", "memoryCache"),
	}
}

func (i *MemoryCacheRequestInterceptor) Key() string     { return "MemoryCacheRequestInterceptor" }
func (i *MemoryCacheRequestInterceptor) SortWeight() int { return MemoryCacheInterceptorWeight }

func (i *MemoryCacheRequestInterceptor) Intercept(chain RequestChain) (ImageData, error) {
	ctx := chain.Context()
	policy := chain.Request().MemoryCachePolicy()
	if policy == request.Disabled {
		return chain.Proceed()
	}

	key := chain.RequestContext().MemoryCacheKey()
	var data ImageData

	err := i.memoryCache.WithLock(ctx, key, func() error {
		if policy.ReadEnabled() {
			if cached, ok := i.read(key); ok {
				data = cached
				return nil
			}
		}

		var err error
		data, err = chain.Proceed()
		if err != nil {
			return err
		}

		if policy.WriteEnabled() && data.Image != nil {
			i.write(chain, key, data)
		}

		return nil
	})

	return data, asCanceled(ctx, err)
}

func (i *MemoryCacheRequestInterceptor) read(key string) (ImageData, bool) {
	value, ok := i.memoryCache.Get(key)
	if !ok {
		return ImageData{}, false
	}

	imageValue, ok := value.(*cache.ImageValue)
	if !ok {
		i.logger.WithError(ErrUnexpectedMemoryValue).WithField("key", key).Warn("removing memory cache value")
		i.memoryCache.Remove(key)
		return ImageData{}, false
	}

	return newImageDataFromValue(imageValue), true
}

func (i *MemoryCacheRequestInterceptor) write(chain RequestChain, key string, data ImageData) {
	result := i.memoryCache.Put(key, cache.NewImageValue(data.Image, data.Metadata()))
	if result != cache.PutOK {
		i.logger.WithFields(logrus.Fields{"key": key, "result": result.String()}).Debug("image not stored in memory cache")
		return
	}

	register(chain.Context(), i.registrar, i.logger, cacherepositories.CachedImageModel{
		CacheKey:    key,
		SourceURI:   chain.Request().URI(),
		MimeType:    data.ImageInfo.MimeType,
		Width:       data.Image.Bounds().Dx(),
		Height:      data.Image.Bounds().Dy(),
		Transformed: data.Transformed,
		CreatedAt:   time.Now(),
	})
}
