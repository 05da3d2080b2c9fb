package pipeline

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/cache"
	"github.com/thebartekbanach/imload/pkg/cache/disk"
	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
	"github.com/thebartekbanach/imload/pkg/request"
)

const ResultCacheInterceptorWeight = 80

// ResultCacheDecodeInterceptor answers decodes from the disk cache and
// writes transformed results into it. Cache I/O failures are logged and
// treated as a miss.
type ResultCacheDecodeInterceptor struct {
	resultCache    disk.Cache
	backendFactory decode.BackendFactory
	encoder        decode.Encoder
	registrar      CacheRegistrar
	logger         logrus.FieldLogger
}

var _ DecodeInterceptor = (*ResultCacheDecodeInterceptor)(nil)

func NewResultCacheDecodeInterceptor(
	resultCache disk.Cache,
	backendFactory decode.BackendFactory,
	encoder decode.Encoder,
	registrar CacheRegistrar,
	logger logrus.FieldLogger,
) *ResultCacheDecodeInterceptor {
	return &ResultCacheDecodeInterceptor{
		resultCache:    resultCache,
		backendFactory: backendFactory,
		encoder:        encoder,
		registrar:      registrar,
		logger:         logger.WithField("interceptor", "resultCache"),
	}
}

func (i *ResultCacheDecodeInterceptor) Key() string     { return "ResultCacheDecodeInterceptor" }
func (i *ResultCacheDecodeInterceptor) SortWeight() int { return ResultCacheInterceptorWeight }

func (i *ResultCacheDecodeInterceptor) Intercept(chain DecodeChain) (decode.Result, error) {
	ctx := chain.Context()
	policy := chain.Request().ResultCachePolicy()
	if policy == request.Disabled {
		return chain.Proceed()
	}

	key := chain.RequestContext().ResultCacheKey()
	var result decode.Result

	err := i.resultCache.WithLock(ctx, key, func() error {
		if policy.ReadEnabled() {
			if cached, ok := i.read(ctx, key); ok {
				result = cached
				return nil
			}
		}

		var err error
		result, err = chain.Proceed()
		if err != nil {
			return err
		}

		if policy.WriteEnabled() && len(result.Transformed) > 0 {
			i.write(chain, key, result)
		}

		return nil
	})

	return result, asCanceled(ctx, err)
}

func (i *ResultCacheDecodeInterceptor) read(ctx context.Context, key string) (decode.Result, bool) {
	logger := i.logger.WithField("key", key)

	snapshot, err := i.resultCache.OpenSnapshot(key)
	if err != nil {
		if !errors.Is(err, disk.ErrNotFound) {
			logger.WithError(err).Warn("cannot open result cache snapshot")
		}
		return decode.Result{}, false
	}
	defer snapshot.Close()

	metadataText, err := snapshot.ReadMetadata()
	if err != nil {
		i.dropEntry(logger, key, err, "cannot read result cache metadata")
		return decode.Result{}, false
	}

	metadata, err := cache.ParseMetadata(metadataText)
	if err != nil {
		i.dropEntry(logger, key, err, "corrupted result cache metadata")
		return decode.Result{}, false
	}

	source := filefetcher.NewFileDataSource(snapshot.DataPath(), filefetcher.DataFromResultCache)
	backend, err := i.backendFactory.NewBackend(ctx, source)
	if err != nil {
		i.dropEntry(logger, key, err, "cannot decode result cache data")
		return decode.Result{}, false
	}
	defer backend.Close()

	img, err := backend.Decode(ctx, 1)
	if err != nil {
		if ctx.Err() == nil {
			i.dropEntry(logger, key, err, "cannot decode result cache data")
		}
		return decode.Result{}, false
	}

	return decode.Result{
		Image:       img,
		ImageInfo:   metadata.ImageInfo,
		Resize:      metadata.Resize,
		DataFrom:    filefetcher.DataFromResultCache,
		Transformed: metadata.Transformed,
		Extras:      metadata.Extras,
	}, true
}

func (i *ResultCacheDecodeInterceptor) dropEntry(logger logrus.FieldLogger, key string, err error, message string) {
	logger.WithError(err).Warn(message)
	if err := i.resultCache.Remove(key); err != nil {
		logger.WithError(err).Warn("cannot remove result cache entry")
	}
}

func (i *ResultCacheDecodeInterceptor) write(chain DecodeChain, key string, result decode.Result) {
	logger := i.logger.WithField("key", key)

	editor, err := i.resultCache.OpenEditor(key)
	if err != nil {
		logger.WithError(err).Warn("cannot open result cache editor")
		return
	}
	defer editor.Abort()

	mimeType, err := i.encodeData(editor.DataPath(), result)
	if err != nil {
		logger.WithError(err).Warn("cannot write result cache data")
		return
	}

	metadataText, err := cache.NewMetadata(result).MarshalText()
	if err != nil {
		logger.WithError(err).Warn("cannot serialize result cache metadata")
		return
	}

	if err := os.WriteFile(editor.MetadataPath(), metadataText, 0o644); err != nil {
		logger.WithError(err).Warn("cannot write result cache metadata")
		return
	}

	if err := editor.Commit(); err != nil {
		logger.WithError(err).Warn("cannot commit result cache entry")
		return
	}

	bounds := result.Image.Bounds()
	register(chain.Context(), i.registrar, i.logger, cacherepositories.CachedImageModel{
		CacheKey:    key,
		SourceURI:   chain.Request().URI(),
		MimeType:    mimeType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Transformed: result.Transformed,
		CreatedAt:   time.Now(),
	})
}

func (i *ResultCacheDecodeInterceptor) encodeData(path string, result decode.Result) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}

	mimeType, err := i.encoder.Encode(file, result.Image, result.ImageInfo.MimeType)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}

	return mimeType, err
}
