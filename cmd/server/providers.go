package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/cache"
	"github.com/thebartekbanach/imload/pkg/cache/disk"
	cacherepositories "github.com/thebartekbanach/imload/pkg/cache/repositories"
	"github.com/thebartekbanach/imload/pkg/config"
	dbconnections "github.com/thebartekbanach/imload/pkg/connections"
	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/decode/stdbackend"
	"github.com/thebartekbanach/imload/pkg/filefetcher"
	"github.com/thebartekbanach/imload/pkg/pipeline"
	"github.com/thebartekbanach/imload/pkg/proxy"
)

type server struct {
	config              *config.Config
	logger              logrus.FieldLogger
	proxyService        proxy.ProxyService
	cacheService        cache.CacheService
	invalidationService cache.InvalidationService
}

func newServer(
	cfg *config.Config,
	logger logrus.FieldLogger,
	proxyService proxy.ProxyService,
	cacheService cache.CacheService,
	invalidationService cache.InvalidationService,
) *server {
	return &server{cfg, logger, proxyService, cacheService, invalidationService}
}

func InitializeMemoryCache(cfg *config.Config, logger logrus.FieldLogger) *cache.LruMemoryCache {
	return cache.NewLruMemoryCache(cfg.MemoryCacheMaxSize.Int64(), logger)
}

func InitializeResultCache(cfg *config.Config, logger logrus.FieldLogger) (*disk.LruCache, func(), error) {
	resultCache, err := disk.Open(disk.Options{
		Directory:  cfg.DiskCacheDirectory,
		MaxSize:    cfg.DiskCacheMaxSize.Int64(),
		AppVersion: cfg.DiskCacheAppVersion,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open result cache: %w", err)
	}

	cleanup := func() {
		if err := resultCache.Close(); err != nil {
			logger.WithError(err).Error("cannot close result cache")
		}
	}

	return resultCache, cleanup, nil
}

// InitializeMongoConnection returns a nil connection when MongoDB is not
// configured; the repositories then keep their state in memory.
func InitializeMongoConnection(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (dbconnections.CacheDBConnection, func(), error) {
	if !cfg.MongoEnabled() {
		logger.Info("mongo connection string not set, using in-memory cache registrations")
		return nil, func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	conn, err := dbconnections.NewCacheDBProductionConnection(connectCtx, dbconnections.CacheDBConfig{
		ConnectionString: cfg.MongoConnectionString,
		Database:         cfg.MongoDatabase,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to mongo: %w", err)
	}

	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := conn.Disconnect(disconnectCtx); err != nil {
			logger.WithError(err).Error("cannot disconnect from mongo")
		}
	}

	return conn, cleanup, nil
}

func InitializeCachedImagesRepository(conn dbconnections.CacheDBConnection) cacherepositories.CachedImagesRepository {
	if conn == nil {
		return cacherepositories.NewMemoryCachedImagesRepository()
	}

	return cacherepositories.NewCachedImagesRepository(conn)
}

func InitializeInvalidationsRepository(conn dbconnections.CacheDBConnection) cacherepositories.InvalidationsRepository {
	if conn == nil {
		return cacherepositories.NewMemoryInvalidationsRepository()
	}

	return cacherepositories.NewInvalidationsRepository(conn)
}

func InitializeFetcher(cfg *config.Config) (filefetcher.Fetcher, error) {
	httpFetcher := filefetcher.NewHTTPFetcher(filefetcher.HTTPFetcherConfig{
		AllowedDomains: cfg.AllowedDomains,
		MaxBodySize:    cfg.MaxSourceSize.Int64(),
	}, &http.Client{Timeout: cfg.FetchTimeout})

	registry := filefetcher.NewRegistry().
		Register(httpFetcher, "http", "https")

	if cfg.LocalFilesEnabled() {
		fileFetcher, err := filefetcher.NewFileFetcher(cfg.LocalRoot)
		if err != nil {
			return nil, err
		}

		registry.Register(fileFetcher, "file")
	}

	if cfg.MinioEnabled() {
		conn, err := dbconnections.NewMinioBlockStorageProductionConnection(dbconnections.MinioBlockStorageProductionConnectionConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot create minio client: %w", err)
		}

		registry.Register(filefetcher.NewMinioFetcher(conn, cfg.MinioBuckets...), "minio")
	}

	return registry, nil
}

func InitializeBackendFactory(cfg *config.Config) *stdbackend.BackendFactory {
	return stdbackend.NewBackendFactory(cfg.MaxSourcePixels)
}

func InitializeEncoder(cfg *config.Config) *stdbackend.Encoder {
	return stdbackend.NewEncoder(cfg.JPEGQuality)
}

func InitializeEngine(cfg *config.Config, logger logrus.FieldLogger) *decode.Engine {
	return decode.NewEngine(decode.EngineConfig{MaxSize: cfg.MaxSize()}, logger)
}

func InitializeImageLoader(
	cfg *config.Config,
	logger logrus.FieldLogger,
	memoryCache cache.MemoryCache,
	resultCache disk.Cache,
	fetcher filefetcher.Fetcher,
	backendFactory decode.BackendFactory,
	encoder decode.Encoder,
	engine *decode.Engine,
	registrar pipeline.CacheRegistrar,
) (*pipeline.ImageLoader, error) {
	engineInterceptor, err := pipeline.NewEngineRequestInterceptor(
		pipeline.NewWorkerPool(cfg.Workers),
		pipeline.NewEngineDecodeInterceptor(fetcher, backendFactory, engine),
		pipeline.NewTransformationDecodeInterceptor(),
		pipeline.NewResultCacheDecodeInterceptor(resultCache, backendFactory, encoder, registrar, logger),
	)
	if err != nil {
		return nil, err
	}

	return pipeline.NewImageLoader(
		pipeline.LoaderConfig{DefaultSize: cfg.DefaultSize()},
		logger,
		pipeline.NewMemoryCacheRequestInterceptor(memoryCache, registrar, logger),
		engineInterceptor,
	)
}

func InitializeProxyConfig(cfg *config.Config) proxy.ProxyServiceConfig {
	return proxy.ProxyServiceConfig{
		AllowedDomains: cfg.AllowedDomains,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxSize:        cfg.MaxSize(),
	}
}
