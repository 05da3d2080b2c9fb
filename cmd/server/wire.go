//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/sirupsen/logrus"
	"github.com/thebartekbanach/imload/pkg/cache"
	"github.com/thebartekbanach/imload/pkg/cache/disk"
	"github.com/thebartekbanach/imload/pkg/config"
	"github.com/thebartekbanach/imload/pkg/decode"
	"github.com/thebartekbanach/imload/pkg/decode/stdbackend"
	"github.com/thebartekbanach/imload/pkg/pipeline"
	"github.com/thebartekbanach/imload/pkg/proxy"
)

var cacheSet = wire.NewSet(
	InitializeMemoryCache,
	wire.Bind(new(cache.MemoryCache), new(*cache.LruMemoryCache)),
	InitializeResultCache,
	wire.Bind(new(cache.ResultCache), new(*disk.LruCache)),
	wire.Bind(new(disk.Cache), new(*disk.LruCache)),

	InitializeMongoConnection,
	InitializeCachedImagesRepository,
	InitializeInvalidationsRepository,

	cache.NewCacheService,
	wire.Bind(new(pipeline.CacheRegistrar), new(cache.CacheService)),
	cache.NewInvalidationService,
)

var decodeSet = wire.NewSet(
	InitializeFetcher,
	InitializeBackendFactory,
	wire.Bind(new(decode.BackendFactory), new(*stdbackend.BackendFactory)),
	InitializeEncoder,
	wire.Bind(new(decode.Encoder), new(*stdbackend.Encoder)),
	InitializeEngine,
)

func InitializeServer(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*server, func(), error) {
	wire.Build(
		cacheSet,
		decodeSet,

		InitializeImageLoader,
		wire.Bind(new(proxy.ImageLoader), new(*pipeline.ImageLoader)),
		InitializeProxyConfig,
		proxy.NewProxyService,

		newServer,
	)

	return nil, nil, nil
}
