package config

import (
	"time"

	"github.com/thebartekbanach/imload/pkg/request"
)

// Config is read from IMLOAD_ prefixed environment variables, e.g.
// listen_port is set by IMLOAD_LISTEN_PORT.
type Config struct {
	ListenPort int `mapstructure:"listen_port"`

	LogLevel      string `mapstructure:"log_level"`
	LogFilePath   string `mapstructure:"log_file_path"`
	LogMaxSize    int    `mapstructure:"log_max_size"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
	LogCompress   bool   `mapstructure:"log_compress"`

	MemoryCacheMaxSize  ByteSize `mapstructure:"memory_cache_max_size"`
	DiskCacheDirectory  string   `mapstructure:"disk_cache_directory"`
	DiskCacheMaxSize    ByteSize `mapstructure:"disk_cache_max_size"`
	DiskCacheAppVersion int      `mapstructure:"disk_cache_app_version"`

	Workers       int `mapstructure:"workers"`
	DefaultWidth  int `mapstructure:"default_width"`
	DefaultHeight int `mapstructure:"default_height"`
	MaxWidth      int `mapstructure:"max_width"`
	MaxHeight     int `mapstructure:"max_height"`
	JPEGQuality   int `mapstructure:"jpeg_quality"`

	MaxSourcePixels int64 `mapstructure:"max_source_pixels"`

	AllowedDomains []string      `mapstructure:"allowed_domains"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	MaxSourceSize  ByteSize      `mapstructure:"max_source_size"`
	LocalRoot      string        `mapstructure:"local_root"`

	MongoConnectionString string `mapstructure:"mongo_connection_string"`
	MongoDatabase         string `mapstructure:"mongo_database"`

	MinioEndpoint  string `mapstructure:"minio_endpoint"`
	MinioAccessKey string `mapstructure:"minio_access_key"`
	MinioSecretKey string `mapstructure:"minio_secret_key"`
	MinioUseSSL    bool     `mapstructure:"minio_use_ssl"`
	MinioBuckets   []string `mapstructure:"minio_buckets"`

	InvalidationToken string `mapstructure:"invalidation_token"`
}

func (c *Config) DefaultSize() request.Size {
	return request.NewSize(c.DefaultWidth, c.DefaultHeight)
}

func (c *Config) MaxSize() request.Size {
	return request.NewSize(c.MaxWidth, c.MaxHeight)
}

func (c *Config) MongoEnabled() bool {
	return c.MongoConnectionString != ""
}

// LocalFilesEnabled reports whether file:// sources are served at all.
func (c *Config) LocalFilesEnabled() bool {
	return c.LocalRoot != ""
}

func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != ""
}
