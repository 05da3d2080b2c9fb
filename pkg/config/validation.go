package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("configuration is nil")
	}

	if c.ListenPort <= 0 || c.ListenPort > 65535 {
		return newFieldError("listen_port", "must be in range 1-65535")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return newFieldError("log_level", err.Error())
	}

	if c.MemoryCacheMaxSize <= 0 {
		return newFieldError("memory_cache_max_size", "must be greater than 0")
	}

	if c.DiskCacheDirectory == "" {
		return newFieldError("disk_cache_directory", "is required")
	}

	if c.DiskCacheMaxSize <= 0 {
		return newFieldError("disk_cache_max_size", "must be greater than 0")
	}

	if c.Workers <= 0 {
		return newFieldError("workers", "must be greater than 0")
	}

	if c.DefaultWidth < 0 || c.DefaultHeight < 0 || c.MaxWidth < 0 || c.MaxHeight < 0 {
		return newFieldError("default_width", "sizes cannot be negative")
	}

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return newFieldError("jpeg_quality", "must be in range 1-100")
	}

	if c.MaxSourcePixels <= 0 {
		return newFieldError("max_source_pixels", "must be greater than 0")
	}

	if c.FetchTimeout <= 0 {
		return newFieldError("fetch_timeout", "must be greater than 0")
	}

	if c.MongoEnabled() {
		parsed, err := url.Parse(c.MongoConnectionString)
		if err != nil {
			return newFieldError("mongo_connection_string", fmt.Sprintf("cannot be parsed: %s", err))
		}

		if parsed.Scheme != "mongodb" && parsed.Scheme != "mongodb+srv" {
			return newFieldError("mongo_connection_string", "must use mongodb or mongodb+srv scheme")
		}
	}

	if c.MinioEnabled() {
		if c.MinioAccessKey == "" {
			return newFieldError("minio_access_key", "is required when minio_endpoint is set")
		}

		if c.MinioSecretKey == "" {
			return newFieldError("minio_secret_key", "is required when minio_endpoint is set")
		}

		if len(c.MinioBuckets) == 0 {
			return newFieldError("minio_buckets", "is required when minio_endpoint is set")
		}
	}

	return nil
}

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s_%s: %s", EnvPrefix, strings.ToUpper(e.Field), e.Reason)
}

func newFieldError(field, reason string) error {
	return FieldError{Field: field, Reason: reason}
}
