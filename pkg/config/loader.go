package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const EnvPrefix = "IMLOAD"

// Load reads the configuration from the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}

	cfg.AllowedDomains = cleanList(cfg.AllowedDomains)
	cfg.AllowedOrigins = cleanList(cfg.AllowedOrigins)
	cfg.MinioBuckets = trimList(cfg.MinioBuckets)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	absDirectory, err := filepath.Abs(cfg.DiskCacheDirectory)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve disk cache directory: %w", err)
	}
	cfg.DiskCacheDirectory = absDirectory

	if cfg.LocalFilesEnabled() {
		absRoot, err := filepath.Abs(cfg.LocalRoot)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve local root: %w", err)
		}
		cfg.LocalRoot = absRoot
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_port", 80)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file_path", "")
	v.SetDefault("log_max_size", 100)
	v.SetDefault("log_max_backups", 10)
	v.SetDefault("log_compress", true)
	v.SetDefault("memory_cache_max_size", "256MB")
	v.SetDefault("disk_cache_directory", "./cache")
	v.SetDefault("disk_cache_max_size", "1GB")
	v.SetDefault("disk_cache_app_version", 1)
	v.SetDefault("workers", 4)
	v.SetDefault("default_width", 0)
	v.SetDefault("default_height", 0)
	v.SetDefault("max_width", 4096)
	v.SetDefault("max_height", 4096)
	v.SetDefault("jpeg_quality", 90)
	v.SetDefault("allowed_domains", "*")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("fetch_timeout", "30s")
	v.SetDefault("max_source_size", "32MB")
	v.SetDefault("max_source_pixels", 64_000_000)
	v.SetDefault("local_root", "")
	v.SetDefault("mongo_connection_string", "")
	v.SetDefault("mongo_database", "imload")
	v.SetDefault("minio_endpoint", "")
	v.SetDefault("minio_access_key", "")
	v.SetDefault("minio_secret_key", "")
	v.SetDefault("minio_use_ssl", false)
	v.SetDefault("minio_buckets", "")
	v.SetDefault("invalidation_token", "")
}

func cleanList(values []string) []string {
	cleaned := trimList(values)
	if len(cleaned) == 0 {
		return []string{"*"}
	}

	return cleaned
}

func trimList(values []string) []string {
	trimmed := []string{}
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			trimmed = append(trimmed, value)
		}
	}

	return trimmed
}
