package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Model artifact sources.
const (
	ModelSourceFile = "file"
	ModelSourceS3   = "s3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Model     ModelConfig     `yaml:"model"`
	Estimator EstimatorConfig `yaml:"estimator"`
	Cache     CacheConfig     `yaml:"cache"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// ModelConfig points at the serialized regression artifact.
type ModelConfig struct {
	Source string   `yaml:"source"`
	Path   string   `yaml:"path"`
	S3     S3Config `yaml:"s3"`
}

// S3Config locates the artifact in S3-compatible object storage.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// EstimatorConfig toggles presentation extras.
type EstimatorConfig struct {
	ShowRanking bool `yaml:"showRanking"`
}

// CacheConfig controls the estimate cache.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"maxEntries"`
	Valkey     ValkeyConfig  `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("MODEL_SOURCE"); v != "" {
		cfg.Model.Source = strings.ToLower(v)
	}
	if v := os.Getenv("MODEL_PATH"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("MODEL_S3_ENDPOINT"); v != "" {
		cfg.Model.S3.Endpoint = v
	}
	if v := os.Getenv("MODEL_S3_ACCESS_KEY"); v != "" {
		cfg.Model.S3.AccessKey = v
	}
	if v := os.Getenv("MODEL_S3_SECRET_KEY"); v != "" {
		cfg.Model.S3.SecretKey = v
	}
	if v := os.Getenv("MODEL_S3_BUCKET"); v != "" {
		cfg.Model.S3.Bucket = v
	}
	if v := os.Getenv("MODEL_S3_REGION"); v != "" {
		cfg.Model.S3.Region = v
	}
	if v := os.Getenv("MODEL_S3_KEY"); v != "" {
		cfg.Model.S3.Key = v
	}
	if v := os.Getenv("ESTIMATOR_SHOW_RANKING"); v != "" {
		cfg.Estimator.ShowRanking = parseBool(v)
	}
	if v := os.Getenv("CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("CACHE_MAX_ENTRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Cache.MaxEntries = parsed
		}
	}
	if v := os.Getenv("CACHE_VALKEY_ENABLED"); v != "" {
		cfg.Cache.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("CACHE_VALKEY_ADDR"); v != "" {
		cfg.Cache.Valkey.Addr = v
	}
	if v := os.Getenv("CACHE_VALKEY_PREFIX"); v != "" {
		cfg.Cache.Valkey.Prefix = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Model: ModelConfig{
			Source: ModelSourceFile,
			Path:   "models/carbon_model.json",
		},
		Estimator: EstimatorConfig{
			ShowRanking: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Hour,
			MaxEntries: 10000,
			Valkey: ValkeyConfig{
				Enabled: false,
				Prefix:  "carbon",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch c.Model.Source {
	case ModelSourceFile:
		if strings.TrimSpace(c.Model.Path) == "" {
			return errors.New("model.path cannot be empty when model.source is file")
		}
	case ModelSourceS3:
		if strings.TrimSpace(c.Model.S3.Endpoint) == "" {
			return errors.New("model.s3.endpoint cannot be empty when model.source is s3")
		}
		if strings.TrimSpace(c.Model.S3.Bucket) == "" || strings.TrimSpace(c.Model.S3.Key) == "" {
			return errors.New("model.s3.bucket and model.s3.key are required when model.source is s3")
		}
	default:
		return fmt.Errorf("model.source must be %q or %q", ModelSourceFile, ModelSourceS3)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl cannot be negative")
	}
	if c.Cache.MaxEntries < 0 {
		return errors.New("cache.maxEntries cannot be negative")
	}
	if c.Cache.Valkey.Enabled && strings.TrimSpace(c.Cache.Valkey.Addr) == "" {
		return errors.New("cache.valkey.addr cannot be empty when valkey cache is enabled")
	}
	return nil
}
