package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
	"github.com/yanqian/carbon-footprint/internal/infra/config"
	"github.com/yanqian/carbon-footprint/internal/infra/modelsource"
	"github.com/yanqian/carbon-footprint/internal/infra/predcache"
	"github.com/yanqian/carbon-footprint/internal/infra/regression"
)

const modelLoadTimeout = 30 * time.Second

func provideEstimatorConfig(cfg *config.Config) footprint.Config {
	return footprint.Config{
		CacheTTL:    cfg.Cache.TTL,
		ShowRanking: cfg.Estimator.ShowRanking,
	}
}

func provideModelSource(cfg *config.Config, logger *slog.Logger) (regression.Source, error) {
	if cfg.Model.Source == config.ModelSourceS3 {
		s3 := cfg.Model.S3
		return modelsource.NewS3Source(s3.Endpoint, s3.AccessKey, s3.SecretKey, s3.Bucket, s3.Region, s3.Key, logger)
	}
	return modelsource.NewFileSource(cfg.Model.Path), nil
}

func providePredictor(src regression.Source, logger *slog.Logger) footprint.Predictor {
	ctx, cancel := context.WithTimeout(context.Background(), modelLoadTimeout)
	defer cancel()
	return regression.LoadOrUnavailable(ctx, src, logger)
}

func provideCache(cfg *config.Config, logger *slog.Logger) footprint.Cache {
	if !cfg.Cache.Enabled {
		logger.Info("estimate cache disabled")
		return nil
	}
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return predcache.NewMemoryStore(cfg.Cache.MaxEntries)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return predcache.NewMemoryStore(cfg.Cache.MaxEntries)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("valkey estimate cache enabled", "addr", cfg.Cache.Valkey.Addr)
			return predcache.NewValkeyStore(client, cfg.Cache.Valkey.Prefix)
		}
	}
	return predcache.NewMemoryStore(cfg.Cache.MaxEntries)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Cache.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}, nil
}
