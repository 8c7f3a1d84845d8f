//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/carbon-footprint/internal/bootstrap"
	"github.com/yanqian/carbon-footprint/internal/domain/footprint"
	"github.com/yanqian/carbon-footprint/internal/infra/config"
	httpiface "github.com/yanqian/carbon-footprint/internal/interface/http"
	"github.com/yanqian/carbon-footprint/pkg/logger"
	"github.com/yanqian/carbon-footprint/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewPredictionStats,
		provideEstimatorConfig,
		provideModelSource,
		providePredictor,
		provideCache,
		footprint.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
