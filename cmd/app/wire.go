//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/climate-advisor/internal/bootstrap"
	"github.com/yanqian/climate-advisor/internal/domain/advisor"
	"github.com/yanqian/climate-advisor/internal/domain/analysis"
	"github.com/yanqian/climate-advisor/internal/domain/climate"
	"github.com/yanqian/climate-advisor/internal/infra/chart"
	"github.com/yanqian/climate-advisor/internal/infra/config"
	"github.com/yanqian/climate-advisor/internal/infra/llm/tokens"
	"github.com/yanqian/climate-advisor/internal/infra/openmeteo"
	httpiface "github.com/yanqian/climate-advisor/internal/interface/http"
	"github.com/yanqian/climate-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAdvisorConfig,
		provideChatClient,
		provideTokenCounter,
		provideForecastClient,
		provideForecastProvider,
		provideGeocodingClient,
		provideRateLimiter,
		chart.NewRenderer,
		advisor.NewService,
		analysis.NewService,
		wire.Bind(new(advisor.TokenCounter), new(*tokens.Counter)),
		wire.Bind(new(climate.Geocoder), new(*openmeteo.GeocodingClient)),
		wire.Bind(new(analysis.ChartRenderer), new(*chart.Renderer)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
