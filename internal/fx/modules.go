package fx

import (
	"lol-insights/internal/cache"
	"lol-insights/internal/config"
	"lol-insights/internal/insights"
	"lol-insights/internal/logger"
	"lol-insights/internal/narrative"
	"lol-insights/internal/predict"
	"lol-insights/internal/riot"
	"lol-insights/internal/server"
	"lol-insights/internal/service"

	"go.uber.org/fx"
)

func ProvideMatchFetcher(c *riot.Client) service.MatchFetcher { return c }

func ProvideNarrator(g *narrative.Generator) insights.Narrator { return g }

func ProvidePredictor(c *predict.Client) insights.Predictor { return c }

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(cache.New),
	// upstream client
	fx.Provide(riot.NewClient),
	fx.Provide(ProvideMatchFetcher),
	// optional collaborators
	fx.Provide(narrative.NewGenerator),
	fx.Provide(predict.NewClient),
	fx.Provide(ProvideNarrator),
	fx.Provide(ProvidePredictor),
	// pipeline
	fx.Provide(insights.NewSynthesizer),
	fx.Provide(service.NewInsightsService),
	// http
	fx.Provide(server.NewServer),
)
