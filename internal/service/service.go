// Package service orchestrates the pipeline: resolve a player, pull their
// history, normalize it and hand it to the synthesizer.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"lol-insights/internal/config"
	"lol-insights/internal/domain"
	"lol-insights/internal/insights"
	"lol-insights/internal/riot"
	"lol-insights/internal/stats"
)

// ErrNoHistory marks a player with zero analyzable matches in the lookback
// window. Handlers map it to a not-found response.
var ErrNoHistory = errors.New("no match history found")

// MatchFetcher is the slice of the riot client the service depends on.
type MatchFetcher interface {
	AccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	FullMatchHistory(ctx context.Context, puuid string, maxMatches, daysBack int) ([]riot.Match, error)
	ChampionMasteries(ctx context.Context, puuid string) ([]riot.MasteryEntry, error)
}

type InsightsService struct {
	fetcher     MatchFetcher
	synthesizer *insights.Synthesizer

	maxMatches   int
	lookbackDays int

	logger zerolog.Logger
}

func NewInsightsService(cfg *config.Config, fetcher MatchFetcher, synthesizer *insights.Synthesizer, logger zerolog.Logger) *InsightsService {
	return &InsightsService{
		fetcher:      fetcher,
		synthesizer:  synthesizer,
		maxMatches:   cfg.MatchHistoryLimit,
		lookbackDays: cfg.LookbackDays,
		logger:       logger,
	}
}

// Lookup resolves a riot id to a stable player identity.
func (s *InsightsService) Lookup(ctx context.Context, gameName, tagLine string) (*domain.PlayerIdentity, error) {
	account, err := s.fetcher.AccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player %s#%s: %w", gameName, tagLine, err)
	}
	return &domain.PlayerIdentity{
		PUUID:    account.PUUID,
		GameName: account.GameName,
		TagLine:  account.TagLine,
	}, nil
}

// History fetches and normalizes a player's match history. Partial upstream
// failures already dropped inside the fetcher do not surface here; zero
// records map to ErrNoHistory.
func (s *InsightsService) History(ctx context.Context, puuid string) (domain.MatchHistory, error) {
	matches, err := s.fetcher.FullMatchHistory(ctx, puuid, s.maxMatches, s.lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match history: %w", err)
	}

	history := stats.BuildHistory(matches, puuid)
	if len(history) == 0 {
		return nil, ErrNoHistory
	}

	s.logger.Debug().Str("puuid", puuid).Int("records", len(history)).Msg("history normalized")
	return history, nil
}

// GenerateInsights runs the full pipeline for one player.
func (s *InsightsService) GenerateInsights(ctx context.Context, puuid, playerName string) (*domain.InsightsBundle, error) {
	history, err := s.History(ctx, puuid)
	if err != nil {
		return nil, err
	}

	bundle := s.synthesizer.Synthesize(ctx, domain.PlayerIdentity{PUUID: puuid}, playerName, history)
	s.logger.Info().
		Str("puuid", puuid).
		Str("report_id", bundle.ReportID).
		Int("matches", bundle.TotalMatches).
		Msg("insights generated")
	return bundle, nil
}

// GenerateReport runs the pipeline and wraps the result in the year-end
// retrospective sections.
func (s *InsightsService) GenerateReport(ctx context.Context, puuid, playerName string) (*domain.ExtendedReport, error) {
	history, err := s.History(ctx, puuid)
	if err != nil {
		return nil, err
	}

	report := s.synthesizer.YearEndReport(ctx, domain.PlayerIdentity{PUUID: puuid}, playerName, history)
	s.logger.Info().
		Str("puuid", puuid).
		Str("report_id", report.ReportID).
		Msg("year-end report generated")
	return report, nil
}

// Masteries proxies champion mastery standings for a player.
func (s *InsightsService) Masteries(ctx context.Context, puuid string) ([]riot.MasteryEntry, error) {
	entries, err := s.fetcher.ChampionMasteries(ctx, puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champion masteries: %w", err)
	}
	return entries, nil
}
