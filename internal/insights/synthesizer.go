// Package insights turns a normalized match history into the full analysis
// bundle: aggregates, groupings, trends, rule-derived findings and the
// optional narrative and prediction enrichments.
package insights

import (
	"context"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"lol-insights/internal/domain"
	"lol-insights/internal/stats"
)

// Narrator produces a prose summary of a finished bundle. Implementations
// must not fail the request: on any upstream problem they return an error and
// the synthesizer falls back to FallbackNarrative.
type Narrator interface {
	Summarize(ctx context.Context, bundle *domain.InsightsBundle) (string, error)
	Enabled() bool
}

// Predictor scores improvement areas for a finished bundle. Same contract as
// Narrator: errors degrade to the deterministic fallback, never to a failed
// request.
type Predictor interface {
	PredictImprovementAreas(ctx context.Context, bundle *domain.InsightsBundle) ([]domain.ImprovementArea, error)
	Fallback(bundle *domain.InsightsBundle) []domain.ImprovementArea
	Enabled() bool
}

type Synthesizer struct {
	narrator  Narrator
	predictor Predictor
	newID     func() string
	now       func() time.Time
	logger    zerolog.Logger
}

func NewSynthesizer(narrator Narrator, predictor Predictor, logger zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		narrator:  narrator,
		predictor: predictor,
		newID:     func() string { return gonanoid.Must(12) },
		now:       time.Now,
		logger:    logger,
	}
}

// Synthesize computes the full analysis bundle for one player. The result is
// a pure function of the history except for the report id, the timestamp and
// the enrichments.
func (s *Synthesizer) Synthesize(ctx context.Context, identity domain.PlayerIdentity, playerName string, history domain.MatchHistory) *domain.InsightsBundle {
	overall := stats.Aggregate(history)
	weaknesses := Weaknesses(history)
	champions := stats.BuildChampionInsights(history)

	bundle := &domain.InsightsBundle{
		ReportID:     s.newID(),
		PUUID:        identity.PUUID,
		PlayerName:   playerName,
		AnalyzedAt:   s.now().UTC(),
		TotalMatches: len(history),
		Overall:      overall,
		Champions:    champions,
		Roles:        stats.GroupByRole(history),
		Trends:       stats.BuildTrendReport(history),
		Strengths:    Strengths(overall),
		Weaknesses:   weaknesses,
		Achievements: Achievements(history, overall),
		Playstyle:    stats.AnalyzePlaystyle(history),
		Recent:       RecentPerformance(history, overall),
		CoachingTips: CoachingTips(weaknesses, champions.Best),
	}

	s.enrich(ctx, bundle)
	return bundle
}

// YearEndReport wraps a bundle with the retrospective sections.
func (s *Synthesizer) YearEndReport(ctx context.Context, identity domain.PlayerIdentity, playerName string, history domain.MatchHistory) *domain.ExtendedReport {
	bundle := s.Synthesize(ctx, identity, playerName, history)

	return &domain.ExtendedReport{
		InsightsBundle:     *bundle,
		ReportType:         "year_end",
		MemorableMoments:   MemorableMoments(history),
		MonthlyProgression: stats.MonthlyTrends(history),
		TopAchievements:    TopAchievements(bundle.Overall),
		FunStats:           stats.BuildFunStats(history),
		Growth:             stats.Growth(history),
	}
}

// enrich runs the optional collaborators concurrently. Failures downgrade to
// deterministic fallbacks and never surface to the caller.
func (s *Synthesizer) enrich(ctx context.Context, bundle *domain.InsightsBundle) {
	g, gctx := errgroup.WithContext(ctx)

	if s.narrator.Enabled() {
		g.Go(func() error {
			summary, err := s.narrator.Summarize(gctx, bundle)
			if err != nil {
				s.logger.Warn().Err(err).Str("report_id", bundle.ReportID).Msg("narrative generation failed, using fallback")
				summary = FallbackNarrative(bundle)
			}
			bundle.Narrative = summary
			return nil
		})
	}

	if s.predictor.Enabled() {
		g.Go(func() error {
			areas, err := s.predictor.PredictImprovementAreas(gctx, bundle)
			if err != nil {
				s.logger.Warn().Err(err).Str("report_id", bundle.ReportID).Msg("prediction failed, using fallback")
				areas = s.predictor.Fallback(bundle)
			}
			bundle.ImprovementAreas = areas
			return nil
		})
	}

	// The goroutines write disjoint fields and never return errors.
	_ = g.Wait()
}
