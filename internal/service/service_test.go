package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lol-insights/internal/config"
	"lol-insights/internal/domain"
	"lol-insights/internal/insights"
	"lol-insights/internal/riot"
)

type fakeFetcher struct {
	account    *riot.Account
	accountErr error
	matches    []riot.Match
	historyErr error
	masteries  []riot.MasteryEntry
}

func (f *fakeFetcher) AccountByRiotID(context.Context, string, string) (*riot.Account, error) {
	return f.account, f.accountErr
}

func (f *fakeFetcher) FullMatchHistory(context.Context, string, int, int) ([]riot.Match, error) {
	return f.matches, f.historyErr
}

func (f *fakeFetcher) ChampionMasteries(context.Context, string) ([]riot.MasteryEntry, error) {
	return f.masteries, nil
}

type offNarrator struct{}

func (offNarrator) Summarize(context.Context, *domain.InsightsBundle) (string, error) {
	return "", nil
}
func (offNarrator) Enabled() bool { return false }

type offPredictor struct{}

func (offPredictor) PredictImprovementAreas(context.Context, *domain.InsightsBundle) ([]domain.ImprovementArea, error) {
	return nil, nil
}
func (offPredictor) Fallback(*domain.InsightsBundle) []domain.ImprovementArea { return nil }
func (offPredictor) Enabled() bool                                            { return false }

func match(id string, puuid string, win bool) riot.Match {
	return riot.Match{
		Metadata: riot.MatchMetadata{MatchID: id},
		Info: riot.MatchInfo{
			GameCreation: 1_700_000_000_000,
			GameDuration: 1800,
			Participants: []riot.Participant{{PUUID: puuid, ChampionName: "Ahri", Win: win}},
		},
	}
}

func newTestService(f *fakeFetcher) *InsightsService {
	cfg := &config.Config{MatchHistoryLimit: 100, LookbackDays: 365}
	synth := insights.NewSynthesizer(offNarrator{}, offPredictor{}, zerolog.Nop())
	return NewInsightsService(cfg, f, synth, zerolog.Nop())
}

func TestLookup(t *testing.T) {
	svc := newTestService(&fakeFetcher{
		account: &riot.Account{PUUID: "p1", GameName: "Faker", TagLine: "KR1"},
	})

	identity, err := svc.Lookup(context.Background(), "Faker", "KR1")
	require.NoError(t, err)
	assert.Equal(t, "p1", identity.PUUID)
	assert.Equal(t, "Faker", identity.GameName)
}

func TestLookupPropagatesError(t *testing.T) {
	svc := newTestService(&fakeFetcher{accountErr: &riot.APIError{Kind: riot.KindNotFound}})

	_, err := svc.Lookup(context.Background(), "Nobody", "NA1")
	require.Error(t, err)
	assert.True(t, riot.IsNotFound(err), "classification survives wrapping")
}

func TestHistoryMapsEmptyToErrNoHistory(t *testing.T) {
	svc := newTestService(&fakeFetcher{})

	_, err := svc.History(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestHistoryExcludesForeignMatches(t *testing.T) {
	svc := newTestService(&fakeFetcher{matches: []riot.Match{
		match("m1", "p1", true),
		match("m2", "someone-else", true),
	}})

	history, err := svc.History(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "m1", history[0].MatchID)
}

func TestGenerateInsights(t *testing.T) {
	svc := newTestService(&fakeFetcher{matches: []riot.Match{
		match("m1", "p1", true),
		match("m2", "p1", false),
	}})

	bundle, err := svc.GenerateInsights(context.Background(), "p1", "Faker")
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.ReportID)
	assert.Equal(t, 2, bundle.TotalMatches)
	assert.Equal(t, 50.0, bundle.Overall.WinRate)
}

func TestGenerateInsightsNoHistory(t *testing.T) {
	svc := newTestService(&fakeFetcher{})

	_, err := svc.GenerateInsights(context.Background(), "p1", "Faker")
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestGenerateReport(t *testing.T) {
	var matches []riot.Match
	for i := 0; i < 5; i++ {
		matches = append(matches, match("m"+string(rune('0'+i)), "p1", i%2 == 0))
	}
	svc := newTestService(&fakeFetcher{matches: matches})

	report, err := svc.GenerateReport(context.Background(), "p1", "Faker")
	require.NoError(t, err)
	assert.Equal(t, "year_end", report.ReportType)
	assert.Equal(t, 5, report.TotalMatches)
}

func TestHistoryPropagatesFetchError(t *testing.T) {
	svc := newTestService(&fakeFetcher{historyErr: errors.New("upstream down")})

	_, err := svc.History(context.Background(), "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoHistory)
}
