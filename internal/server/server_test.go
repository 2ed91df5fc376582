package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lol-insights/internal/config"
	"lol-insights/internal/domain"
	"lol-insights/internal/insights"
	"lol-insights/internal/riot"
	"lol-insights/internal/service"
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

func newTestHandler(f *fakeFetcher) http.Handler {
	cfg := &config.Config{MatchHistoryLimit: 100, LookbackDays: 365}
	synth := insights.NewSynthesizer(offNarrator{}, offPredictor{}, zerolog.Nop())
	svc := service.NewInsightsService(cfg, f, synth, zerolog.Nop())
	return NewServer(svc, zerolog.Nop()).Handler()
}

func playedMatch(id string, win bool) riot.Match {
	return riot.Match{
		Metadata: riot.MatchMetadata{MatchID: id},
		Info: riot.MatchInfo{
			GameCreation: 1_700_000_000_000,
			GameDuration: 1800,
			Participants: []riot.Participant{{PUUID: "p1", ChampionName: "Ahri", Win: win}},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLookupEndpoint(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{
		account: &riot.Account{PUUID: "p1", GameName: "Faker", TagLine: "KR1"},
	})

	body := strings.NewReader(`{"game_name":"Faker","tag_line":"KR1"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/player/lookup", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"puuid":"p1"`)
}

func TestLookupValidatesBody(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{})

	body := strings.NewReader(`{"game_name":"Faker"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/player/lookup", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookupUnknownPlayerIs404(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{
		accountErr: &riot.APIError{Kind: riot.KindNotFound, StatusCode: 404},
	})

	body := strings.NewReader(`{"game_name":"Nobody","tag_line":"NA1"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/player/lookup", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInsightsEndpoint(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{
		matches: []riot.Match{playedMatch("m1", true), playedMatch("m2", false)},
	})

	body := strings.NewReader(`{"player_name":"Faker"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/player/p1/insights", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_matches_analyzed":2`)
	assert.Contains(t, rec.Body.String(), `"win_rate":50`)
}

func TestInsightsNoHistoryIs404(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/player/p1/insights", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no match history found")
}

func TestInsightsAuthFailureIs502(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{
		historyErr: &riot.APIError{Kind: riot.KindAuthInvalid, StatusCode: 403},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/player/p1/insights", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestReportEndpoint(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{
		matches: []riot.Match{playedMatch("m1", true), playedMatch("m2", true), playedMatch("m3", false)},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/player/p1/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"report_type":"year_end"`)
	assert.Contains(t, rec.Body.String(), `"fun_stats"`)
}

func TestMasteriesEndpoint(t *testing.T) {
	handler := newTestHandler(&fakeFetcher{
		masteries: []riot.MasteryEntry{{ChampionID: 103, ChampionPoints: 250000}},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/player/p1/masteries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"championId":103`)
}
