package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lol-insights/internal/cache"
	"lol-insights/internal/config"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := &config.Config{
		RiotAPIKey: "test-key",
		Region:     "americas",
		Platform:   "na1",
		RatePerSec: 100,
		RatePerMin: 1000,
		CacheTTL:   time.Hour,
	}
	c, err := NewClient(cfg, cache.NewMemory(), zerolog.Nop())
	require.NoError(t, err)

	c.regionalBase = baseURL
	c.platformBase = baseURL
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func matchPayload(id string) Match {
	return Match{
		Metadata: MatchMetadata{MatchID: id},
		Info: MatchInfo{
			GameCreation: 1_700_000_000_000,
			GameDuration: 1800,
			QueueID:      420,
			Participants: []Participant{{PUUID: "p1", ChampionName: "Ahri", Kills: 5, Deaths: 2, Assists: 3, Win: true}},
		},
	}
}

func TestErrorClassification(t *testing.T) {
	statuses := map[string]int{
		"/status/404": 404,
		"/status/403": 403,
		"/status/429": 429,
		"/status/500": 500,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statuses[r.URL.Path])
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, err := c.get(ctx, srv.URL+"/status/404", false)
	assert.True(t, IsNotFound(err))

	_, err = c.get(ctx, srv.URL+"/status/403", false)
	assert.True(t, IsAuthInvalid(err))

	_, err = c.get(ctx, srv.URL+"/status/429", false)
	assert.True(t, IsRateLimited(err))

	_, err = c.get(ctx, srv.URL+"/status/500", false)
	require.Error(t, err)
	assert.False(t, IsNotFound(err) || IsAuthInvalid(err) || IsRateLimited(err))
}

func TestAuthHeaderAttached(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Riot-Token")
		writeJSON(t, w, Account{PUUID: "p1", GameName: "Faker", TagLine: "KR1"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	acct, err := c.AccountByRiotID(context.Background(), "Faker", "KR1")
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotToken)
	assert.Equal(t, "p1", acct.PUUID)
}

func TestCacheShortCircuitsSecondCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, Account{PUUID: "p1", GameName: "Faker", TagLine: "KR1"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	first, err := c.get(ctx, srv.URL+"/acct", true)
	require.NoError(t, err)
	second, err := c.get(ctx, srv.URL+"/acct", true)
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load(), "second call must be served from cache")
	assert.Equal(t, first, second, "cached bytes must be identical")
}

func TestCacheOptOut(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, Account{PUUID: "p1"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, err := c.get(ctx, srv.URL+"/acct", false)
	require.NoError(t, err)
	_, err = c.get(ctx, srv.URL+"/acct", false)
	require.NoError(t, err)

	assert.Equal(t, int64(2), calls.Load())
}

// pagedUpstream serves id pages and match details for history tests.
type pagedUpstream struct {
	t       *testing.T
	pages   [][]string
	fail    map[string]int // match id -> status code for detail fetches
	listErr int            // non-zero: status for every id-list call
}

func (u *pagedUpstream) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/ids") {
			if u.listErr != 0 {
				w.WriteHeader(u.listErr)
				return
			}
			start := 0
			fmt.Sscanf(r.URL.Query().Get("start"), "%d", &start)
			pageSize := 0
			fmt.Sscanf(r.URL.Query().Get("count"), "%d", &pageSize)
			page := start / pageSize
			if page >= len(u.pages) {
				writeJSON(u.t, w, []string{})
				return
			}
			writeJSON(u.t, w, u.pages[page])
			return
		}

		parts := strings.Split(r.URL.Path, "/")
		id := parts[len(parts)-1]
		if status, ok := u.fail[id]; ok {
			w.WriteHeader(status)
			return
		}
		writeJSON(u.t, w, matchPayload(id))
	})
}

func TestHistoryTerminatesOnShortPage(t *testing.T) {
	upstream := &pagedUpstream{t: t, pages: [][]string{{"m1", "m2"}, {"m3"}}}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.pageSize = 2

	matches, err := c.FullMatchHistory(context.Background(), "p1", 10, 30)
	require.NoError(t, err)
	assert.Len(t, matches, 3, "short second page must end pagination before maxMatches")
}

func TestHistoryStopsAtMaxMatches(t *testing.T) {
	upstream := &pagedUpstream{t: t, pages: [][]string{{"m1", "m2"}, {"m3", "m4"}, {"m5", "m6"}}}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.pageSize = 2

	matches, err := c.FullMatchHistory(context.Background(), "p1", 3, 30)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "m3", matches[2].Metadata.MatchID)
}

func TestHistorySkipsFailedDetails(t *testing.T) {
	upstream := &pagedUpstream{
		t:     t,
		pages: [][]string{{"m1", "m2", "m3"}},
		fail:  map[string]int{"m2": 404},
	}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.pageSize = 3

	matches, err := c.FullMatchHistory(context.Background(), "p1", 10, 30)
	require.NoError(t, err, "one bad item must not discard the batch")
	require.Len(t, matches, 2)
	assert.Equal(t, "m1", matches[0].Metadata.MatchID)
	assert.Equal(t, "m3", matches[1].Metadata.MatchID)
}

func TestHistoryAbortsOnAuthFailure(t *testing.T) {
	upstream := &pagedUpstream{
		t:     t,
		pages: [][]string{{"m1", "m2"}},
		fail:  map[string]int{"m2": 403},
	}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.pageSize = 2

	matches, err := c.FullMatchHistory(context.Background(), "p1", 10, 30)
	require.Error(t, err)
	assert.True(t, IsAuthInvalid(err))
	assert.Len(t, matches, 1, "records collected before the abort are returned")
}

func TestHistoryPropagatesListFailure(t *testing.T) {
	upstream := &pagedUpstream{t: t, listErr: 500}
	srv := httptest.NewServer(upstream.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.pageSize = 2

	_, err := c.FullMatchHistory(context.Background(), "p1", 10, 30)
	require.Error(t, err, "a page-list failure aborts history retrieval")
}

func TestDetailRetriesRateLimited(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(429)
			return
		}
		writeJSON(t, w, matchPayload("m1"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	detail, err := c.matchDetailWithRetry(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", detail.Metadata.MatchID)
	assert.Equal(t, int64(3), calls.Load())
}
