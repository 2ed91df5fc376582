// Package riot is the fetch client for the upstream match API: routing
// resolution, dual-window rate limiting, response caching and error
// classification live here.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"lol-insights/internal/cache"
	"lol-insights/internal/config"
	"lol-insights/internal/constants"
	"lol-insights/internal/ratelimit"
)

var regionalBaseURLs = map[string]string{
	"americas": "https://americas.api.riotgames.com",
	"asia":     "https://asia.api.riotgames.com",
	"europe":   "https://europe.api.riotgames.com",
	"sea":      "https://sea.api.riotgames.com",
}

var platformBaseURLs = map[string]string{
	"na1": "https://na1.api.riotgames.com",
	"euw1": "https://euw1.api.riotgames.com",
	"eun1": "https://eun1.api.riotgames.com",
	"kr":   "https://kr.api.riotgames.com",
	"br1":  "https://br1.api.riotgames.com",
	"la1":  "https://la1.api.riotgames.com",
	"la2":  "https://la2.api.riotgames.com",
	"oc1":  "https://oc1.api.riotgames.com",
	"tr1":  "https://tr1.api.riotgames.com",
	"ru":   "https://ru.api.riotgames.com",
	"jp1":  "https://jp1.api.riotgames.com",
	"ph2":  "https://ph2.api.riotgames.com",
	"sg2":  "https://sg2.api.riotgames.com",
	"th2":  "https://th2.api.riotgames.com",
	"tw2":  "https://tw2.api.riotgames.com",
	"vn2":  "https://vn2.api.riotgames.com",
}

// Client holds one cache and one limiter; both are internally synchronized so
// a single instance can be shared by concurrent requests.
type Client struct {
	apiKey       string
	regionalBase string
	platformBase string

	http     *fasthttp.Client
	limiter  *ratelimit.DualWindow
	cache    cache.Cache
	cacheTTL time.Duration
	pageSize int

	logger zerolog.Logger
}

func NewClient(cfg *config.Config, store cache.Cache, logger zerolog.Logger) (*Client, error) {
	regionalBase, ok := regionalBaseURLs[cfg.Region]
	if !ok {
		return nil, fmt.Errorf("invalid region: %s", cfg.Region)
	}
	platformBase, ok := platformBaseURLs[cfg.Platform]
	if !ok {
		return nil, fmt.Errorf("invalid platform: %s", cfg.Platform)
	}

	return &Client{
		apiKey:       cfg.RiotAPIKey,
		regionalBase: regionalBase,
		platformBase: platformBase,
		http: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter:  ratelimit.New(cfg.RatePerSec, cfg.RatePerMin),
		cache:    store,
		cacheTTL: cfg.CacheTTL,
		pageSize: constants.MatchIDPageSize,
		logger:   logger,
	}, nil
}

// AccountByRiotID resolves a display handle (GameName#TagLine) on the
// regional scope.
func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalBase, url.PathEscape(gameName), url.PathEscape(tagLine))
	return getJSON[Account](ctx, c, u, true)
}

// SummonerByName resolves a legacy summoner name on the platform scope.
func (c *Client) SummonerByName(ctx context.Context, name string) (*Summoner, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-name/%s",
		c.platformBase, url.PathEscape(name))
	return getJSON[Summoner](ctx, c, u, true)
}

// MatchIDs lists match ids for a player. count is capped at the upstream
// maximum of 100. startTime/endTime are epoch seconds; zero means unset.
func (c *Client) MatchIDs(ctx context.Context, puuid string, start, count int, startTime, endTime int64, queue int) ([]string, error) {
	if count > constants.MatchIDPageSize {
		count = constants.MatchIDPageSize
	}

	var params []string
	if start > 0 {
		params = append(params, fmt.Sprintf("start=%d", start))
	}
	if count > 0 {
		params = append(params, fmt.Sprintf("count=%d", count))
	}
	if startTime > 0 {
		params = append(params, fmt.Sprintf("startTime=%d", startTime))
	}
	if endTime > 0 {
		params = append(params, fmt.Sprintf("endTime=%d", endTime))
	}
	if queue > 0 {
		params = append(params, fmt.Sprintf("queue=%d", queue))
	}

	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids", c.regionalBase, url.PathEscape(puuid))
	if len(params) > 0 {
		u += "?" + strings.Join(params, "&")
	}

	ids, err := getJSON[[]string](ctx, c, u, true)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

// MatchDetail fetches the full detail payload for one match id.
func (c *Client) MatchDetail(ctx context.Context, matchID string) (*Match, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalBase, url.PathEscape(matchID))
	return getJSON[Match](ctx, c, u, true)
}

// MatchTimeline fetches the event timeline for one match id.
func (c *Client) MatchTimeline(ctx context.Context, matchID string) (*Timeline, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s/timeline", c.regionalBase, url.PathEscape(matchID))
	return getJSON[Timeline](ctx, c, u, true)
}

// ChampionMasteries fetches mastery data on the platform scope.
func (c *Client) ChampionMasteries(ctx context.Context, puuid string) ([]MasteryEntry, error) {
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s",
		c.platformBase, url.PathEscape(puuid))
	entries, err := getJSON[[]MasteryEntry](ctx, c, u, true)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func getJSON[T any](ctx context.Context, c *Client, url string, useCache bool) (*T, error) {
	body, err := c.get(ctx, url, useCache)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return &result, nil
}

// get performs one cached, rate-limited request. The cache short-circuits
// before the limiter so hits never spend rate budget.
func (c *Client) get(ctx context.Context, url string, useCache bool) ([]byte, error) {
	if useCache {
		if body, ok := c.cache.Get(ctx, url); ok {
			c.logger.Debug().Str("url", url).Msg("cache hit")
			return body, nil
		}
	}

	if err := c.limiter.Admit(ctx); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, &APIError{Kind: KindTransport, URL: url, Err: err}
	}

	status := resp.StatusCode()
	if status != fasthttp.StatusOK {
		apiErr := classify(status, url)
		c.logger.Debug().
			Int("status", status).
			Str("kind", apiErr.Kind.String()).
			Str("url", url).
			Msg("upstream error")
		if apiErr.Kind == KindRateLimited {
			if retryAfter := string(resp.Header.Peek("Retry-After")); retryAfter != "" {
				if secs, err := strconv.Atoi(retryAfter); err == nil {
					c.logger.Warn().Int("retry_after_s", secs).Msg("rate limited by upstream")
				}
			}
		}
		return nil, apiErr
	}

	// The response buffer is pooled; copy before release.
	body := append([]byte(nil), resp.Body()...)

	if useCache {
		if err := c.cache.Set(ctx, url, body, c.cacheTTL); err != nil {
			c.logger.Warn().Err(err).Str("url", url).Msg("failed to cache response")
		}
	}
	return body, nil
}
