package riot

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"lol-insights/internal/constants"
)

// FullMatchHistory assembles up to maxMatches detail payloads for a player,
// walking the id cursor in page-size batches with a time lower bound of
// daysBack days. Per-match detail failures are logged and skipped; an
// id-listing failure or an invalid credential aborts retrieval. On context
// cancellation the matches collected so far are returned with the context
// error.
func (c *Client) FullMatchHistory(ctx context.Context, puuid string, maxMatches, daysBack int) ([]Match, error) {
	var startTime int64
	if daysBack > 0 {
		startTime = time.Now().AddDate(0, 0, -daysBack).Unix()
	}

	c.logger.Info().
		Str("puuid", puuid).
		Int("max_matches", maxMatches).
		Int("days_back", daysBack).
		Msg("fetching match history")

	var collected []Match
	start := 0

	for len(collected) < maxMatches {
		if err := ctx.Err(); err != nil {
			return collected, err
		}

		ids, err := c.MatchIDs(ctx, puuid, start, c.pageSize, startTime, 0, 0)
		if err != nil {
			return collected, fmt.Errorf("failed to list match ids: %w", err)
		}
		if len(ids) == 0 {
			c.logger.Debug().Str("puuid", puuid).Msg("no more matches upstream")
			break
		}

		for _, id := range ids {
			if len(collected) >= maxMatches {
				break
			}
			if err := ctx.Err(); err != nil {
				return collected, err
			}

			detail, err := c.matchDetailWithRetry(ctx, id)
			if err != nil {
				if IsAuthInvalid(err) {
					return collected, err
				}
				c.logger.Warn().Err(err).Str("match_id", id).Msg("skipping match detail")
				continue
			}
			collected = append(collected, *detail)
		}

		// A short page means the upstream cursor is exhausted.
		if len(ids) < c.pageSize {
			break
		}
		start += c.pageSize
	}

	c.logger.Info().Str("puuid", puuid).Int("count", len(collected)).Msg("match history fetched")
	return collected, nil
}

// matchDetailWithRetry retries only the rate-limited classification with
// exponential backoff; every other failure surfaces immediately.
func (c *Client) matchDetailWithRetry(ctx context.Context, matchID string) (*Match, error) {
	var detail *Match
	backoff := retry.WithMaxRetries(constants.DetailRetryAttempts,
		retry.NewExponential(constants.DetailRetryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		d, err := c.MatchDetail(ctx, matchID)
		if err != nil {
			if IsRateLimited(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
