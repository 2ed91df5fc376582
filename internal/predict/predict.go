// Package predict scores improvement areas through an external model
// endpoint. Like the narrative generator it is optional and degrades to a
// deterministic fallback whenever the endpoint is unreachable.
package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"lol-insights/internal/config"
	"lol-insights/internal/constants"
	"lol-insights/internal/domain"
)

type Client struct {
	endpoint string
	enabled  bool
	http     *fasthttp.Client
	logger   zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	enabled := cfg.EnablePrediction && cfg.PredictionEndpoint != ""
	if cfg.EnablePrediction && cfg.PredictionEndpoint == "" {
		logger.Warn().Msg("prediction enabled but PREDICTION_ENDPOINT is unset, falling back to static predictions")
	}

	return &Client{
		endpoint: cfg.PredictionEndpoint,
		enabled:  enabled,
		http: &fasthttp.Client{
			ReadTimeout:  constants.ExternalAPITimeout,
			WriteTimeout: constants.ExternalAPITimeout,
		},
		logger: logger,
	}
}

func (c *Client) Enabled() bool { return c.enabled }

// features is the flat input vector sent to the model endpoint.
type features struct {
	WinRate        float64 `json:"win_rate"`
	AvgKDA         float64 `json:"avg_kda"`
	AvgCSPerMinute float64 `json:"avg_cs_per_minute"`
	AvgVisionScore float64 `json:"avg_vision_score"`
	AvgDamage      float64 `json:"avg_damage"`
	TotalGames     int     `json:"total_games"`
}

type predictionResponse struct {
	Predictions map[string]float64 `json:"predictions"`
}

// PredictImprovementAreas posts the bundle's aggregate features and ranks the
// returned area scores. Errors surface to the caller, which substitutes
// Fallback.
func (c *Client) PredictImprovementAreas(ctx context.Context, bundle *domain.InsightsBundle) ([]domain.ImprovementArea, error) {
	body, err := json.Marshal(features{
		WinRate:        bundle.Overall.WinRate,
		AvgKDA:         bundle.Overall.AvgKDA,
		AvgCSPerMinute: bundle.Overall.AvgCSPerMinute,
		AvgVisionScore: bundle.Overall.AvgVisionScore,
		AvgDamage:      bundle.Overall.AvgDamageDealt,
		TotalGames:     bundle.Overall.TotalGames,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("prediction endpoint returned status %d", resp.StatusCode())
	}

	var parsed predictionResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}
	if len(parsed.Predictions) == 0 {
		return nil, fmt.Errorf("prediction response carried no scores")
	}

	return rankAreas(parsed.Predictions), nil
}

// Fallback is the static neutral prediction: every area at 0.5 confidence.
func (c *Client) Fallback(*domain.InsightsBundle) []domain.ImprovementArea {
	return rankAreas(map[string]float64{
		"mechanics":        0.5,
		"decision_making":  0.5,
		"vision_control":   0.5,
		"champion_mastery": 0.5,
	})
}

// rankAreas orders by confidence descending with an area-name tiebreak, so
// equal score maps always rank identically.
func rankAreas(scores map[string]float64) []domain.ImprovementArea {
	out := make([]domain.ImprovementArea, 0, len(scores))
	for area, confidence := range scores {
		priority := "low"
		switch {
		case confidence > 0.7:
			priority = "high"
		case confidence > 0.4:
			priority = "medium"
		}
		out = append(out, domain.ImprovementArea{
			Area:       area,
			Confidence: confidence,
			Priority:   priority,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Area < out[j].Area
	})
	return out
}
