// Package narrative generates the prose summary section through the
// Anthropic API. The generator is optional: when disabled or failing, the
// synthesizer substitutes its deterministic fallback text.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"lol-insights/internal/config"
	"lol-insights/internal/domain"
)

const systemPrompt = `You are a friendly League of Legends analyst writing a
short season recap for one player. Write 3-5 sentences in second person,
upbeat but honest about weaknesses. Use only the statistics provided; never
invent numbers.`

type Generator struct {
	client  anthropic.Client
	model   anthropic.Model
	enabled bool
	logger  zerolog.Logger
}

func NewGenerator(cfg *config.Config, logger zerolog.Logger) *Generator {
	enabled := cfg.EnableNarrative && cfg.AnthropicAPIKey != ""
	if cfg.EnableNarrative && cfg.AnthropicAPIKey == "" {
		logger.Warn().Msg("narrative enabled but ANTHROPIC_API_KEY is unset, falling back to deterministic summaries")
	}

	return &Generator{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
		model:   anthropic.Model(cfg.NarrativeModel),
		enabled: enabled,
		logger:  logger,
	}
}

func (g *Generator) Enabled() bool { return g.enabled }

// Summarize asks the model for a season recap of the bundle. Any API failure
// is returned to the caller, which degrades to the deterministic fallback.
func (g *Generator) Summarize(ctx context.Context, bundle *domain.InsightsBundle) (string, error) {
	payload, err := json.Marshal(summaryInput(bundle))
	if err != nil {
		return "", fmt.Errorf("failed to encode summary input: %w", err)
	}

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(
				fmt.Sprintf("Player: %s\nSTATS:\n%s", bundle.PlayerName, payload))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("model returned no text content")
	}

	g.logger.Debug().Str("report_id", bundle.ReportID).Int("chars", len(text)).Msg("narrative generated")
	return text, nil
}

// summaryInput trims the bundle to the fields the prompt needs; the full
// bundle is far too large to send.
func summaryInput(bundle *domain.InsightsBundle) map[string]any {
	return map[string]any{
		"total_games":        bundle.Overall.TotalGames,
		"win_rate":           bundle.Overall.WinRate,
		"avg_kda":            bundle.Overall.AvgKDA,
		"best_champions":     bundle.Champions.Best,
		"strengths":          bundle.Strengths,
		"weaknesses":         bundle.Weaknesses,
		"recent_performance": bundle.Recent,
		"playstyle":          bundle.Playstyle,
	}
}
