package insights

import (
	"fmt"
	"strings"

	"lol-insights/internal/domain"
)

// FallbackNarrative is the deterministic summary used whenever the narrative
// collaborator is unavailable. It is a pure function of the bundle.
func FallbackNarrative(bundle *domain.InsightsBundle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s played %d games with a %.2f%% win rate and a %.2f average KDA.",
		bundle.PlayerName, bundle.Overall.TotalGames, bundle.Overall.WinRate, bundle.Overall.AvgKDA)

	if len(bundle.Champions.Best) > 0 {
		best := bundle.Champions.Best[0]
		fmt.Fprintf(&b, " Their strongest champion was %s at %.2f%% over %d games.",
			best.Champion, best.WinRate, best.Games)
	}

	switch bundle.Recent.Trend {
	case domain.TrendImproving:
		fmt.Fprintf(&b, " Recent form is trending up: %.2f%% over the last %d games.",
			bundle.Recent.WinRate, bundle.Recent.GamesAnalyzed)
	case domain.TrendDeclining:
		fmt.Fprintf(&b, " Recent form has dipped to %.2f%% over the last %d games.",
			bundle.Recent.WinRate, bundle.Recent.GamesAnalyzed)
	}

	if len(bundle.Weaknesses) > 0 {
		fmt.Fprintf(&b, " Biggest area to work on: %s.", strings.ToLower(bundle.Weaknesses[0].Metric))
	}

	return b.String()
}
