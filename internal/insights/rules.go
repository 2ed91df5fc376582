package insights

import (
	"fmt"
	"math"

	"lol-insights/internal/constants"
	"lol-insights/internal/domain"
	"lol-insights/internal/stats"
)

// The rule thresholds below work on unrounded means; the rounded values in
// AggregateStats are presentation only and would blur the boundaries.

// Weaknesses applies the improvement-area rules over a record set. An empty
// history yields no weaknesses.
func Weaknesses(history domain.MatchHistory) []domain.Weakness {
	if len(history) == 0 {
		return nil
	}

	n := float64(len(history))
	var deaths, vision int
	var csPerMin float64
	var damage, lossDamage, lossCount int
	for i := range history {
		m := &history[i]
		deaths += m.Deaths
		vision += m.VisionScore
		csPerMin += m.CSPerMinute
		damage += m.TotalDamageToChampions
		if !m.Win {
			lossDamage += m.TotalDamageToChampions
			lossCount++
		}
	}

	var out []domain.Weakness

	avgDeaths := float64(deaths) / n
	if avgDeaths > 6 {
		severity := "medium"
		if avgDeaths > 8 {
			severity = "high"
		}
		out = append(out, domain.Weakness{
			Key:        "high_deaths",
			Metric:     "Average Deaths",
			Value:      round2(avgDeaths),
			Severity:   severity,
			Suggestion: "Focus on positioning and map awareness to reduce deaths",
		})
	}

	avgVision := float64(vision) / n
	if avgVision < 30 {
		severity := "medium"
		if avgVision < 20 {
			severity = "high"
		}
		out = append(out, domain.Weakness{
			Key:        "low_vision",
			Metric:     "Average Vision Score",
			Value:      round1(avgVision),
			Severity:   severity,
			Suggestion: "Buy more control wards and place trinket wards more frequently",
		})
	}

	avgCS := csPerMin / n
	if avgCS < 5 {
		out = append(out, domain.Weakness{
			Key:        "low_cs",
			Metric:     "CS per Minute",
			Value:      round2(avgCS),
			Severity:   "medium",
			Suggestion: "Practice last-hitting and wave management in practice tool",
		})
	}

	if lossCount > 0 {
		avgLossDamage := float64(lossDamage) / float64(lossCount)
		if avgLossDamage < float64(damage)/n*0.7 {
			out = append(out, domain.Weakness{
				Key:        "low_damage_in_losses",
				Metric:     "Damage in Lost Games",
				Value:      math.Round(avgLossDamage),
				Severity:   "medium",
				Suggestion: "Stay more active in teamfights even when behind",
			})
		}
	}

	return out
}

// Strengths applies the standout-metric rules to the overall aggregate.
func Strengths(agg domain.AggregateStats) []domain.Strength {
	if agg.TotalGames == 0 {
		return nil
	}

	var out []domain.Strength
	if agg.WinRate >= 52 {
		out = append(out, domain.Strength{
			Key:         "win_rate",
			Metric:      "Win Rate",
			Value:       agg.WinRate,
			Description: fmt.Sprintf("Strong %.2f%% win rate shows consistent performance", agg.WinRate),
		})
	}
	if agg.AvgKDA >= 3.0 {
		out = append(out, domain.Strength{
			Key:         "kda",
			Metric:      "KDA",
			Value:       agg.AvgKDA,
			Description: fmt.Sprintf("Excellent %.2f KDA demonstrates strong mechanics", agg.AvgKDA),
		})
	}
	if agg.AvgVisionScore >= 35 {
		out = append(out, domain.Strength{
			Key:         "vision",
			Metric:      "Vision Score",
			Value:       agg.AvgVisionScore,
			Description: fmt.Sprintf("Outstanding vision control with %.1f average score", agg.AvgVisionScore),
		})
	}
	if agg.AvgCSPerMinute >= 6 {
		out = append(out, domain.Strength{
			Key:         "cs",
			Metric:      "CS per Minute",
			Value:       agg.AvgCSPerMinute,
			Description: fmt.Sprintf("Strong farming with %.2f CS/min", agg.AvgCSPerMinute),
		})
	}
	if agg.TotalPentaKills > 0 {
		out = append(out, domain.Strength{
			Key:         "pentakills",
			Metric:      "Pentakills",
			Value:       float64(agg.TotalPentaKills),
			Description: fmt.Sprintf("Achieved %d pentakill(s) this year!", agg.TotalPentaKills),
		})
	}
	return out
}

// Achievements applies the badge rules over the history and its aggregate.
func Achievements(history domain.MatchHistory, agg domain.AggregateStats) []domain.Achievement {
	var out []domain.Achievement

	if agg.TotalPentaKills > 0 {
		out = append(out, domain.Achievement{
			Title:       "Legendary Pentakill",
			Description: fmt.Sprintf("Achieved %d pentakill(s)!", agg.TotalPentaKills),
			Icon:        "🏆",
			Rarity:      "legendary",
		})
	}
	if agg.TotalQuadraKills >= 5 {
		out = append(out, domain.Achievement{
			Title:       "Quadra Master",
			Description: fmt.Sprintf("Got %d quadra kills", agg.TotalQuadraKills),
			Icon:        "⭐",
			Rarity:      "epic",
		})
	}

	if streak := stats.MaxWinStreak(history); streak >= 5 {
		rarity := "rare"
		if streak >= 10 {
			rarity = "epic"
		}
		out = append(out, domain.Achievement{
			Title:       fmt.Sprintf("%d-Game Win Streak", streak),
			Description: fmt.Sprintf("Won %d games in a row!", streak),
			Icon:        "🔥",
			Rarity:      rarity,
		})
	}

	if agg.TotalGames >= 100 {
		out = append(out, domain.Achievement{
			Title:       "Dedicated Player",
			Description: fmt.Sprintf("Played %d games this year", agg.TotalGames),
			Icon:        "🎮",
			Rarity:      "common",
		})
	}

	if agg.MaxDamageDealt >= 50000 {
		out = append(out, domain.Achievement{
			Title:       "Damage Dealer",
			Description: fmt.Sprintf("Dealt %d damage in a single game", agg.MaxDamageDealt),
			Icon:        "💥",
			Rarity:      "rare",
		})
	}

	return out
}

// TopAchievements is the short-form summary list for the year-end report.
func TopAchievements(agg domain.AggregateStats) []string {
	var out []string
	if agg.WinRate >= constants.HighWinRateThreshold {
		out = append(out, fmt.Sprintf("🏆 Elite %.2f%% Win Rate", agg.WinRate))
	}
	if agg.TotalPentaKills > 0 {
		out = append(out, fmt.Sprintf("⚡ %d Pentakill(s)", agg.TotalPentaKills))
	}
	if agg.TotalGames >= 200 {
		out = append(out, fmt.Sprintf("🎮 %d Games Played", agg.TotalGames))
	}
	if agg.AvgKDA >= 3.5 {
		out = append(out, fmt.Sprintf("💎 %.2f Average KDA", agg.AvgKDA))
	}
	return out
}

// MemorableMoments picks the best game, the highest-damage game and the first
// pentakill from the history.
func MemorableMoments(history domain.MatchHistory) []domain.MemorableMoment {
	if len(history) == 0 {
		return nil
	}

	var out []domain.MemorableMoment

	best := &history[0]
	for i := range history {
		if history[i].KDA > best.KDA {
			best = &history[i]
		}
	}
	out = append(out, domain.MemorableMoment{
		Title:       "Best Game",
		Description: fmt.Sprintf("%s: %d/%d/%d KDA", best.ChampionName, best.Kills, best.Deaths, best.Assists),
		Date:        best.GameDate.Format("2006-01-02"),
		KDA:         best.KDA,
	})

	maxDmg := &history[0]
	for i := range history {
		if history[i].TotalDamageToChampions > maxDmg.TotalDamageToChampions {
			maxDmg = &history[i]
		}
	}
	out = append(out, domain.MemorableMoment{
		Title:       "Highest Damage",
		Description: fmt.Sprintf("%d damage on %s", maxDmg.TotalDamageToChampions, maxDmg.ChampionName),
		Date:        maxDmg.GameDate.Format("2006-01-02"),
		Damage:      maxDmg.TotalDamageToChampions,
	})

	// History is most recent first; the first pentakill chronologically is
	// the last record carrying one.
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].PentaKills > 0 {
			out = append(out, domain.MemorableMoment{
				Title:       "Pentakill!",
				Description: fmt.Sprintf("First pentakill on %s", history[i].ChampionName),
				Date:        history[i].GameDate.Format("2006-01-02"),
				Special:     true,
			})
			break
		}
	}

	return out
}

// RecentPerformance aggregates the newest window and diffs it against the
// full-history aggregate. The trend follows the sign of the win-rate change.
func RecentPerformance(history domain.MatchHistory, overall domain.AggregateStats) domain.RecentPerformance {
	if len(history) == 0 {
		return domain.RecentPerformance{}
	}

	window := history
	if len(window) > constants.RecentGamesWindow {
		window = window[:constants.RecentGamesWindow]
	}
	recent := stats.Aggregate(window)

	wrDiff := round2(recent.WinRate - overall.WinRate)
	trend := domain.TrendStable
	switch {
	case wrDiff > 0:
		trend = domain.TrendImproving
	case wrDiff < 0:
		trend = domain.TrendDeclining
	}

	return domain.RecentPerformance{
		AggregateStats: recent,
		GamesAnalyzed:  len(window),
		WinRateChange:  wrDiff,
		KDAChange:      round2(recent.AvgKDA - overall.AvgKDA),
		Trend:          trend,
	}
}

// CoachingTips turns weaknesses into suggestions and closes with positive
// reinforcement for the best champion. Capped at five tips.
func CoachingTips(weaknesses []domain.Weakness, best []domain.ChampionScore) []string {
	var tips []string
	for _, w := range weaknesses {
		tips = append(tips, w.Suggestion)
	}
	if len(best) > 0 {
		tips = append(tips, fmt.Sprintf("Continue mastering %s - you have a %.2f%% win rate!",
			best[0].Champion, best[0].WinRate))
	}
	if len(tips) > constants.CoachingTipLimit {
		tips = tips[:constants.CoachingTipLimit]
	}
	return tips
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
