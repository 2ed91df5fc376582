package stats

import (
	"sort"

	"lol-insights/internal/domain"
)

// MonthlyTrends buckets the history by calendar month (YYYY-MM of the game
// date) and aggregates each bucket, oldest month first.
func MonthlyTrends(history domain.MatchHistory) []domain.TrendPoint {
	buckets := partition(history, func(m *domain.MatchRecord) string {
		return m.GameDate.Format("2006-01")
	})

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	points := make([]domain.TrendPoint, 0, len(months))
	for _, month := range months {
		agg := Aggregate(buckets[month])
		points = append(points, domain.TrendPoint{
			Bucket:         month,
			Games:          agg.TotalGames,
			WinRate:        agg.WinRate,
			AvgKDA:         agg.AvgKDA,
			AvgDamage:      agg.AvgDamageDealt,
			AvgGold:        agg.AvgGoldEarned,
			AvgCSPerMinute: agg.AvgCSPerMinute,
			AvgVisionScore: agg.AvgVisionScore,
		})
	}
	return points
}

// TrendDirection compares the last two points of a series by the given
// metric. Strict comparisons; ties or fewer than two points are stable.
func TrendDirection(points []domain.TrendPoint, metric func(domain.TrendPoint) float64) string {
	if len(points) < 2 {
		return domain.TrendStable
	}
	prev := metric(points[len(points)-2])
	last := metric(points[len(points)-1])
	switch {
	case last > prev:
		return domain.TrendImproving
	case last < prev:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// BuildTrendReport derives the full trend section: the monthly series, the
// win-rate and KDA directions, and the busiest and best-performing months.
func BuildTrendReport(history domain.MatchHistory) domain.TrendReport {
	points := MonthlyTrends(history)

	report := domain.TrendReport{
		Monthly:      points,
		WinRateTrend: TrendDirection(points, func(p domain.TrendPoint) float64 { return p.WinRate }),
		KDATrend:     TrendDirection(points, func(p domain.TrendPoint) float64 { return p.AvgKDA }),
	}

	maxGames, maxWinRate := -1, -1.0
	for _, p := range points {
		if p.Games > maxGames {
			maxGames = p.Games
			report.MostActiveMonth = p.Bucket
		}
		if p.WinRate > maxWinRate {
			maxWinRate = p.WinRate
			report.BestPerformingMonth = p.Bucket
		}
	}
	return report
}

// MaxWinStreak is the longest run of consecutive wins in chronological
// order. The history is stored most recent first, so the walk reverses it.
func MaxWinStreak(history domain.MatchHistory) int {
	best, run := 0, 0
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Win {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// CurrentStreak is the run of same-outcome games at the head of the history.
// Positive for wins, negative for losses, zero for an empty history.
func CurrentStreak(history domain.MatchHistory) int {
	if len(history) == 0 {
		return 0
	}
	winning := history[0].Win
	streak := 0
	for i := range history {
		if history[i].Win != winning {
			break
		}
		streak++
	}
	if !winning {
		return -streak
	}
	return streak
}
