package stats

import (
	"lol-insights/internal/constants"
	"lol-insights/internal/domain"
)

// Growth compares the newer half of the history against the older half.
// Fewer than GrowthMinGames records means the comparison is statistically
// meaningless, so nil comes back and the section is omitted.
func Growth(history domain.MatchHistory) *domain.GrowthMetrics {
	if len(history) < constants.GrowthMinGames {
		return nil
	}

	// Most recent first, so the head half is the newer period.
	half := len(history) / 2
	newer := Aggregate(history[:half])
	older := Aggregate(history[half:])

	return &domain.GrowthMetrics{
		WinRateChange: round2(newer.WinRate - older.WinRate),
		KDAChange:     round2(newer.AvgKDA - older.AvgKDA),
		DamageChange:  round0(newer.AvgDamageDealt - older.AvgDamageDealt),
		CSChange:      round2(newer.AvgCSPerMinute - older.AvgCSPerMinute),
		VisionChange:  round1(newer.AvgVisionScore - older.AvgVisionScore),
	}
}
