package stats

import (
	"lol-insights/internal/domain"
)

// BuildFunStats computes the lifetime-totals section of the year-end report.
func BuildFunStats(history domain.MatchHistory) domain.FunStats {
	if len(history) == 0 {
		return domain.FunStats{}
	}

	var fun domain.FunStats
	var durationSeconds int
	longest, shortest := history[0].GameDuration, history[0].GameDuration
	champCounts := make(map[string]int)

	for i := range history {
		m := &history[i]
		fun.TotalKills += m.Kills
		fun.TotalDeaths += m.Deaths
		fun.TotalAssists += m.Assists
		fun.TotalGoldEarned += m.GoldEarned
		fun.TotalMinionsSlain += m.TotalMinionsKilled + m.NeutralMinionsKilled
		fun.TotalWardsPlaced += m.WardsPlaced
		durationSeconds += m.GameDuration
		if m.GameDuration > longest {
			longest = m.GameDuration
		}
		if m.GameDuration < shortest {
			shortest = m.GameDuration
		}
		champCounts[m.ChampionName]++
	}

	fun.TotalHoursPlayed = round1(float64(durationSeconds) / 3600)
	fun.LongestGameMinutes = round1(float64(longest) / 60)
	fun.ShortestGameMinutes = round1(float64(shortest) / 60)

	bestCount := 0
	for champ, count := range champCounts {
		if count > bestCount || (count == bestCount && champ < fun.FavoriteChampion) {
			fun.FavoriteChampion = champ
			bestCount = count
		}
	}
	return fun
}
