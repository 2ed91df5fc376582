package stats

import (
	"lol-insights/internal/domain"
)

// AnalyzePlaystyle classifies a player's style from averaged combat counters
// and their most common play time. Styles are coarse labels, not rankings.
func AnalyzePlaystyle(history domain.MatchHistory) domain.Playstyle {
	if len(history) == 0 {
		return domain.Playstyle{}
	}

	n := float64(len(history))
	var (
		kills, assists              int
		dmgToChamps, dmgTaken       int
		physicalDamage, magicDamage int
		durationSeconds             int
		hourCounts                  [24]int
		dayCounts                   = map[string]int{}
	)

	for i := range history {
		m := &history[i]
		kills += m.Kills
		assists += m.Assists
		dmgToChamps += m.TotalDamageToChampions
		dmgTaken += m.TotalDamageTaken
		physicalDamage += m.PhysicalDamageToChampions
		magicDamage += m.MagicDamageToChampions
		durationSeconds += m.GameDuration
		hourCounts[m.GameDate.Hour()]++
		dayCounts[m.GameDate.Weekday().String()]++
	}

	avgKills := float64(kills) / n
	avgAssists := float64(assists) / n

	style := domain.Playstyle{
		PrimaryStyle:         "Supportive Team Player",
		SecondaryStyle:       "Back Line Damage Dealer",
		AggressionScore:      50,
		DamagePreference:     "Magical",
		AvgGameLengthMinutes: round1(float64(durationSeconds) / n / 60),
	}
	if avgKills > avgAssists {
		style.PrimaryStyle = "Aggressive Carry"
	}
	if dmgTaken > dmgToChamps {
		style.SecondaryStyle = "Front Line Tank"
	}
	if avgKills+avgAssists > 0 {
		style.AggressionScore = round1(avgKills / (avgKills + avgAssists) * 100)
	}
	if physicalDamage > magicDamage {
		style.DamagePreference = "Physical"
	}

	bestHour, bestHourCount := 0, 0
	for hour, count := range hourCounts {
		if count > bestHourCount {
			bestHour, bestHourCount = hour, count
		}
	}
	style.PreferredHour = bestHour

	bestDayCount := 0
	for day, count := range dayCounts {
		// Ties break on name so equal histories classify identically.
		if count > bestDayCount || (count == bestDayCount && day < style.PreferredDay) {
			style.PreferredDay = day
			bestDayCount = count
		}
	}

	return style
}
