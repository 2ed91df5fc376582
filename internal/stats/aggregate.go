package stats

import (
	"lol-insights/internal/domain"
)

// Aggregate computes overall statistics over a record set. An empty set
// yields the zero value with TotalGames == 0; callers branch on that rather
// than on an error.
func Aggregate(history domain.MatchHistory) domain.AggregateStats {
	if len(history) == 0 {
		return domain.AggregateStats{}
	}

	n := len(history)
	var agg domain.AggregateStats
	agg.TotalGames = n

	var (
		kills, deaths, assists      int
		kdaSum                      float64
		dmgDealt, dmgTaken          int
		gold, cs                    int
		csPerMinSum                 float64
		vision, wards, controlWards int
		durationSeconds             int
	)

	for i := range history {
		m := &history[i]
		if m.Win {
			agg.Wins++
		}
		kills += m.Kills
		deaths += m.Deaths
		assists += m.Assists
		kdaSum += m.KDA

		dmgDealt += m.TotalDamageToChampions
		if m.TotalDamageToChampions > agg.MaxDamageDealt {
			agg.MaxDamageDealt = m.TotalDamageToChampions
		}
		dmgTaken += m.TotalDamageTaken

		gold += m.GoldEarned
		cs += m.TotalMinionsKilled + m.NeutralMinionsKilled
		csPerMinSum += m.CSPerMinute

		vision += m.VisionScore
		wards += m.WardsPlaced
		controlWards += m.ControlWardsPlaced

		agg.TotalDoubleKills += m.DoubleKills
		agg.TotalTripleKills += m.TripleKills
		agg.TotalQuadraKills += m.QuadraKills
		agg.TotalPentaKills += m.PentaKills

		durationSeconds += m.GameDuration
	}

	agg.Losses = n - agg.Wins
	agg.WinRate = round2(float64(agg.Wins) / float64(n) * 100)

	fn := float64(n)
	agg.AvgKills = round1(float64(kills) / fn)
	agg.AvgDeaths = round1(float64(deaths) / fn)
	agg.AvgAssists = round1(float64(assists) / fn)
	agg.AvgKDA = round2(kdaSum / fn)

	agg.AvgDamageDealt = round0(float64(dmgDealt) / fn)
	agg.AvgDamageTaken = round0(float64(dmgTaken) / fn)

	agg.AvgGoldEarned = round0(float64(gold) / fn)
	agg.AvgCS = round1(float64(cs) / fn)
	agg.AvgCSPerMinute = round2(csPerMinSum / fn)

	agg.AvgVisionScore = round1(float64(vision) / fn)
	agg.AvgWardsPlaced = round1(float64(wards) / fn)
	agg.AvgControlWards = round1(float64(controlWards) / fn)

	agg.AvgGameDurationMinutes = round1(float64(durationSeconds) / fn / 60)
	agg.TotalTimePlayedHours = round1(float64(durationSeconds) / 3600)

	return agg
}
