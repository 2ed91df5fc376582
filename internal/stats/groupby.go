package stats

import (
	"math"
	"sort"

	"lol-insights/internal/constants"
	"lol-insights/internal/domain"
)

// GroupByChampion aggregates per champion, keeping only champions with at
// least minGames samples. Output is ordered by games descending, champion
// name ascending on ties, so equal inputs always produce equal output.
func GroupByChampion(history domain.MatchHistory, minGames int) []domain.ChampionAggregate {
	buckets := partition(history, func(m *domain.MatchRecord) string { return m.ChampionName })

	out := make([]domain.ChampionAggregate, 0, len(buckets))
	for champion, records := range buckets {
		if len(records) < minGames {
			continue
		}
		out = append(out, domain.ChampionAggregate{
			Champion: champion,
			Stats:    Aggregate(records),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Stats.TotalGames != out[j].Stats.TotalGames {
			return out[i].Stats.TotalGames > out[j].Stats.TotalGames
		}
		return out[i].Champion < out[j].Champion
	})
	return out
}

// GroupByRole aggregates per team position. Records with an empty position
// are skipped; no minimum sample applies.
func GroupByRole(history domain.MatchHistory) map[string]domain.AggregateStats {
	buckets := partition(history, func(m *domain.MatchRecord) string { return m.TeamPosition })
	delete(buckets, "")

	out := make(map[string]domain.AggregateStats, len(buckets))
	for role, records := range buckets {
		out[role] = Aggregate(records)
	}
	return out
}

// BestChampions ranks champions with at least minGames samples by the
// composite score winRate*0.6 + avgKDA*10*0.3 + ln(1+games)*5*0.1 and returns
// the top limit entries. The sort is stable with a name tiebreak.
func BestChampions(history domain.MatchHistory, minGames, limit int) []domain.ChampionScore {
	buckets := partition(history, func(m *domain.MatchRecord) string { return m.ChampionName })

	scored := make([]domain.ChampionScore, 0, len(buckets))
	for champion, records := range buckets {
		if len(records) < minGames {
			continue
		}
		agg := Aggregate(records)
		score := agg.WinRate*0.6 + agg.AvgKDA*10*0.3 + math.Log(1+float64(agg.TotalGames))*5*0.1
		scored = append(scored, domain.ChampionScore{
			Champion: champion,
			Games:    agg.TotalGames,
			Wins:     agg.Wins,
			WinRate:  agg.WinRate,
			AvgKDA:   agg.AvgKDA,
			Score:    round2(score),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Champion < scored[j].Champion
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// HighestWinRate lists champions with at least minGames samples ordered by
// win rate descending, name ascending on ties.
func HighestWinRate(history domain.MatchHistory, minGames, limit int) []domain.ChampionWinRate {
	buckets := partition(history, func(m *domain.MatchRecord) string { return m.ChampionName })

	out := make([]domain.ChampionWinRate, 0, len(buckets))
	for champion, records := range buckets {
		if len(records) < minGames {
			continue
		}
		wins := 0
		for i := range records {
			if records[i].Win {
				wins++
			}
		}
		out = append(out, domain.ChampionWinRate{
			Champion: champion,
			Games:    len(records),
			WinRate:  round2(float64(wins) / float64(len(records)) * 100),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}
		return out[i].Champion < out[j].Champion
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// MostPlayed lists champions by game count descending, name ascending on
// ties. No minimum sample applies.
func MostPlayed(history domain.MatchHistory, limit int) []domain.ChampionCount {
	buckets := partition(history, func(m *domain.MatchRecord) string { return m.ChampionName })

	out := make([]domain.ChampionCount, 0, len(buckets))
	for champion, records := range buckets {
		out = append(out, domain.ChampionCount{Champion: champion, Games: len(records)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].Champion < out[j].Champion
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BuildChampionInsights assembles the full champion-dimension breakdown.
func BuildChampionInsights(history domain.MatchHistory) domain.ChampionInsights {
	unique := make(map[string]struct{}, 16)
	for i := range history {
		unique[history[i].ChampionName] = struct{}{}
	}

	diversity := 0.0
	if len(history) > 0 {
		diversity = round2(float64(len(unique)) / float64(len(history)) * 100)
	}

	return domain.ChampionInsights{
		Best:            BestChampions(history, constants.ChampionMinGames, constants.TopChampionCount),
		ByChampion:      GroupByChampion(history, constants.ChampionMinGames),
		MostPlayed:      MostPlayed(history, constants.MostPlayedCount),
		HighestWinRate:  HighestWinRate(history, constants.WinRateMinGames, constants.TopChampionCount),
		UniqueChampions: len(unique),
		DiversityScore:  diversity,
	}
}

func partition(history domain.MatchHistory, key func(*domain.MatchRecord) string) map[string]domain.MatchHistory {
	buckets := make(map[string]domain.MatchHistory)
	for i := range history {
		k := key(&history[i])
		buckets[k] = append(buckets[k], history[i])
	}
	return buckets
}
