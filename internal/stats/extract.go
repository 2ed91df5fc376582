// Package stats normalizes raw match payloads into flat per-player records
// and derives aggregate statistics, groupings, trends and growth comparisons
// from them. Everything here is a pure function of its input.
package stats

import (
	"math"
	"sort"
	"time"

	"lol-insights/internal/domain"
	"lol-insights/internal/riot"
)

// ExtractPlayerStats pulls one player's flat record out of a raw match. The
// second return is false when the player is not among the participants; that
// is an absent result, not an error.
func ExtractPlayerStats(match *riot.Match, puuid string) (*domain.MatchRecord, bool) {
	var player *riot.Participant
	for i := range match.Info.Participants {
		if match.Info.Participants[i].PUUID == puuid {
			player = &match.Info.Participants[i]
			break
		}
	}
	if player == nil {
		return nil, false
	}

	rec := &domain.MatchRecord{
		PUUID:        puuid,
		MatchID:      match.Metadata.MatchID,
		GameCreation: match.Info.GameCreation,
		GameDate:     time.UnixMilli(match.Info.GameCreation),
		GameDuration: match.Info.GameDuration,
		QueueID:      match.Info.QueueID,
		GameMode:     match.Info.GameMode,
		GameType:     match.Info.GameType,

		SummonerName:       player.SummonerName,
		ChampionName:       player.ChampionName,
		ChampionID:         player.ChampionID,
		TeamPosition:       player.TeamPosition,
		IndividualPosition: player.IndividualPosition,
		TeamID:             player.TeamID,

		Win:                       player.Win,
		GameEndedInSurrender:      player.GameEndedInSurrender,
		GameEndedInEarlySurrender: player.GameEndedInEarlySurrender,

		Kills:   player.Kills,
		Deaths:  player.Deaths,
		Assists: player.Assists,
		KDA:     CalculateKDA(player.Kills, player.Deaths, player.Assists),

		TotalDamageDealt:          player.TotalDamageDealt,
		TotalDamageToChampions:    player.TotalDamageDealtToChampions,
		TotalDamageTaken:          player.TotalDamageTaken,
		PhysicalDamageToChampions: player.PhysicalDamageDealtToChampions,
		MagicDamageToChampions:    player.MagicDamageDealtToChampions,
		TrueDamageToChampions:     player.TrueDamageDealtToChampions,
		TotalHeal:                 player.TotalHeal,
		DamageSelfMitigated:       player.DamageSelfMitigated,

		GoldEarned:           player.GoldEarned,
		GoldSpent:            player.GoldSpent,
		TotalMinionsKilled:   player.TotalMinionsKilled,
		NeutralMinionsKilled: player.NeutralMinionsKilled,
		CSPerMinute: CalculateCSPerMinute(
			player.TotalMinionsKilled,
			player.NeutralMinionsKilled,
			match.Info.GameDuration,
		),

		VisionScore:        player.VisionScore,
		WardsPlaced:        player.WardsPlaced,
		WardsKilled:        player.WardsKilled,
		ControlWardsPlaced: player.DetectorWardsPlaced,
		VisionWardsBought:  player.VisionWardsBoughtInGame,

		TurretKills:      player.TurretKills,
		InhibitorKills:   player.InhibitorKills,
		DragonKills:      player.DragonKills,
		BaronKills:       player.BaronKills,
		ObjectivesStolen: player.ObjectivesStolen,

		DoubleKills:         player.DoubleKills,
		TripleKills:         player.TripleKills,
		QuadraKills:         player.QuadraKills,
		PentaKills:          player.PentaKills,
		KillingSprees:       player.KillingSprees,
		LargestKillingSpree: player.LargestKillingSpree,
		LargestMultiKill:    player.LargestMultiKill,

		TotalTimeCCDealt: player.TotalTimeCCDealt,
		TimeCCingOthers:  player.TimeCCingOthers,

		Items: [7]int{player.Item0, player.Item1, player.Item2, player.Item3, player.Item4, player.Item5, player.Item6},

		FirstBloodKill:   player.FirstBloodKill,
		FirstBloodAssist: player.FirstBloodAssist,
		FirstTowerKill:   player.FirstTowerKill,
		FirstTowerAssist: player.FirstTowerAssist,

		ChampionLevel:      player.ChampLevel,
		ChampionExperience: player.ChampExperience,
	}
	return rec, true
}

// BuildHistory normalizes a slice of raw matches into the canonical history:
// one record per match id, sorted by game creation descending.
func BuildHistory(matches []riot.Match, puuid string) domain.MatchHistory {
	seen := make(map[string]struct{}, len(matches))
	history := make(domain.MatchHistory, 0, len(matches))

	for i := range matches {
		rec, ok := ExtractPlayerStats(&matches[i], puuid)
		if !ok {
			continue
		}
		if _, dup := seen[rec.MatchID]; dup {
			continue
		}
		seen[rec.MatchID] = struct{}{}
		history = append(history, *rec)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].GameCreation > history[j].GameCreation
	})
	return history
}

// CalculateKDA is (kills+assists)/deaths, or kills+assists when deaths is
// zero. Rounded to two decimals in the divided case, matching the upstream
// presentation.
func CalculateKDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return round2(float64(kills+assists) / float64(deaths))
}

// CalculateCSPerMinute is (minions+jungle)/minutes, zero for non-positive
// durations.
func CalculateCSPerMinute(minions, jungle, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	minutes := float64(durationSeconds) / 60
	return round2(float64(minions+jungle) / minutes)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round0(v float64) float64 { return math.Round(v) }
