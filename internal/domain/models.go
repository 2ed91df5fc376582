package domain

import (
	"time"
)

// PlayerIdentity is the resolved account for a display handle. The PUUID is
// stable across renames and is the key every other record hangs off.
type PlayerIdentity struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"game_name"`
	TagLine  string `json:"tag_line"`
}

// MatchRecord is one player's flat statistics for one match, pulled from the
// single matching participant payload. Unique by match id per PUUID.
type MatchRecord struct {
	PUUID        string    `json:"puuid"`
	MatchID      string    `json:"match_id"`
	GameCreation int64     `json:"game_creation"`
	GameDate     time.Time `json:"game_datetime"`
	GameDuration int       `json:"game_duration"` // seconds
	QueueID      int       `json:"queue_id"`
	GameMode     string    `json:"game_mode"`
	GameType     string    `json:"game_type"`

	SummonerName       string `json:"summoner_name"`
	ChampionName       string `json:"champion_name"`
	ChampionID         int    `json:"champion_id"`
	TeamPosition       string `json:"team_position"`
	IndividualPosition string `json:"individual_position"`
	TeamID             int    `json:"team_id"`

	Win                       bool `json:"win"`
	GameEndedInSurrender      bool `json:"game_ended_in_surrender"`
	GameEndedInEarlySurrender bool `json:"game_ended_in_early_surrender"`

	Kills   int     `json:"kills"`
	Deaths  int     `json:"deaths"`
	Assists int     `json:"assists"`
	KDA     float64 `json:"kda"`

	TotalDamageDealt          int `json:"total_damage_dealt"`
	TotalDamageToChampions    int `json:"total_damage_dealt_to_champions"`
	TotalDamageTaken          int `json:"total_damage_taken"`
	PhysicalDamageToChampions int `json:"physical_damage_dealt_to_champions"`
	MagicDamageToChampions    int `json:"magic_damage_dealt_to_champions"`
	TrueDamageToChampions     int `json:"true_damage_dealt_to_champions"`
	TotalHeal                 int `json:"total_heal"`
	DamageSelfMitigated       int `json:"damage_self_mitigated"`

	GoldEarned           int     `json:"gold_earned"`
	GoldSpent            int     `json:"gold_spent"`
	TotalMinionsKilled   int     `json:"total_minions_killed"`
	NeutralMinionsKilled int     `json:"neutral_minions_killed"`
	CSPerMinute          float64 `json:"cs_per_minute"`

	VisionScore        int `json:"vision_score"`
	WardsPlaced        int `json:"wards_placed"`
	WardsKilled        int `json:"wards_killed"`
	ControlWardsPlaced int `json:"control_wards_placed"`
	VisionWardsBought  int `json:"vision_wards_bought"`

	TurretKills      int `json:"turret_kills"`
	InhibitorKills   int `json:"inhibitor_kills"`
	DragonKills      int `json:"dragon_kills"`
	BaronKills       int `json:"baron_kills"`
	ObjectivesStolen int `json:"objectives_stolen"`

	DoubleKills         int `json:"double_kills"`
	TripleKills         int `json:"triple_kills"`
	QuadraKills         int `json:"quadra_kills"`
	PentaKills          int `json:"penta_kills"`
	KillingSprees       int `json:"killing_sprees"`
	LargestKillingSpree int `json:"largest_killing_spree"`
	LargestMultiKill    int `json:"largest_multi_kill"`

	TotalTimeCCDealt int `json:"total_time_cc_dealt"`
	TimeCCingOthers  int `json:"time_ccing_others"`

	Items [7]int `json:"items"`

	FirstBloodKill   bool `json:"first_blood_kill"`
	FirstBloodAssist bool `json:"first_blood_assist"`
	FirstTowerKill   bool `json:"first_tower_kill"`
	FirstTowerAssist bool `json:"first_tower_assist"`

	ChampionLevel      int `json:"champion_level"`
	ChampionExperience int `json:"champion_experience"`
}

// MatchHistory is the canonical ordering for all derived windows: sorted by
// game creation descending, most recent first.
type MatchHistory []MatchRecord

// AggregateStats is a pure function of a record set, recomputed each call.
type AggregateStats struct {
	TotalGames int     `json:"total_games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate"`

	AvgKills   float64 `json:"avg_kills"`
	AvgDeaths  float64 `json:"avg_deaths"`
	AvgAssists float64 `json:"avg_assists"`
	AvgKDA     float64 `json:"avg_kda"`

	AvgDamageDealt float64 `json:"avg_damage_dealt"`
	MaxDamageDealt int     `json:"max_damage_dealt"`
	AvgDamageTaken float64 `json:"avg_damage_taken"`

	AvgGoldEarned  float64 `json:"avg_gold_earned"`
	AvgCS          float64 `json:"avg_cs"`
	AvgCSPerMinute float64 `json:"avg_cs_per_minute"`

	AvgVisionScore  float64 `json:"avg_vision_score"`
	AvgWardsPlaced  float64 `json:"avg_wards_placed"`
	AvgControlWards float64 `json:"avg_control_wards"`

	TotalDoubleKills int `json:"total_double_kills"`
	TotalTripleKills int `json:"total_triple_kills"`
	TotalQuadraKills int `json:"total_quadra_kills"`
	TotalPentaKills  int `json:"total_penta_kills"`

	AvgGameDurationMinutes float64 `json:"avg_game_duration_minutes"`
	TotalTimePlayedHours   float64 `json:"total_time_played_hours"`
}

// ChampionAggregate is AggregateStats for one champion partition.
type ChampionAggregate struct {
	Champion string         `json:"champion"`
	Stats    AggregateStats `json:"stats"`
}

// ChampionScore ranks a champion by the composite performance score.
type ChampionScore struct {
	Champion string  `json:"champion"`
	Games    int     `json:"games"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"win_rate"`
	AvgKDA   float64 `json:"avg_kda"`
	Score    float64 `json:"performance_score"`
}

// ChampionCount is a most-played entry.
type ChampionCount struct {
	Champion string `json:"champion"`
	Games    int    `json:"games"`
}

// ChampionWinRate is a highest-win-rate entry (minimum sample applied).
type ChampionWinRate struct {
	Champion string  `json:"champion"`
	Games    int     `json:"games"`
	WinRate  float64 `json:"win_rate"`
}

// ChampionInsights bundles the champion-dimension breakdowns.
type ChampionInsights struct {
	Best            []ChampionScore     `json:"best_champions"`
	ByChampion      []ChampionAggregate `json:"champion_stats"`
	MostPlayed      []ChampionCount     `json:"most_played"`
	HighestWinRate  []ChampionWinRate   `json:"highest_win_rate"`
	UniqueChampions int                 `json:"unique_champions_played"`
	DiversityScore  float64             `json:"champion_diversity_score"`
}

// TrendPoint is one calendar bucket of a performance trend.
type TrendPoint struct {
	Bucket         string  `json:"bucket"` // YYYY-MM
	Games          int     `json:"games"`
	WinRate        float64 `json:"win_rate"`
	AvgKDA         float64 `json:"avg_kda"`
	AvgDamage      float64 `json:"avg_damage"`
	AvgGold        float64 `json:"avg_gold"`
	AvgCSPerMinute float64 `json:"avg_cs_per_min"`
	AvgVisionScore float64 `json:"avg_vision_score"`
}

// Trend labels compare the two most recent buckets; strict comparisons,
// fewer than two buckets means stable.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// TrendReport holds the monthly series plus derived judgments.
type TrendReport struct {
	Monthly             []TrendPoint `json:"monthly_trends"`
	WinRateTrend        string       `json:"win_rate_trend"`
	KDATrend            string       `json:"kda_trend"`
	MostActiveMonth     string       `json:"most_active_month,omitempty"`
	BestPerformingMonth string       `json:"best_performing_month,omitempty"`
}

// GrowthMetrics compares the newer half of the history against the older half.
type GrowthMetrics struct {
	WinRateChange float64 `json:"win_rate_change"`
	KDAChange     float64 `json:"kda_change"`
	DamageChange  float64 `json:"damage_change"`
	CSChange      float64 `json:"cs_change"`
	VisionChange  float64 `json:"vision_change"`
}

type Weakness struct {
	Key        string  `json:"key"`
	Metric     string  `json:"metric"`
	Value      float64 `json:"value"`
	Severity   string  `json:"severity"` // high | medium
	Suggestion string  `json:"suggestion"`
}

type Strength struct {
	Key         string  `json:"key"`
	Metric      string  `json:"metric"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"` // common | rare | epic | legendary
}

type MemorableMoment struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	KDA         float64 `json:"kda,omitempty"`
	Damage      int     `json:"damage,omitempty"`
	Special     bool    `json:"special,omitempty"`
}

// RecentPerformance is the fixed-size head window diffed against the full
// history.
type RecentPerformance struct {
	AggregateStats
	GamesAnalyzed int     `json:"games_analyzed"`
	WinRateChange float64 `json:"win_rate_change"`
	KDAChange     float64 `json:"kda_change"`
	Trend         string  `json:"trend"`
}

type Playstyle struct {
	PrimaryStyle         string  `json:"primary_style"`
	SecondaryStyle       string  `json:"secondary_style"`
	AggressionScore      float64 `json:"aggression_score"`
	DamagePreference     string  `json:"damage_preference"`
	PreferredHour        int     `json:"preferred_game_hour"`
	PreferredDay         string  `json:"preferred_day"`
	AvgGameLengthMinutes float64 `json:"avg_game_length_minutes"`
}

type FunStats struct {
	TotalHoursPlayed    float64 `json:"total_hours_played"`
	TotalKills          int     `json:"total_kills"`
	TotalDeaths         int     `json:"total_deaths"`
	TotalAssists        int     `json:"total_assists"`
	TotalGoldEarned     int     `json:"total_gold_earned"`
	TotalMinionsSlain   int     `json:"total_minions_slain"`
	TotalWardsPlaced    int     `json:"total_wards_placed"`
	FavoriteChampion    string  `json:"favorite_champion"`
	LongestGameMinutes  float64 `json:"longest_game_minutes"`
	ShortestGameMinutes float64 `json:"shortest_game_minutes"`
}

// ImprovementArea is a predicted focus area with a confidence in [0,1].
type ImprovementArea struct {
	Area       string  `json:"area"`
	Confidence float64 `json:"confidence"`
	Priority   string  `json:"priority"` // high | medium | low
}

// InsightsBundle is the aggregate analysis output for one player, recomputed
// fresh per request.
type InsightsBundle struct {
	ReportID         string                    `json:"report_id"`
	PUUID            string                    `json:"puuid"`
	PlayerName       string                    `json:"player_name"`
	AnalyzedAt       time.Time                 `json:"analysis_date"`
	TotalMatches     int                       `json:"total_matches_analyzed"`
	Overall          AggregateStats            `json:"overall_stats"`
	Champions        ChampionInsights          `json:"champion_stats"`
	Roles            map[string]AggregateStats `json:"role_stats"`
	Trends           TrendReport               `json:"trends"`
	Strengths        []Strength                `json:"strengths"`
	Weaknesses       []Weakness                `json:"weaknesses"`
	Achievements     []Achievement             `json:"achievements"`
	Playstyle        Playstyle                 `json:"playstyle"`
	Recent           RecentPerformance         `json:"recent_performance"`
	CoachingTips     []string                  `json:"coaching_tips"`
	Narrative        string                    `json:"ai_summary,omitempty"`
	ImprovementAreas []ImprovementArea         `json:"improvement_areas,omitempty"`
}

// ExtendedReport adds the year-end style sections to an InsightsBundle.
type ExtendedReport struct {
	InsightsBundle
	ReportType         string            `json:"report_type"`
	MemorableMoments   []MemorableMoment `json:"memorable_moments"`
	MonthlyProgression []TrendPoint      `json:"monthly_progression"`
	TopAchievements    []string          `json:"top_achievements"`
	FunStats           FunStats          `json:"fun_stats"`
	Growth             *GrowthMetrics    `json:"growth_metrics,omitempty"`
}
