package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 60 * time.Second
	ShutdownTimeout    = 5 * time.Second
)

const (
	// MatchIDPageSize is the upstream maximum for one id-list page.
	MatchIDPageSize = 100

	DetailRetryAttempts = 3
	DetailRetryBase     = 500 * time.Millisecond
)

const (
	DefaultCacheTTL = 24 * time.Hour
)

const (
	RecentGamesWindow    = 20
	GrowthMinGames       = 20
	ChampionMinGames     = 3
	WinRateMinGames      = 5
	TopChampionCount     = 5
	MostPlayedCount      = 10
	CoachingTipLimit     = 5
	HighWinRateThreshold = 55.0
)
