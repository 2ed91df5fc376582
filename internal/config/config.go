package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"lol-insights/internal/constants"
)

type Config struct {
	RiotAPIKey   string
	Region       string // regional routing: americas, asia, europe, sea
	Platform     string // platform routing: na1, euw1, ...
	RatePerSec   int
	RatePerMin   int
	CacheTTL     time.Duration
	CacheBackend string // memory | sqlite
	CacheDBPath  string

	MatchHistoryLimit int
	LookbackDays      int

	ServerPort string
	LogLevel   string

	EnableNarrative bool
	AnthropicAPIKey string
	NarrativeModel  string

	EnablePrediction   bool
	PredictionEndpoint string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:   getEnv("RIOT_API_KEY", ""),
		Region:       getEnv("RIOT_API_REGION", "americas"),
		Platform:     getEnv("RIOT_API_PLATFORM", "na1"),
		RatePerSec:   getEnvInt("RIOT_RATE_LIMIT_PER_SECOND", 20),
		RatePerMin:   getEnvInt("RIOT_RATE_LIMIT_PER_MINUTE", 100),
		CacheTTL:     time.Duration(getEnvInt("CACHE_EXPIRY_HOURS", 24)) * time.Hour,
		CacheBackend: getEnv("CACHE_BACKEND", "memory"),
		CacheDBPath:  getEnv("CACHE_DB_PATH", "insights-cache.db"),

		MatchHistoryLimit: getEnvInt("MATCH_HISTORY_LIMIT", 100),
		LookbackDays:      getEnvInt("ANALYSIS_LOOKBACK_DAYS", 365),

		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		EnableNarrative: getEnvBool("ENABLE_NARRATIVE", false),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		NarrativeModel:  getEnv("NARRATIVE_MODEL", "claude-haiku-4-5-20251001"),

		EnablePrediction:   getEnvBool("ENABLE_PREDICTION", false),
		PredictionEndpoint: getEnv("PREDICTION_ENDPOINT", ""),
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = constants.DefaultCacheTTL
	}

	logger.Info().
		Str("region", cfg.Region).
		Str("platform", cfg.Platform).
		Int("rate_per_sec", cfg.RatePerSec).
		Int("rate_per_min", cfg.RatePerMin).
		Str("cache_backend", cfg.CacheBackend).
		Dur("cache_ttl", cfg.CacheTTL).
		Int("match_history_limit", cfg.MatchHistoryLimit).
		Bool("narrative", cfg.EnableNarrative).
		Bool("prediction", cfg.EnablePrediction).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
