package cache

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SQLite is the durable cache backend. It survives restarts so a long history
// fetch does not have to be repeated after a deploy.
type SQLite struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

func NewSQLite(path string, logger zerolog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"busy_timeout", "5000"},
		{"temp_store", "MEMORY"},
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", pragma.name, pragma.value)); err != nil {
			return nil, fmt.Errorf("failed to set PRAGMA %s: %w", pragma.name, err)
		}
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, err
	}

	logger.Info().Str("path", path).Msg("cache database ready")
	return &SQLite{db: db, logger: logger, now: time.Now}, nil
}

func runMigrations(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Debug().Msg("cache migrations completed")
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	var expiresAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM response_cache WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}

	if s.now().Unix() >= expiresAt {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM response_cache WHERE key = ?`, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to evict expired cache entry")
		}
		return nil, false
	}
	return value, true
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO response_cache (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, s.now().Add(ttl).Unix(),
	)
	return err
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM response_cache WHERE key = ?`, key)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
