package tokens

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tokens (
    profile    TEXT PRIMARY KEY,
    data_json  TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SQLiteRepository keeps tokens in a local SQLite file so logins survive
// between runs of the CLI without a Redis server
type SQLiteRepository struct {
	db           *sql.DB
	timeProvider TimeProvider
	ttl          time.Duration
}

// SQLiteRepoConfig configures the SQLite repository. A zero TTL never expires.
type SQLiteRepoConfig struct {
	Path         string // Required
	TimeProvider TimeProvider
	TTL          time.Duration
}

// OpenSQLiteRepository opens the database file, creating it and its parent
// directory when missing
func OpenSQLiteRepository(cfg *SQLiteRepoConfig) (*SQLiteRepository, error) {
	if cfg == nil || strings.TrimSpace(cfg.Path) == "" {
		return nil, dnderr.InvalidArgument("sqlite path is required")
	}

	cleanPath := filepath.Clean(cfg.Path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, dnderr.Wrap(err, "failed to create token store directory").
			WithMeta("path", cleanPath)
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to open sqlite token store").WithMeta("path", cleanPath)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, dnderr.Wrap(err, "failed to ping sqlite token store").WithMeta("path", cleanPath)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, dnderr.Wrap(err, "failed to create token table")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &SQLiteRepository{
		db:           db,
		timeProvider: timeProvider,
		ttl:          cfg.TTL,
	}, nil
}

// Close releases the underlying database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteRepository) Get(ctx context.Context, profile string) (*Data, error) {
	if profile == "" {
		return nil, dnderr.InvalidArgument("profile is required")
	}

	var (
		raw       string
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT data_json, updated_at FROM tokens WHERE profile = ?`, profile,
	).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(profile)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get token for profile '%s'", profile)
	}

	if r.expired(time.UnixMilli(updatedAt)) {
		return nil, notFound(profile)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, dnderr.Wrapf(err, "failed to unmarshal token for profile '%s'", profile)
	}

	return &data, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, profile string, data *Data) error {
	if profile == "" {
		return dnderr.InvalidArgument("profile is required")
	}
	if data == nil {
		return dnderr.InvalidArgument("token data cannot be nil")
	}

	data.UpdatedAt = r.timeProvider.Now()

	raw, err := json.Marshal(data)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal token data")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tokens (profile, data_json, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(profile) DO UPDATE SET
		    data_json = excluded.data_json,
		    updated_at = excluded.updated_at`,
		profile, string(raw), data.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return dnderr.Wrapf(err, "failed to store token for profile '%s'", profile)
	}

	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, profile string) error {
	if profile == "" {
		return dnderr.InvalidArgument("profile is required")
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE profile = ?`, profile); err != nil {
		return dnderr.Wrapf(err, "failed to delete token for profile '%s'", profile)
	}
	return nil
}

// ListProfiles prunes expired rows and returns the rest, sorted
func (r *SQLiteRepository) ListProfiles(ctx context.Context) ([]string, error) {
	if r.ttl > 0 {
		cutoff := r.timeProvider.Now().Add(-r.ttl).UnixMilli()
		if _, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE updated_at <= ?`, cutoff); err != nil {
			return nil, dnderr.Wrap(err, "failed to prune expired tokens")
		}
	}

	rows, err := r.db.QueryContext(ctx, `SELECT profile FROM tokens ORDER BY profile`)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list profiles")
	}
	defer func() {
		_ = rows.Close()
	}()

	profiles := make([]string, 0)
	for rows.Next() {
		var profile string
		if err := rows.Scan(&profile); err != nil {
			return nil, dnderr.Wrap(err, "failed to scan profile")
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, dnderr.Wrap(err, "failed to iterate profiles")
	}

	return profiles, nil
}

func (r *SQLiteRepository) expired(updatedAt time.Time) bool {
	return r.ttl > 0 && r.timeProvider.Now().Sub(updatedAt) >= r.ttl
}

func notFound(profile string) error {
	return dnderr.NotFoundf("no token stored for profile '%s'", profile).WithMeta("profile", profile)
}
