package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/storefront/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
	"github.com/louisbranch/storefront/internal/services/storefront/storage/sqlite/migrations"
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Entry describes one stored snapshot without its payload.
type Entry struct {
	ID          int64
	Version     int
	LastSeq     uint64
	GeneratedAt time.Time
}

// Store is a snapshot.Sink backed by SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ snapshot.Sink = (*Store)(nil)

// Open opens the snapshot database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	sqlDB, err := sqlitemigrate.Open(ctx, path, migrations.SnapshotsFS, "snapshots")
	if err != nil {
		return nil, err
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database. It is safe on a nil store.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Write appends the artifact as a new snapshot row.
func (s *Store) Write(ctx context.Context, a snapshot.Artifact) error {
	payload, err := snapshot.Encode(a)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO snapshots (version, last_seq, generated_at, payload) VALUES (?, ?, ?, ?)`,
		a.Version, int64(a.LastSeq), toMillis(a.GeneratedAt), payload,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Read returns the most recently written artifact.
func (s *Store) Read(ctx context.Context) (snapshot.Artifact, error) {
	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return snapshot.Artifact{}, snapshot.ErrNotFound
	}
	if err != nil {
		return snapshot.Artifact{}, fmt.Errorf("select snapshot: %w", err)
	}
	return snapshot.Decode(payload)
}

// History lists stored snapshots, newest first. A non-positive limit lists all.
func (s *Store) History(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, version, last_seq, generated_at FROM snapshots ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry       Entry
			lastSeq     int64
			generatedAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.Version, &lastSeq, &generatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		entry.LastSeq = uint64(lastSeq)
		entry.GeneratedAt = fromMillis(generatedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return entries, nil
}
