package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/codex/internal/db"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02 15:04:05.000"

// ErrNotFound is returned when no build matches.
var ErrNotFound = errors.New("build not found")

// Store provides access to the build ledger.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a build. If b.ID is empty a UUID is generated; a zero
// StartedAt is set to now. The stored record is returned.
func (s *Store) Record(ctx context.Context, b Build) (Build, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.StartedAt.IsZero() {
		b.StartedAt = time.Now()
	}
	if b.Trigger == "" {
		b.Trigger = TriggerBuild
	}
	if b.Status == "" {
		b.Status = StatusOK
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (
			id, started_at, duration_ms, manifest, manifest_digest, output_dir,
			pages, plates, thumbnails, assets, trigger, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.StartedAt.UTC().Format(timeLayout),
		b.Duration.Milliseconds(),
		b.Manifest,
		b.ManifestDigest,
		b.OutputDir,
		b.Pages,
		b.Plates,
		b.Thumbnails,
		b.Assets,
		string(b.Trigger),
		string(b.Status),
		b.Error,
	)
	if err != nil {
		return Build{}, fmt.Errorf("inserting build: %w", err)
	}
	return b, nil
}

// GetByID retrieves a single build.
func (s *Store) GetByID(ctx context.Context, id string) (*Build, error) {
	row := s.db.QueryRowContext(ctx, selectBuilds+" WHERE id = ?", id)
	b, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// Filter controls which builds List returns.
type Filter struct {
	Status  Status
	Trigger Trigger
	Since   *time.Time
	Limit   int
	Offset  int
}

const selectBuilds = `SELECT id, started_at, duration_ms, manifest, manifest_digest, output_dir,
	pages, plates, thumbnails, assets, trigger, status, error FROM builds`

// List returns builds matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Build, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Trigger != "" {
		clauses = append(clauses, "trigger = ?")
		args = append(args, string(filter.Trigger))
	}
	if filter.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}

	query := selectBuilds
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY started_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, *b)
	}
	return builds, rows.Err()
}

// LastSuccessful returns the newest build with status ok.
func (s *Store) LastSuccessful(ctx context.Context) (*Build, error) {
	builds, err := s.List(ctx, Filter{Status: StatusOK, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, ErrNotFound
	}
	return &builds[0], nil
}

// DeleteBefore removes builds started before the given time and returns
// the number of deleted rows.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM builds WHERE started_at < ?",
		before.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old builds: %w", err)
	}
	return res.RowsAffected()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Build, error) {
	var (
		b               Build
		started         string
		durationMS      int64
		trigger, status string
	)

	err := sc.Scan(
		&b.ID, &started, &durationMS, &b.Manifest, &b.ManifestDigest, &b.OutputDir,
		&b.Pages, &b.Plates, &b.Thumbnails, &b.Assets, &trigger, &status, &b.Error,
	)
	if err != nil {
		return nil, err
	}

	b.Trigger = Trigger(trigger)
	b.Status = Status(status)
	b.Duration = time.Duration(durationMS) * time.Millisecond
	if t, parseErr := time.Parse(timeLayout, started); parseErr == nil {
		b.StartedAt = t
	} else if t, parseErr := time.Parse(time.RFC3339Nano, started); parseErr == nil {
		b.StartedAt = t
	}
	return &b, nil
}
