package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parcelgate/internal/diagnostics"
)

const schema = `
	CREATE TABLE IF NOT EXISTS unresolved_zoning (
		id UUID PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		commune TEXT NOT NULL DEFAULT '',
		parcel_id TEXT NOT NULL DEFAULT '',
		dialect TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL,
		raw TEXT NOT NULL DEFAULT '',
		recorded_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS unresolved_zoning_recorded_at_idx
		ON unresolved_zoning (recorded_at DESC);
`

var timeNow = func() time.Time { return time.Now().UTC() }

// Store persists unresolved records in the unresolved_zoning table.
type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Connect opens a pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create unresolved_zoning schema: %w", err)
	}
	return nil
}

// Record inserts u. Re-recording the same ID is a no-op.
func (s *Store) Record(ctx context.Context, u diagnostics.Unresolved) error {
	u = diagnostics.Prepare(u, timeNow())
	query := `
		INSERT INTO unresolved_zoning (
			id, lat, lng, commune, parcel_id, dialect, reason, raw, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.Exec(ctx, query,
		u.ID,
		u.Point.Lat,
		u.Point.Lng,
		u.Commune,
		u.ParcelID,
		u.Dialect,
		u.Reason,
		u.Raw,
		u.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert unresolved zoning: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]diagnostics.Unresolved, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, lat, lng, commune, parcel_id, dialect, reason, raw, recorded_at
		FROM unresolved_zoning
		ORDER BY recorded_at DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unresolved zoning: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]diagnostics.Unresolved, error) {
	var out []diagnostics.Unresolved
	for rows.Next() {
		var u diagnostics.Unresolved
		err := rows.Scan(
			&u.ID,
			&u.Point.Lat,
			&u.Point.Lng,
			&u.Commune,
			&u.ParcelID,
			&u.Dialect,
			&u.Reason,
			&u.Raw,
			&u.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan unresolved zoning: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unresolved zoning: %w", err)
	}
	return out, nil
}
