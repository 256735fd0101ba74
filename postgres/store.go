package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/date"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Store implements fundamental.Store using PostgreSQL.
//
// Every observation is a row of the fundamentals table. A query returns the
// most recent row published on or before the requested date.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close shuts down the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Get implements fundamental.Store.
func (s *Store) Get(ctx context.Context, on date.Date, id fundamental.ID, path string) (fundamental.Value, error) {
	if err := fundamental.ValidatePath(path); err != nil {
		return fundamental.Absent(), err
	}
	const query = `
		SELECT value::text
		FROM fundamentals
		WHERE security_id = $1 AND path = $2 AND as_of <= $3
		ORDER BY as_of DESC
		LIMIT 1`

	var text string
	err := s.pool.QueryRow(ctx, query, id.String(), path, on.Time()).Scan(&text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fundamental.Absent(), nil
		}
		return fundamental.Absent(), unavailable("get", id, path, err)
	}
	v, err := decimal.NewFromString(text)
	if err != nil {
		return fundamental.Absent(), fmt.Errorf("postgres: get %s %s: parse %q: %w", id, path, text, err)
	}
	return fundamental.V(v), nil
}

const upsert = `
	INSERT INTO fundamentals (security_id, path, as_of, value)
	VALUES ($1, $2, $3, $4::numeric)
	ON CONFLICT (security_id, path, as_of) DO UPDATE SET
		value = EXCLUDED.value`

// Put inserts or replaces a single observation.
func (s *Store) Put(ctx context.Context, o fundamental.Observation) error {
	if err := fundamental.ValidatePath(o.Path); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, upsert, o.ID.String(), o.Path, o.On.Time(), o.Value.String()); err != nil {
		return unavailable("put", o.ID, o.Path, err)
	}
	return nil
}

// Import inserts or replaces multiple observations in a single batch.
func (s *Store) Import(ctx context.Context, obs []fundamental.Observation) error {
	if len(obs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, o := range obs {
		if err := fundamental.ValidatePath(o.Path); err != nil {
			return err
		}
		batch.Queue(upsert, o.ID.String(), o.Path, o.On.Time(), o.Value.String())
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for _, o := range obs {
		if _, err := br.Exec(); err != nil {
			return unavailable("import", o.ID, o.Path, err)
		}
	}
	return nil
}

// unavailable wraps a driver error so that callers can test it against
// fundamental.ErrStoreUnavailable, keeping the driver error in the chain.
func unavailable(op string, id fundamental.ID, path string, err error) error {
	return fmt.Errorf("postgres: %s %s %s: %w: %w", op, id, path, fundamental.ErrStoreUnavailable, err)
}

// Compile-time interface check.
var _ fundamental.Store = (*Store)(nil)
