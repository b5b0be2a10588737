// Package calibstore is the optional Postgres-backed historical sample
// store for internal/calibration (SPEC_FULL.md §5.5). Disabled by
// default; when disabled, Store.Samples always returns an empty slice
// so the calibrator falls back to cold-start without special-casing a
// nil store.
//
// Grounded on sawpanic-cryptorun/internal/infrastructure/db/connection.go
// (sqlx.Open + connection pool + enabled-flag manager shape) and
// internal/persistence/postgres/regime_repo.go (upsert/list query
// style), adapted from a regime-snapshot schema to a flat
// (symbol, direction, score, outcome) calibration-sample schema.
package calibstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/foreverwb/volquant/internal/calibration"
	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/errs"
)

// Direction distinguishes a long-vol from a short-vol sample row.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Record is one persisted calibration sample: the composite score that
// was computed, the direction it was computed for, and whether that
// direction's thesis was subsequently realized.
type Record struct {
	Symbol    string
	Direction Direction
	Score     float64
	Outcome   bool
	Timestamp time.Time
}

// Store wraps an optional sqlx.DB. When the config disables the store,
// every method is a documented no-op instead of touching the network.
type Store struct {
	db      *sqlx.DB
	cfg     config.CalibrationStoreConfig
	enabled bool
}

// Open connects when cfg.Enabled is true; with it false, returns a
// Store in no-op mode rather than an error (spec.md's calibration
// store is an ambient enhancement, never a hard dependency).
func Open(cfg config.CalibrationStoreConfig) (*Store, error) {
	if !cfg.Enabled {
		return &Store{cfg: cfg, enabled: false}, nil
	}
	if cfg.DSN == "" {
		return nil, errs.ValidationError([]string{"calibration store enabled without a dsn"})
	}

	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errs.IOError("opening calibration store", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errs.IOError("pinging calibration store", err)
	}

	return &Store{db: db, cfg: cfg, enabled: true}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Enabled() bool { return s.enabled }

// Record inserts a calibration sample (the outcome is typically
// unknown at record time and updated later via RecordOutcome).
func (s *Store) Record(ctx context.Context, rec Record) error {
	if !s.enabled {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	const query = `
		INSERT INTO calibration_samples (symbol, direction, score, outcome, ts)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.ExecContext(ctx, query, rec.Symbol, rec.Direction, rec.Score, rec.Outcome, rec.Timestamp)
	if err != nil {
		return errs.IOError("recording calibration sample", err)
	}
	return nil
}

// RecordOutcome backfills the realized outcome for the most recent
// sample of (symbol, direction) at or before ts, whether or not that
// sample already had an outcome set.
func (s *Store) RecordOutcome(ctx context.Context, symbol string, direction Direction, ts time.Time, outcome bool) error {
	if !s.enabled {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	const query = `
		UPDATE calibration_samples SET outcome = $1
		WHERE id = (
			SELECT id FROM calibration_samples
			WHERE symbol = $2 AND direction = $3 AND ts <= $4
			ORDER BY ts DESC LIMIT 1
		)`
	_, err := s.db.ExecContext(ctx, query, outcome, symbol, direction, ts)
	if err != nil {
		return errs.IOError("recording calibration outcome", err)
	}
	return nil
}

// Samples returns every calibration.Sample recorded for (symbol,
// direction), oldest first, suitable for internal/calibration's
// FitIsotonic/FitPlatt. Returns an empty slice, not an error, when the
// store is disabled.
func (s *Store) Samples(ctx context.Context, symbol string, direction Direction) ([]calibration.Sample, error) {
	if !s.enabled {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	const query = `
		SELECT score, outcome FROM calibration_samples
		WHERE symbol = $1 AND direction = $2
		ORDER BY ts ASC`
	rows, err := s.db.QueryxContext(ctx, query, symbol, direction)
	if err != nil {
		return nil, errs.IOError("listing calibration samples", err)
	}
	defer rows.Close()

	var out []calibration.Sample
	for rows.Next() {
		var score float64
		var outcome bool
		if err := rows.Scan(&score, &outcome); err != nil {
			if err == sql.ErrNoRows {
				break
			}
			return nil, errs.IOError("scanning calibration sample", err)
		}
		out = append(out, calibration.Sample{Score: score, Outcome: outcome})
	}
	if err := rows.Err(); err != nil {
		return nil, errs.IOError("iterating calibration samples", err)
	}
	return out, nil
}

// Migration is the minimal schema this store assumes. It is surfaced
// here rather than applied automatically because migrations run
// outside this engine's deterministic-core boundary (spec.md §1's
// "external collaborators").
const Migration = `
CREATE TABLE IF NOT EXISTS calibration_samples (
	id SERIAL PRIMARY KEY,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	score DOUBLE PRECISION NOT NULL,
	outcome BOOLEAN NOT NULL DEFAULT FALSE,
	ts TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_calibration_samples_symbol_direction
	ON calibration_samples (symbol, direction, ts);
`
