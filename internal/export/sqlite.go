package export

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema contains the DDL executed on every open. IF NOT EXISTS makes it
// safe to rerun against an existing archive.
const schema = `
CREATE TABLE IF NOT EXISTS close_approaches (
    natural_key           TEXT PRIMARY KEY,
    datetime_utc          TEXT NOT NULL,
    distance_au           REAL NOT NULL,
    velocity_km_s         REAL NOT NULL,
    designation           TEXT NOT NULL,
    name                  TEXT NOT NULL DEFAULT '',
    diameter_km           REAL,
    potentially_hazardous INTEGER NOT NULL DEFAULT 0,
    archived_at           TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Archive is an append-only sqlite store of query results. Rows are keyed
// on each approach's natural key, so archiving overlapping result sets is
// idempotent: an approach already present is left untouched.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) a sqlite archive at path, enables WAL mode
// and a busy timeout, and creates the schema if needed.
func OpenArchive(ctx context.Context, path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open database: %w", err)
	}

	// One connection: sqlite has a single writer, and one connection keeps
	// every PRAGMA applied to the connection actually used.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: create schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Store inserts every result into the archive inside one transaction and
// returns the number of rows actually added. Approaches whose natural key
// is already present are skipped. An unknown diameter is stored as NULL —
// REAL columns round-trip NaN poorly across drivers.
func (a *Archive) Store(ctx context.Context, results Results) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("archive: begin: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO close_approaches
			(natural_key, datetime_utc, distance_au, velocity_km_s,
			 designation, name, diameter_km, potentially_hazardous)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(natural_key) DO NOTHING`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("archive: prepare: %w", err)
	}
	defer stmt.Close()

	added := 0
	for ca, err := range results {
		if err != nil {
			return added, err
		}

		var diameter any
		if !math.IsNaN(ca.NEO.Diameter) {
			diameter = ca.NEO.Diameter
		}

		res, err := stmt.ExecContext(ctx,
			ca.NaturalKey(), ca.TimeStr(), ca.Distance, ca.Velocity,
			ca.NEO.Designation, ca.NEO.Name, diameter, ca.NEO.Hazardous)
		if err != nil {
			return added, fmt.Errorf("archive: insert %s: %w", ca.NaturalKey(), err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return added, fmt.Errorf("archive: commit: %w", err)
	}
	return added, nil
}

// Count returns the number of archived approaches.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM close_approaches").Scan(&n); err != nil {
		return 0, fmt.Errorf("archive: count: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("archive: close: %w", err)
	}
	return nil
}
