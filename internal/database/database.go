// Package database links a collection of near-Earth objects with a
// collection of close approaches into a navigable in-memory graph and
// answers queries over it. Construction is two-phase: records arrive
// unlinked from ingestion, and New runs the explicit linking pass. After
// construction the database is read-only; there are no update or delete
// operations.
package database

import (
	"errors"
	"fmt"
	"iter"

	"github.com/papapumpkin/perigee/internal/diag"
	"github.com/papapumpkin/perigee/internal/filter"
	"github.com/papapumpkin/perigee/internal/neo"
)

// ErrUnknownDesignation is returned when a close approach references a
// designation no NEO in the dataset carries. Linking is all-or-nothing: an
// unresolved foreign key aborts construction rather than leaving a dangling
// reference to be hit at query time.
var ErrUnknownDesignation = errors.New("close approach references unknown designation")

// Database owns the two linked collections and a designation-keyed lookup
// table built once at construction.
type Database struct {
	neos       []*neo.NearEarthObject
	approaches []*neo.CloseApproach

	byDesignation map[string]*neo.NearEarthObject

	diagnostics *diag.Emitter
}

// Option configures a Database under construction.
type Option func(*Database)

// WithDiagnostics routes data-quality events observed during construction
// and lookups to d. A nil emitter is valid and discards events.
func WithDiagnostics(d *diag.Emitter) Option {
	return func(db *Database) { db.diagnostics = d }
}

// New links the two collections and returns the database. Both input slices
// are mutated in place: every approach gets its NEO back-reference set, and
// every NEO accumulates its approaches. NEOs sharing a designation are not
// expected and not validated; the last one wins the lookup table.
//
// If any approach's designation matches no NEO, New returns a wrapped
// ErrUnknownDesignation and no database — callers never see a partially
// linked graph.
func New(neos []*neo.NearEarthObject, approaches []*neo.CloseApproach, opts ...Option) (*Database, error) {
	db := &Database{
		neos:          neos,
		approaches:    approaches,
		byDesignation: make(map[string]*neo.NearEarthObject, len(neos)),
	}
	for _, opt := range opts {
		opt(db)
	}

	for _, n := range neos {
		db.byDesignation[n.Designation] = n
	}

	for _, ca := range approaches {
		n, ok := db.byDesignation[ca.Designation]
		if !ok {
			return nil, fmt.Errorf("%w: %q at %s", ErrUnknownDesignation, ca.Designation, ca.TimeStr())
		}
		ca.NEO = n
		n.Approaches = append(n.Approaches, ca)
	}

	return db, nil
}

// Len returns the number of NEOs in the database.
func (db *Database) Len() int { return len(db.neos) }

// NEOs returns the NEO collection in storage order. Callers must not
// mutate it.
func (db *Database) NEOs() []*neo.NearEarthObject { return db.neos }

// Approaches returns the close-approach collection in storage order.
// Callers must not mutate it.
func (db *Database) Approaches() []*neo.CloseApproach { return db.approaches }

// GetByDesignation returns the NEO with the given primary designation, or
// nil when none exists. Matching is exact. An absent designation is an
// empty result, not an error.
func (db *Database) GetByDesignation(designation string) *neo.NearEarthObject {
	return db.byDesignation[designation]
}

// GetByName returns the first NEO (in collection order) with the given IAU
// name, or nil when none exists. The empty name is rejected without
// scanning — no NEO is associated with it. If more than one NEO carries
// the name, that is a data-quality anomaly: it is recorded via diagnostics
// and the first match is returned deterministically.
func (db *Database) GetByName(name string) *neo.NearEarthObject {
	if name == "" {
		db.diagnostics.Emit(diag.Event{
			Kind:   diag.KindEmptyNameLookup,
			Detail: "name lookup rejected: empty name",
		})
		return nil
	}

	var found *neo.NearEarthObject
	for _, n := range db.neos {
		if n.Name != name {
			continue
		}
		if found != nil {
			db.diagnostics.Emit(diag.Event{
				Kind:        diag.KindDuplicateName,
				Designation: n.Designation,
				Name:        name,
				Detail:      fmt.Sprintf("name also carried by %s", found.Designation),
			})
			continue
		}
		found = n
	}
	return found
}

// Query returns a lazy stream of the close approaches matching every
// predicate in preds, in storage order. With no predicates every approach
// is yielded. Each record is produced on demand, so a downstream
// filter.Limit terminates the scan early.
//
// A predicate that cannot be evaluated (filter.ErrUnsupportedCriterion)
// surfaces as the stream's final element with a non-nil error; no further
// records follow it.
func (db *Database) Query(preds []filter.Predicate) iter.Seq2[*neo.CloseApproach, error] {
	return func(yield func(*neo.CloseApproach, error) bool) {
		for _, ca := range db.approaches {
			match := true
			for _, p := range preds {
				ok, err := p.Match(ca)
				if err != nil {
					yield(nil, fmt.Errorf("query: %w", err))
					return
				}
				if !ok {
					match = false
					break
				}
			}
			if match && !yield(ca, nil) {
				return
			}
		}
	}
}
