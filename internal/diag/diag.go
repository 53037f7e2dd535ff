// Package diag records data-quality events observed while loading and
// linking a dataset. Events are appended as JSONL so a run's anomalies are
// auditable after the fact; per-kind counts are kept in memory for the stats
// command. Anomalies are diagnostics, never failures — callers emit and
// carry on.
package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of data-quality anomaly.
const (
	KindDuplicateName   = "duplicate_name"    // two NEOs share an IAU name
	KindEmptyNameLookup = "empty_name_lookup" // name lookup called with no name
	KindUnknownDiameter = "unknown_diameter"  // diameter field empty or unparseable
	KindRowSkipped      = "row_skipped"       // source row dropped during ingestion
)

// Event is a single diagnostic record.
type Event struct {
	Timestamp   time.Time `json:"ts"`
	Kind        string    `json:"kind"`
	Designation string    `json:"designation,omitempty"`
	Name        string    `json:"name,omitempty"`
	Detail      string    `json:"detail,omitempty"`
}

// Emitter writes diagnostic events to a JSONL file and tallies them by kind.
// It is safe for concurrent use. A nil *Emitter is a valid no-op emitter, so
// callers never need to branch on whether diagnostics are enabled.
type Emitter struct {
	file   *os.File
	enc    *json.Encoder
	mirror io.Writer

	mu     sync.Mutex
	counts map[string]int
}

// NewEmitter creates an Emitter appending to the JSONL file at path. The
// file is created if it does not exist.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("diag: open %s: %w", path, err)
	}
	return &Emitter{
		file:   f,
		enc:    json.NewEncoder(f),
		counts: make(map[string]int),
	}, nil
}

// Mirror additionally writes a one-line rendering of each event to w,
// typically stderr under --verbose.
func (e *Emitter) Mirror(w io.Writer) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mirror = w
}

// Emit records a single event. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.counts[evt.Kind]++
	if e.mirror != nil {
		fmt.Fprintf(e.mirror, "diag: %s %s %s %s\n", evt.Kind, evt.Designation, evt.Name, evt.Detail)
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("diag: encode event: %w", err)
	}
	return nil
}

// Counts returns a copy of the per-kind event tallies for this run.
// A nil Emitter returns an empty map.
func (e *Emitter) Counts() map[string]int {
	out := make(map[string]int)
	if e == nil {
		return out
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range e.counts {
		out[k] = v
	}
	return out
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("diag: close: %w", err)
	}
	return nil
}
