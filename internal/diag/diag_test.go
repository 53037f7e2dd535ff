package diag

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmitterWritesJSONL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "diag.jsonl")
	e, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	events := []Event{
		{Kind: KindUnknownDiameter, Designation: "2000 AB"},
		{Kind: KindDuplicateName, Designation: "A2", Name: "Twin"},
		{Kind: KindUnknownDiameter, Designation: "2000 AC"},
	}
	for _, evt := range events {
		if err := e.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("line %d is not valid json: %v", lines+1, err)
		}
		if evt.Timestamp.IsZero() {
			t.Errorf("line %d has no timestamp", lines+1)
		}
		lines++
	}
	if lines != 3 {
		t.Errorf("wrote %d lines, want 3", lines)
	}
}

func TestEmitterCounts(t *testing.T) {
	t.Parallel()

	e, err := NewEmitter(filepath.Join(t.TempDir(), "diag.jsonl"))
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	defer e.Close()

	e.Emit(Event{Kind: KindUnknownDiameter})
	e.Emit(Event{Kind: KindUnknownDiameter})
	e.Emit(Event{Kind: KindEmptyNameLookup})

	counts := e.Counts()
	if counts[KindUnknownDiameter] != 2 {
		t.Errorf("unknown_diameter = %d, want 2", counts[KindUnknownDiameter])
	}
	if counts[KindEmptyNameLookup] != 1 {
		t.Errorf("empty_name_lookup = %d, want 1", counts[KindEmptyNameLookup])
	}
}

func TestEmitterMirror(t *testing.T) {
	t.Parallel()

	e, err := NewEmitter(filepath.Join(t.TempDir(), "diag.jsonl"))
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	defer e.Close()

	var buf bytes.Buffer
	e.Mirror(&buf)
	e.Emit(Event{Kind: KindDuplicateName, Name: "Twin"})

	if !strings.Contains(buf.String(), KindDuplicateName) {
		t.Errorf("mirror output %q does not mention the event kind", buf.String())
	}
}

func TestNilEmitterIsNoOp(t *testing.T) {
	t.Parallel()

	var e *Emitter
	if err := e.Emit(Event{Kind: KindRowSkipped}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if got := e.Counts(); len(got) != 0 {
		t.Errorf("nil Counts() = %v, want empty", got)
	}
	e.Mirror(os.Stderr)
	if err := e.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
