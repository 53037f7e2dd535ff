package export

import (
	"context"
	"path/filepath"
	"testing"
)

func TestArchiveStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "archive.db")
	a, err := OpenArchive(ctx, path)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	defer a.Close()

	added, err := a.Store(ctx, fixtureResults(t))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if added != 2 {
		t.Errorf("first store added %d rows, want 2", added)
	}

	count, err := a.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("archive has %d rows, want 2", count)
	}
}

func TestArchiveStoreIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "archive.db")
	a, err := OpenArchive(ctx, path)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	defer a.Close()

	if _, err := a.Store(ctx, fixtureResults(t)); err != nil {
		t.Fatalf("first Store: %v", err)
	}

	// Re-archiving the same result set adds nothing: rows are keyed on the
	// approach's natural key.
	added, err := a.Store(ctx, fixtureResults(t))
	if err != nil {
		t.Fatalf("second Store: %v", err)
	}
	if added != 0 {
		t.Errorf("second store added %d rows, want 0", added)
	}

	count, err := a.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("archive has %d rows after re-store, want 2", count)
	}
}

func TestArchiveNullDiameter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "archive.db")
	a, err := OpenArchive(ctx, path)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	defer a.Close()

	if _, err := a.Store(ctx, fixtureResults(t)); err != nil {
		t.Fatalf("Store: %v", err)
	}

	// The unnamed fixture NEO has an unknown diameter; it lands as NULL.
	var nulls int
	err = a.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM close_approaches WHERE diameter_km IS NULL").Scan(&nulls)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if nulls != 1 {
		t.Errorf("%d NULL diameters, want 1", nulls)
	}
}

func TestArchiveReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "archive.db")

	a, err := OpenArchive(ctx, path)
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	if _, err := a.Store(ctx, fixtureResults(t)); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Schema creation is idempotent and existing rows survive reopen.
	b, err := OpenArchive(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	count, err := b.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("reopened archive has %d rows, want 2", count)
	}
}
