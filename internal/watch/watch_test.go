package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcherEmitsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	neoPath := filepath.Join(dir, "neos.csv")
	cadPath := filepath.Join(dir, "cad.json")
	writeFile(t, neoPath, "pdes,name,pha,diameter\n")
	writeFile(t, cadPath, `{"fields":[],"data":[]}`)

	w, err := New(neoPath, cadPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeFile(t, neoPath, "pdes,name,pha,diameter\n433,Eros,N,16.84\n")

	select {
	case changed := <-w.Reloads:
		if filepath.Base(changed) != "neos.csv" {
			t.Errorf("reload for %s, want neos.csv", changed)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload event after dataset write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	neoPath := filepath.Join(dir, "neos.csv")
	writeFile(t, neoPath, "pdes,name,pha,diameter\n")

	w, err := New(neoPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeFile(t, filepath.Join(dir, "unrelated.txt"), "noise")

	select {
	case changed := <-w.Reloads:
		t.Errorf("unexpected reload for %s", changed)
	case <-time.After(500 * time.Millisecond):
		// No event: the unrelated file was correctly filtered.
	}
}
