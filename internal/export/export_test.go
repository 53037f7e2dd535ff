package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/papapumpkin/perigee/internal/neo"
)

// fixtureResults yields two linked approaches, the second by an unnamed NEO
// with an unknown diameter.
func fixtureResults(t *testing.T) Results {
	t.Helper()

	eros := &neo.NearEarthObject{Designation: "433", Name: "Eros", Diameter: 16.84, Hazardous: false}
	anon := &neo.NearEarthObject{Designation: "2000 AB", Name: "", Diameter: math.NaN(), Hazardous: true}

	cas := []*neo.CloseApproach{
		{
			Designation: "433",
			Time:        time.Date(2020, time.January, 1, 0, 30, 0, 0, time.UTC),
			Distance:    0.5,
			Velocity:    10.0,
			NEO:         eros,
		},
		{
			Designation: "2000 AB",
			Time:        time.Date(2021, time.March, 10, 23, 59, 0, 0, time.UTC),
			Distance:    0.02,
			Velocity:    40.0,
			NEO:         anon,
		},
	}
	return func(yield func(*neo.CloseApproach, error) bool) {
		for _, ca := range cas {
			if !yield(ca, nil) {
				return
			}
		}
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(fixtureResults(t), path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("csv has %d rows, want header + 2", len(rows))
	}

	for i, col := range Columns {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}

	want := []string{"2020-01-01 00:30", "0.5", "10", "433", "Eros", "16.84", "false"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row1[%d] = %q, want %q", i, rows[1][i], cell)
		}
	}

	// Unnamed NEO and unknown diameter serialize as "no name" and "nan".
	if rows[2][4] != "no name" {
		t.Errorf("unnamed cell = %q, want \"no name\"", rows[2][4])
	}
	if rows[2][5] != "nan" {
		t.Errorf("nan diameter cell = %q, want nan", rows[2][5])
	}
	if rows[2][6] != "true" {
		t.Errorf("hazardous cell = %q, want true", rows[2][6])
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(fixtureResults(t), path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("parse written json: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("json has %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first["datetime_utc"] != "2020-01-01 00:30" {
		t.Errorf("datetime_utc = %v", first["datetime_utc"])
	}
	firstNEO, ok := first["neo"].(map[string]any)
	if !ok {
		t.Fatalf("neo is %T, want object", first["neo"])
	}
	if firstNEO["designation"] != "433" || firstNEO["name"] != "Eros" {
		t.Errorf("nested neo = %v", firstNEO)
	}

	// NaN diameter must become null, not break encoding.
	secondNEO := entries[1]["neo"].(map[string]any)
	if secondNEO["diameter_km"] != nil {
		t.Errorf("unknown diameter = %v, want null", secondNEO["diameter_km"])
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	t.Parallel()

	empty := func(yield func(*neo.CloseApproach, error) bool) {}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(empty, path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("parse written json: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty result set wrote %d entries", len(entries))
	}
}

func TestWriteDispatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, name := range []string{"out.csv", "out.json", "out.xlsx"} {
		if err := Write(fixtureResults(t), filepath.Join(dir, name)); err != nil {
			t.Errorf("Write(%s): %v", name, err)
		}
	}

	err := Write(fixtureResults(t), filepath.Join(dir, "out.pcl"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Write with unknown extension: err = %v, want ErrUnknownFormat", err)
	}
}
