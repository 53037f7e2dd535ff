// Package extract loads the two NASA source datasets into unlinked record
// collections: near-Earth objects from the small-body database CSV export,
// and close approaches from the close-approach-data JSON API dump. All
// field-level coercion happens here; downstream packages receive
// well-typed records.
package extract

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/papapumpkin/perigee/internal/diag"
	"github.com/papapumpkin/perigee/internal/neo"
)

// ErrMissingColumn is returned when a source file lacks a required column.
var ErrMissingColumn = errors.New("required column missing")

// cadTimeLayout is the timestamp format of the cad.json "cd" field.
const cadTimeLayout = "2006-Jan-02 15:04"

// LoadNEOs reads near-Earth objects from a NASA sbdb CSV export. Only the
// pdes, name, pha, and diameter columns are consumed; all others are
// ignored. Quirks of the dataset are normalized here: a missing name
// becomes the empty string, pha is true only for an explicit "Y", and an
// empty or unparseable diameter becomes NaN with a diagnostic event rather
// than a rejected record — most small bodies have no measured diameter,
// and rejecting them would gut the dataset.
func LoadNEOs(path string, d *diag.Emitter) ([]*neo.NearEarthObject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("extract: open neo csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("extract: read neo csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"pdes", "name", "pha", "diameter"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("extract: neo csv: %w: %s", ErrMissingColumn, required)
		}
	}

	var neos []*neo.NearEarthObject
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("extract: read neo csv row: %w", err)
		}

		designation := row[cols["pdes"]]
		if designation == "" {
			d.Emit(diag.Event{Kind: diag.KindRowSkipped, Detail: "neo row with empty pdes"})
			continue
		}

		diameter := math.NaN()
		if raw := row[cols["diameter"]]; raw != "" {
			diameter, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				diameter = math.NaN()
				d.Emit(diag.Event{
					Kind:        diag.KindUnknownDiameter,
					Designation: designation,
					Detail:      fmt.Sprintf("unparseable diameter %q", raw),
				})
			}
		} else {
			d.Emit(diag.Event{Kind: diag.KindUnknownDiameter, Designation: designation})
		}

		neos = append(neos, &neo.NearEarthObject{
			Designation: designation,
			Name:        row[cols["name"]],
			Diameter:    diameter,
			Hazardous:   row[cols["pha"]] == "Y",
		})
	}

	return neos, nil
}

// cadFile mirrors the layout of NASA's cad.json: a column-name list and a
// row-major table of values. Values are strings in practice, but the API
// emits null for absent fields, so rows decode as []any.
type cadFile struct {
	Fields []string `json:"fields"`
	Data   [][]any  `json:"data"`
}

// LoadApproaches reads close approaches from a cad.json file. The des, cd,
// dist, and v_rel columns are consumed. Unlike the diameter sentinel in
// LoadNEOs, a malformed approach row is a hard error: every field here is
// load-bearing for linking and querying.
func LoadApproaches(path string) ([]*neo.CloseApproach, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("extract: read cad json: %w", err)
	}

	var file cadFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("extract: parse cad json: %w", err)
	}

	cols := make(map[string]int, len(file.Fields))
	for i, name := range file.Fields {
		cols[name] = i
	}
	for _, required := range []string{"des", "cd", "dist", "v_rel"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("extract: cad json: %w: %s", ErrMissingColumn, required)
		}
	}

	approaches := make([]*neo.CloseApproach, 0, len(file.Data))
	for i, row := range file.Data {
		if len(row) != len(file.Fields) {
			return nil, fmt.Errorf("extract: cad json row %d: %d values for %d fields", i, len(row), len(file.Fields))
		}

		designation, err := cell(row, cols["des"])
		if err != nil {
			return nil, fmt.Errorf("extract: cad json row %d: des: %w", i, err)
		}

		cd, err := cell(row, cols["cd"])
		if err != nil {
			return nil, fmt.Errorf("extract: cad json row %d: cd: %w", i, err)
		}
		t, err := time.ParseInLocation(cadTimeLayout, cd, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("extract: cad json row %d: parse time %q: %w", i, cd, err)
		}

		distance, err := cellFloat(row, cols["dist"])
		if err != nil {
			return nil, fmt.Errorf("extract: cad json row %d: dist: %w", i, err)
		}
		velocity, err := cellFloat(row, cols["v_rel"])
		if err != nil {
			return nil, fmt.Errorf("extract: cad json row %d: v_rel: %w", i, err)
		}

		approaches = append(approaches, &neo.CloseApproach{
			Designation: designation,
			Time:        t,
			Distance:    distance,
			Velocity:    velocity,
		})
	}

	return approaches, nil
}

func cell(row []any, idx int) (string, error) {
	s, ok := row[idx].(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", row[idx])
	}
	return s, nil
}

func cellFloat(row []any, idx int) (float64, error) {
	s, err := cell(row, idx)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse float %q: %w", s, err)
	}
	return v, nil
}
