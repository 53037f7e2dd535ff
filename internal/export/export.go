// Package export serializes a stream of linked close approaches to tabular
// and structured formats: CSV, JSON, XLSX, and a sqlite archive keyed on
// each approach's natural key. Writers consume the lazy query stream
// directly, so exporting a limited result set never materializes the whole
// database.
package export

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/papapumpkin/perigee/internal/neo"
)

// ErrUnknownFormat is returned when an output path has an extension no
// writer handles.
var ErrUnknownFormat = errors.New("unknown output format")

// Columns is the flat field order shared by the tabular writers.
var Columns = []string{
	"datetime_utc", "distance_au", "velocity_km_s",
	"designation", "name", "diameter_km", "potentially_hazardous",
}

// Results is the stream type produced by database.Query and filter.Limit.
type Results = iter.Seq2[*neo.CloseApproach, error]

// Write serializes results to path, choosing the writer by file extension:
// .csv, .json, or .xlsx. For a sqlite archive use Archive directly.
func Write(results Results, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(results, path)
	case ".json":
		return WriteJSON(results, path)
	case ".xlsx":
		return WriteXLSX(results, path)
	case ".db", ".sqlite", ".sqlite3":
		return writeArchive(results, path)
	default:
		return fmt.Errorf("export: %w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

func writeArchive(results Results, path string) error {
	ctx := context.Background()
	a, err := OpenArchive(ctx, path)
	if err != nil {
		return err
	}
	defer a.Close()
	_, err = a.Store(ctx, results)
	return err
}

// flatten merges an approach's serialized form with its linked NEO's,
// producing one row mapping every column name to a value.
func flatten(ca *neo.CloseApproach) map[string]any {
	row := ca.Serialize()
	for k, v := range ca.NEO.Serialize() {
		row[k] = v
	}
	return row
}
