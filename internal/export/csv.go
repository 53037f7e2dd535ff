package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// WriteCSV writes one header row followed by one row per close approach.
// An unknown diameter is written as "nan", booleans as "true"/"false".
func WriteCSV(results Results, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}

	for ca, err := range results {
		if err != nil {
			return err
		}
		row := flatten(ca)
		record := make([]string, len(Columns))
		for i, col := range Columns {
			record[i] = formatCell(row[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("export: write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}

func formatCell(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if math.IsNaN(v) {
			return "nan"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
