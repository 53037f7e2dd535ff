package export

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// WriteJSON writes the results as a JSON array of objects, each with the
// approach fields at the top level and the linked NEO's fields nested under
// "neo". encoding/json rejects NaN, so an unknown diameter is emitted as
// null.
func WriteJSON(results Results, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	var out []map[string]any
	for ca, err := range results {
		if err != nil {
			return err
		}
		entry := ca.Serialize()
		neoEntry := ca.NEO.Serialize()
		if d, ok := neoEntry["diameter_km"].(float64); ok && math.IsNaN(d) {
			neoEntry["diameter_km"] = nil
		}
		entry["neo"] = neoEntry
		out = append(out, entry)
	}
	if out == nil {
		out = []map[string]any{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}
