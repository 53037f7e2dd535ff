package extract

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Manifest describes where and when the two datasets were retrieved. It is
// optional provenance metadata, written by whatever fetched the files and
// surfaced by the stats command.
type Manifest struct {
	GeneratedAt time.Time `toml:"generated_at"`
	NEOs        Source    `toml:"neos"`
	Approaches  Source    `toml:"approaches"`
}

// Source names one dataset's origin.
type Source struct {
	URL       string `toml:"url"`
	Retrieved string `toml:"retrieved,omitempty"`
}

// LoadManifest reads a dataset manifest from path. A missing file is not an
// error: it returns a zero-value manifest, letting callers proceed without
// provenance.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("extract: read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("extract: parse manifest: %w", err)
	}
	return &m, nil
}
