package cmd

import (
	"fmt"
	"os"

	"github.com/papapumpkin/perigee/internal/config"
	"github.com/papapumpkin/perigee/internal/database"
	"github.com/papapumpkin/perigee/internal/diag"
	"github.com/papapumpkin/perigee/internal/extract"
)

// loadDatabase reads both datasets per the active configuration and links
// them. The returned emitter is nil when diagnostics are disabled; the
// caller owns closing it.
func loadDatabase() (*database.Database, *diag.Emitter, error) {
	cfg := config.Load()

	var d *diag.Emitter
	if cfg.DiagPath != "" {
		var err error
		d, err = diag.NewEmitter(cfg.DiagPath)
		if err != nil {
			return nil, nil, err
		}
	}
	if cfg.Verbose {
		d.Mirror(os.Stderr)
	}

	neos, err := extract.LoadNEOs(cfg.NEOPath, d)
	if err != nil {
		d.Close()
		return nil, nil, err
	}
	approaches, err := extract.LoadApproaches(cfg.CADPath)
	if err != nil {
		d.Close()
		return nil, nil, err
	}

	db, err := database.New(neos, approaches, database.WithDiagnostics(d))
	if err != nil {
		d.Close()
		return nil, nil, fmt.Errorf("linking datasets: %w", err)
	}
	return db, d, nil
}
