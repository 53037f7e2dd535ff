package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/perigee/internal/config"
	"github.com/papapumpkin/perigee/internal/extract"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the loaded datasets",
	Long: `Stats loads and links both datasets, then prints collection sizes,
a breakdown of named, hazardous, and measured objects, dataset provenance
from the manifest when one exists, and any data-quality diagnostics
recorded during the load.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	db, d, err := loadDatabase()
	if err != nil {
		return err
	}
	defer d.Close()

	named, hazardous, measured := 0, 0, 0
	for _, n := range db.NEOs() {
		if n.Named() {
			named++
		}
		if n.Hazardous {
			hazardous++
		}
		if n.HasDiameter() {
			measured++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "near-Earth objects: %d (%d named, %d potentially hazardous, %d with measured diameter)\n",
		db.Len(), named, hazardous, measured)
	fmt.Fprintf(out, "close approaches:   %d\n", len(db.Approaches()))

	cfg := config.Load()
	manifest, err := extract.LoadManifest(filepath.Join(filepath.Dir(cfg.NEOPath), "manifest.toml"))
	if err != nil {
		return err
	}
	if !manifest.GeneratedAt.IsZero() {
		fmt.Fprintf(out, "dataset generated:  %s\n", manifest.GeneratedAt.Format("2006-01-02"))
		if manifest.NEOs.URL != "" {
			fmt.Fprintf(out, "  neos:       %s\n", manifest.NEOs.URL)
		}
		if manifest.Approaches.URL != "" {
			fmt.Fprintf(out, "  approaches: %s\n", manifest.Approaches.URL)
		}
	}

	counts := d.Counts()
	if len(counts) > 0 {
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Fprintln(out, "diagnostics:")
		for _, k := range kinds {
			fmt.Fprintf(out, "  %s: %d\n", k, counts[k])
		}
	}
	return nil
}
