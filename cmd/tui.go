package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/perigee/internal/config"
	"github.com/papapumpkin/perigee/internal/database"
	"github.com/papapumpkin/perigee/internal/tui"
	"github.com/papapumpkin/perigee/internal/watch"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse close approaches interactively",
	Long: `Tui opens a terminal explorer over the linked dataset: scroll the
close-approach list, cycle the hazardous filter, and reload the dataset
from disk. With --watch the explorer reloads automatically whenever a
dataset file changes.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().Bool("watch", false, "reload automatically when dataset files change")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	db, d, err := loadDatabase()
	if err != nil {
		return err
	}
	defer d.Close()

	// Each reload's emitter is closed immediately: linking diagnostics are
	// flushed during construction and the explorer emits none afterward.
	reload := func() (*database.Database, error) {
		db, rd, err := loadDatabase()
		rd.Close()
		return db, err
	}

	var w *watch.Watcher
	if watchFlag, _ := cmd.Flags().GetBool("watch"); watchFlag {
		cfg := config.Load()
		w, err = watch.New(cfg.NEOPath, cfg.CADPath)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
	}

	return tui.Run(db, reload, w)
}
