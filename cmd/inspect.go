package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/perigee/internal/neo"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a single NEO by designation or name",
	Long: `Inspect looks up one near-Earth object, either by its primary
designation (exact match, e.g. --pdes 433) or by its IAU name (exact
match, e.g. --name Eros). With --verbose, every known close approach of
the object is listed as well.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("pdes", "", "primary designation of the NEO")
	inspectCmd.Flags().String("name", "", "IAU name of the NEO")
	inspectCmd.MarkFlagsOneRequired("pdes", "name")
	inspectCmd.MarkFlagsMutuallyExclusive("pdes", "name")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	db, d, err := loadDatabase()
	if err != nil {
		return err
	}
	defer d.Close()

	var found *neo.NearEarthObject
	if pdes, _ := cmd.Flags().GetString("pdes"); pdes != "" {
		found = db.GetByDesignation(pdes)
	} else {
		name, _ := cmd.Flags().GetString("name")
		found = db.GetByName(name)
	}

	if found == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no matching NEOs exist in the database")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), found)

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		for _, ca := range found.Approaches {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", ca)
		}
	}
	return nil
}
