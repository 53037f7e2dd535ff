package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/perigee/internal/export"
	"github.com/papapumpkin/perigee/internal/filter"
	"github.com/papapumpkin/perigee/internal/neo"
)

// dateLayout is the civil-date format accepted by the date flags.
const dateLayout = "2006-01-02"

// previewLimit caps the human-readable print when no outfile or explicit
// limit is given.
const previewLimit = 10

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query close approaches matching a set of criteria",
	Long: `Query finds close approaches matching the conjunction of every
criterion flag supplied. Unset flags contribute no constraint. With no
--outfile the first matches are printed; otherwise the output format is
chosen by the file extension (.csv, .json, .xlsx).

An exact --date is equivalent to --start-date and --end-date on the same
day. --hazardous and --not-hazardous are distinct from leaving the flag
off entirely.`,
	RunE: runQuery,
}

func init() {
	addCriterionFlags(queryCmd)
	queryCmd.Flags().Int("limit", 0, "maximum number of results (0 = no limit)")
	queryCmd.Flags().String("outfile", "", "write results to this file (.csv, .json, .xlsx)")
	queryCmd.Flags().String("archive", "", "append results to this sqlite archive")

	rootCmd.AddCommand(queryCmd)
}

// addCriterionFlags registers the ten criterion flags on cmd.
func addCriterionFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "approaches on this date (YYYY-MM-DD)")
	cmd.Flags().String("start-date", "", "approaches on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "approaches on or before this date (YYYY-MM-DD)")
	cmd.Flags().Float64("min-distance", 0, "minimum approach distance (au)")
	cmd.Flags().Float64("max-distance", 0, "maximum approach distance (au)")
	cmd.Flags().Float64("min-velocity", 0, "minimum approach velocity (km/s)")
	cmd.Flags().Float64("max-velocity", 0, "maximum approach velocity (km/s)")
	cmd.Flags().Float64("min-diameter", 0, "minimum NEO diameter (km)")
	cmd.Flags().Float64("max-diameter", 0, "maximum NEO diameter (km)")
	cmd.Flags().Bool("hazardous", false, "only potentially hazardous NEOs")
	cmd.Flags().Bool("not-hazardous", false, "only NEOs not flagged hazardous")
}

// criteriaFromFlags translates the criterion flags into a filter.Criteria.
// Only flags the user actually set contribute; numeric zero values from
// unset flags must not become constraints.
func criteriaFromFlags(cmd *cobra.Command) (filter.Criteria, error) {
	var c filter.Criteria

	for _, spec := range []struct {
		flag string
		dst  **time.Time
	}{
		{"date", &c.Date},
		{"start-date", &c.StartDate},
		{"end-date", &c.EndDate},
	} {
		if !cmd.Flags().Changed(spec.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(spec.flag)
		t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return c, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", spec.flag, raw)
		}
		*spec.dst = &t
	}

	for _, spec := range []struct {
		flag string
		dst  **float64
	}{
		{"min-distance", &c.DistanceMin},
		{"max-distance", &c.DistanceMax},
		{"min-velocity", &c.VelocityMin},
		{"max-velocity", &c.VelocityMax},
		{"min-diameter", &c.DiameterMin},
		{"max-diameter", &c.DiameterMax},
	} {
		if !cmd.Flags().Changed(spec.flag) {
			continue
		}
		v, _ := cmd.Flags().GetFloat64(spec.flag)
		*spec.dst = &v
	}

	hazardousSet := cmd.Flags().Changed("hazardous")
	notHazardousSet := cmd.Flags().Changed("not-hazardous")
	if hazardousSet && notHazardousSet {
		return c, fmt.Errorf("--hazardous and --not-hazardous are mutually exclusive")
	}
	if hazardousSet {
		v, _ := cmd.Flags().GetBool("hazardous")
		c.Hazardous = &v
	}
	if notHazardousSet {
		v, _ := cmd.Flags().GetBool("not-hazardous")
		v = !v
		c.Hazardous = &v
	}

	return c, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	db, d, err := loadDatabase()
	if err != nil {
		return err
	}
	defer d.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	results := filter.Limit(db.Query(filter.Build(criteria)), limit)

	outfile, _ := cmd.Flags().GetString("outfile")
	archive, _ := cmd.Flags().GetString("archive")

	if archive != "" {
		a, err := export.OpenArchive(cmd.Context(), archive)
		if err != nil {
			return err
		}
		added, err := a.Store(cmd.Context(), results)
		if cerr := a.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archived %d new approaches to %s\n", added, archive)
		return nil
	}

	if outfile != "" {
		return export.Write(results, outfile)
	}

	return printResults(cmd, results, limit)
}

// printResults writes a human-readable listing to stdout. Without an
// explicit limit only the first previewLimit matches are shown, with a
// hint about the rest.
func printResults(cmd *cobra.Command, results export.Results, limit int) error {
	shown := 0
	capped := false
	var printErr error

	results(func(ca *neo.CloseApproach, err error) bool {
		if err != nil {
			printErr = err
			return false
		}
		if limit <= 0 && shown == previewLimit {
			capped = true
			return false
		}
		fmt.Fprintln(cmd.OutOrStdout(), ca)
		shown++
		return true
	})
	if printErr != nil {
		return printErr
	}

	if shown == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no matching close approaches")
	} else if capped {
		fmt.Fprintf(cmd.OutOrStdout(), "... showing the first %d matches; use --limit or --outfile for more\n", previewLimit)
	}
	return nil
}
