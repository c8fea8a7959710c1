package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"weeklyreport/config"
	"weeklyreport/internal/daterange"
	"weeklyreport/pipeline"
)

var (
	exportRange string
	exportStart string
	exportEnd   string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a finished period as the shareable HTML report.",
	Long: `Extract the MFA, GSN VS AD, GSN VS ER, and ER sections for a period
from the Weekly Report workbook and write the combined HTML document plus a
plain-text copy into the output directory.

Sections that cannot be found render as inline error notes, so a partially
filled workbook still produces a usable document.`,
	Example: `
  # Extract the current period
  weeklyreport extract

  # Extract by the range string as it appears in the workbook
  weeklyreport extract --range "13-17 February 2025"

  # Extract by dates
  weeklyreport extract --start 2025-02-13 --end 2025-02-17
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		clock := daterange.SystemClock{}
		formatted, err := exportPeriod(clock)
		if err != nil {
			return err
		}

		deps := pipeline.Deps{Config: cfg, Log: log, Clock: clock}
		result, err := pipeline.Export(deps, formatted)
		if err != nil {
			return err
		}

		fmt.Printf("Report exported for %s.\nHTML: %s\nText: %s\n",
			result.FormattedRange, result.HTMLPath, result.TextPath)
		return nil
	},
}

// exportPeriod resolves the formatted range to extract: the literal --range
// string, the --start/--end pair, or the automatically derived period.
func exportPeriod(clock daterange.Clock) (string, error) {
	if exportRange != "" {
		return exportRange, nil
	}

	if exportStart != "" || exportEnd != "" {
		if exportStart == "" || exportEnd == "" {
			return "", fmt.Errorf("--start and --end must be given together")
		}
		r, err := daterange.ParseDatePair(exportStart + " " + exportEnd)
		if err != nil {
			return "", err
		}
		return r.Format(true), nil
	}

	r, err := daterange.Auto(clock)
	if err != nil {
		return "", err
	}
	return r.Format(true), nil
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&exportRange, "range", "", "Formatted period as written in the workbook, e.g. \"13-17 February 2025\"")
	extractCmd.Flags().StringVar(&exportStart, "start", "", "Period start date (YYYY-MM-DD)")
	extractCmd.Flags().StringVar(&exportEnd, "end", "", "Period end date (YYYY-MM-DD)")
}
