package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"weeklyreport/config"
	"weeklyreport/internal/daterange"
	"weeklyreport/pipeline"
	"weeklyreport/storage"
)

var (
	runManual bool
	runForce  bool
	runStart  string
	runEnd    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the weekly comparison and append the results to the workbook.",
	Long: `Locate the newest GSN and ER exports, query AD, compare the three
hostname collections, and append the results to the Weekly Report workbook:
a new GSN VS ER sheet for the period, the ER no-logon block, and the
GSN VS AD block.

Without flags the command only proceeds on designated run days (Fridays and
the last day of the month) and derives the reporting period automatically.`,
	Example: `
  # Automatic period, run-day gated
  weeklyreport run

  # Explicit dates
  weeklyreport run --start 2025-02-13 --end 2025-02-17

  # Interactive date entry with countdown fallback
  weeklyreport run --manual

  # Run off-schedule with the automatic period
  weeklyreport run --force
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		clock := daterange.SystemClock{}
		if !runManual && runStart == "" && !runForce && !daterange.IsRunDay(clock.Now()) {
			fmt.Println("Today is not a run day (Friday or month end). Use --force or --manual to run anyway.")
			return nil
		}

		r, err := selectRange(os.Stdin, clock, cfg.Prompt.TimeoutSeconds)
		if err != nil {
			return err
		}

		deps := pipeline.Deps{Config: cfg, Log: log, Clock: clock}
		if cfg.History.Database != "" {
			store, err := storage.OpenSQLite(cfg.History.Database)
			if err != nil {
				return err
			}
			defer store.Close()
			deps.Store = store
		}

		result, err := pipeline.Run(context.Background(), deps, r)
		if err != nil {
			return err
		}

		fmt.Printf(
			"Run completed for %s. GSN: %d, ER: %d, AD: %d, In GSN not in ER: %d, In ER not in GSN: %d, Worksheet: %s\n",
			result.FormattedRange,
			result.GSNCount,
			result.ERCount,
			result.ADCount,
			result.MissingInER,
			result.MissingInGSN,
			result.Worksheet,
		)

		return nil
	},
}

// selectRange picks the reporting period from the flags: explicit dates win,
// then the interactive prompt, then automatic calculation.
func selectRange(in io.Reader, clock daterange.Clock, timeoutSeconds int) (daterange.Range, error) {
	if runStart != "" || runEnd != "" {
		if runStart == "" || runEnd == "" {
			return daterange.Range{}, fmt.Errorf("--start and --end must be given together")
		}
		return daterange.ParseDatePair(runStart + " " + runEnd)
	}

	if runManual {
		fmt.Printf("Enter the period as \"YYYY-MM-DD YYYY-MM-DD\" (automatic in %ds): ", timeoutSeconds)
		result, err := daterange.Prompt(in, time.Duration(timeoutSeconds)*time.Second, clock)
		if err != nil {
			return daterange.Range{}, err
		}
		if result.Auto {
			fmt.Printf("\nUsing automatic period %s.\n", result.Range.Format(false))
		}
		return result.Range, nil
	}

	return daterange.Auto(clock)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runManual, "manual", false, "Prompt for the reporting period instead of deriving it")
	runCmd.Flags().BoolVar(&runForce, "force", false, "Skip the run-day check")
	runCmd.Flags().StringVar(&runStart, "start", "", "Period start date (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runEnd, "end", "", "Period end date (YYYY-MM-DD)")
}
