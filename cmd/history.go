package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"weeklyreport/config"
	"weeklyreport/storage"
)

var historyDBPath string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past report runs.",
	Long: `Every completed run is recorded in a local SQLite database: the
period, the source files, the collection sizes, and the differences found.`,
	Example: `
  # List past runs, newest first
  weeklyreport history list

  # Clear the run history
  weeklyreport history clear
`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		for _, run := range runs {
			fmt.Printf(
				"#%d  %s  %s  GSN: %d  ER: %d  AD: %d  In GSN not in ER: %d  In ER not in GSN: %d  %s\n",
				run.ID,
				run.RanAt.Format("2006-01-02 15:04"),
				run.FormattedRange,
				run.GSNCount,
				run.ERCount,
				run.ADCount,
				run.MissingInER,
				run.MissingInGSN,
				run.Worksheet,
			)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := store.DeleteAllRuns()
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d recorded runs.\n", deleted)
		return nil
	},
}

func openHistoryStore() (*storage.SQLiteStore, error) {
	path := historyDBPath
	if path == "" {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return nil, err
		}
		path = cfg.History.Database
	}
	if path == "" {
		return nil, fmt.Errorf("no history database configured")
	}
	return storage.OpenSQLite(path)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.PersistentFlags().StringVar(&historyDBPath, "db", "", "Path to the history database (default: history.database from config)")
}
