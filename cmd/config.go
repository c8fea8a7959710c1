package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage weeklyreport configuration file values.",
	Long: `Create, edit, display, and delete the weeklyreport configuration file.

The configuration stores the workbook location and the source settings:
- workbook.path
- gsn.search_directories / gsn.file_pattern
- er.search_directories / er.file_pattern / er column layout
- ad.script / ad.results_file
- report.sentinel_color / report.sentinel_tolerance`,
	Example: `
  # Create default config in $HOME/.weeklyreport.yaml
  weeklyreport config create

  # Show active config and source file
  weeklyreport config show

  # Open active config in editor (creates example if missing)
  weeklyreport config edit

  # Delete active config file
  weeklyreport config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
