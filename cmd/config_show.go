package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weeklyreport/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  weeklyreport config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("workbook.path: %s\n", cfg.Workbook.Path)
			fmt.Printf("output.directory: %s\n", cfg.Output.Directory)
			fmt.Printf("history.database: %s\n", cfg.History.Database)
			fmt.Printf("gsn.search_directories: %s\n", strings.Join(cfg.GSN.SearchDirectories, ", "))
			fmt.Printf("gsn.file_pattern: %s\n", cfg.GSN.FilePattern)
			fmt.Printf("er.search_directories: %s\n", strings.Join(cfg.ER.SearchDirectories, ", "))
			fmt.Printf("er.file_pattern: %s\n", cfg.ER.FilePattern)
			fmt.Printf("er.hostname_column: %d\n", cfg.ER.HostnameColumn)
			fmt.Printf("er.status_column: %d\n", cfg.ER.StatusColumn)
			fmt.Printf("er.serial_column: %d\n", cfg.ER.SerialColumn)
			fmt.Printf("er.start_row: %d\n", cfg.ER.StartRow)
			fmt.Printf("er.hostname_prefixes: %s\n", strings.Join(cfg.ER.HostnamePrefixes, ", "))
			fmt.Printf("er.no_logon_bucket: %s\n", cfg.ER.NoLogonBucket)
			fmt.Printf("ad.script: %s\n", cfg.AD.Script)
			fmt.Printf("ad.results_file: %s\n", cfg.AD.ResultsFile)
			fmt.Printf("prompt.timeout_seconds: %d\n", cfg.Prompt.TimeoutSeconds)
			fmt.Printf("report.section_keywords: %s\n", strings.Join(cfg.Report.SectionKeywords, ", "))
			fmt.Printf("report.sentinel_color: %s\n", cfg.Report.SentinelColor)
			fmt.Printf("report.sentinel_tolerance: %s\n", strings.Join(cfg.Report.SentinelTolerance, ", "))
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
