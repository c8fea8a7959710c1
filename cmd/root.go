package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weeklyreport/config"
	"weeklyreport/internal/logging"
)

var (
	cfgFile string
	verbose bool
	log     zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weeklyreport",
	Short: "Automate the SM team weekly report: compare GSN, ER, and AD hostnames and export the result.",
	Long: `
**********************************************
*            WEEKLY REPORT                   *
**********************************************

This CLI locates the newest GSN and ER exports, queries AD hostnames,
compares the three collections, and appends the results to the shared
Weekly Report workbook. A finished period can then be exported as the
HTML document shared in chat.
`,
	Example: `
  # Create configuration file
  weeklyreport config create

  # Run the comparison for the current period (Fridays and month ends)
  weeklyreport run

  # Run for explicit dates
  weeklyreport run --start 2025-02-13 --end 2025-02-17

  # Pick the dates interactively, falling back to automatic after the timeout
  weeklyreport run --manual

  # Extract the HTML report for a finished period
  weeklyreport extract --range "13-17 February 2025"

  # Show past runs
  weeklyreport history list
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.weeklyreport.yaml, then ./.weeklyreport.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log = logging.New(verbose)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".weeklyreport" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".weeklyreport")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: weeklyreport config create")
	}
}
