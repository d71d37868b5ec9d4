/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rosterimport/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rosterimport",
	Short: "Normalize teacher assignment rosters from loosely structured spreadsheets.",
	Long: `
**********************************************
*              ROSTER IMPORT                 *
**********************************************

This CLI reads roster spreadsheets (CSV, TSV, Excel) exported by departments,
discovers their layout, and normalizes every row into the canonical columns:
Programme Name, Robe Email ID, Folder Email ID, Accompanying Teacher,
Folder in Charge and Class Section.

Normalized records are stored in a local SQLite database and can be exported
to CSV, Excel or YAML, raw or summarized per programme.

Supported input formats:
- Excel: .xlsx, .xlsm
- CSV: .csv, .txt (UTF-8 or UTF-16 with BOM)
- TSV: .tsv, .tab
`,
	Example: `
  # Create configuration file
  rosterimport config create

  # Preview how a file will be normalized
  rosterimport preview -i ./bca_roster.csv

  # Import rosters into the database
  rosterimport import -i ./bca_roster.csv -i ./mca_roster.xlsx

  # List import batches
  rosterimport batch list

  # Export raw records
  rosterimport export --mode raw --output ./roster.csv

  # Export programme summary
  rosterimport export --mode summary --output ./summary.xlsx
`,
	SilenceUsage: true,
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

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.rosterimport.yaml, then ./.rosterimport.yaml)")
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

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rosterimport")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// Every setting has a default, so running without a file is fine.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: rosterimport config create")
	}
}
