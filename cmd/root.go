/*
Copyright 2020 Google LLC

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
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/seshstats/sesh-tools/internal/logging"
	"github.com/spf13/viper"
)

var cfgFile string
var inputDir string
var minMilliseconds int64
var databasePath string
var logLevel string
var logFormat string
var sendgridApiKey string
var fromAddress string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sesh-tools",
	Short: "Computes statistics from Spotify extended streaming history",
	Long: `Loads the JSON files from a Spotify extended streaming history export
and computes listening statistics from them. Run 'stats' for the full report.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.sesh-tools.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&inputDir, "input", "i", "sesh", "directory containing the streaming history JSON files")
	viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))

	rootCmd.PersistentFlags().Int64Var(
		&minMilliseconds, "min-ms", 20000, "milliseconds a play must exceed to be counted")
	viper.BindPFlag("min-ms", rootCmd.PersistentFlags().Lookup("min-ms"))

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./sesh.db", "Path to the SQLite database written by export")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format: console or json")
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.PersistentFlags().StringVar(&sendgridApiKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))

	rootCmd.PersistentFlags().StringVar(&fromAddress, "from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".sesh-tools" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".sesh-tools")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func initLogging() {
	logging.Init(logging.Config{
		Level:  viper.GetString("log-level"),
		Format: viper.GetString("log-format"),
	})
}
