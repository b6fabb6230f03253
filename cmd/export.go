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
	"time"

	"github.com/seshstats/sesh-tools/internal/stats"
	"github.com/seshstats/sesh-tools/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export [from] [to (optional)]",
	Short: "Writes the aggregates and report to a SQLite database",
	Long: `Exports the per-year and all-time tallies plus the full report to the
database given by --database, replacing any previous export. Optionally
restricted to a date or date range ('yyyy', 'yyyy-mm', or 'yyyy-mm-dd').`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := runExport(viper.GetString("database"), args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(dbPath string, args []string) error {
	result, all, err := loadDataset(args)
	if err != nil {
		return err
	}

	report := stats.Derive(result, all, time.Now())
	raw, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("runExport: %w", err)
	}

	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("runExport: %w", err)
	}
	defer db.Close()

	if err := db.SaveRun(result.Years, all, string(raw), time.Now()); err != nil {
		return fmt.Errorf("runExport: %w", err)
	}

	fmt.Printf("Exported %d years to %s\n", len(result.Years), dbPath)
	return nil
}
