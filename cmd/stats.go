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
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statsCmd = &cobra.Command{
	Use:   "stats [from] [to (optional)]",
	Short: "Prints the full statistics report",
	Long: `Computes the full listening report: overview, library, milestones, patterns,
sessions, playback, and listening personality. Optionally restricted to a date
or date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printStats(args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func printStats(args []string) error {
	result, all, err := loadDataset(args)
	if err != nil {
		return err
	}

	report := stats.Derive(result, all, time.Now())

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("printStats: %w", err)
	}
	return encoder.Close()
}
