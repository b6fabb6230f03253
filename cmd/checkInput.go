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
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/seshstats/sesh-tools/internal/history"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkInputCmd = &cobra.Command{
	Use:   "check-input",
	Short: "Validates the streaming history files",
	Long: `Checks each JSON file in the input directory against the expected export
structure and reports which files would be loaded.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := checkInput(viper.GetString("input"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkInputCmd)
}

func checkInput(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("checkInput: %w", err)
	}

	analysis := Analysis{results: [][]string{{"File", "Entries", "Status"}}}
	total := 0
	valid := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		total++

		count, status := checkFile(filepath.Join(dir, entry.Name()))
		if status == "ok" {
			valid++
		}
		analysis.results = append(analysis.results, []string{entry.Name(), strconv.Itoa(count), status})
	}

	if total == 0 {
		return fmt.Errorf("no .json files found in %q", dir)
	}

	analysis.summary = fmt.Sprintf("%d of %d files valid\n", valid, total)
	fmt.Println(analysis)
	return nil
}

// checkFile applies the same sampling heuristic the loader uses, but reports
// the failure mode instead of silently skipping the file.
func checkFile(path string) (int, string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, "unreadable"
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, "not a JSON array"
	}

	if !history.ValidBatch(items) {
		if len(items) == 0 {
			return 0, "empty"
		}
		return len(items), "unrecognized structure"
	}
	return len(items), "ok"
}
