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
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/seshstats/sesh-tools/internal/aggregate"
)

type Analysis struct {
	results      [][]string
	summary      string
	BodyOverride string
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int

	// Rank by accumulated playtime instead of play count.
	ByTime bool
}

type Analyser interface {
	GetResults(result *aggregate.Result, all *aggregate.Tally) (Analysis, error)

	GetName() string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

// rankTally orders one keyed tally by play count (or by playtime) descending,
// with ties broken by name, and renders the top rows.
func rankTally(plays map[string]int64, times map[string]int64, config AnalyserConfig, header string) [][]string {
	values := plays
	column := "Plays"
	if config.ByTime {
		values = times
		column = "Playtime"
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if values[names[i]] != values[names[j]] {
			return values[names[i]] > values[names[j]]
		}
		return names[i] < names[j]
	})

	results := [][]string{{header, column}}
	for i, name := range names {
		if config.NumToReturn > 0 && i >= config.NumToReturn {
			break
		}
		value := strconv.FormatInt(values[name], 10)
		if config.ByTime {
			value = formatPlaytime(values[name])
		}
		results = append(results, []string{name, value})
	}
	return results
}

// formatPlaytime renders milliseconds as HH:MM:SS.
func formatPlaytime(ms int64) string {
	seconds := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
