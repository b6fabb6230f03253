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
	"time"

	"github.com/seshstats/sesh-tools/internal/aggregate"
	"github.com/seshstats/sesh-tools/internal/history"
	"github.com/spf13/viper"
)

// loadDataset runs the load-and-aggregate pipeline shared by the commands
// that read the history files. An optional date or date range in args
// restricts which events get aggregated.
func loadDataset(args []string) (*aggregate.Result, *aggregate.Tally, error) {
	events, err := history.Load(viper.GetString("input"))
	if err != nil {
		return nil, nil, fmt.Errorf("loadDataset: %w", err)
	}

	if len(args) > 0 {
		start, end, err := parseDateRangeFromArgs(args)
		if err != nil {
			return nil, nil, err
		}
		events = filterRange(events, start, end)
	}

	result := aggregate.Process(events, viper.GetInt64("min-ms"))
	return result, aggregate.MergeYears(result.Years), nil
}

// filterRange keeps events whose timestamp parses and falls in [start, end).
// Events without a usable timestamp can't be placed in an explicit range, so
// they are dropped here rather than in the aggregation pass.
func filterRange(events []history.RawEvent, start time.Time, end time.Time) []history.RawEvent {
	kept := make([]history.RawEvent, 0, len(events))
	for i := range events {
		if !events[i].HasTimestamp() {
			continue
		}
		at, err := events[i].ParseTimestamp()
		if err != nil {
			continue
		}
		if at.Before(start) || !at.Before(end) {
			continue
		}
		kept = append(kept, events[i])
	}
	return kept
}
