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

	"github.com/seshstats/sesh-tools/internal/aggregate"
	"github.com/spf13/cobra"
)

var topTracksNumber int
var topTracksByTime bool
var topTracksCmd = &cobra.Command{
	Use:   "top-tracks [from] [to (optional)]",
	Short: "Gets your top tracks",
	Long:  `Optionally restricted to a date or date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopTracks(args, topTracksNumber, topTracksByTime)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topTracksCmd)

	topTracksCmd.Flags().IntVarP(&topTracksNumber, "number", "n", 10, "number of results to return")
	topTracksCmd.Flags().BoolVar(&topTracksByTime, "by-time", false, "rank by accumulated playtime instead of play count")
}

func printTopTracks(args []string, numToReturn int, byTime bool) error {
	result, all, err := loadDataset(args)
	if err != nil {
		return err
	}

	out, err := TopTracksAnalyzer{AnalyserConfig{numToReturn, byTime}}.GetResults(result, all)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopTracksAnalyzer struct {
	Config AnalyserConfig
}

func (t TopTracksAnalyzer) GetName() string {
	return "Top tracks"
}

func (t TopTracksAnalyzer) GetResults(result *aggregate.Result, all *aggregate.Tally) (analysis Analysis, err error) {
	analysis.results = rankTally(all.TrackPlays, all.TrackTime, t.Config, "Track")
	analysis.summary = fmt.Sprintf("Found %d tracks and %d counted plays\n",
		len(all.TrackTime), result.Index.CountedPlays)
	return
}
