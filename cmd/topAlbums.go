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

var topAlbumsNumber int
var topAlbumsByTime bool
var topAlbumsCmd = &cobra.Command{
	Use:   "top-albums [from] [to (optional)]",
	Short: "Gets your top albums",
	Long:  `Optionally restricted to a date or date range. Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopAlbums(args, topAlbumsNumber, topAlbumsByTime)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topAlbumsCmd)

	topAlbumsCmd.Flags().IntVarP(&topAlbumsNumber, "number", "n", 10, "number of results to return")
	topAlbumsCmd.Flags().BoolVar(&topAlbumsByTime, "by-time", false, "rank by accumulated playtime instead of play count")
}

func printTopAlbums(args []string, numToReturn int, byTime bool) error {
	result, all, err := loadDataset(args)
	if err != nil {
		return err
	}

	out, err := TopAlbumsAnalyzer{AnalyserConfig{numToReturn, byTime}}.GetResults(result, all)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

type TopAlbumsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopAlbumsAnalyzer) GetName() string {
	return "Top albums"
}

func (t TopAlbumsAnalyzer) GetResults(result *aggregate.Result, all *aggregate.Tally) (analysis Analysis, err error) {
	analysis.results = rankTally(all.AlbumPlays, all.AlbumTime, t.Config, "Album")
	analysis.summary = fmt.Sprintf("Found %d albums and %d counted plays\n",
		len(all.AlbumTime), result.Index.CountedPlays)
	return
}
