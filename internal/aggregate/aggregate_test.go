package aggregate

import (
	"reflect"
	"testing"
	"time"

	"github.com/seshstats/sesh-tools/internal/history"
)

const minMS = 20000

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(b bool) *bool { return &b }

func event(ts string, ms int64, artist string, track string) history.RawEvent {
	return history.RawEvent{
		Ts:        strPtr(ts),
		MsPlayed:  int64Ptr(ms),
		Artist:    strPtr(artist),
		TrackName: strPtr(track),
	}
}

func TestProcessCountsAndTimes(t *testing.T) {
	events := []history.RawEvent{
		event("2024-03-05T14:30:00Z", 30000, "Radiohead", "Weird Fishes"),
		event("2024-03-05T15:00:00Z", 45000, "Radiohead", "Weird Fishes"),
		event("2024-03-06T09:00:00Z", 60000, "Portishead", "Roads"),
	}

	res := Process(events, minMS)

	tally, ok := res.Years[2024]
	if !ok {
		t.Fatal("Expected a tally for 2024")
	}
	if got := tally.ArtistPlays["Radiohead"]; got != 2 {
		t.Fatalf("Expected 2 plays for Radiohead, got %d", got)
	}
	if got := tally.ArtistTime["Radiohead"]; got != 75000 {
		t.Fatalf("Expected 75000 ms for Radiohead, got %d", got)
	}
	if got := tally.TrackPlays["Roads - Portishead"]; got != 1 {
		t.Fatalf("Expected 1 play for Roads, got %d", got)
	}
	if res.Index.CountedPlays != 3 {
		t.Fatalf("Expected 3 counted plays, got %d", res.Index.CountedPlays)
	}
	if len(res.Index.Dates) != 2 {
		t.Fatalf("Expected 2 active days, got %d", len(res.Index.Dates))
	}
}

func TestProcessThresholdIsStrict(t *testing.T) {
	events := []history.RawEvent{
		// Exactly at the threshold: time accumulates, play doesn't count.
		event("2024-03-05T14:30:00Z", minMS, "Radiohead", "Weird Fishes"),
		event("2024-03-05T15:00:00Z", minMS+1, "Radiohead", "Weird Fishes"),
	}

	res := Process(events, minMS)

	tally := res.Years[2024]
	if got := tally.TrackPlays["Weird Fishes - Radiohead"]; got != 1 {
		t.Fatalf("Expected 1 counted play, got %d", got)
	}
	if got := tally.TrackTime["Weird Fishes - Radiohead"]; got != 2*minMS+1 {
		t.Fatalf("Expected both durations accumulated, got %d", got)
	}
	if res.Index.CountedPlays != 1 {
		t.Fatalf("Expected 1 counted play in index, got %d", res.Index.CountedPlays)
	}
}

func TestProcessSkipsUnusableEvents(t *testing.T) {
	noPlaytime := event("2024-03-05T14:30:00Z", 0, "Radiohead", "Weird Fishes")
	noTimestamp := history.RawEvent{
		MsPlayed:  int64Ptr(30000),
		Artist:    strPtr("Radiohead"),
		TrackName: strPtr("Weird Fishes"),
	}
	noArtist := history.RawEvent{
		Ts:        strPtr("2024-03-05T14:30:00Z"),
		MsPlayed:  int64Ptr(30000),
		TrackName: strPtr("Some Podcast Episode"),
	}

	res := Process([]history.RawEvent{noPlaytime, noTimestamp, noArtist}, minMS)

	if len(res.Years) != 0 {
		t.Fatalf("Expected no tallies, got %d", len(res.Years))
	}
	if res.Index.CountedPlays != 0 {
		t.Fatalf("Expected no counted plays, got %d", res.Index.CountedPlays)
	}
}

func TestProcessSkipTrackingIgnoresThreshold(t *testing.T) {
	short := event("2024-03-05T14:30:00Z", 3000, "Radiohead", "Weird Fishes")
	short.Skipped = boolPtr(true)

	res := Process([]history.RawEvent{short}, minMS)

	if res.Index.CountedPlays != 0 {
		t.Fatalf("Expected no counted plays, got %d", res.Index.CountedPlays)
	}
	if res.Index.SkipCount != 1 {
		t.Fatalf("Expected 1 skip, got %d", res.Index.SkipCount)
	}
	if got := res.Index.TrackSkips["Weird Fishes - Radiohead"]; got != 1 {
		t.Fatalf("Expected 1 track skip, got %d", got)
	}
}

func TestProcessOfflineOnlyCountsAboveThreshold(t *testing.T) {
	offline := event("2024-03-05T14:30:00Z", 30000, "Radiohead", "Weird Fishes")
	offline.Offline = boolPtr(true)
	shortOffline := event("2024-03-05T15:00:00Z", 3000, "Radiohead", "Weird Fishes")
	shortOffline.Offline = boolPtr(true)

	res := Process([]history.RawEvent{offline, shortOffline}, minMS)

	if res.Index.OfflineCount != 1 {
		t.Fatalf("Expected 1 offline play, got %d", res.Index.OfflineCount)
	}
}

func TestProcessInvalidTimestampFallsBackToNow(t *testing.T) {
	bad := event("not a timestamp", 30000, "Radiohead", "Weird Fishes")

	res := Process([]history.RawEvent{bad}, minMS)

	year := time.Now().Year()
	tally, ok := res.Years[year]
	if !ok {
		t.Fatalf("Expected event bucketed into %d", year)
	}
	if got := tally.ArtistTime["Radiohead"]; got != 30000 {
		t.Fatalf("Expected playtime preserved, got %d", got)
	}
}

func TestProcessFirstAndLast(t *testing.T) {
	events := []history.RawEvent{
		event("2024-03-05T14:30:00Z", 30000, "Radiohead", "Weird Fishes"),
		event("2019-01-01T08:00:00Z", 30000, "Portishead", "Roads"),
		event("2025-02-01T20:00:00Z", 30000, "Björk", "Jóga"),
	}

	res := Process(events, minMS)

	if res.Index.First.ArtistName() != "Portishead" {
		t.Fatalf("Expected Portishead first, got %q", res.Index.First.ArtistName())
	}
	if res.Index.Last.ArtistName() != "Björk" {
		t.Fatalf("Expected Björk last, got %q", res.Index.Last.ArtistName())
	}
}

func TestProcessDayUsesEventOffset(t *testing.T) {
	// 23:30 local on Jan 1st is Jan 2nd in UTC; the local date wins.
	late := event("2024-01-01T23:30:00-02:00", 30000, "Radiohead", "Weird Fishes")

	res := Process([]history.RawEvent{late}, minMS)

	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, ok := res.Index.Dates[want]; !ok {
		t.Fatalf("Expected active day %v, got %v", want, res.Index.Dates)
	}
}

func TestProcessIsDeterministic(t *testing.T) {
	events := []history.RawEvent{
		event("2023-03-05T14:30:00Z", 30000, "Radiohead", "Weird Fishes"),
		event("2024-03-06T15:00:00Z", 45000, "Portishead", "Roads"),
		event("2024-03-07T16:00:00Z", 15000, "Portishead", "Glory Box"),
	}

	first := Process(events, minMS)
	second := Process(events, minMS)

	if !reflect.DeepEqual(first.Years, second.Years) {
		t.Fatal("Expected identical tallies across runs")
	}
	if !reflect.DeepEqual(first.Index.DailyPlays, second.Index.DailyPlays) {
		t.Fatal("Expected identical daily plays across runs")
	}
}

func TestMergeYearsMatchesPerYearSums(t *testing.T) {
	events := []history.RawEvent{
		event("2023-03-05T14:30:00Z", 30000, "Radiohead", "Weird Fishes"),
		event("2024-03-06T15:00:00Z", 45000, "Radiohead", "Weird Fishes"),
		event("2024-03-07T16:00:00Z", 25000, "Portishead", "Roads"),
	}

	res := Process(events, minMS)
	all := MergeYears(res.Years)

	if got := all.ArtistPlays["Radiohead"]; got != 2 {
		t.Fatalf("Expected 2 merged plays for Radiohead, got %d", got)
	}
	if got := all.ArtistTime["Radiohead"]; got != 75000 {
		t.Fatalf("Expected 75000 merged ms for Radiohead, got %d", got)
	}

	var perYear int64
	for _, tally := range res.Years {
		perYear += tally.ArtistTime["Radiohead"]
	}
	if perYear != all.ArtistTime["Radiohead"] {
		t.Fatalf("Merged total %d doesn't match per-year sum %d", all.ArtistTime["Radiohead"], perYear)
	}
}

func TestMergeYearsDoesNotMutateInputs(t *testing.T) {
	years := map[int]*Tally{
		2023: NewTally(),
		2024: NewTally(),
	}
	years[2023].ArtistPlays["Radiohead"] = 1
	years[2024].ArtistPlays["Radiohead"] = 2

	MergeYears(years)

	if years[2023].ArtistPlays["Radiohead"] != 1 || years[2024].ArtistPlays["Radiohead"] != 2 {
		t.Fatal("Expected inputs unchanged after merge")
	}
}
