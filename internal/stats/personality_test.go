package stats

import (
	"math"
	"testing"
)

func TestDerivePersonalityBreakdownSumsTo100(t *testing.T) {
	r := &Report{}
	r.Library.UniqueTrackRatioPct = 45
	r.Library.GiniCoefficient = 0.55
	r.Library.ArtistsCount = 120
	r.Library.TracksCount = 800
	r.Library.AlbumsCount = 150
	r.Library.OneHitWondersPct = 35
	r.Overview.DaysPlayed = 200
	r.Overview.DaysSinceFirst = 400
	r.Patterns.LongestStreakDays = 12
	r.Patterns.WeekendVsWeekdayRatioPct = 45
	r.Playback.SkipRatePct = 20
	r.Playback.AvgPlaytimeMs = 180000
	r.Playback.TotalPlays = 1500

	p := derivePersonality(r)

	if p.Type == "" {
		t.Fatal("Expected a winning type")
	}
	if p.Description != personalityDescriptions[p.Type] {
		t.Fatalf("Description doesn't match type %q", p.Type)
	}
	if len(p.Breakdown) != len(personalityDescriptions) {
		t.Fatalf("Expected %d shares, got %d", len(personalityDescriptions), len(p.Breakdown))
	}

	var total float64
	for _, share := range p.Breakdown {
		total += share.Pct
	}
	if math.Abs(total-100) > 1e-6 {
		t.Fatalf("Expected shares to sum to 100, got %v", total)
	}

	// The breakdown is sorted descending, and the winner leads it.
	for i := 1; i < len(p.Breakdown); i++ {
		if p.Breakdown[i].Pct > p.Breakdown[i-1].Pct {
			t.Fatal("Expected breakdown sorted by share descending")
		}
	}
	if p.Breakdown[0].Name != p.Type {
		t.Fatalf("Expected winner %q to lead the breakdown, got %q", p.Type, p.Breakdown[0].Name)
	}
}

func TestDerivePersonalityBroadLibraryWinsExplorer(t *testing.T) {
	r := &Report{}
	r.Library.UniqueTrackRatioPct = 75
	r.Library.GiniCoefficient = 0.2
	r.Library.ArtistsCount = 250
	r.Library.TracksCount = 3000
	r.Library.OneHitWondersPct = 65
	r.Playback.SkipRatePct = 60
	r.Playback.AvgPlaytimeMs = 60000
	r.Playback.TotalPlays = 5000

	p := derivePersonality(r)

	if p.Type != "Explorer" {
		t.Fatalf("Expected Explorer for a broad, low-concentration library, got %q", p.Type)
	}
	if p.Breakdown[0].Pct <= 100/float64(len(personalityDescriptions)) {
		t.Fatalf("Expected the winner to be above an even share, got %v", p.Breakdown[0].Pct)
	}
}

func TestDerivePersonalityIsDeterministic(t *testing.T) {
	r := &Report{}
	first := derivePersonality(r)
	second := derivePersonality(r)

	if first.Type != second.Type {
		t.Fatalf("Expected stable winner, got %q then %q", first.Type, second.Type)
	}
	for i := range first.Breakdown {
		if first.Breakdown[i] != second.Breakdown[i] {
			t.Fatalf("Breakdown differs at %d: %+v vs %+v", i, first.Breakdown[i], second.Breakdown[i])
		}
	}
}
