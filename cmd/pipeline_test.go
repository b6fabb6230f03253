package cmd

import (
	"testing"
	"time"

	"github.com/seshstats/sesh-tools/internal/history"
)

func tsEvent(ts string) history.RawEvent {
	return history.RawEvent{Ts: &ts}
}

func TestFilterRange(t *testing.T) {
	events := []history.RawEvent{
		tsEvent("2023-12-31T23:59:59Z"),
		tsEvent("2024-01-01T00:00:00Z"),
		tsEvent("2024-06-15T12:00:00Z"),
		tsEvent("2025-01-01T00:00:00Z"),
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	kept := filterRange(events, start, end)

	// The range is inclusive of start and exclusive of end.
	if len(kept) != 2 {
		t.Fatalf("Expected 2 events in range, got %d", len(kept))
	}
	if *kept[0].Ts != "2024-01-01T00:00:00Z" {
		t.Fatalf("Unexpected first kept event: %q", *kept[0].Ts)
	}
}

func TestFilterRangeDropsUnparseableTimestamps(t *testing.T) {
	events := []history.RawEvent{
		tsEvent("garbage"),
		{},
		tsEvent("2024-06-15T12:00:00Z"),
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	kept := filterRange(events, start, end)

	if len(kept) != 1 {
		t.Fatalf("Expected only the parseable event, got %d", len(kept))
	}
}
