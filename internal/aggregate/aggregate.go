// Package aggregate folds play events into per-year tallies and a global
// listening index in one forward pass. The result is independent of event
// order and owned entirely by the caller; nothing here outlives a run.
package aggregate

import (
	"time"

	"github.com/seshstats/sesh-tools/internal/history"
	"github.com/seshstats/sesh-tools/internal/logging"
)

// Tally holds the six keyed counters for one calendar year (or, after
// merging, for all years). Play maps only count events above the duration
// threshold; time maps accumulate every played millisecond.
type Tally struct {
	ArtistPlays map[string]int64
	ArtistTime  map[string]int64
	TrackPlays  map[string]int64
	TrackTime   map[string]int64
	AlbumPlays  map[string]int64
	AlbumTime   map[string]int64
}

func NewTally() *Tally {
	return &Tally{
		ArtistPlays: make(map[string]int64),
		ArtistTime:  make(map[string]int64),
		TrackPlays:  make(map[string]int64),
		TrackTime:   make(map[string]int64),
		AlbumPlays:  make(map[string]int64),
		AlbumTime:   make(map[string]int64),
	}
}

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Index is everything the statistics engine needs beyond the keyed tallies.
// Dates are calendar days normalized to UTC midnight in the event's own
// offset. Counted fields only reflect events above the duration threshold;
// the skip tallies are threshold-independent.
type Index struct {
	Dates        map[time.Time]struct{}
	First        *history.RawEvent
	FirstAt      time.Time
	Last         *history.RawEvent
	LastAt       time.Time
	Artists      map[string]struct{}
	Albums       map[string]struct{}
	Tracks       map[string]struct{}
	ArtistTracks map[string]map[string]struct{}
	DailyPlays   map[time.Time]int64
	MonthlyPlays map[Month]int64
	WeekdayPlays [7]int64
	HourPlays    [24]int64
	PlayTimes    []time.Time
	CountedPlays int64
	SkipCount    int64
	OfflineCount int64
	TrackSkips   map[string]int64
}

func newIndex() *Index {
	return &Index{
		Dates:        make(map[time.Time]struct{}),
		Artists:      make(map[string]struct{}),
		Albums:       make(map[string]struct{}),
		Tracks:       make(map[string]struct{}),
		ArtistTracks: make(map[string]map[string]struct{}),
		DailyPlays:   make(map[time.Time]int64),
		MonthlyPlays: make(map[Month]int64),
		TrackSkips:   make(map[string]int64),
	}
}

// Result is the output of one aggregation pass.
type Result struct {
	Years map[int]*Tally
	Index *Index
}

// Process runs the single aggregation pass. minMS is the strict lower bound
// for an event to count as a play; shorter events still contribute their
// duration to the time tallies and their skip flag to the skip tallies.
func Process(events []history.RawEvent, minMS int64) *Result {
	res := &Result{
		Years: make(map[int]*Tally),
		Index: newIndex(),
	}

	now := time.Now()
	for i := range events {
		processEvent(res, &events[i], minMS, now)
	}
	return res
}

func processEvent(res *Result, event *history.RawEvent, minMS int64, now time.Time) {
	// One malformed record must never abort the rest of the pass.
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Msg("error processing entry, skipping")
		}
	}()

	ms := event.Ms()
	if ms <= 0 {
		logging.Debug().Str("track", event.Track()).Msg("entry has no playtime, skipping")
		return
	}

	if !event.HasTimestamp() {
		logging.Warn().Str("track", event.Track()).Msg("entry missing timestamp, skipping")
		return
	}

	if !event.HasArtist() {
		logging.Debug().Str("track", event.Track()).Msg("entry has no artist metadata, skipping")
		return
	}

	artist := event.ArtistName()
	track := event.TrackKey()
	album := event.AlbumKey()

	dt, err := event.ParseTimestamp()
	if err != nil {
		// Duration and skip signals are still meaningful, so degrade to the
		// processing time's bucket instead of dropping the event.
		logging.Warn().Str("ts", *event.Ts).Err(err).Msg("invalid timestamp format, using current time")
		dt = now
	}

	tally, ok := res.Years[dt.Year()]
	if !ok {
		tally = NewTally()
		res.Years[dt.Year()] = tally
	}

	idx := res.Index
	day := dateOf(dt)
	idx.Dates[day] = struct{}{}

	if idx.First == nil || dt.Before(idx.FirstAt) {
		idx.First = event
		idx.FirstAt = dt
	}
	if idx.Last == nil || dt.After(idx.LastAt) {
		idx.Last = event
		idx.LastAt = dt
	}

	idx.Artists[artist] = struct{}{}
	idx.Tracks[track] = struct{}{}
	idx.Albums[album] = struct{}{}
	tracks, ok := idx.ArtistTracks[artist]
	if !ok {
		tracks = make(map[string]struct{})
		idx.ArtistTracks[artist] = tracks
	}
	tracks[track] = struct{}{}

	if ms > minMS {
		idx.DailyPlays[day]++
		idx.MonthlyPlays[Month{dt.Year(), dt.Month()}]++
		idx.WeekdayPlays[dt.Weekday()]++
		idx.HourPlays[dt.Hour()]++
		idx.PlayTimes = append(idx.PlayTimes, dt)
		idx.CountedPlays++
		if event.IsOffline() {
			idx.OfflineCount++
		}

		tally.ArtistPlays[artist]++
		tally.TrackPlays[track]++
		tally.AlbumPlays[album]++
	}

	if event.IsSkipped() {
		idx.SkipCount++
		idx.TrackSkips[track]++
	}

	tally.ArtistTime[artist] += ms
	tally.TrackTime[track] += ms
	tally.AlbumTime[album] += ms
}

// dateOf truncates a timestamp to its calendar day in its own offset.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
