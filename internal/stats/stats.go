// Package stats derives the listening statistics report from aggregated
// history. Every derivation degrades to documented sentinel values on empty
// input; nothing in this package returns an error or panics on a dataset of
// zero events.
package stats

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/seshstats/sesh-tools/internal/aggregate"
)

const dateFormat = "Jan 02, 2006"

// Derive computes the full report. now anchors "days since first play"; it is
// a parameter so the result is reproducible.
//
// Tie-breaking is deterministic throughout: a strictly greater count replaces
// the current best, so on equal counts the chronologically or
// lexicographically smaller key wins.
func Derive(res *aggregate.Result, all *aggregate.Tally, now time.Time) *Report {
	r := &Report{}
	deriveOverview(r, res, now)
	deriveLibrary(r, res, all)
	deriveMilestones(r, res, all)
	derivePatterns(r, res.Index)
	deriveSessions(r, res.Index)
	derivePlayback(r, res.Index, all)
	r.Personality = derivePersonality(r)
	return r
}

func deriveOverview(r *Report, res *aggregate.Result, now time.Time) {
	idx := res.Index
	o := &r.Overview

	if idx.First == nil {
		o.FirstPlay = NotAvailable
		o.LastPlay = NotAvailable
		return
	}

	o.DaysSinceFirst = daysBetween(dateOnly(idx.FirstAt), dateOnly(now))
	o.DaysPlayed = len(idx.Dates)
	if o.DaysSinceFirst > 0 {
		o.PctDaysActive = float64(o.DaysPlayed) / float64(o.DaysSinceFirst) * 100
	}

	o.FirstPlay = fmt.Sprintf("%s (%s - %s)", idx.FirstAt.Format(dateFormat), idx.First.ArtistName(), idx.First.Track())
	o.LastPlay = fmt.Sprintf("%s (%s - %s)", idx.LastAt.Format(dateFormat), idx.Last.ArtistName(), idx.Last.Track())
}

func deriveLibrary(r *Report, res *aggregate.Result, all *aggregate.Tally) {
	idx := res.Index
	l := &r.Library

	l.ArtistsCount = len(idx.Artists)
	if l.ArtistsCount > 0 {
		for _, tracks := range idx.ArtistTracks {
			if len(tracks) == 1 {
				l.OneHitWonders++
			}
		}
		l.OneHitWondersPct = float64(l.OneHitWonders) / float64(l.ArtistsCount) * 100
	}

	l.EveryYearArtists = everyYearArtists(res.Years)
	l.EveryYearCount = len(l.EveryYearArtists)

	l.AlbumsCount = len(idx.Albums)
	l.TracksCount = len(idx.Tracks)
	if l.ArtistsCount > 0 {
		l.AlbumsPerArtist = float64(l.AlbumsCount) / float64(l.ArtistsCount)
	}

	totalPlays := sumValues(all.TrackPlays)
	if totalPlays > 0 {
		l.UniqueTrackRatioPct = float64(l.TracksCount) / float64(totalPlays) * 100
	}

	l.GiniCoefficient = gini(values(all.ArtistPlays))
}

// everyYearArtists intersects, across all years, the artists with any
// accumulated playtime in that year, sorted lexicographically. Playtime keys
// are a superset of play-count keys, so this captures "appearing by count or
// time".
func everyYearArtists(years map[int]*aggregate.Tally) []string {
	if len(years) == 0 {
		return []string{}
	}

	var common map[string]struct{}
	for _, tally := range years {
		seen := make(map[string]struct{}, len(tally.ArtistTime))
		for artist := range tally.ArtistTime {
			if common == nil {
				seen[artist] = struct{}{}
			} else if _, ok := common[artist]; ok {
				seen[artist] = struct{}{}
			}
		}
		common = seen
	}

	result := make([]string, 0, len(common))
	for artist := range common {
		result = append(result, artist)
	}
	sort.Strings(result)
	return result
}

func deriveMilestones(r *Report, res *aggregate.Result, all *aggregate.Tally) {
	idx := res.Index
	m := &r.Milestones
	m.MostPopularYear = NotAvailable
	m.MostPopularMonth = NotAvailable
	m.MostPopularWeek = NotAvailable
	m.MostPopularDay = NotAvailable

	daily := values(idx.DailyPlays)
	m.EddingtonNumber = cutover(daily)
	if len(daily) > 0 {
		next := int64(m.EddingtonNumber + 1)
		qualifying := 0
		for _, c := range daily {
			if c >= next {
				qualifying++
			}
		}
		if need := int(next) - qualifying; need > 0 {
			m.DaysToNextEddington = need
		}
	}

	m.ArtistCutoverPoint = cutover(values(all.ArtistPlays))

	// Most popular year, by counted track plays.
	bestYear := 0
	for year, tally := range res.Years {
		plays := sumValues(tally.TrackPlays)
		if bestYear == 0 || plays > m.MostPopularYearPlays || (plays == m.MostPopularYearPlays && year < bestYear) {
			bestYear = year
			m.MostPopularYearPlays = plays
		}
	}
	if bestYear != 0 {
		m.MostPopularYear = strconv.Itoa(bestYear)
	}

	// Most popular month.
	var bestMonth aggregate.Month
	found := false
	for month, plays := range idx.MonthlyPlays {
		if !found || plays > m.MostPopularMonthPlays || (plays == m.MostPopularMonthPlays && monthBefore(month, bestMonth)) {
			bestMonth = month
			m.MostPopularMonthPlays = plays
			found = true
		}
	}
	if found {
		m.MostPopularMonth = fmt.Sprintf("%s %d", bestMonth.Month, bestMonth.Year)
	}

	// Most popular ISO week, folded up from daily counts.
	type isoWeek struct{ year, week int }
	weekly := make(map[isoWeek]int64)
	for day, plays := range idx.DailyPlays {
		y, w := day.ISOWeek()
		weekly[isoWeek{y, w}] += plays
	}
	var bestWeek isoWeek
	found = false
	for week, plays := range weekly {
		if !found || plays > m.MostPopularWeekPlays ||
			(plays == m.MostPopularWeekPlays && (week.year < bestWeek.year || (week.year == bestWeek.year && week.week < bestWeek.week))) {
			bestWeek = week
			m.MostPopularWeekPlays = plays
			found = true
		}
	}
	if found {
		start := isoWeekStart(bestWeek.year, bestWeek.week)
		end := start.AddDate(0, 0, 6)
		m.MostPopularWeek = fmt.Sprintf("%s – %s", start.Format("Jan 02"), end.Format(dateFormat))
	}

	// Most popular single day.
	var bestDay time.Time
	found = false
	for day, plays := range idx.DailyPlays {
		if !found || plays > m.MostPopularDayPlays || (plays == m.MostPopularDayPlays && day.Before(bestDay)) {
			bestDay = day
			m.MostPopularDayPlays = plays
			found = true
		}
	}
	if found {
		m.MostPopularDay = bestDay.Format(dateFormat)
	}
}

func derivePatterns(r *Report, idx *aggregate.Index) {
	p := &r.Patterns
	p.StreakStart = NotAvailable
	p.StreakEnd = NotAvailable
	p.HiatusStart = NotAvailable
	p.HiatusEnd = NotAvailable
	p.MostActiveWeekday = NotAvailable
	p.PeakListeningHour = NotAvailable

	dates := make([]time.Time, 0, len(idx.Dates))
	for d := range idx.Dates {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if len(dates) > 0 {
		// Longest streak: a gap of exactly one day extends the run. Strict >
		// keeps the first maximal run on ties.
		maxStreak, streak := 1, 1
		streakStart, streakEnd := dates[0], dates[0]
		runStart := dates[0]
		for i := 1; i < len(dates); i++ {
			if daysBetween(dates[i-1], dates[i]) == 1 {
				streak++
			} else {
				streak = 1
				runStart = dates[i]
			}
			if streak > maxStreak {
				maxStreak = streak
				streakStart = runStart
				streakEnd = dates[i]
			}
		}
		p.LongestStreakDays = maxStreak
		p.StreakStart = streakStart.Format(dateFormat)
		p.StreakEnd = streakEnd.Format(dateFormat)

		// Longest hiatus: the widest strictly-between gap.
		for i := 1; i < len(dates); i++ {
			if gap := daysBetween(dates[i-1], dates[i]) - 1; gap > p.LongestHiatusDays {
				p.LongestHiatusDays = gap
				p.HiatusStart = dates[i-1].AddDate(0, 0, 1).Format(dateFormat)
				p.HiatusEnd = dates[i].AddDate(0, 0, -1).Format(dateFormat)
			}
		}
	}

	if len(idx.Dates) > 0 {
		p.AvgPlaysPerActiveDay = float64(sumValues(idx.DailyPlays)) / float64(len(idx.Dates))
	}

	if idx.CountedPlays > 0 {
		weekday := time.Sunday
		for w := time.Sunday; w <= time.Saturday; w++ {
			if idx.WeekdayPlays[w] > idx.WeekdayPlays[weekday] {
				weekday = w
			}
		}
		p.MostActiveWeekday = weekday.String()
		p.MostActiveWeekdayPlays = idx.WeekdayPlays[weekday]

		peak := 0
		for h := 1; h < 24; h++ {
			if idx.HourPlays[h] > idx.HourPlays[peak] {
				peak = h
			}
		}
		p.PeakListeningHour = formatHour(peak)
		p.PeakListeningHourPlays = idx.HourPlays[peak]
	}

	p.WeekendPlays = idx.WeekdayPlays[time.Saturday] + idx.WeekdayPlays[time.Sunday]
	for w := time.Monday; w <= time.Friday; w++ {
		p.WeekdayPlays += idx.WeekdayPlays[w]
	}
	if p.WeekdayPlays > 0 {
		p.WeekendVsWeekdayRatioPct = float64(p.WeekendPlays) / float64(p.WeekdayPlays) * 100
	}
}

func deriveSessions(r *Report, idx *aggregate.Index) {
	s := &r.Sessions
	s.AvgLength = formatDuration(0)
	s.Longest = formatDuration(0)
	s.LongestDate = NotAvailable

	sessions := segmentSessions(idx.PlayTimes, 30*time.Minute)
	s.Count = len(sessions)
	if len(sessions) == 0 {
		return
	}

	var total time.Duration
	longest := sessions[0]
	for _, session := range sessions {
		total += session.duration()
		if session.duration() > longest.duration() {
			longest = session
		}
	}

	s.AvgLength = formatDuration(total / time.Duration(len(sessions)))
	s.Longest = formatDuration(longest.duration())
	s.LongestDate = longest.start.Format(dateFormat)
}

func derivePlayback(r *Report, idx *aggregate.Index, all *aggregate.Tally) {
	p := &r.Playback
	p.MostSkippedTrack = NotAvailable
	p.OfflineOnlineRatio = "0:0"

	p.TotalListeningTimeMs = sumValues(all.TrackTime)
	p.TotalPlays = sumValues(all.TrackPlays)
	p.TotalListeningTime = formatDuration(time.Duration(p.TotalListeningTimeMs) * time.Millisecond)

	p.AvgPlaytime = formatDuration(0)
	if p.TotalPlays > 0 {
		p.AvgPlaytimeMs = float64(p.TotalListeningTimeMs) / float64(p.TotalPlays)
		p.AvgPlaytime = formatDuration(time.Duration(p.AvgPlaytimeMs) * time.Millisecond)
	}

	p.SkipCount = idx.SkipCount
	p.OfflineCount = idx.OfflineCount
	if idx.CountedPlays > 0 {
		p.OnlineCount = idx.CountedPlays - idx.OfflineCount
		p.SkipRatePct = float64(idx.SkipCount) / float64(idx.CountedPlays) * 100
		p.OfflineRatioPct = float64(idx.OfflineCount) / float64(idx.CountedPlays) * 100
		p.OfflineOnlineRatio = fmt.Sprintf("%d:%d", p.OfflineCount, p.OnlineCount)
	}

	for track, skips := range idx.TrackSkips {
		if skips > p.MostSkippedCount || (skips == p.MostSkippedCount && track < p.MostSkippedTrack) {
			p.MostSkippedTrack = track
			p.MostSkippedCount = skips
		}
	}
}

// cutover returns the largest rank i (1-indexed, values sorted descending)
// such that the i-th largest value is still >= i. Applied to daily play
// counts this is the Eddington number; applied to per-artist counts it is the
// artist cut-over point.
func cutover(vals []int64) int {
	sort.Slice(vals, func(i, j int) bool { return vals[i] > vals[j] })
	for i, v := range vals {
		if v < int64(i+1) {
			return i
		}
	}
	return len(vals)
}

// gini computes the Gini coefficient of a distribution: 0 for perfectly even,
// approaching 1 for maximal concentration. Defined as 0 when there is nothing
// to measure.
func gini(vals []int64) float64 {
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })

	n := len(vals)
	var sum, weighted int64
	for i, v := range vals {
		sum += v
		weighted += int64(i+1) * v
	}
	if n == 0 || sum == 0 {
		return 0
	}
	return float64(2*weighted)/(float64(n)*float64(sum)) - float64(n+1)/float64(n)
}

type session struct {
	start, end time.Time
}

func (s session) duration() time.Duration {
	return s.end.Sub(s.start)
}

// segmentSessions splits chronologically-sorted play timestamps into maximal
// runs where no inter-play gap exceeds maxGap. A single play is a zero-length
// session.
func segmentSessions(playTimes []time.Time, maxGap time.Duration) []session {
	if len(playTimes) == 0 {
		return nil
	}

	times := make([]time.Time, len(playTimes))
	copy(times, playTimes)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	var sessions []session
	start, prev := times[0], times[0]
	for _, t := range times[1:] {
		if t.Sub(prev) > maxGap {
			sessions = append(sessions, session{start, prev})
			start = t
		}
		prev = t
	}
	return append(sessions, session{start, prev})
}

// isoWeekStart returns the Monday of the given ISO week. January 4th is
// always inside ISO week 1.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -sinceMonday)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

func monthBefore(a, b aggregate.Month) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	return a.Month < b.Month
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a to b; both must be midnight UTC.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

func formatHour(hour int) string {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d%s", h, suffix)
}

func formatDuration(d time.Duration) string {
	seconds := int64(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func sumValues[K comparable](m map[K]int64) int64 {
	var sum int64
	for _, v := range m {
		sum += v
	}
	return sum
}

func values[K comparable](m map[K]int64) []int64 {
	vals := make([]int64, 0, len(m))
	for _, v := range m {
		vals = append(vals, v)
	}
	return vals
}
