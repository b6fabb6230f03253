package stats

import "sort"

var personalityDescriptions = map[string]string{
	"Explorer":        "You're always seeking new music and artists. Your diverse taste spans many genres and you rarely get stuck in a musical rut.",
	"Loyalist":        "You have deep connections with your favorite artists. When you find music you love, you stick with it and really get to know an artist's work.",
	"Eclectic":        "Your playlist is a musical mosaic. You appreciate many different styles and aren't bound by genre conventions.",
	"Focused":         "You know what you like and stick to it. Your listening is concentrated on specific genres or artists that resonate with you.",
	"Weekend Warrior": "Your music consumption spikes on weekends. Music is your companion for weekend activities and relaxation.",
	"Daily Listener":  "Music is integrated into your daily routine. You have consistent listening habits throughout the week.",
	"Skipper":         "You're quick to move on if a song doesn't grab you immediately. You're always searching for the perfect track for the moment.",
	"Completionist":   "You appreciate music from start to finish. When you start a song or album, you tend to listen all the way through.",
	"Binge Listener":  "You dive deep into music sessions, often listening for extended periods. When you find something you love, you immerse yourself completely.",
	"Variety Seeker":  "You thrive on musical diversity. You're constantly exploring different artists and styles, rarely settling into predictable patterns.",
	"Mood Listener":   "Your music choices are guided by your emotions. You select tracks that match or enhance your current mood, creating a personalized soundtrack for your life.",
	"Deep Diver":      "You explore artists' catalogs thoroughly. Rather than sampling broadly, you prefer to discover everything about the artists you connect with.",
}

// derivePersonality scores the twelve listener archetypes against the
// already-derived metrics and returns the winner plus the full percentage
// breakdown. Ties go to the alphabetically first type.
func derivePersonality(r *Report) Personality {
	uniqueRatio := r.Library.UniqueTrackRatioPct
	giniCoeff := r.Library.GiniCoefficient
	skipRate := r.Playback.SkipRatePct
	weekendRatio := r.Patterns.WeekendVsWeekdayRatioPct
	artistsCount := float64(r.Library.ArtistsCount)
	oneHitsPct := r.Library.OneHitWondersPct
	totalPlays := float64(r.Playback.TotalPlays)
	daysPlayed := float64(r.Overview.DaysPlayed)
	daysSinceFirst := float64(r.Overview.DaysSinceFirst)
	maxStreak := float64(r.Patterns.LongestStreakDays)
	tracksCount := float64(r.Library.TracksCount)
	albumsCount := float64(r.Library.AlbumsCount)

	listeningFrequency := daysPlayed / atLeastOne(daysSinceFirst)
	artistToTrackRatio := artistsCount / atLeastOne(tracksCount)
	albumToArtistRatio := albumsCount / atLeastOne(artistsCount)
	avgPlayMinutes := r.Playback.AvgPlaytimeMs / 60000
	playsPerActiveDay := totalPlays / atLeastOne(daysPlayed)

	uniqueRatioT := [3]float64{30, 50, 70}
	giniT := [3]float64{0.3, 0.5, 0.7}
	skipRateT := [3]float64{15, 30, 45}
	weekendRatioT := [3]float64{30, 50, 70}
	artistsCountT := [3]float64{50, 100, 200}
	oneHitsT := [3]float64{20, 40, 60}
	frequencyT := [3]float64{0.3, 0.6, 0.9}
	avgPlayMinutesT := [3]float64{2, 3, 4}
	streakT := [3]float64{5, 14, 30}

	scores := map[string]float64{
		"Explorer": score(uniqueRatio, uniqueRatioT)*1.7 +
			scoreReverse(giniCoeff, giniT)*1.7 +
			score(artistsCount, artistsCountT)*1.5 +
			score(oneHitsPct, oneHitsT)*1.2 +
			bonus(artistToTrackRatio < 0.3, 1.0) +
			bonus(uniqueRatio > 60, 1.5),
		"Loyalist": scoreReverse(uniqueRatio, uniqueRatioT)*1.2 +
			score(giniCoeff, giniT)*1.5 +
			scoreReverse(artistsCount, artistsCountT)*1.0 +
			bonus(albumToArtistRatio > 1.5, 1.0),
		"Eclectic": score(oneHitsPct, oneHitsT)*1.5 +
			score(artistsCount, artistsCountT)*1.2 +
			score(uniqueRatio, uniqueRatioT)*1.0 +
			bonus(artistToTrackRatio > 0.7, 1.0),
		"Focused": scoreReverse(oneHitsPct, oneHitsT)*1.5 +
			score(giniCoeff, giniT)*1.2 +
			scoreReverse(uniqueRatio, uniqueRatioT)*1.0 +
			bonus(tracksCount < 200, 1.0),
		"Weekend Warrior": score(weekendRatio, weekendRatioT)*2.5 +
			scoreReverse(listeningFrequency, frequencyT)*1.5 +
			bonus(maxStreak < 5, 1.5) +
			bonus(weekendRatio > 65, 2.0) +
			bonus(daysPlayed < daysSinceFirst*0.4, 1.5),
		"Daily Listener": score(listeningFrequency, frequencyT)*1.5 +
			scoreReverse(weekendRatio, weekendRatioT)*0.8 +
			score(maxStreak, streakT)*0.7 +
			bonus(playsPerActiveDay > 8, 1.0),
		"Skipper": score(skipRate, skipRateT)*2.0 +
			scoreReverse(avgPlayMinutes, avgPlayMinutesT)*1.5 +
			score(uniqueRatio, uniqueRatioT)*0.8 +
			bonus(totalPlays > 1000, 1.0),
		"Completionist": scoreReverse(skipRate, skipRateT)*2.0 +
			score(avgPlayMinutes, avgPlayMinutesT)*2.5 +
			bonus(albumToArtistRatio > 1.2, 1.5) +
			bonus(giniCoeff < 0.4, 1.5) +
			bonus(skipRate < 10, 2.0) +
			bonus(avgPlayMinutes > 4.5, 1.5),
		"Binge Listener": bonus(maxStreak > 10, 2.0) +
			score(totalPlays, [3]float64{500, 1000, 2000})*1.5 +
			bonus(giniCoeff > 0.6, 1.4) +
			bonus(playsPerActiveDay > 10, 1.2),
		"Variety Seeker": score(artistsCount, artistsCountT)*1.5 +
			score(oneHitsPct, oneHitsT)*1.5 +
			bonus(artistToTrackRatio > 0.5, 1.7) +
			bonus(giniCoeff < 0.4, 1.5),
		"Mood Listener": score(skipRate, skipRateT)*1.6 +
			bonus(weekendRatio > 40 && weekendRatio < 60, 2.0) +
			score(uniqueRatio, uniqueRatioT)*1.3 +
			bonus(listeningFrequency > 0.3 && listeningFrequency < 0.7, 2.0),
		"Deep Diver": score(avgPlayMinutes, avgPlayMinutesT)*1.8 +
			bonus(albumToArtistRatio > 2.0, 2.5) +
			scoreReverse(skipRate, skipRateT)*1.4 +
			bonus(artistsCount < 50 && tracksCount > 200, 2.0) +
			bonus(giniCoeff > 0.5 && giniCoeff < 0.7, 1.5),
	}

	var total float64
	winner := ""
	for name, s := range scores {
		total += s
		if winner == "" || s > scores[winner] || (s == scores[winner] && name < winner) {
			winner = name
		}
	}

	breakdown := make([]TypeShare, 0, len(scores))
	for name, s := range scores {
		pct := 100 / float64(len(scores))
		if total > 0 {
			pct = s / total * 100
		}
		breakdown = append(breakdown, TypeShare{Name: name, Pct: pct})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Pct != breakdown[j].Pct {
			return breakdown[i].Pct > breakdown[j].Pct
		}
		return breakdown[i].Name < breakdown[j].Name
	})

	return Personality{
		Type:        winner,
		Description: personalityDescriptions[winner],
		Breakdown:   breakdown,
	}
}

// score buckets a value against low/medium/high thresholds: 0 below all of
// them, up to 3 at or above the highest.
func score(value float64, thresholds [3]float64) float64 {
	switch {
	case value >= thresholds[2]:
		return 3
	case value >= thresholds[1]:
		return 2
	case value >= thresholds[0]:
		return 1
	}
	return 0
}

// scoreReverse rewards low values instead.
func scoreReverse(value float64, thresholds [3]float64) float64 {
	switch {
	case value <= thresholds[0]:
		return 3
	case value <= thresholds[1]:
		return 2
	case value <= thresholds[2]:
		return 1
	}
	return 0
}

func bonus(cond bool, points float64) float64 {
	if cond {
		return points
	}
	return 0
}

func atLeastOne(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}
