package stats

// NotAvailable is the sentinel for string fields that have no value on an
// empty dataset.
const NotAvailable = "N/A"

// Report is the top-level structure handed to the rendering layer.
type Report struct {
	Overview    Overview     `yaml:"overview"`
	Library     Library      `yaml:"library"`
	Milestones  Milestones   `yaml:"milestones"`
	Patterns    Patterns     `yaml:"patterns"`
	Sessions    SessionStats `yaml:"sessions"`
	Playback    Playback     `yaml:"playback"`
	Personality Personality  `yaml:"personality"`
}

type Overview struct {
	DaysSinceFirst int     `yaml:"days_since_first"`
	DaysPlayed     int     `yaml:"days_played"`
	PctDaysActive  float64 `yaml:"pct_days_active"`
	FirstPlay      string  `yaml:"first_play"`
	LastPlay       string  `yaml:"last_play"`
}

type Library struct {
	ArtistsCount        int      `yaml:"artists_count"`
	OneHitWonders       int      `yaml:"one_hit_wonders"`
	OneHitWondersPct    float64  `yaml:"one_hit_wonders_pct"`
	EveryYearArtists    []string `yaml:"every_year_artists"`
	EveryYearCount      int      `yaml:"every_year_count"`
	AlbumsCount         int      `yaml:"albums_count"`
	AlbumsPerArtist     float64  `yaml:"albums_per_artist"`
	TracksCount         int      `yaml:"tracks_count"`
	UniqueTrackRatioPct float64  `yaml:"unique_track_ratio_pct"`
	GiniCoefficient     float64  `yaml:"gini_coefficient"`
}

type Milestones struct {
	EddingtonNumber      int    `yaml:"eddington_number"`
	DaysToNextEddington  int    `yaml:"days_to_next_eddington"`
	ArtistCutoverPoint   int    `yaml:"artist_cutover_point"`
	MostPopularYear      string `yaml:"most_popular_year"`
	MostPopularYearPlays int64  `yaml:"most_popular_year_plays"`
	MostPopularMonth     string `yaml:"most_popular_month"`
	MostPopularMonthPlays int64 `yaml:"most_popular_month_plays"`
	MostPopularWeek      string `yaml:"most_popular_week"`
	MostPopularWeekPlays int64  `yaml:"most_popular_week_plays"`
	MostPopularDay       string `yaml:"most_popular_day"`
	MostPopularDayPlays  int64  `yaml:"most_popular_day_plays"`
}

type Patterns struct {
	LongestStreakDays        int     `yaml:"longest_streak_days"`
	StreakStart              string  `yaml:"streak_start"`
	StreakEnd                string  `yaml:"streak_end"`
	LongestHiatusDays        int     `yaml:"longest_hiatus_days"`
	HiatusStart              string  `yaml:"hiatus_start"`
	HiatusEnd                string  `yaml:"hiatus_end"`
	AvgPlaysPerActiveDay     float64 `yaml:"avg_plays_per_active_day"`
	MostActiveWeekday        string  `yaml:"most_active_weekday"`
	MostActiveWeekdayPlays   int64   `yaml:"most_active_weekday_plays"`
	PeakListeningHour        string  `yaml:"peak_listening_hour"`
	PeakListeningHourPlays   int64   `yaml:"peak_listening_hour_plays"`
	WeekendPlays             int64   `yaml:"weekend_plays"`
	WeekdayPlays             int64   `yaml:"weekday_plays"`
	WeekendVsWeekdayRatioPct float64 `yaml:"weekend_vs_weekday_ratio_pct"`
}

type SessionStats struct {
	Count       int    `yaml:"count"`
	AvgLength   string `yaml:"avg_length"`
	Longest     string `yaml:"longest"`
	LongestDate string `yaml:"longest_date"`
}

type Playback struct {
	TotalPlays           int64   `yaml:"total_plays"`
	TotalListeningTimeMs int64   `yaml:"total_listening_time_ms"`
	TotalListeningTime   string  `yaml:"total_listening_time"`
	AvgPlaytimeMs        float64 `yaml:"avg_playtime_ms"`
	AvgPlaytime          string  `yaml:"avg_playtime"`
	SkipCount            int64   `yaml:"skip_count"`
	SkipRatePct          float64 `yaml:"skip_rate_pct"`
	OfflineCount         int64   `yaml:"offline_count"`
	OnlineCount          int64   `yaml:"online_count"`
	OfflineRatioPct      float64 `yaml:"offline_ratio_pct"`
	OfflineOnlineRatio   string  `yaml:"offline_online_ratio"`
	MostSkippedTrack     string  `yaml:"most_skipped_track"`
	MostSkippedCount     int64   `yaml:"most_skipped_count"`
}

// Personality is the listener-archetype profile derived from the other
// sections.
type Personality struct {
	Type        string      `yaml:"type"`
	Description string      `yaml:"description"`
	Breakdown   []TypeShare `yaml:"breakdown"`
}

// TypeShare is one archetype's share of the total personality score.
type TypeShare struct {
	Name string  `yaml:"name"`
	Pct  float64 `yaml:"pct"`
}
