package aggregate

// MergeYears folds per-year tallies into one all-time tally by key-wise
// summation. Inputs are not mutated, and because per-key addition is
// associative and commutative the result does not depend on iteration order.
func MergeYears(years map[int]*Tally) *Tally {
	all := NewTally()
	for _, tally := range years {
		addInto(all.ArtistPlays, tally.ArtistPlays)
		addInto(all.ArtistTime, tally.ArtistTime)
		addInto(all.TrackPlays, tally.TrackPlays)
		addInto(all.TrackTime, tally.TrackTime)
		addInto(all.AlbumPlays, tally.AlbumPlays)
		addInto(all.AlbumTime, tally.AlbumTime)
	}
	return all
}

func addInto(dst, src map[string]int64) {
	for key, value := range src {
		dst[key] += value
	}
}
