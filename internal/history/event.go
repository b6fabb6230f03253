// Package history loads Spotify Extended Streaming History exports: a
// directory of JSON batch files, each an array of play records.
package history

import (
	"time"
)

// Fallback values for records missing metadata. Keys built from these still
// aggregate normally; only a missing artist excludes a record entirely.
const (
	UnknownArtist = "Unknown Artist"
	UnknownTrack  = "Unknown Track"
	UnknownAlbum  = "Unknown Album"
)

// RawEvent is one play record as it appears in an export file. Pointer fields
// distinguish absent from zero-valued; all fallback rules live here rather
// than in the aggregation pass.
type RawEvent struct {
	Ts        *string `json:"ts"`
	MsPlayed  *int64  `json:"ms_played"`
	Artist    *string `json:"master_metadata_album_artist_name"`
	TrackName *string `json:"master_metadata_track_name"`
	AlbumName *string `json:"master_metadata_album_album_name"`
	Skipped   *bool   `json:"skipped"`
	Offline   *bool   `json:"offline"`
}

// Ms returns the played duration, or 0 when the field is absent.
func (e *RawEvent) Ms() int64 {
	if e.MsPlayed == nil {
		return 0
	}
	return *e.MsPlayed
}

// HasTimestamp reports whether the record carries a ts field.
func (e *RawEvent) HasTimestamp() bool {
	return e.Ts != nil
}

// HasArtist reports whether the record carries artist metadata. Records
// without it (podcast episodes, local files) are excluded from aggregation.
func (e *RawEvent) HasArtist() bool {
	return e.Artist != nil && *e.Artist != ""
}

func (e *RawEvent) ArtistName() string {
	if !e.HasArtist() {
		return UnknownArtist
	}
	return *e.Artist
}

func (e *RawEvent) Track() string {
	if e.TrackName == nil || *e.TrackName == "" {
		return UnknownTrack
	}
	return *e.TrackName
}

func (e *RawEvent) Album() string {
	if e.AlbumName == nil || *e.AlbumName == "" {
		return UnknownAlbum
	}
	return *e.AlbumName
}

// TrackKey is the aggregation identity for a track. Two records with the same
// key are the same logical track even if they came from different files.
func (e *RawEvent) TrackKey() string {
	return e.Track() + " - " + e.ArtistName()
}

// AlbumKey is the aggregation identity for an album.
func (e *RawEvent) AlbumKey() string {
	return e.Album() + " - " + e.ArtistName()
}

func (e *RawEvent) IsSkipped() bool {
	return e.Skipped != nil && *e.Skipped
}

func (e *RawEvent) IsOffline() bool {
	return e.Offline != nil && *e.Offline
}

// ParseTimestamp parses the record's ISO-8601 timestamp. RFC3339 accepts both
// the Z suffix and explicit offsets.
func (e *RawEvent) ParseTimestamp() (time.Time, error) {
	return time.Parse(time.RFC3339, *e.Ts)
}
