package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/seshstats/sesh-tools/internal/aggregate"
)

// AllTime is the year value under which the merged all-years tally is stored.
const AllTime = 0

// Row is one keyed stat as stored and read back.
type Row struct {
	Name     string
	Plays    int64
	MsPlayed int64
}

// SaveRun replaces the database contents with one run's output: every
// per-year tally, the all-time tally under year 0, and the encoded report.
func (s *Store) SaveRun(years map[int]*aggregate.Tally, all *aggregate.Tally, reportYAML string, generated time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"Period", "ArtistStat", "TrackStat", "AlbumStat", "Report"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	sorted := make([]int, 0, len(years))
	for year := range years {
		sorted = append(sorted, year)
	}
	sort.Ints(sorted)

	for _, year := range sorted {
		if _, err := tx.Exec("INSERT INTO Period (year) VALUES (?)", year); err != nil {
			return fmt.Errorf("inserting period %d: %w", year, err)
		}
		if err := saveTally(tx, year, years[year]); err != nil {
			return err
		}
	}

	if err := saveTally(tx, AllTime, all); err != nil {
		return err
	}

	if _, err := tx.Exec("INSERT INTO Report (id, generated, yaml) VALUES (1, ?, ?)", generated, reportYAML); err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func saveTally(tx *sql.Tx, year int, tally *aggregate.Tally) error {
	if err := saveStats(tx, "ArtistStat", year, tally.ArtistPlays, tally.ArtistTime); err != nil {
		return err
	}
	if err := saveStats(tx, "TrackStat", year, tally.TrackPlays, tally.TrackTime); err != nil {
		return err
	}
	return saveStats(tx, "AlbumStat", year, tally.AlbumPlays, tally.AlbumTime)
}

func saveStats(tx *sql.Tx, table string, year int, plays, msPlayed map[string]int64) error {
	// The time map holds every key; the play map only those above the
	// count threshold.
	query := fmt.Sprintf("INSERT INTO %s (year, name, plays, ms_played) VALUES (?, ?, ?, ?)", table)
	for name, ms := range msPlayed {
		if _, err := tx.Exec(query, year, name, plays[name], ms); err != nil {
			return fmt.Errorf("inserting into %s for year %d: %w", table, year, err)
		}
	}
	return nil
}

// Rows reads back one table for one year, sorted by plays descending then
// name.
func (s *Store) Rows(table string, year int) ([]Row, error) {
	switch table {
	case "ArtistStat", "TrackStat", "AlbumStat":
	default:
		return nil, fmt.Errorf("unknown stat table %q", table)
	}

	query := fmt.Sprintf("SELECT name, plays, ms_played FROM %s WHERE year = ? ORDER BY plays DESC, name ASC", table)
	rows, err := s.db.Query(query, year)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Name, &row.Plays, &row.MsPlayed); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// Years returns the stored period years, ascending.
func (s *Store) Years() ([]int, error) {
	rows, err := s.db.Query("SELECT year FROM Period ORDER BY year ASC")
	if err != nil {
		return nil, fmt.Errorf("querying periods: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// Report returns the stored report YAML and its generation time.
func (s *Store) Report() (string, time.Time, error) {
	var yaml string
	var generated time.Time
	err := s.db.QueryRow("SELECT yaml, generated FROM Report WHERE id = 1").Scan(&yaml, &generated)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("reading report: %w", err)
	}
	return yaml, generated, nil
}
