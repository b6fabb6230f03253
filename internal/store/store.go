// Package store writes one run's aggregates and report to a SQLite database
// for downstream rendering. Each export replaces the previous contents; the
// database is an output artifact, not cross-run state.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS Period (
  year INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS ArtistStat (
  year INTEGER,
  name TEXT,
  plays INTEGER,
  ms_played INTEGER,
  PRIMARY KEY (year, name)
);

CREATE TABLE IF NOT EXISTS TrackStat (
  year INTEGER,
  name TEXT,
  plays INTEGER,
  ms_played INTEGER,
  PRIMARY KEY (year, name)
);

CREATE TABLE IF NOT EXISTS AlbumStat (
  year INTEGER,
  name TEXT,
  plays INTEGER,
  ms_played INTEGER,
  PRIMARY KEY (year, name)
);

CREATE TABLE IF NOT EXISTS Report (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  generated DATETIME,
  yaml TEXT
);
`

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
