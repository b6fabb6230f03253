package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/seshstats/sesh-tools/internal/logging"
)

// Load reads every JSON batch file in dir and returns the concatenation of
// their individually-decodable records, in file order within each batch.
//
// A directory that cannot be read is the one fatal case. Everything below
// that degrades: a file that isn't a JSON array, a batch failing ValidBatch,
// or a single undecodable record is logged and skipped so one corrupt source
// never aborts the run.
func Load(dir string) ([]RawEvent, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		logging.Warn().Str("dir", dir).Msg("no JSON files found in the input directory")
		return []RawEvent{}, nil
	}

	var all []RawEvent
	for _, file := range files {
		batch, err := loadBatch(file)
		if err != nil {
			logging.Warn().Str("file", file).Err(err).Msg("skipping unreadable batch")
			continue
		}
		if !ValidBatch(batch) {
			logging.Warn().Str("file", file).Msg("file has invalid data structure, skipping")
			continue
		}

		for i, item := range batch {
			var event RawEvent
			if err := json.Unmarshal(item, &event); err != nil {
				logging.Warn().Str("file", file).Int("entry", i).Err(err).Msg("skipping malformed entry")
				continue
			}
			all = append(all, event)
		}
	}

	return all, nil
}

func loadBatch(file string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return items, nil
}
