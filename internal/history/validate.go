package history

import (
	"github.com/goccy/go-json"
)

const (
	validateSampleSize = 10
	validSampleRatio   = 0.7
)

// ValidBatch decides whether a decoded batch looks like streaming history.
// An empty batch is not valid. Only the first few records are inspected: a
// record counts as valid if it is a JSON object carrying both a timestamp and
// a play duration, and the batch passes when at least 70% of the sample does.
// A handful of malformed rows therefore doesn't reject an otherwise-good file.
func ValidBatch(items []json.RawMessage) bool {
	if len(items) == 0 {
		return false
	}

	sampleSize := validateSampleSize
	if len(items) < sampleSize {
		sampleSize = len(items)
	}

	valid := 0
	for _, item := range items[:sampleSize] {
		var record map[string]json.RawMessage
		if err := json.Unmarshal(item, &record); err != nil {
			continue
		}
		if _, ok := record["ts"]; !ok {
			continue
		}
		if _, ok := record["ms_played"]; !ok {
			continue
		}
		valid++
	}

	return float64(valid)/float64(sampleSize) >= validSampleRatio
}
