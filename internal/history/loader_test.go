package history

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir string, name string, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Writing %s: %v", name, err)
	}
}

func TestLoadReadsAllFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Streaming_History_Audio_2023.json", `[
		{"ts": "2023-05-01T10:00:00Z", "ms_played": 31000, "master_metadata_album_artist_name": "Radiohead", "master_metadata_track_name": "Weird Fishes"}
	]`)
	writeFile(t, dir, "Streaming_History_Audio_2024.json", `[
		{"ts": "2024-06-01T10:00:00Z", "ms_played": 45000, "master_metadata_album_artist_name": "Portishead", "master_metadata_track_name": "Roads"},
		{"ts": "2024-06-01T11:00:00Z", "ms_played": 12000, "master_metadata_album_artist_name": "Portishead", "master_metadata_track_name": "Glory Box"}
	]`)

	events, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].ArtistName() != "Radiohead" || events[0].Ms() != 31000 {
		t.Fatalf("Unexpected first event: %+v", events[0])
	}
}

func TestLoadSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", `[{"ts": "2024-01-01T00:00:00Z", "ms_played": 31000}]`)
	writeFile(t, dir, "not_an_array.json", `{"ts": "2024-01-01T00:00:00Z"}`)
	writeFile(t, dir, "wrong_structure.json", `[{"title": "a"}, {"title": "b"}]`)
	writeFile(t, dir, "corrupt.json", `[{`)
	writeFile(t, dir, "ignored.txt", `not json at all`)

	events, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected only the good file's event, got %d events", len(events))
	}
}

func TestLoadSkipsMalformedEntries(t *testing.T) {
	dir := t.TempDir()
	// The batch passes validation but the second record can't decode.
	writeFile(t, dir, "mixed.json", `[
		{"ts": "2024-01-01T00:00:00Z", "ms_played": 31000},
		{"ts": 12345, "ms_played": 31000},
		{"ts": "2024-01-02T00:00:00Z", "ms_played": 40000}
	]`)

	events, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 decodable events, got %d", len(events))
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	events, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("Expected no events, got %d", len(events))
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Expected error for missing directory")
	}
}
