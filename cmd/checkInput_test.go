package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeInputFile(t *testing.T, dir string, name string, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Writing %s: %v", name, err)
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	writeInputFile(t, dir, "good.json", `[{"ts": "2024-01-01T00:00:00Z", "ms_played": 31000}]`)
	writeInputFile(t, dir, "empty.json", `[]`)
	writeInputFile(t, dir, "object.json", `{"ts": "2024-01-01T00:00:00Z"}`)
	writeInputFile(t, dir, "wrong.json", `[{"title": "a"}]`)

	cases := []struct {
		name       string
		wantCount  int
		wantStatus string
	}{
		{"good.json", 1, "ok"},
		{"empty.json", 0, "empty"},
		{"object.json", 0, "not a JSON array"},
		{"wrong.json", 1, "unrecognized structure"},
	}
	for _, tc := range cases {
		count, status := checkFile(filepath.Join(dir, tc.name))
		if count != tc.wantCount || status != tc.wantStatus {
			t.Errorf("checkFile(%s) = (%d, %q), want (%d, %q)", tc.name, count, status, tc.wantCount, tc.wantStatus)
		}
	}

	if _, status := checkFile(filepath.Join(dir, "missing.json")); status != "unreadable" {
		t.Errorf("Expected unreadable for missing file, got %q", status)
	}
}

func TestCheckInputNoFiles(t *testing.T) {
	if err := checkInput(t.TempDir()); err == nil {
		t.Fatal("Expected error when the directory has no JSON files")
	}
}

func TestCheckInputMissingDirectory(t *testing.T) {
	if err := checkInput(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Expected error for missing directory")
	}
}
