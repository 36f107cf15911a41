package connectors

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.csv"), 10)
	touch(t, filepath.Join(root, "b.CSV"), 2048)
	touch(t, filepath.Join(root, "notes.txt"), 10)
	touch(t, filepath.Join(root, "sub", "c.csv"), 10)

	files, err := DiscoverFiles(root, "csv", DiscoveryOptions{})
	if err != nil {
		t.Fatalf("DiscoverFiles() error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 top-level CSV files, got %d", len(files))
	}

	files, err = DiscoverFiles(root, ".csv", DiscoveryOptions{Recursive: true})
	if err != nil {
		t.Fatalf("DiscoverFiles(recursive) error: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("expected 3 CSV files recursively, got %d", len(files))
	}

	files, err = DiscoverFiles(root, "csv", DiscoveryOptions{MinSize: 1024})
	if err != nil {
		t.Fatalf("DiscoverFiles(min-size) error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file above 1KB, got %d", len(files))
	}
}

func TestDiscoverFilesErrors(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.csv"), 10)

	if _, err := DiscoverFiles("", "csv", DiscoveryOptions{}); err == nil {
		t.Error("expected error for empty root")
	}
	if _, err := DiscoverFiles(root, "", DiscoveryOptions{}); err == nil {
		t.Error("expected error for empty extension")
	}
	if _, err := DiscoverFiles(filepath.Join(root, "missing"), "csv", DiscoveryOptions{}); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, err := DiscoverFiles(root, "json", DiscoveryOptions{}); err == nil {
		t.Error("expected error when nothing matches")
	}
}
