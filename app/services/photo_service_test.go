package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFetchImageBytesUsesBaseName(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "7001.jpg"), []byte("jpegbytes"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	s := &PhotoService{Root: dir, cache: make(map[string][]byte)}

	// traversal-ish paths resolve to the flat repository
	for _, path := range []string{"7001.jpg", "/var/anywhere/7001.jpg", "../../7001.jpg"} {
		data, err := s.FetchImageBytes(path)
		if err != nil {
			t.Fatalf("FetchImageBytes(%q): %v", path, err)
		}
		if string(data) != "jpegbytes" {
			t.Errorf("FetchImageBytes(%q) = %q", path, data)
		}
	}
}

func TestFetchImageBytesMissing(t *testing.T) {
	s := &PhotoService{Root: t.TempDir(), cache: make(map[string][]byte)}
	if _, err := s.FetchImageBytes("ghost.jpg"); err == nil {
		t.Fatal("want error for missing photo")
	}
}

func TestFetchImageBytesCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "7001.jpg")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}
	s := &PhotoService{Root: dir, cache: make(map[string][]byte)}

	if _, err := s.FetchImageBytes("7001.jpg"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	// without a watcher the cache is authoritative
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite photo: %v", err)
	}
	data, err := s.FetchImageBytes("7001.jpg")
	if err != nil {
		t.Fatalf("FetchImageBytes: %v", err)
	}
	if string(data) != "v1" {
		t.Errorf("cached read = %q, want v1", data)
	}
}
