package media

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/b0ase/path402/apps/assetroom/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	if err := db.Open(filepath.Join(dir, "test.db")); err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	t.Cleanup(db.Close)

	s, err := NewStore(filepath.Join(dir, "media"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestPutOpen(t *testing.T) {
	s := setupStore(t)

	hash, err := s.Put([]byte("<svg xmlns='http://www.w3.org/2000/svg'/>"), "image/svg+xml", "")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(hash))
	}

	r, item, err := s.Open(hash)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	data, _ := io.ReadAll(r)
	if !strings.HasPrefix(string(data), "<svg") {
		t.Errorf("content = %q", data)
	}
	if item.ContentType != "image/svg+xml" {
		t.Errorf("content type = %s", item.ContentType)
	}
	if URL(hash) != "/media/"+hash {
		t.Errorf("URL = %s", URL(hash))
	}
}

func TestImport_SniffsType(t *testing.T) {
	s := setupStore(t)

	// Minimal PNG signature is enough for content sniffing.
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")
	path := filepath.Join(t.TempDir(), "blade.png")
	if err := os.WriteFile(path, png, 0600); err != nil {
		t.Fatal(err)
	}

	hash, err := s.Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	r, item, err := s.Open(hash)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	r.Close()
	if item.ContentType != "image/png" {
		t.Errorf("content type = %s, want image/png", item.ContentType)
	}
	if item.SourcePath == nil || *item.SourcePath != path {
		t.Errorf("source path = %v", item.SourcePath)
	}
}

func TestOpen_Unknown(t *testing.T) {
	s := setupStore(t)
	if _, _, err := s.Open(strings.Repeat("0", 64)); err == nil {
		t.Error("expected error for unknown hash")
	}
}
