// Package media is a hash-addressed filesystem store for asset images that
// ship alongside a seed catalog.
package media

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/b0ase/path402/apps/assetroom/internal/db"
)

// URLPrefix is where the HTTP server exposes stored media.
const URLPrefix = "/media/"

// Store keeps image bytes under baseDir/<hash[:2]>/<hash>.
type Store struct {
	baseDir string
	mu      sync.RWMutex
}

// NewStore creates a media store rooted at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	log.Printf("[media] Store initialized at %s", dir)
	return &Store{baseDir: dir}, nil
}

// hashPath returns the filesystem path for a content hash, using the first
// two characters as a directory prefix.
func (s *Store) hashPath(hash string) string {
	return filepath.Join(s.baseDir, hash[:2], hash)
}

// Put stores data and returns its SHA-256 hash. An empty contentType is
// sniffed from the bytes.
func (s *Store) Put(data []byte, contentType, sourcePath string) (string, error) {
	h := sha256.Sum256(data)
	hash := hex.EncodeToString(h[:])
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.hashPath(hash)
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return "", fmt.Errorf("create media shard: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("write media: %w", err)
	}

	item := &db.MediaItem{
		ContentHash: hash,
		ContentType: contentType,
		ContentSize: len(data),
		ContentPath: filePath,
	}
	if sourcePath != "" {
		item.SourcePath = &sourcePath
	}
	if err := db.InsertMedia(item); err != nil {
		return "", fmt.Errorf("index media: %w", err)
	}

	log.Printf("[media] Stored %s (%d bytes, %s)", hash[:16], len(data), contentType)
	return hash, nil
}

// Import copies a local file into the store.
func (s *Store) Import(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return s.Put(data, "", path)
}

// Open returns a reader for the content plus its indexed metadata.
func (s *Store) Open(hash string) (io.ReadCloser, *db.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := db.GetMediaByHash(hash)
	if err != nil {
		return nil, nil, err
	}

	path := item.ContentPath
	if path == "" {
		path = s.hashPath(hash)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open media: %w", err)
	}
	return f, item, nil
}

// URL is the public path for a stored hash.
func URL(hash string) string {
	return URLPrefix + hash
}
