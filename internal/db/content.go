package db

import (
	"fmt"
	"time"
)

// MediaItem represents a row in the media table.
type MediaItem struct {
	ContentHash string  `json:"content_hash"`
	ContentType string  `json:"content_type"`
	ContentSize int     `json:"content_size"`
	ContentPath string  `json:"content_path"`
	SourcePath  *string `json:"source_path,omitempty"`
	StoredAt    int64   `json:"stored_at"`
}

// InsertMedia upserts a media item.
func InsertMedia(item *MediaItem) error {
	if db == nil {
		return fmt.Errorf("database not open")
	}
	_, err := db.Exec(`
		INSERT OR REPLACE INTO media
			(content_hash, content_type, content_size, content_path, source_path, stored_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.ContentHash, item.ContentType, item.ContentSize, item.ContentPath, item.SourcePath, time.Now().Unix(),
	)
	return err
}

// GetMediaByHash retrieves a media item by its SHA-256 hash.
func GetMediaByHash(hash string) (*MediaItem, error) {
	if db == nil {
		return nil, fmt.Errorf("database not open")
	}
	row := db.QueryRow(`
		SELECT content_hash, content_type, content_size, content_path, source_path, stored_at
		FROM media WHERE content_hash = ?`, hash)

	var item MediaItem
	if err := row.Scan(&item.ContentHash, &item.ContentType, &item.ContentSize,
		&item.ContentPath, &item.SourcePath, &item.StoredAt); err != nil {
		return nil, err
	}
	return &item, nil
}

// CountMedia returns the number of stored media items.
func CountMedia() (int, error) {
	if db == nil {
		return 0, fmt.Errorf("database not open")
	}
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&n)
	return n, err
}
