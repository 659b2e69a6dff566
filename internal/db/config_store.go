package db

import (
	"database/sql"
	"errors"
	"time"
)

// Well-known config keys.
const (
	KeyNodeID        = "node_id"
	KeyCatalogSource = "catalog_source"
	KeyLastStart     = "last_start"
)

// GetConfig returns the stored value for key, or sql.ErrNoRows.
func GetConfig(key string) (string, error) {
	var val string
	err := db.QueryRow(`SELECT value FROM config WHERE key = ?`, key).Scan(&val)
	if err != nil {
		return "", err
	}
	return val, nil
}

// GetConfigDefault is GetConfig with a fallback for missing keys.
func GetConfigDefault(key, fallback string) (string, error) {
	val, err := GetConfig(key)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	return val, err
}

// SetConfig upserts key.
func SetConfig(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO config (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	return err
}

// GetNodeID returns the identifier generated when the schema was first applied.
func GetNodeID() (string, error) {
	return GetConfig(KeyNodeID)
}
