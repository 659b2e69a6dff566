package db

import (
	"database/sql"
	"time"
)

// CatalogAsset is one row of the served catalog.
type CatalogAsset struct {
	Position    int    `json:"-"`
	AssetID     string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Owner       string `json:"owner"`
}

// ReplaceCatalog swaps the whole catalog atomically. Row order becomes the
// source order.
func ReplaceCatalog(items []CatalogAsset) error {
	now := time.Now().Unix()
	return withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM assets`); err != nil {
			return err
		}
		stmt, err := tx.Prepare(`
			INSERT INTO assets (position, asset_id, name, description, image, owner, seeded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, a := range items {
			if _, err := stmt.Exec(i, a.AssetID, a.Name, a.Description, a.Image, a.Owner, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetCatalog returns every asset in source order.
func GetCatalog() ([]CatalogAsset, error) {
	rows, err := db.Query(`
		SELECT position, asset_id, name, description, image, owner
		FROM assets ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CatalogAsset
	for rows.Next() {
		var a CatalogAsset
		if err := rows.Scan(&a.Position, &a.AssetID, &a.Name, &a.Description, &a.Image, &a.Owner); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// CountCatalog returns the number of catalog rows.
func CountCatalog() (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM assets`).Scan(&n)
	return n, err
}
