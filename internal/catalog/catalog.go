// Package catalog seeds and reads the asset table that backs the static
// /data/assets.json endpoint.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/b0ase/path402/apps/assetroom/internal/assets"
	"github.com/b0ase/path402/apps/assetroom/internal/db"
	"github.com/b0ase/path402/apps/assetroom/internal/media"
)

//go:embed default_assets.json
var defaultCatalog []byte

const embeddedSource = "embedded:default_assets.json"

// Default returns the built-in demo catalog.
func Default() ([]assets.Asset, error) {
	return assets.Decode(bytes.NewReader(defaultCatalog))
}

// Seed fills the catalog when it is empty. An empty seedFile uses the
// built-in catalog. Relative image paths are resolved against the seed
// file's directory and imported into store when store is non-nil.
// It returns the number of assets written.
func Seed(seedFile string, store *media.Store) (int, error) {
	n, err := db.CountCatalog()
	if err != nil {
		return 0, fmt.Errorf("count catalog: %w", err)
	}
	if n > 0 {
		log.Printf("[catalog] %d assets already present, skipping seed", n)
		return 0, nil
	}

	list, baseDir, source, err := read(seedFile)
	if err != nil {
		return 0, err
	}

	rows := make([]db.CatalogAsset, len(list))
	for i, a := range list {
		rows[i] = db.CatalogAsset{
			AssetID:     a.ID,
			Name:        a.Name,
			Description: a.Description,
			Image:       resolveImage(a.Image, baseDir, store),
			Owner:       a.Owner,
		}
	}
	if err := db.ReplaceCatalog(rows); err != nil {
		return 0, fmt.Errorf("write catalog: %w", err)
	}
	if err := db.SetConfig(db.KeyCatalogSource, source); err != nil {
		log.Printf("[catalog] WARNING: Failed to record catalog source: %v", err)
	}

	log.Printf("[catalog] Seeded %d assets from %s", len(rows), source)
	return len(rows), nil
}

// Assets reads the catalog back in source order.
func Assets() ([]assets.Asset, error) {
	rows, err := db.GetCatalog()
	if err != nil {
		return nil, err
	}
	list := make([]assets.Asset, len(rows))
	for i, r := range rows {
		list[i] = assets.Asset{
			ID:          r.AssetID,
			Name:        r.Name,
			Description: r.Description,
			Image:       r.Image,
			Owner:       r.Owner,
		}
	}
	return list, nil
}

func read(seedFile string) (list []assets.Asset, baseDir, source string, err error) {
	if seedFile == "" {
		list, err = Default()
		return list, "", embeddedSource, err
	}

	f, err := os.Open(seedFile)
	if err != nil {
		return nil, "", "", fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	list, err = assets.Decode(f)
	if err != nil {
		return nil, "", "", fmt.Errorf("seed file %s: %w", seedFile, err)
	}
	return list, filepath.Dir(seedFile), seedFile, nil
}

// resolveImage leaves URLs and absolute paths alone and imports local files.
func resolveImage(ref, baseDir string, store *media.Store) string {
	if ref == "" || store == nil || baseDir == "" || isURL(ref) || strings.HasPrefix(ref, "/") {
		return ref
	}
	path := filepath.Join(baseDir, filepath.FromSlash(ref))
	if _, err := os.Stat(path); err != nil {
		log.Printf("[catalog] Image %s not found, keeping reference as-is", ref)
		return ref
	}
	hash, err := store.Import(path)
	if err != nil {
		log.Printf("[catalog] Image import failed for %s: %v", ref, err)
		return ref
	}
	return media.URL(hash)
}

func isURL(ref string) bool {
	for _, p := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}
