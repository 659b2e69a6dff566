package assets

import (
	"encoding/json"
	"fmt"
	"io"
)

// Asset is a collectible record as published by the asset source.
// Records are immutable once loaded.
type Asset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Owner       string `json:"owner"`
}

// Decode parses a JSON array of assets, keeping source order.
// A JSON null decodes to an empty collection.
func Decode(r io.Reader) ([]Asset, error) {
	var list []Asset
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	if err := validate(list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Asset{}
	}
	return list, nil
}

func validate(list []Asset) error {
	seen := make(map[string]int, len(list))
	for i, a := range list {
		if a.ID == "" {
			return fmt.Errorf("asset %d: missing id", i)
		}
		if j, dup := seen[a.ID]; dup {
			return fmt.Errorf("asset %d: duplicate id %q (first at %d)", i, a.ID, j)
		}
		seen[a.ID] = i
	}
	return nil
}
