// Package view derives what the dashboard shows from the raw asset
// collection, the connected address and the owned-only filter.
//
// Every function here is pure. An empty address means "not connected".
package view

import "github.com/b0ase/path402/apps/assetroom/internal/assets"

// Stats are the three summary widgets.
type Stats struct {
	TotalAssets  int `json:"total_assets"`
	UniqueOwners int `json:"unique_owners"`
	OwnedCount   int `json:"owned_count"`
}

// VisibleAssets returns the assets to display. Without a connected address,
// or with the filter off, the collection is returned unchanged. Otherwise it
// returns the order-preserving subsequence owned by connected.
func VisibleAssets(collection []assets.Asset, connected string, ownedOnly bool) []assets.Asset {
	if connected == "" || !ownedOnly {
		return collection
	}
	out := make([]assets.Asset, 0, len(collection))
	for _, a := range collection {
		if a.Owner == connected {
			out = append(out, a)
		}
	}
	return out
}

// ComputeStats summarises the whole collection. UniqueOwners never depends on
// the connection or the filter.
func ComputeStats(collection []assets.Asset, connected string) Stats {
	owners := make(map[string]struct{}, len(collection))
	owned := 0
	for _, a := range collection {
		owners[a.Owner] = struct{}{}
		if connected != "" && a.Owner == connected {
			owned++
		}
	}
	return Stats{
		TotalAssets:  len(collection),
		UniqueOwners: len(owners),
		OwnedCount:   owned,
	}
}

// IsOwned drives the "Owned" badge. It ignores the filter.
func IsOwned(a assets.Asset, connected string) bool {
	return connected != "" && a.Owner == connected
}
