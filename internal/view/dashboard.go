package view

import (
	"github.com/b0ase/path402/apps/assetroom/internal/assets"
	"github.com/b0ase/path402/apps/assetroom/internal/session"
)

const (
	Title        = "Game Asset Control Room"
	Kicker       = "Dashboard"
	Subtitle     = "Review your collectibles, track wallet ownership, and keep your inventory tidy."
	EmptyMessage = "No assets found for this wallet."

	// SkeletonCount is how many placeholder cards render while loading.
	SkeletonCount = 6
)

// Button is a control's label and availability.
type Button struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Active   bool   `json:"active,omitempty"`
}

// Card is one rendered asset with its ownership badge.
type Card struct {
	assets.Asset
	Owned bool `json:"owned"`
}

// Banner is shown only while an address is connected.
type Banner struct {
	Address    string `json:"address"`
	OwnedCount int    `json:"owned_count"`
}

// StatWidget is one of the three summary tiles.
type StatWidget struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Muted bool   `json:"muted,omitempty"`
}

// Dashboard is everything the page renders for one session snapshot.
type Dashboard struct {
	Title    string `json:"title"`
	Kicker   string `json:"kicker"`
	Subtitle string `json:"subtitle"`

	Phase   string  `json:"phase"`
	Connect Button  `json:"connect"`
	Filter  Button  `json:"filter"`
	Banner  *Banner `json:"banner,omitempty"`

	Stats   *Stats       `json:"stats,omitempty"`
	Widgets []StatWidget `json:"widgets,omitempty"`

	Cards        []Card `json:"cards"`
	Skeletons    int    `json:"skeletons,omitempty"`
	Empty        bool   `json:"empty"`
	EmptyMessage string `json:"empty_message,omitempty"`

	Error        string `json:"error,omitempty"`
	ConnectError string `json:"connect_error,omitempty"`

	// Refresh is set while something is in flight so the HTML page polls.
	Refresh bool `json:"refresh"`
}

// ConnectLabel mirrors the connection state on the wallet button.
func ConnectLabel(snap session.Snapshot) string {
	switch {
	case snap.Address != "":
		return "Disconnect Wallet"
	case snap.Connecting:
		return "Connecting..."
	default:
		return "Connect Wallet"
	}
}

// FilterLabel mirrors the stored filter on the toggle button.
func FilterLabel(filterOwnedOnly bool) string {
	if filterOwnedOnly {
		return "Showing Owned Assets"
	}
	return "Show Owned Only"
}

// Build turns a snapshot into the rendered surface. A failed load shows only
// the error banner; no grid and no stat widgets.
func Build(snap session.Snapshot) Dashboard {
	d := Dashboard{
		Title:    Title,
		Kicker:   Kicker,
		Subtitle: Subtitle,
		Phase:    snap.Load.String(),
		Connect: Button{
			Label:    ConnectLabel(snap),
			Disabled: !snap.CanToggleConnection(),
		},
		Filter: Button{
			Label:    FilterLabel(snap.FilterOwnedOnly),
			Disabled: !snap.CanToggleFilter(),
			Active:   snap.FilterOwnedOnly,
		},
		ConnectError: snap.ConnectError,
		Refresh:      snap.Load == session.Loading || snap.Connecting,
		Cards:        []Card{},
	}

	var stats Stats
	if snap.Load == session.Loaded {
		stats = ComputeStats(snap.Assets, snap.Address)
	}
	if snap.Address != "" {
		d.Banner = &Banner{Address: snap.Address, OwnedCount: stats.OwnedCount}
	}

	switch snap.Load {
	case session.Loading:
		d.Skeletons = SkeletonCount
	case session.Failed:
		d.Error = snap.LoadError
	case session.Loaded:
		d.Stats = &stats
		d.Widgets = []StatWidget{
			{Label: "Total Assets", Value: stats.TotalAssets},
			{Label: "Unique Owners", Value: stats.UniqueOwners},
			{Label: "Your Holdings", Value: stats.OwnedCount, Muted: snap.Address == ""},
		}
		for _, a := range VisibleAssets(snap.Assets, snap.Address, snap.FilterOwnedOnly) {
			d.Cards = append(d.Cards, Card{Asset: a, Owned: IsOwned(a, snap.Address)})
		}
		if len(d.Cards) == 0 {
			d.Empty = true
			d.EmptyMessage = EmptyMessage
		}
	}
	return d
}
