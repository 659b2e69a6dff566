package view

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/b0ase/path402/apps/assetroom/internal/assets"
	"github.com/b0ase/path402/apps/assetroom/internal/session"
	"github.com/b0ase/path402/apps/assetroom/internal/wallet"
)

func loaded(list []assets.Asset) session.Snapshot {
	return session.Snapshot{Load: session.Loaded, Assets: list}
}

func TestBuild_Loading(t *testing.T) {
	d := Build(session.Snapshot{Load: session.Loading})
	if d.Phase != "loading" {
		t.Errorf("phase = %s", d.Phase)
	}
	if d.Skeletons != SkeletonCount {
		t.Errorf("skeletons = %d, want %d", d.Skeletons, SkeletonCount)
	}
	if len(d.Cards) != 0 || d.Empty {
		t.Error("loading page must not show cards or the empty state")
	}
	if d.Stats != nil || d.Widgets != nil {
		t.Error("loading page must not show stats")
	}
	if !d.Refresh {
		t.Error("loading page should refresh")
	}
}

func TestBuild_Failed(t *testing.T) {
	d := Build(session.Snapshot{Load: session.Failed, LoadError: "Failed to load assets"})
	if d.Error != "Failed to load assets" {
		t.Errorf("error = %q", d.Error)
	}
	if len(d.Cards) != 0 || d.Skeletons != 0 || d.Empty {
		t.Error("failed load must not render a grid")
	}
	if d.Stats != nil || d.Widgets != nil {
		t.Error("failed load must not render stat widgets")
	}
}

func TestBuild_Empty(t *testing.T) {
	for _, filter := range []bool{false, true} {
		snap := loaded([]assets.Asset{})
		snap.Address = alice
		snap.FilterOwnedOnly = filter

		d := Build(snap)
		if !d.Empty || d.EmptyMessage != EmptyMessage {
			t.Errorf("filter=%v: empty state missing", filter)
		}
		if *d.Stats != (Stats{}) {
			t.Errorf("filter=%v: stats = %+v, want zeros", filter, *d.Stats)
		}
	}
}

func TestBuild_Controls(t *testing.T) {
	tests := []struct {
		name          string
		snap          session.Snapshot
		connectLabel  string
		connectOff    bool
		filterLabel   string
		filterOff     bool
		wantBanner    bool
		holdingsMuted bool
	}{
		{
			name:          "disconnected",
			snap:          loaded(tenAssets()),
			connectLabel:  "Connect Wallet",
			filterLabel:   "Show Owned Only",
			filterOff:     true,
			holdingsMuted: true,
		},
		{
			name:          "connecting",
			snap:          session.Snapshot{Load: session.Loaded, Assets: tenAssets(), Connecting: true},
			connectLabel:  "Connecting...",
			connectOff:    true,
			filterLabel:   "Show Owned Only",
			filterOff:     true,
			holdingsMuted: true,
		},
		{
			name:         "connected",
			snap:         session.Snapshot{Load: session.Loaded, Assets: tenAssets(), Address: alice},
			connectLabel: "Disconnect Wallet",
			filterLabel:  "Show Owned Only",
			wantBanner:   true,
		},
		{
			name:         "connected filtered",
			snap:         session.Snapshot{Load: session.Loaded, Assets: tenAssets(), Address: alice, FilterOwnedOnly: true},
			connectLabel: "Disconnect Wallet",
			filterLabel:  "Showing Owned Assets",
			wantBanner:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Build(tt.snap)
			if d.Connect.Label != tt.connectLabel || d.Connect.Disabled != tt.connectOff {
				t.Errorf("connect = %+v", d.Connect)
			}
			if d.Filter.Label != tt.filterLabel || d.Filter.Disabled != tt.filterOff {
				t.Errorf("filter = %+v", d.Filter)
			}
			if (d.Banner != nil) != tt.wantBanner {
				t.Errorf("banner = %+v", d.Banner)
			}
			if d.Widgets[2].Muted != tt.holdingsMuted {
				t.Errorf("holdings muted = %v", d.Widgets[2].Muted)
			}
		})
	}
}

func TestBuild_OwnedBadgeIgnoresFilter(t *testing.T) {
	snap := loaded(tenAssets())
	snap.Address = bob

	d := Build(snap)
	if len(d.Cards) != 10 {
		t.Fatalf("cards = %d, want 10", len(d.Cards))
	}
	owned := 0
	for _, c := range d.Cards {
		if c.Owned {
			owned++
			if c.Owner != bob {
				t.Errorf("card %s badged for %s", c.ID, c.Owner)
			}
		}
	}
	if owned != 3 {
		t.Errorf("owned badges = %d, want 3", owned)
	}
}

// Drives a real session through connect, filter, disconnect and reconnect.
func TestScenario_ConnectFilterReconnect(t *testing.T) {
	mock := clock.NewMock()
	picks := []int{0, 1} // alice, then bob
	n := 0
	sim := wallet.NewSimulator([]string{alice, bob, carol}, wallet.DefaultDelay,
		wallet.WithClock(mock),
		wallet.WithPicker(func(int) int { p := picks[n%len(picks)]; n++; return p }),
	)
	loader := assets.LoaderFunc(func(context.Context) ([]assets.Asset, error) { return tenAssets(), nil })
	s := session.New("scenario", loader, sim, session.WithClock(mock))
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.AwaitLoad(ctx); err != nil {
		t.Fatalf("AwaitLoad: %v", err)
	}

	connect := func() {
		t.Helper()
		if _, err := s.ToggleConnection(); err != nil {
			t.Fatalf("ToggleConnection: %v", err)
		}
		mock.Add(wallet.DefaultDelay)
		if err := s.AwaitConnection(ctx); err != nil {
			t.Fatalf("AwaitConnection: %v", err)
		}
	}

	connect()
	d := Build(s.Snapshot())
	if d.Banner == nil || d.Banner.Address != alice {
		t.Fatalf("banner = %+v, want alice", d.Banner)
	}
	if d.Stats.OwnedCount != 4 || d.Banner.OwnedCount != 4 {
		t.Errorf("owned count = %d / %d, want 4", d.Stats.OwnedCount, d.Banner.OwnedCount)
	}

	if _, err := s.ToggleOwnedOnlyFilter(); err != nil {
		t.Fatalf("ToggleOwnedOnlyFilter: %v", err)
	}
	d = Build(s.Snapshot())
	if len(d.Cards) != 4 {
		t.Fatalf("filtered cards = %d, want 4", len(d.Cards))
	}
	for _, c := range d.Cards {
		if c.Owner != alice || !c.Owned {
			t.Errorf("card %s owner %s owned=%v", c.ID, c.Owner, c.Owned)
		}
	}

	s.ToggleConnection() // disconnect
	connect()            // reconnect as bob

	snap := s.Snapshot()
	if snap.Address != bob {
		t.Fatalf("reconnected as %s, want bob", snap.Address)
	}
	if snap.FilterOwnedOnly {
		t.Error("filter should be reset after reconnect")
	}
	d = Build(snap)
	if len(d.Cards) != 10 {
		t.Errorf("cards = %d, want all 10", len(d.Cards))
	}
	if d.Stats.UniqueOwners != 3 || d.Stats.TotalAssets != 10 {
		t.Errorf("stats = %+v", *d.Stats)
	}
}
