// Package mobile provides gomobile-bindable functions for the asset room
// daemon. All complex data is returned as JSON strings since gomobile cannot
// export maps, slices, or structs with unexported fields.
package mobile

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/b0ase/path402/apps/assetroom/internal/config"
	"github.com/b0ase/path402/apps/assetroom/internal/daemon"
	"github.com/b0ase/path402/apps/assetroom/internal/view"

	// Required by gomobile bind at build time
	_ "golang.org/x/mobile/bind"
)

var (
	mu      sync.Mutex
	d       *daemon.Daemon
	version = "0.1.0"
)

// Start initialises and starts the daemon.
// configYAML may be empty to use defaults. dataDir is the path to the app's
// private files directory (e.g. Context.getFilesDir() + "/assetroom").
func Start(configYAML string, dataDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if d != nil {
		return fmt.Errorf("already running")
	}

	cfg, err := config.LoadFromBytes([]byte(configYAML))
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	// On mobile, bind to all interfaces so the dashboard is reachable from the webview
	cfg.API.Bind = "0.0.0.0"
	log.SetFlags(cfg.Log.Flags())

	nd, err := daemon.New(cfg)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	if err := nd.Start(); err != nil {
		nd.Stop()
		return fmt.Errorf("start daemon: %w", err)
	}

	d = nd
	return nil
}

// Stop gracefully shuts down the daemon.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if d != nil {
		d.Stop()
		d = nil
	}
}

// IsRunning returns true if the daemon is currently running.
func IsRunning() bool {
	mu.Lock()
	defer mu.Unlock()
	return d != nil
}

// GetStatus returns daemon status as a JSON string.
func GetStatus() string {
	mu.Lock()
	defer mu.Unlock()

	if d == nil {
		return `{"running":false}`
	}
	status := d.Status()
	status["running"] = true
	data, _ := json.Marshal(status)
	return string(data)
}

// GetDashboard returns the in-app session's dashboard as a JSON string.
func GetDashboard() string {
	mu.Lock()
	defer mu.Unlock()

	if d == nil {
		return `{}`
	}
	data, _ := json.Marshal(view.Build(d.AgentSession().Snapshot()))
	return string(data)
}

// GetAPIPort returns the port the dashboard is listening on, or 0.
func GetAPIPort() int {
	mu.Lock()
	defer mu.Unlock()
	if d == nil {
		return 0
	}
	return d.APIPort()
}

// GetVersion returns the daemon version string.
func GetVersion() string {
	return version
}
