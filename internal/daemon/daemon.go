package daemon

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/b0ase/path402/apps/assetroom/internal/assets"
	"github.com/b0ase/path402/apps/assetroom/internal/catalog"
	"github.com/b0ase/path402/apps/assetroom/internal/config"
	"github.com/b0ase/path402/apps/assetroom/internal/db"
	"github.com/b0ase/path402/apps/assetroom/internal/media"
	"github.com/b0ase/path402/apps/assetroom/internal/server"
	"github.com/b0ase/path402/apps/assetroom/internal/session"
	"github.com/b0ase/path402/apps/assetroom/internal/wallet"
)

// Daemon orchestrates all asset room subsystems.
type Daemon struct {
	cfg       *config.Config
	nodeID    string
	startTime time.Time
	connector wallet.Connector
	media     *media.Store
	sessions  *session.Registry
	httpSrv   *server.Server
	apiPort   int
	stopCh    chan struct{}

	urlMu     sync.RWMutex
	sourceURL string

	mu      sync.Mutex
	agentID string
}

// New creates a new daemon instance.
func New(cfg *config.Config) (*Daemon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &Daemon{cfg: cfg, stopCh: make(chan struct{})}, nil
}

// Start initializes and starts all subsystems in order.
func (d *Daemon) Start() error {
	d.startTime = time.Now()

	if err := os.MkdirAll(d.cfg.DataDir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// 1. Open database
	if err := db.Open(d.cfg.DBPath()); err != nil {
		return fmt.Errorf("db open: %w", err)
	}

	// 2. Node ID
	nodeID, err := db.GetNodeID()
	if err != nil {
		return fmt.Errorf("get node id: %w", err)
	}
	d.nodeID = nodeID
	log.Printf("[daemon] Node ID: %s", nodeID[:16])

	// 3. Media store and catalog seed
	d.media, err = media.NewStore(d.cfg.MediaDir())
	if err != nil {
		return fmt.Errorf("media store: %w", err)
	}
	if _, err := catalog.Seed(d.cfg.Assets.SeedFile, d.media); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	// 4. Wallet connector
	d.connector, err = newConnector(d.cfg.Wallet)
	if err != nil {
		return fmt.Errorf("wallet: %w", err)
	}

	// 5. Session registry. Every session loads from sourceURL, which is only
	// known once the HTTP server has bound its port.
	d.sessions = session.NewRegistry(d.cfg.Sessions.MaxSessions, d.cfg.Sessions.TTL, d.newSession)

	// 6. Start HTTP API
	d.httpSrv = server.New(d.cfg.API.Bind, d.cfg.API.Port, d, d.sessions, d.media)
	port, err := d.httpSrv.Start()
	if err != nil {
		return fmt.Errorf("http start: %w", err)
	}
	d.apiPort = port
	source := d.cfg.Assets.SourceURL
	if source == "" {
		source = fmt.Sprintf("http://%s:%d/data/assets.json", loopbackHost(d.cfg.API.Bind), port)
	}
	d.urlMu.Lock()
	d.sourceURL = source
	d.urlMu.Unlock()
	log.Printf("[daemon] Dashboard on port %d, assets from %s", port, source)

	if err := db.SetConfig(db.KeyLastStart, d.startTime.UTC().Format(time.RFC3339)); err != nil {
		log.Printf("[daemon] WARNING: Failed to record start time: %v", err)
	}

	// 7. Start periodic status logging
	go d.statusLoop()

	log.Println("[daemon] All systems online")
	return nil
}

// newConnector picks the wallet back-end named by cfg.Mode.
func newConnector(cfg config.WalletConfig) (wallet.Connector, error) {
	switch cfg.Mode {
	case config.WalletModeKey:
		kc, err := wallet.NewKeyConnector(cfg.Key)
		if err != nil {
			return nil, err
		}
		log.Printf("[wallet] Key mode, connects as %s", kc.Address())
		return kc, nil
	default:
		log.Printf("[wallet] Simulated mode, %d candidates, %v delay", len(cfg.Candidates), cfg.ConnectDelay)
		return wallet.NewSimulator(cfg.Candidates, cfg.ConnectDelay), nil
	}
}

func (d *Daemon) newSession(id string) *session.Session {
	loader := assets.NewClient(d.SourceURL(), d.cfg.Assets.FetchTimeout)
	return session.New(id, loader, d.connector)
}

// loopbackHost maps wildcard binds onto an address the daemon can dial.
func loopbackHost(bind string) string {
	switch bind {
	case "", "0.0.0.0", "::", "[::]":
		return "127.0.0.1"
	}
	return bind
}

func (d *Daemon) statusLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-d.stopCh:
			return
		case <-ticker.C:
			catalogSize, _ := db.CountCatalog()
			mediaCount, _ := db.CountMedia()
			log.Printf("[daemon] Sessions: %d | Catalog: %d | Media: %d | Uptime: %s",
				d.sessions.Len(), catalogSize, mediaCount, d.Uptime().Round(time.Second))
		}
	}
}

// Stop shuts down all subsystems.
func (d *Daemon) Stop() {
	log.Println("[daemon] Shutting down...")
	close(d.stopCh)

	if d.httpSrv != nil {
		d.httpSrv.Stop()
	}
	if d.sessions != nil {
		d.sessions.Close()
	}
	db.Close()

	log.Println("[daemon] Shutdown complete")
}

// --- Status accessors (used by HTTP API, MCP and mobile) ---

func (d *Daemon) NodeID() string        { return d.nodeID }
func (d *Daemon) Uptime() time.Duration { return time.Since(d.startTime) }
func (d *Daemon) WalletMode() string    { return d.cfg.Wallet.Mode }
func (d *Daemon) APIPort() int          { return d.apiPort }

func (d *Daemon) SourceURL() string {
	d.urlMu.RLock()
	defer d.urlMu.RUnlock()
	return d.sourceURL
}

func (d *Daemon) SessionCount() int {
	if d.sessions == nil {
		return 0
	}
	return d.sessions.Len()
}

// AgentSession returns the single session driven by MCP tools, starting a
// new one if it was never created or has expired.
func (d *Daemon) AgentSession() *session.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, created := d.sessions.GetOrCreate(d.agentID)
	if created {
		d.agentID = s.ID()
		log.Printf("[daemon] Agent session started")
	}
	return s
}

// Status is a JSON-friendly summary for the mobile bindings.
func (d *Daemon) Status() map[string]interface{} {
	catalogSize, _ := db.CountCatalog()
	source, _ := db.GetConfigDefault(db.KeyCatalogSource, "")
	nodeID := d.nodeID
	if len(nodeID) > 16 {
		nodeID = nodeID[:16]
	}
	return map[string]interface{}{
		"node_id":        nodeID,
		"uptime_ms":      d.Uptime().Milliseconds(),
		"api_port":       d.apiPort,
		"wallet_mode":    d.cfg.Wallet.Mode,
		"sessions":       d.SessionCount(),
		"catalog_size":   catalogSize,
		"catalog_source": source,
		"asset_source":   d.SourceURL(),
	}
}
