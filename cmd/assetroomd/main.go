package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/b0ase/path402/apps/assetroom/internal/config"
	"github.com/b0ase/path402/apps/assetroom/internal/daemon"
	"github.com/b0ase/path402/apps/assetroom/internal/mcpserver"
)

var Version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "path to assetroom.yaml")
	mcpMode := flag.Bool("mcp", false, "serve MCP tools on stdio (logs go to stderr)")
	flag.Parse()

	orange := "\033[38;5;208m"
	reset := "\033[0m"
	dim := "\033[2m"

	// The banner goes to stderr so stdout stays clean for MCP.
	fmt.Fprintf(os.Stderr, orange+`
    _                 _   ____
   / \   ___ ___  ___| |_|  _ \ ___   ___  _ __ ___
  / _ \ / __/ __|/ _ \ __| |_) / _ \ / _ \| '_ `+"`"+` _ \
 / ___ \\__ \__ \  __/ |_|  _ < (_) | (_) | | | | | |
/_/   \_\___/___/\___|\__|_| \_\___/ \___/|_| |_| |_|
`+reset+`
  `+dim+`Game Asset Control Room  v%s`+reset+`
  `+orange+`━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━`+reset+`
`, Version)

	if *cfgPath == "" {
		home, _ := os.UserHomeDir()
		*cfgPath = filepath.Join(home, ".assetroom", "assetroom.yaml")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[main] Failed to load config: %v", err)
	}
	log.SetFlags(cfg.Log.Flags())
	log.Printf("[main] Data dir: %s", cfg.DataDir)

	d, err := daemon.New(cfg)
	if err != nil {
		log.Fatalf("[main] Failed to create daemon: %v", err)
	}
	if err := d.Start(); err != nil {
		log.Fatalf("[main] Failed to start daemon: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *mcpMode || cfg.MCP.Enabled {
		log.Println("[mcp] Serving tools on stdio")
		if err := mcpserver.New(Version, d).Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[mcp] Server exited: %v", err)
		}
	} else {
		<-ctx.Done()
		log.Println("[main] Received signal, shutting down...")
	}

	d.Stop()
	log.Println("[main] Goodbye.")
}
