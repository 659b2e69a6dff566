package config

import (
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 8403 {
		t.Errorf("port = %d, want 8403", cfg.API.Port)
	}
	if cfg.Wallet.ConnectDelay != 700*time.Millisecond {
		t.Errorf("connect_delay = %v, want 700ms", cfg.Wallet.ConnectDelay)
	}
	if len(cfg.Wallet.Candidates) != 3 {
		t.Errorf("candidates = %d, want 3", len(cfg.Wallet.Candidates))
	}
}

func TestLoad_MergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetroom.yaml")
	yml := `
api:
  port: 9000
wallet:
  connect_delay: 50ms
  candidates: ["0xONE"]
`
	if err := os.WriteFile(path, []byte(yml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.API.Port)
	}
	if cfg.API.Bind != "127.0.0.1" {
		t.Errorf("bind = %q, default should survive merge", cfg.API.Bind)
	}
	if cfg.Wallet.ConnectDelay != 50*time.Millisecond {
		t.Errorf("connect_delay = %v", cfg.Wallet.ConnectDelay)
	}
	if len(cfg.Wallet.Candidates) != 1 || cfg.Wallet.Candidates[0] != "0xONE" {
		t.Errorf("candidates = %v", cfg.Wallet.Candidates)
	}
}

func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("ASSETROOM_API_PORT", "8500")
	t.Setenv("ASSETROOM_SOURCE_URL", "http://example.test/assets.json")

	cfg, err := LoadFromBytes(nil)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if cfg.API.Port != 8500 {
		t.Errorf("port = %d, want 8500", cfg.API.Port)
	}
	if cfg.Assets.SourceURL != "http://example.test/assets.json" {
		t.Errorf("source_url = %q", cfg.Assets.SourceURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"no candidates", func(c *Config) { c.Wallet.Candidates = nil }, true},
		{"negative delay", func(c *Config) { c.Wallet.ConnectDelay = -time.Second }, true},
		{"unknown mode", func(c *Config) { c.Wallet.Mode = "metamask" }, true},
		{"key mode without key", func(c *Config) { c.Wallet.Mode = WalletModeKey }, true},
		{"key mode with key", func(c *Config) {
			c.Wallet.Mode = WalletModeKey
			c.Wallet.Key = "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617"
		}, false},
		{"unknown log format", func(c *Config) { c.Log.Format = "json" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogFlags(t *testing.T) {
	if got := (LogConfig{Level: "info", Format: "text"}).Flags(); got != log.LstdFlags {
		t.Errorf("text/info flags = %d, want %d", got, log.LstdFlags)
	}
	if got := (LogConfig{Format: "plain"}).Flags(); got != 0 {
		t.Errorf("plain flags = %d, want 0", got)
	}
	if got := (LogConfig{Level: "debug"}).Flags(); got&log.Lshortfile == 0 {
		t.Errorf("debug flags = %d, want Lshortfile set", got)
	}
}
