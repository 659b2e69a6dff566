package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Wallet connection modes.
const (
	WalletModeSimulated = "simulated"
	WalletModeKey       = "key"
)

type APIConfig struct {
	Port int    `yaml:"port"`
	Bind string `yaml:"bind"`
}

type AssetsConfig struct {
	SourceURL    string        `yaml:"source_url"`    // empty = this daemon's /data/assets.json
	SeedFile     string        `yaml:"seed_file"`     // JSON array seeded into an empty catalog
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

type WalletConfig struct {
	Mode         string        `yaml:"mode"` // "simulated" or "key"
	Candidates   []string      `yaml:"candidates"`
	ConnectDelay time.Duration `yaml:"connect_delay"`
	Key          string        `yaml:"key"` // WIF, only read in "key" mode
}

type SessionsConfig struct {
	MaxSessions int           `yaml:"max_sessions"`
	TTL         time.Duration `yaml:"ttl"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // "info" or "debug"
	Format string `yaml:"format"` // "text" or "plain" (no timestamps, for journald)
}

// Flags maps the log settings onto standard log flags.
func (l LogConfig) Flags() int {
	flags := log.LstdFlags
	if l.Format == "plain" {
		flags = 0
	}
	if l.Level == "debug" {
		flags |= log.Lmicroseconds | log.Lshortfile
	}
	return flags
}

type Config struct {
	DataDir  string         `yaml:"data_dir"`
	API      APIConfig      `yaml:"api"`
	Assets   AssetsConfig   `yaml:"assets"`
	Wallet   WalletConfig   `yaml:"wallet"`
	Sessions SessionsConfig `yaml:"sessions"`
	MCP      MCPConfig      `yaml:"mcp"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultCandidates are the addresses the simulated wallet picks from.
var DefaultCandidates = []string{
	"0xA11CE000000000000000000000000000000C0DE",
	"0xB0B00000000000000000000000000000000000B",
	"0xC0D300000000000000000000000000000000123",
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir: filepath.Join(home, ".assetroom"),
		API: APIConfig{
			Port: 8403,
			Bind: "127.0.0.1",
		},
		Assets: AssetsConfig{
			FetchTimeout: 10 * time.Second,
		},
		Wallet: WalletConfig{
			Mode:         WalletModeSimulated,
			Candidates:   append([]string(nil), DefaultCandidates...),
			ConnectDelay: 700 * time.Millisecond,
		},
		Sessions: SessionsConfig{
			MaxSessions: 1024,
			TTL:         12 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file and merges it with defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file: defaults + env overlay
			cfg.applyEnv()
			return cfg, cfg.Validate()
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Expand ~ in data_dir
	if len(cfg.DataDir) > 0 && cfg.DataDir[0] == '~' {
		home, _ := os.UserHomeDir()
		cfg.DataDir = filepath.Join(home, cfg.DataDir[1:])
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadFromBytes parses YAML config from bytes and merges with defaults.
// Used by the mobile package where there's no config file on disk.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// applyEnv overlays environment variables on top of config values.
func (c *Config) applyEnv() {
	if v := os.Getenv("ASSETROOM_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("ASSETROOM_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.API.Port = port
		}
	}
	if v := os.Getenv("ASSETROOM_SOURCE_URL"); v != "" {
		c.Assets.SourceURL = v
	}
	if v := os.Getenv("ASSETROOM_SEED_FILE"); v != "" {
		c.Assets.SeedFile = v
	}
	if v := os.Getenv("ASSETROOM_WALLET_MODE"); v != "" {
		c.Wallet.Mode = v
	}
	if v := os.Getenv("ASSETROOM_WALLET_KEY"); v != "" {
		c.Wallet.Key = v
	}
}

// Validate rejects settings the session layer cannot run with.
func (c *Config) Validate() error {
	switch c.Wallet.Mode {
	case WalletModeSimulated:
		if len(c.Wallet.Candidates) == 0 {
			return fmt.Errorf("wallet.candidates: at least one address required")
		}
	case WalletModeKey:
		if c.Wallet.Key == "" {
			return fmt.Errorf("wallet.key: required in %q mode", WalletModeKey)
		}
	default:
		return fmt.Errorf("wallet.mode: unknown mode %q", c.Wallet.Mode)
	}
	if c.Wallet.ConnectDelay < 0 {
		return fmt.Errorf("wallet.connect_delay: must not be negative")
	}
	switch c.Log.Format {
	case "", "text", "plain":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port: %d out of range", c.API.Port)
	}
	return nil
}

// DBPath returns the full path to the SQLite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "assetroom.db")
}

// MediaDir returns the root of the hash-addressed image store.
func (c *Config) MediaDir() string {
	return filepath.Join(c.DataDir, "media")
}
