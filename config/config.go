package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileName is the config file created in the user's home directory
const FileName = ".message-board-config.json"

// Page identifies a top-level screen
type Page int

const (
	PageBoard Page = iota
	PageSettings
	PageAccounts
)

func (p Page) String() string {
	switch p {
	case PageSettings:
		return "settings"
	case PageAccounts:
		return "accounts"
	default:
		return "board"
	}
}

// ClickableArea is a screen rectangle that reacts to mouse clicks
type ClickableArea struct {
	X, Y          int
	Width, Height int
	Action        string
}

// Contains reports whether the cell x,y falls inside the area
func (a ClickableArea) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// Config represents the application configuration
type Config struct {
	RPCURLs     []RPCUrl `json:"rpc_urls"`
	Contract    string   `json:"contract"`
	Keystore    string   `json:"keystore"`
	Explorer    string   `json:"explorer"`
	PollSeconds int      `json:"poll_seconds"`
	Logger      bool     `json:"logger"`

	// set by OverrideRPC
	overrideURL string
	savedActive string
}

// RPCUrl represents an RPC endpoint. Transient endpoints are never saved.
type RPCUrl struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Active    bool   `json:"active"`
	Transient bool   `json:"-"`
}

// ActiveRPC returns the active endpoint, falling back to the first one
func (c Config) ActiveRPC() (RPCUrl, bool) {
	for _, r := range c.RPCURLs {
		if r.Active {
			return r, true
		}
	}
	if len(c.RPCURLs) > 0 {
		return c.RPCURLs[0], true
	}
	return RPCUrl{}, false
}

// SetActive marks the endpoint at idx active and every other one inactive
func (c *Config) SetActive(idx int) bool {
	if idx < 0 || idx >= len(c.RPCURLs) {
		return false
	}
	for i := range c.RPCURLs {
		c.RPCURLs[i].Active = i == idx
	}
	return true
}

// AddRPC appends an endpoint, activating it when it is the only one
func (c *Config) AddRPC(name, url string) {
	c.RPCURLs = append(c.RPCURLs, RPCUrl{Name: name, URL: url, Active: len(c.RPCURLs) == 0})
}

// RemoveRPC deletes the endpoint at idx. If it was active the first
// remaining endpoint becomes active.
func (c *Config) RemoveRPC(idx int) bool {
	if idx < 0 || idx >= len(c.RPCURLs) {
		return false
	}
	wasActive := c.RPCURLs[idx].Active
	c.RPCURLs = append(c.RPCURLs[:idx], c.RPCURLs[idx+1:]...)
	if wasActive && len(c.RPCURLs) > 0 {
		c.RPCURLs[0].Active = true
	}
	return true
}

// OverrideRPC activates url for this run. An unknown url is added as a
// transient endpoint. While url stays active, Save keeps the previously
// active endpoint active in the file.
func (c *Config) OverrideRPC(url string) {
	prev, _ := c.ActiveRPC()
	c.savedActive = prev.URL
	c.overrideURL = url
	for i, r := range c.RPCURLs {
		if r.URL == url {
			c.SetActive(i)
			return
		}
	}
	c.RPCURLs = append([]RPCUrl{{Name: "command line", URL: url, Transient: true}}, c.RPCURLs...)
	c.SetActive(0)
}

// persisted returns the config as it should be written to disk
func (c Config) persisted() Config {
	out := c
	out.RPCURLs = make([]RPCUrl, 0, len(c.RPCURLs))
	for _, r := range c.RPCURLs {
		if !r.Transient {
			out.RPCURLs = append(out.RPCURLs, r)
		}
	}
	if active, ok := c.ActiveRPC(); ok && c.overrideURL != "" && active.URL == c.overrideURL {
		for i := range out.RPCURLs {
			out.RPCURLs[i].Active = out.RPCURLs[i].URL == c.savedActive
		}
	}
	return out
}

// PollInterval returns the log polling interval
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return 4 * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// DefaultPath returns ~/.message-board-config.json, or the bare file name
// when the home directory is unknown
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// DefaultKeystore returns the default geth keystore directory
func DefaultKeystore() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ethereum", "keystore")
}

// Load reads the config from the specified path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to the specified path, leaving out command line
// overrides
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg.persisted(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	cfg := Config{
		RPCURLs: []RPCUrl{
			{
				Name:   "Public Sepolia",
				URL:    "https://ethereum-sepolia-rpc.publicnode.com",
				Active: true,
			},
		},
		Keystore:    DefaultKeystore(),
		Explorer:    "https://sepolia.etherscan.io",
		PollSeconds: 4,
		Logger:      false,
	}
	if url := os.Getenv("ETH_RPC_URL"); url != "" {
		cfg.RPCURLs = []RPCUrl{{Name: "ETH_RPC_URL", URL: url, Active: true}}
	}
	return cfg
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}
	if err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	if len(cfg.RPCURLs) == 0 {
		if url := os.Getenv("ETH_RPC_URL"); url != "" {
			cfg.AddRPC("ETH_RPC_URL", url)
		}
	}
	return cfg
}
