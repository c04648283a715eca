package ostium

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default endpoints per network deployment.
const (
	testnetRPCURL      = "https://sepolia-rollup.arbitrum.io/rpc"
	mainnetRPCURL      = "https://arb1.arbitrum.io/rpc"
	testnetSubgraphURL = "https://subgraph.ostium.io/ostium-testnet"
	mainnetSubgraphURL = "https://subgraph.ostium.io/ostium-mainnet"
	testnetFeedURL     = "https://metadata-backend-testnet.ostium.io"
	mainnetFeedURL     = "https://metadata-backend.ostium.io"
	testnetRelayURL    = "https://relay-testnet.ostium.io"
	mainnetRelayURL    = "https://relay.ostium.io"
)

// Config captures per-network connection settings, loaded from a yaml file
// referenced by the main service config.
type Config struct {
	Networks map[string]*NetworkConfig `yaml:"networks"`
}

// NetworkConfig describes one chain deployment. Empty endpoint fields fall
// back to the published defaults for that network.
type NetworkConfig struct {
	RPCURL       string `yaml:"rpc_url"`
	SubgraphURL  string `yaml:"subgraph_url"`
	PriceFeedURL string `yaml:"price_feed_url"`
	RelayURL     string `yaml:"relay_url"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`
}

// LoadConfig reads network configuration from disk.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ostium config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ostium config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal ostium config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the published endpoints for both networks.
func DefaultConfig() *Config {
	cfg := &Config{Networks: map[string]*NetworkConfig{
		NetworkTestnet: {},
		NetworkMainnet: {},
	}}
	_ = cfg.normalise()
	return cfg
}

// Network returns the configuration for the named network.
func (c *Config) Network(name string) (*NetworkConfig, bool) {
	nc, ok := c.Networks[name]
	return nc, ok
}

func (c *Config) normalise() error {
	if c.Networks == nil {
		c.Networks = make(map[string]*NetworkConfig)
	}
	for _, name := range []string{NetworkTestnet, NetworkMainnet} {
		if c.Networks[name] == nil {
			c.Networks[name] = &NetworkConfig{}
		}
	}
	for name, nc := range c.Networks {
		nc.expandEnv()
		nc.applyDefaults(name)
		if err := nc.parseDurations(name); err != nil {
			return err
		}
	}
	return nil
}

func (n *NetworkConfig) expandEnv() {
	n.RPCURL = strings.TrimSpace(os.ExpandEnv(n.RPCURL))
	n.SubgraphURL = strings.TrimSpace(os.ExpandEnv(n.SubgraphURL))
	n.PriceFeedURL = strings.TrimSpace(os.ExpandEnv(n.PriceFeedURL))
	n.RelayURL = strings.TrimSpace(os.ExpandEnv(n.RelayURL))
	n.TimeoutRaw = strings.TrimSpace(os.ExpandEnv(n.TimeoutRaw))
}

func (n *NetworkConfig) applyDefaults(name string) {
	testnet := name == NetworkTestnet
	if n.RPCURL == "" {
		n.RPCURL = pick(testnet, testnetRPCURL, mainnetRPCURL)
	}
	if n.SubgraphURL == "" {
		n.SubgraphURL = pick(testnet, testnetSubgraphURL, mainnetSubgraphURL)
	}
	if n.PriceFeedURL == "" {
		n.PriceFeedURL = pick(testnet, testnetFeedURL, mainnetFeedURL)
	}
	if n.RelayURL == "" {
		n.RelayURL = pick(testnet, testnetRelayURL, mainnetRelayURL)
	}
}

func (n *NetworkConfig) parseDurations(name string) error {
	if n.TimeoutRaw == "" {
		n.Timeout = 0
		return nil
	}
	d, err := time.ParseDuration(n.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("ostium network %s: invalid timeout %q: %w", name, n.TimeoutRaw, err)
	}
	if d <= 0 {
		return fmt.Errorf("ostium network %s: timeout must be positive, got %s", name, d)
	}
	n.Timeout = d
	return nil
}

// Validate ensures only supported networks are configured.
func (c *Config) Validate() error {
	for name := range c.Networks {
		if !ValidNetwork(name) {
			return fmt.Errorf("ostium config: unsupported network %q", name)
		}
	}
	return nil
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
