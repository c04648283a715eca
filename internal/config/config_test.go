package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ostium-api/pkg/ostium"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalYAML = `
Name: ostium-api
Host: 0.0.0.0
Port: 8888
Auth:
  Secret: test-secret
`

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ostium.yaml", minimalYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "test-secret", cfg.Auth.Secret)
	require.Equal(t, int64(300000), cfg.Auth.ToleranceMs)
	require.True(t, cfg.Ostium.Enabled)
	require.Equal(t, 10, cfg.Postgres.MaxOpen)

	// No networks file referenced: published defaults apply.
	networks := cfg.NetworksConfig()
	testnet, ok := networks.Network(ostium.NetworkTestnet)
	require.True(t, ok)
	require.NotEmpty(t, testnet.SubgraphURL)
}

func TestLoadHydratesNetworksSection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "networks.yaml", `
networks:
  testnet:
    subgraph_url: https://subgraph.example.test
`)
	path := writeFile(t, dir, "ostium.yaml", minimalYAML+`
Ostium:
  Networks:
    File: networks.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	testnet, ok := cfg.NetworksConfig().Network(ostium.NetworkTestnet)
	require.True(t, ok)
	require.Equal(t, "https://subgraph.example.test", testnet.SubgraphURL)
}

func TestLoadRejectsBadTolerance(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ostium.yaml", minimalYAML+`
  ToleranceMs: -5
`)

	_, err := Load(path)
	require.ErrorContains(t, err, "toleranceMs")
}

func TestLoadRejectsMalformedDelegateKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ostium.yaml", minimalYAML+`
Ostium:
  DelegatePrivateKey: "0xdeadbeef"
`)

	_, err := Load(path)
	require.ErrorContains(t, err, "delegatePrivateKey")
}
