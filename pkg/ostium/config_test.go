package ostium

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("networks: {}\n"))
	require.NoError(t, err)

	testnet, ok := cfg.Network(NetworkTestnet)
	require.True(t, ok)
	require.NotEmpty(t, testnet.RPCURL)
	require.NotEmpty(t, testnet.SubgraphURL)
	require.NotEmpty(t, testnet.PriceFeedURL)
	require.NotEmpty(t, testnet.RelayURL)

	mainnet, ok := cfg.Network(NetworkMainnet)
	require.True(t, ok)
	require.NotEqual(t, testnet.SubgraphURL, mainnet.SubgraphURL)
}

func TestLoadConfigExpandsEnvAndDurations(t *testing.T) {
	t.Setenv("TEST_OSTIUM_RPC", "https://rpc.example.test")

	const raw = `
networks:
  testnet:
    rpc_url: ${TEST_OSTIUM_RPC}
    timeout: 12s
`
	cfg, err := LoadConfigFromReader(strings.NewReader(raw))
	require.NoError(t, err)

	testnet, _ := cfg.Network(NetworkTestnet)
	require.Equal(t, "https://rpc.example.test", testnet.RPCURL)
	require.Equal(t, 12*time.Second, testnet.Timeout)
}

func TestLoadConfigRejectsUnknownNetwork(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("networks:\n  devnet: {}\n"))
	require.Error(t, err)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("networks:\n  testnet:\n    timeout: soon\n"))
	require.Error(t, err)
}
