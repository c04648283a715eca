package ostium

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// Private key 0x...01 has the well-known address below.
const (
	testDelegateKey  = "0x0000000000000000000000000000000000000000000000000000000000000001"
	testDelegateAddr = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
)

func testConfig(t *testing.T, subgraph, feed, relay string) *NetworkConfig {
	t.Helper()
	return &NetworkConfig{
		RPCURL:       "http://127.0.0.1:8545",
		SubgraphURL:  subgraph,
		PriceFeedURL: feed,
		RelayURL:     relay,
		Timeout:      5 * time.Second,
	}
}

func TestNewClientDerivesDelegateAddress(t *testing.T) {
	client, err := NewClient(NetworkTestnet, testConfig(t, "http://s", "http://f", "http://r"), testDelegateKey)
	require.NoError(t, err)
	require.Equal(t, testDelegateAddr, client.DelegateAddress())
}

func TestNewClientRejectsBadInput(t *testing.T) {
	nc := testConfig(t, "http://s", "http://f", "http://r")

	_, err := NewClient("devnet", nc, "")
	require.Error(t, err)

	_, err = NewClient(NetworkTestnet, nil, "")
	require.Error(t, err)

	_, err = NewClient(NetworkTestnet, nc, "not-hex")
	require.Error(t, err)
}

func TestReadRetriesUntilSuccess(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{{"pairId": 0, "from": "BTC", "to": "USD"}})
	}))
	defer srv.Close()

	client, err := NewClient(NetworkTestnet, testConfig(t, "http://unused", srv.URL, "http://unused"), "")
	require.NoError(t, err)

	pairs, err := client.FormattedPairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	require.Equal(t, 3, requests)
}

func TestReadGivesUpAfterMaxAttempts(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(NetworkTestnet, testConfig(t, "http://unused", srv.URL, "http://unused"), "")
	require.NoError(t, err)

	_, err = client.FormattedPairs(context.Background())
	require.Error(t, err)
	require.Equal(t, maxReadAttempts, requests)
}

func TestMutationSubmittedExactlyOnce(t *testing.T) {
	var requests int
	var gotBody map[string]any
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotHeader = r.Header.Get(delegateHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(NetworkTestnet, testConfig(t, "http://unused", "http://unused", srv.URL), testDelegateKey)
	require.NoError(t, err)

	_, err = client.PerformTrade(context.Background(), TradeParams{
		PairID: 0, Collateral: 100, Long: true, Leverage: 10, OrderType: OrderTypeMarket, Slippage: 2,
	}, 65000)
	require.Error(t, err)
	require.Equal(t, 1, requests, "relay submissions must never retry")
	require.Equal(t, testDelegateAddr, gotHeader)
	require.Equal(t, testDelegateAddr, gotBody["delegateAddress"])
	require.Equal(t, float64(65000), gotBody["atPrice"])
}

func TestGetPriceParsesFeedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "BTC", r.URL.Query().Get("from"))
		require.Equal(t, "USD", r.URL.Query().Get("to"))
		json.NewEncoder(w).Encode(map[string]any{
			"mid": 64321.5, "isMarketOpen": true, "isDayTradingClosed": false,
		})
	}))
	defer srv.Close()

	client, err := NewClient(NetworkTestnet, testConfig(t, "http://unused", srv.URL, "http://unused"), "")
	require.NoError(t, err)

	quote, err := client.GetPrice(context.Background(), "btc", "usd")
	require.NoError(t, err)
	require.NotNil(t, quote.Price)
	require.Equal(t, 64321.5, *quote.Price)
	require.NotNil(t, quote.MarketOpen)
	require.True(t, *quote.MarketOpen)
	require.NotNil(t, quote.DayTradingClosed)
	require.False(t, *quote.DayTradingClosed)
}

func TestSubgraphErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "rate limited"}},
		})
	}))
	defer srv.Close()

	client, err := NewClient(NetworkTestnet, testConfig(t, srv.URL, "http://unused", "http://unused"), "")
	require.NoError(t, err)

	_, err = client.SubgraphPairs(context.Background())
	require.ErrorContains(t, err, "rate limited")
}

func TestSubgraphQueryDecodesData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Contains(t, req.Query, "trades")
		require.Equal(t, "0xabc", req.Variables["trader"])
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"trades": []map[string]any{{"id": "t1", "index": 0}}},
		})
	}))
	defer srv.Close()

	client, err := NewClient(NetworkTestnet, testConfig(t, srv.URL, "http://unused", "http://unused"), "")
	require.NoError(t, err)

	trades, err := client.OpenTrades(context.Background(), "0xABC")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.Equal(t, "t1", trades[0]["id"])
}

func TestNumericField(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want float64
		ok   bool
	}{
		{name: "float", in: map[string]any{"mid": 1.5}, want: 1.5, ok: true},
		{name: "string", in: map[string]any{"mid": "2.25"}, want: 2.25, ok: true},
		{name: "second choice", in: map[string]any{"price": 3.0}, want: 3, ok: true},
		{name: "missing", in: map[string]any{}, ok: false},
		{name: "nil value", in: map[string]any{"mid": nil}, ok: false},
		{name: "garbage string", in: map[string]any{"mid": "n/a"}, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numericField(tt.in, "mid", "price")
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
