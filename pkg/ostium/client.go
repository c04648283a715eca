package ostium

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const (
	defaultHTTPTimeout  = 30 * time.Second
	defaultRetryBackoff = 200 * time.Millisecond
	maxReadAttempts     = 3

	delegateHeader = "x-delegate-address"
)

// Client is the HTTP implementation of SDK against one network deployment.
// Reads (subgraph, feed) retry with exponential backoff; relay mutations are
// submitted exactly once.
type Client struct {
	network     string
	subgraphURL string
	feedURL     string
	relayURL    string
	rpcURL      string

	httpClient      *http.Client
	clock           func() time.Time
	delegateAddress string
}

// ClientOption customises the Ostium client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithClock overrides the time source (primarily for testing).
func WithClock(clock func() time.Time) ClientOption {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewClient constructs a client for the given network. delegateKeyHex may be
// empty for a read-only client; when present only the derived public address
// travels to the relay, the key itself never leaves the process.
func NewClient(network string, nc *NetworkConfig, delegateKeyHex string, opts ...ClientOption) (*Client, error) {
	if !ValidNetwork(network) {
		return nil, fmt.Errorf("ostium: unsupported network %q", network)
	}
	if nc == nil {
		return nil, fmt.Errorf("ostium: nil network config for %s", network)
	}

	timeout := nc.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &Client{
		network:     network,
		subgraphURL: nc.SubgraphURL,
		feedURL:     nc.PriceFeedURL,
		relayURL:    nc.RelayURL,
		rpcURL:      nc.RPCURL,
		httpClient:  &http.Client{Timeout: timeout},
		clock:       time.Now,
	}

	if delegateKeyHex != "" {
		addr, err := deriveAddress(delegateKeyHex)
		if err != nil {
			return nil, fmt.Errorf("ostium: derive delegate address: %w", err)
		}
		client.delegateAddress = addr
	}

	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func deriveAddress(privateKeyHex string) (string, error) {
	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if keyHex == "" {
		return "", fmt.Errorf("empty private key")
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// DelegateAddress implements SDK.
func (c *Client) DelegateAddress() string {
	return c.delegateAddress
}

// --- transport -------------------------------------------------------------

// doRead performs a GET with retry/backoff. The request is rebuilt per
// attempt so the body reader is always fresh.
func (c *Client) doRead(ctx context.Context, rawURL string, out any) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = defaultRetryBackoff

	var lastErr error
	for attempt := 0; attempt < maxReadAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("ostium: build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		if err := c.exchange(req, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			return nil
		}

		if attempt+1 < maxReadAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(bo.NextBackOff()):
			}
		}
	}
	return lastErr
}

// doSubgraph posts a GraphQL query with retry/backoff and decodes the data
// envelope into out.
func (c *Client) doSubgraph(ctx context.Context, query string, vars map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		return fmt.Errorf("ostium: encode subgraph query: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = defaultRetryBackoff

	var lastErr error
	for attempt := 0; attempt < maxReadAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.subgraphURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("ostium: build subgraph request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		var envelope struct {
			Data   json.RawMessage `json:"data"`
			Errors []struct {
				Message string `json:"message"`
			} `json:"errors"`
		}
		if err := c.exchange(req, &envelope); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else if len(envelope.Errors) > 0 {
			lastErr = fmt.Errorf("ostium: subgraph error: %s", envelope.Errors[0].Message)
		} else if out != nil && len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				return fmt.Errorf("ostium: decode subgraph response: %w", err)
			}
			return nil
		} else {
			return nil
		}

		if attempt+1 < maxReadAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(bo.NextBackOff()):
			}
		}
	}
	return lastErr
}

// doRelay submits a mutation to the delegated-execution relay. No retry:
// once a submission leaves the process it may reach the chain regardless of
// what the response says.
func (c *Client) doRelay(ctx context.Context, path string, body map[string]any, out any) error {
	if c.delegateAddress != "" {
		// Copy to avoid mutating the caller's map.
		withAddr := make(map[string]any, len(body)+1)
		for k, v := range body {
			withAddr[k] = v
		}
		withAddr["delegateAddress"] = c.delegateAddress
		body = withAddr
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("ostium: encode relay request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ostium: build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.delegateAddress != "" {
		req.Header.Set(delegateHeader, c.delegateAddress)
	}
	return c.exchange(req, out)
}

func (c *Client) exchange(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("ostium: read response: %w", readErr)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= 300 {
		return fmt.Errorf("ostium: %s http status %d: %s", c.network, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("ostium: decode response: %w", err)
		}
	}
	return nil
}

// --- catalog ---------------------------------------------------------------

const pairFieldsQuery = `
query Pairs {
  pairs(orderBy: id) {
    id
    from
    to
    maxLeverage
    isPaused
  }
}`

// FormattedPairs implements SDK using the feed's bulk pair details endpoint.
func (c *Client) FormattedPairs(ctx context.Context) ([]map[string]any, error) {
	var pairs []map[string]any
	if err := c.doRead(ctx, c.feedURL+"/pairs/details", &pairs); err != nil {
		return nil, err
	}
	if pairs == nil {
		return nil, fmt.Errorf("ostium: pair details response was empty")
	}
	return pairs, nil
}

// SubgraphPairs implements SDK as the fallback catalog source.
func (c *Client) SubgraphPairs(ctx context.Context) ([]map[string]any, error) {
	var data struct {
		Pairs []map[string]any `json:"pairs"`
	}
	if err := c.doSubgraph(ctx, pairFieldsQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Pairs, nil
}

// PairDetails implements SDK.
func (c *Client) PairDetails(ctx context.Context, pairID int) (map[string]any, error) {
	const query = `
query Pair($id: ID!) {
  pair(id: $id) {
    id
    from
    to
    maxLeverage
    isPaused
    longOI
    shortOI
    maxOI
    makerFeeP
    takerFeeP
    lastFundingRate
    curRollover
  }
}`
	var data struct {
		Pair map[string]any `json:"pair"`
	}
	err := c.doSubgraph(ctx, query, map[string]any{"id": strconv.Itoa(pairID)}, &data)
	if err != nil {
		return nil, err
	}
	if data.Pair == nil {
		return nil, fmt.Errorf("ostium: pair %d not found", pairID)
	}
	return data.Pair, nil
}

// PairMaxLeverage implements SDK.
func (c *Client) PairMaxLeverage(ctx context.Context, pairID int) (float64, error) {
	details, err := c.PairDetails(ctx, pairID)
	if err != nil {
		return 0, err
	}
	max, ok := numericField(details, "maxLeverage")
	if !ok || max <= 0 {
		return 0, fmt.Errorf("ostium: pair %d has no max leverage", pairID)
	}
	return max, nil
}

// --- price feed ------------------------------------------------------------

// GetPrice implements SDK against the latest-price feed endpoint.
func (c *Client) GetPrice(ctx context.Context, base, quote string) (*PriceQuote, error) {
	raw, err := c.LatestPriceDetail(ctx, base, quote)
	if err != nil {
		return nil, err
	}
	quoteOut := &PriceQuote{}
	if price, ok := numericField(raw, "mid", "price"); ok {
		quoteOut.Price = &price
	}
	if open, ok := raw["isMarketOpen"].(bool); ok {
		quoteOut.MarketOpen = &open
	}
	if closed, ok := raw["isDayTradingClosed"].(bool); ok {
		quoteOut.DayTradingClosed = &closed
	}
	return quoteOut, nil
}

// LatestPriceDetail implements SDK, returning the raw feed payload.
func (c *Client) LatestPriceDetail(ctx context.Context, base, quote string) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/PricePublish/latest-price?from=%s&to=%s",
		c.feedURL, url.QueryEscape(strings.ToUpper(base)), url.QueryEscape(strings.ToUpper(quote)))
	var raw map[string]any
	if err := c.doRead(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("ostium: empty price payload for %s/%s", base, quote)
	}
	return raw, nil
}

// --- rates -----------------------------------------------------------------

// FundingRate implements SDK.
func (c *Client) FundingRate(ctx context.Context, pairID, periodHours int) (*FundingInfo, error) {
	endpoint := fmt.Sprintf("%s/funding-rate?pairId=%d&periodHours=%d", c.feedURL, pairID, periodHours)
	var raw struct {
		AccFundingLong    string  `json:"accFundingLong"`
		AccFundingShort   string  `json:"accFundingShort"`
		RatePercent       float64 `json:"fundingRatePercent"`
		TargetRatePercent float64 `json:"targetFundingRatePercent"`
	}
	if err := c.doRead(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	return &FundingInfo{
		AccFundingLong:    raw.AccFundingLong,
		AccFundingShort:   raw.AccFundingShort,
		RatePercent:       raw.RatePercent,
		TargetRatePercent: raw.TargetRatePercent,
	}, nil
}

// RolloverRate implements SDK.
func (c *Client) RolloverRate(ctx context.Context, pairID, periodHours int) (string, error) {
	endpoint := fmt.Sprintf("%s/rollover-rate?pairId=%d&periodHours=%d", c.feedURL, pairID, periodHours)
	var raw struct {
		RolloverRate string `json:"rolloverRate"`
	}
	if err := c.doRead(ctx, endpoint, &raw); err != nil {
		return "", err
	}
	return raw.RolloverRate, nil
}

// --- account reads ---------------------------------------------------------

// USDCBalance implements SDK. Balances come back as decimal strings and are
// parsed without precision loss.
func (c *Client) USDCBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	return c.balance(ctx, "usdc", address)
}

// NativeBalance implements SDK.
func (c *Client) NativeBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	return c.balance(ctx, "native", address)
}

func (c *Client) balance(ctx context.Context, asset, address string) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/v1/balance/%s?address=%s", c.relayURL, asset, url.QueryEscape(address))
	var raw struct {
		Balance string `json:"balance"`
	}
	if err := c.doRead(ctx, endpoint, &raw); err != nil {
		return decimal.Decimal{}, err
	}
	amount, err := decimal.NewFromString(raw.Balance)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("ostium: parse %s balance %q: %w", asset, raw.Balance, err)
	}
	return amount, nil
}

// OpenTrades implements SDK.
func (c *Client) OpenTrades(ctx context.Context, trader string) ([]map[string]any, error) {
	const query = `
query OpenTrades($trader: String!) {
  trades(where: {trader: $trader, isOpen: true}) {
    id
    index
    pair { id from to }
    collateral
    leverage
    isBuy
    openPrice
    stopLossPrice
    takeProfitPrice
    timestamp
  }
}`
	var data struct {
		Trades []map[string]any `json:"trades"`
	}
	if err := c.doSubgraph(ctx, query, map[string]any{"trader": strings.ToLower(trader)}, &data); err != nil {
		return nil, err
	}
	return data.Trades, nil
}

// Orders implements SDK.
func (c *Client) Orders(ctx context.Context, trader string) ([]map[string]any, error) {
	const query = `
query Orders($trader: String!) {
  orders(where: {trader: $trader, isPending: true}) {
    id
    index
    pair { id from to }
    orderType
    collateral
    leverage
    isBuy
    limitPrice
    stopLossPrice
    takeProfitPrice
  }
}`
	var data struct {
		Orders []map[string]any `json:"orders"`
	}
	if err := c.doSubgraph(ctx, query, map[string]any{"trader": strings.ToLower(trader)}, &data); err != nil {
		return nil, err
	}
	return data.Orders, nil
}

// RecentHistory implements SDK.
func (c *Client) RecentHistory(ctx context.Context, trader string, limit int) ([]map[string]any, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
query History($trader: String!, $limit: Int!) {
  orders(where: {trader: $trader}, orderBy: timestamp, orderDirection: desc, first: $limit) {
    id
    index
    pair { id from to }
    orderType
    orderAction
    price
    collateral
    leverage
    isBuy
    timestamp
  }
}`
	var data struct {
		Orders []map[string]any `json:"orders"`
	}
	vars := map[string]any{"trader": strings.ToLower(trader), "limit": limit}
	if err := c.doSubgraph(ctx, query, vars, &data); err != nil {
		return nil, err
	}
	return data.Orders, nil
}

// OpenTradeMetrics implements SDK.
func (c *Client) OpenTradeMetrics(ctx context.Context, pairID, tradeIndex int, trader string) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/v1/trade/metrics?pairId=%d&tradeIndex=%d&trader=%s",
		c.relayURL, pairID, tradeIndex, url.QueryEscape(trader))
	var raw map[string]any
	if err := c.doRead(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// --- mutations -------------------------------------------------------------

// PerformTrade implements SDK.
func (c *Client) PerformTrade(ctx context.Context, params TradeParams, atPrice float64) (map[string]any, error) {
	body := map[string]any{
		"assetType":  params.PairID,
		"collateral": params.Collateral,
		"direction":  params.Long,
		"leverage":   params.Leverage,
		"orderType":  params.OrderType,
		"atPrice":    atPrice,
		"slippage":   params.Slippage,
	}
	if params.StopLoss != nil {
		body["sl"] = *params.StopLoss
	}
	if params.TakeProfit != nil {
		body["tp"] = *params.TakeProfit
	}
	if params.TraderAddress != "" {
		body["traderAddress"] = params.TraderAddress
	}
	var result map[string]any
	if err := c.doRelay(ctx, "/v1/trade", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CloseTrade implements SDK.
func (c *Client) CloseTrade(ctx context.Context, params CloseParams) (map[string]any, error) {
	body := map[string]any{
		"pairId":          params.PairID,
		"tradeIndex":      params.TradeIndex,
		"marketPrice":     params.MarketPrice,
		"closePercentage": params.ClosePercentage,
		"slippage":        params.Slippage,
	}
	if params.TraderAddress != "" {
		body["traderAddress"] = params.TraderAddress
	}
	var result map[string]any
	if err := c.doRelay(ctx, "/v1/trade/close", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateSL implements SDK.
func (c *Client) UpdateSL(ctx context.Context, pairID, tradeIndex int, slPrice float64, trader string) (map[string]any, error) {
	body := map[string]any{"pairId": pairID, "tradeIndex": tradeIndex, "slPrice": slPrice}
	if trader != "" {
		body["traderAddress"] = trader
	}
	var result map[string]any
	if err := c.doRelay(ctx, "/v1/trade/update-sl", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateTP implements SDK.
func (c *Client) UpdateTP(ctx context.Context, pairID, tradeIndex int, tpPrice float64, trader string) (map[string]any, error) {
	body := map[string]any{"pairId": pairID, "tradeIndex": tradeIndex, "tpPrice": tpPrice}
	if trader != "" {
		body["traderAddress"] = trader
	}
	var result map[string]any
	if err := c.doRelay(ctx, "/v1/trade/update-tp", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CancelLimitOrder implements SDK.
func (c *Client) CancelLimitOrder(ctx context.Context, pairID, tradeIndex int, trader string) (map[string]any, error) {
	body := map[string]any{"pairId": pairID, "tradeIndex": tradeIndex}
	if trader != "" {
		body["traderAddress"] = trader
	}
	var result map[string]any
	if err := c.doRelay(ctx, "/v1/order/cancel", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateLimitOrder implements SDK.
func (c *Client) UpdateLimitOrder(ctx context.Context, update LimitOrderUpdate) (map[string]any, error) {
	body := map[string]any{"pairId": update.PairID, "tradeIndex": update.TradeIndex}
	if update.Price != nil {
		body["price"] = update.Price.String()
	}
	if update.TakeProfit != nil {
		body["tp"] = update.TakeProfit.String()
	}
	if update.StopLoss != nil {
		body["sl"] = update.StopLoss.String()
	}
	var result map[string]any
	if err := c.doRelay(ctx, "/v1/order/update", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// TrackOrder implements SDK via the subgraph order entity.
func (c *Client) TrackOrder(ctx context.Context, orderID string) (map[string]any, error) {
	const query = `
query Order($id: ID!) {
  order(id: $id) {
    id
    index
    pair { id from to }
    orderType
    orderAction
    price
    isPending
    isCancelled
    cancelReason
    trade { id isOpen openPrice }
  }
}`
	var data struct {
		Order map[string]any `json:"order"`
	}
	if err := c.doSubgraph(ctx, query, map[string]any{"id": orderID}, &data); err != nil {
		return nil, err
	}
	if data.Order == nil {
		return nil, fmt.Errorf("ostium: order %s not found", orderID)
	}
	return data.Order, nil
}

// RequestFaucet implements SDK. Testnet relay only.
func (c *Client) RequestFaucet(ctx context.Context, target string) (map[string]any, error) {
	body := map[string]any{"address": target}
	var result map[string]any
	if err := c.doRelay(ctx, "/v1/faucet", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// numericField extracts the first present numeric field among names,
// tolerating JSON numbers and decimal strings.
func numericField(m map[string]any, names ...string) (float64, bool) {
	for _, name := range names {
		v, ok := m[name]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

var _ SDK = (*Client)(nil)
