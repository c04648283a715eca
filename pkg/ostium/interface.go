package ostium

import (
	"context"

	"github.com/shopspring/decimal"
)

// SDK exposes the remote Ostium surface the facade depends on: the pair
// catalog, the price feed, the subgraph, and the delegated trading relay.
// Catalog and trade payloads stay as raw mappings; the upstream schema is not
// ours to pin down and responses pass through the JSON-safe encoder anyway.
//
// Every method is a potential suspension point and honours ctx cancellation
// for the local HTTP exchange. A trade submission already handed to the relay
// is fire-and-forget: callers must not resubmit on timeout, the idempotency
// key is the safety net.
type SDK interface {
	// Pair catalog. FormattedPairs is the primary bulk-formatted source,
	// SubgraphPairs the fallback catalog query.
	FormattedPairs(ctx context.Context) ([]map[string]any, error)
	SubgraphPairs(ctx context.Context) ([]map[string]any, error)
	PairDetails(ctx context.Context, pairID int) (map[string]any, error)
	PairMaxLeverage(ctx context.Context, pairID int) (float64, error)

	// Price feed.
	GetPrice(ctx context.Context, base, quote string) (*PriceQuote, error)
	LatestPriceDetail(ctx context.Context, base, quote string) (map[string]any, error)

	// Rates.
	FundingRate(ctx context.Context, pairID, periodHours int) (*FundingInfo, error)
	RolloverRate(ctx context.Context, pairID, periodHours int) (string, error)

	// Account reads.
	USDCBalance(ctx context.Context, address string) (decimal.Decimal, error)
	NativeBalance(ctx context.Context, address string) (decimal.Decimal, error)
	OpenTrades(ctx context.Context, trader string) ([]map[string]any, error)
	Orders(ctx context.Context, trader string) ([]map[string]any, error)
	RecentHistory(ctx context.Context, trader string, limit int) ([]map[string]any, error)
	OpenTradeMetrics(ctx context.Context, pairID, tradeIndex int, trader string) (map[string]any, error)

	// Mutations via the delegated relay. Submitted exactly once, never
	// retried internally.
	PerformTrade(ctx context.Context, params TradeParams, atPrice float64) (map[string]any, error)
	CloseTrade(ctx context.Context, params CloseParams) (map[string]any, error)
	UpdateSL(ctx context.Context, pairID, tradeIndex int, slPrice float64, trader string) (map[string]any, error)
	UpdateTP(ctx context.Context, pairID, tradeIndex int, tpPrice float64, trader string) (map[string]any, error)
	CancelLimitOrder(ctx context.Context, pairID, tradeIndex int, trader string) (map[string]any, error)
	UpdateLimitOrder(ctx context.Context, update LimitOrderUpdate) (map[string]any, error)
	TrackOrder(ctx context.Context, orderID string) (map[string]any, error)
	RequestFaucet(ctx context.Context, target string) (map[string]any, error)

	// DelegateAddress is the public address derived from the delegate key,
	// or empty when the SDK was built without one.
	DelegateAddress() string
}
