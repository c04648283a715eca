package ostium

import "github.com/shopspring/decimal"

// Networks supported by the facade.
const (
	NetworkTestnet = "testnet"
	NetworkMainnet = "mainnet"
)

// ValidNetwork reports whether network names a supported chain deployment.
func ValidNetwork(network string) bool {
	return network == NetworkTestnet || network == NetworkMainnet
}

// Order types accepted on position open.
const (
	OrderTypeMarket = "MARKET"
	OrderTypeLimit  = "LIMIT"
	OrderTypeStop   = "STOP"
)

// PriceQuote is the price feed answer for a base/quote pair. Price is nil
// when the feed answered without a usable price.
type PriceQuote struct {
	Price            *float64
	MarketOpen       *bool
	DayTradingClosed *bool
}

// FundingInfo is the funding-rate answer for one pair.
type FundingInfo struct {
	AccFundingLong    string
	AccFundingShort   string
	RatePercent       float64
	TargetRatePercent float64
}

// TradeParams describes a position-open submission to the trading engine.
type TradeParams struct {
	PairID        int
	Collateral    float64
	Long          bool
	Leverage      float64
	OrderType     string
	StopLoss      *float64
	TakeProfit    *float64
	Slippage      float64
	TraderAddress string
}

// CloseParams describes a position close.
type CloseParams struct {
	PairID          int
	TradeIndex      int
	MarketPrice     float64
	ClosePercentage float64
	Slippage        float64
	TraderAddress   string
}

// LimitOrderUpdate carries the optional fields of a resting order update.
// Prices are decimals so precision survives to the wire.
type LimitOrderUpdate struct {
	PairID     int
	TradeIndex int
	Price      *decimal.Decimal
	TakeProfit *decimal.Decimal
	StopLoss   *decimal.Decimal
}

// OpenPositionRequest is the orchestrator input for position open.
type OpenPositionRequest struct {
	Network        string
	Market         string
	Side           string
	Collateral     float64
	Leverage       float64
	OrderType      string
	TriggerPrice   *float64
	Slippage       float64
	StopLoss       *float64
	TakeProfit     *float64
	TraderAddress  string
	IdempotencyKey string
}

// ClosePositionRequest is the orchestrator input for position close.
type ClosePositionRequest struct {
	Network         string
	PairID          int
	TradeIndex      int
	ClosePercentage float64
	Slippage        float64
	TraderAddress   string
	IdempotencyKey  string
}

// StopAdjustRequest is the orchestrator input for SL/TP updates.
type StopAdjustRequest struct {
	Network       string
	PairID        int
	TradeIndex    int
	Price         float64
	TraderAddress string
}

// CancelOrderRequest is the orchestrator input for cancelling a resting order.
type CancelOrderRequest struct {
	Network        string
	PairID         int
	TradeIndex     int
	TraderAddress  string
	IdempotencyKey string
}

// UpdateOrderRequest is the orchestrator input for updating a resting order.
type UpdateOrderRequest struct {
	Network       string
	PairID        int
	TradeIndex    int
	Price         *float64
	StopLoss      *float64
	TakeProfit    *float64
	TraderAddress string
}
