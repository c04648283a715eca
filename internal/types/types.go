// Code scaffolded by goctl. Safe to edit.
package types

// Market data.

type ListMarketsReq struct {
	Network string `json:"network"`
}

type GetPriceReq struct {
	Network  string `json:"network"`
	Base     string `json:"base"`
	Quote    string `json:"quote,default=USD"`
	Detailed bool   `json:"detailed,optional"`
}

type FundingRateReq struct {
	Network     string `json:"network"`
	PairID      int    `json:"pairId"`
	PeriodHours int    `json:"periodHours,default=24"`
}

type RolloverRateReq struct {
	Network     string `json:"network"`
	PairID      int    `json:"pairId"`
	PeriodHours int    `json:"periodHours,default=24"`
}

type MarketDetailsReq struct {
	Network string `json:"network"`
	PairID  int    `json:"pairId"`
}

// Accounts.

type BalanceReq struct {
	Network string `json:"network"`
	Address string `json:"address"`
}

type HistoryReq struct {
	Network       string `json:"network"`
	TraderAddress string `json:"traderAddress"`
	Limit         int    `json:"limit,default=20"`
}

type FaucetReq struct {
	Network       string `json:"network"`
	TraderAddress string `json:"traderAddress,optional"`
}

// Positions.

type ListPositionsReq struct {
	Network       string `json:"network"`
	TraderAddress string `json:"traderAddress"`
}

type OpenPositionReq struct {
	Network        string   `json:"network"`
	Market         string   `json:"market"`
	Side           string   `json:"side"`
	Collateral     float64  `json:"collateral"`
	Leverage       float64  `json:"leverage"`
	OrderType      string   `json:"orderType,default=market"`
	TriggerPrice   *float64 `json:"triggerPrice,optional"`
	Slippage       float64  `json:"slippage,default=2"`
	SLPrice        *float64 `json:"slPrice,optional"`
	TPPrice        *float64 `json:"tpPrice,optional"`
	TraderAddress  string   `json:"traderAddress,optional"`
	IdempotencyKey string   `json:"idempotencyKey,optional"`
}

type ClosePositionReq struct {
	Network         string  `json:"network"`
	PairID          int     `json:"pairId"`
	TradeIndex      int     `json:"tradeIndex"`
	ClosePercentage float64 `json:"closePercentage,default=100"`
	Slippage        float64 `json:"slippage,default=2"`
	TraderAddress   string  `json:"traderAddress,optional"`
	IdempotencyKey  string  `json:"idempotencyKey,optional"`
}

type UpdateSLReq struct {
	Network       string  `json:"network"`
	PairID        int     `json:"pairId"`
	TradeIndex    int     `json:"tradeIndex"`
	SLPrice       float64 `json:"slPrice"`
	TraderAddress string  `json:"traderAddress,optional"`
}

type UpdateTPReq struct {
	Network       string  `json:"network"`
	PairID        int     `json:"pairId"`
	TradeIndex    int     `json:"tradeIndex"`
	TPPrice       float64 `json:"tpPrice"`
	TraderAddress string  `json:"traderAddress,optional"`
}

type PositionMetricsReq struct {
	Network       string `json:"network"`
	PairID        int    `json:"pairId"`
	TradeIndex    int    `json:"tradeIndex"`
	TraderAddress string `json:"traderAddress,optional"`
}

// Orders.

type ListOrdersReq struct {
	Network       string `json:"network"`
	TraderAddress string `json:"traderAddress"`
}

type CancelOrderReq struct {
	Network        string `json:"network"`
	PairID         int    `json:"pairId"`
	TradeIndex     int    `json:"tradeIndex"`
	TraderAddress  string `json:"traderAddress,optional"`
	IdempotencyKey string `json:"idempotencyKey,optional"`
}

type UpdateOrderReq struct {
	Network       string   `json:"network"`
	PairID        int      `json:"pairId"`
	TradeIndex    int      `json:"tradeIndex"`
	Price         *float64 `json:"price,optional"`
	TPPrice       *float64 `json:"tpPrice,optional"`
	SLPrice       *float64 `json:"slPrice,optional"`
	TraderAddress string   `json:"traderAddress,optional"`
}

type TrackOrderReq struct {
	Network string `json:"network"`
	OrderID string `json:"orderId"`
}

// Health.

type HealthResp struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ReadyResp struct {
	Status string `json:"status"`
	Ostium bool   `json:"ostium"`
}
