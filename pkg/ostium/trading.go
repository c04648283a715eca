package ostium

import (
	"context"
	"fmt"
	"strings"

	"ostium-api/pkg/jsonsafe"
	"ostium-api/pkg/serviceerr"
)

const (
	defaultSlippagePct = 2.0
	defaultClosePct    = 100.0
)

// OpenPosition opens a market, limit or stop position. The idempotency key
// is checked before any remote call; a replay returns the cached response
// without touching the upstream at all. The max-leverage ceiling is enforced
// best-effort: if the ceiling cannot be fetched the order proceeds and the
// trading engine has the final say.
func (a *Adapter) OpenPosition(ctx context.Context, req OpenPositionRequest) (map[string]any, error) {
	if cached, ok := a.idem.Get(req.IdempotencyKey); ok {
		return cached, nil
	}

	readSDK, gateErr := a.sdk(req.Network)
	if gateErr != nil {
		return nil, gateErr
	}
	pairID, err := ResolvePairID(ctx, readSDK, req.Market)
	if err != nil {
		return nil, err
	}
	sdk, gateErr := a.delegatedSDK(req.Network)
	if gateErr != nil {
		return nil, gateErr
	}

	orderType := strings.ToUpper(strings.TrimSpace(req.OrderType))
	if orderType == "" {
		orderType = OrderTypeMarket
	}
	slippage := req.Slippage
	if slippage <= 0 {
		slippage = defaultSlippagePct
	}

	symbol, symErr := ResolveSymbol(ctx, sdk, pairID)
	if symErr != nil {
		return nil, symErr
	}
	if symbol == "" {
		return nil, serviceerr.BadRequest(serviceerr.CodeInvalidMarket,
			fmt.Sprintf("Could not resolve symbol for pairId=%d", pairID))
	}

	var atPrice float64
	if orderType == OrderTypeMarket {
		quote, priceErr := sdk.GetPrice(ctx, symbol, "USD")
		if priceErr != nil || quote.Price == nil {
			e := serviceerr.Upstream(serviceerr.CodePriceFetchFailed,
				"Could not determine market price for "+symbol)
			if priceErr != nil {
				e = e.WithDetails(map[string]any{"error": priceErr.Error()})
			}
			return nil, e
		}
		atPrice = *quote.Price
	} else {
		if req.TriggerPrice == nil {
			return nil, serviceerr.BadRequest(serviceerr.CodeTriggerPriceNeeded,
				"triggerPrice is required for "+orderType+" orders")
		}
		atPrice = *req.TriggerPrice
	}

	if maxLeverage, levErr := sdk.PairMaxLeverage(ctx, pairID); levErr == nil {
		if req.Leverage > maxLeverage {
			return nil, serviceerr.BadRequest(serviceerr.CodeLeverageTooHigh,
				fmt.Sprintf("Leverage exceeds maximum of %gx for this market", maxLeverage)).
				WithDetails(map[string]any{"maxLeverage": maxLeverage})
		}
	}

	params := TradeParams{
		PairID:        pairID,
		Collateral:    req.Collateral,
		Long:          strings.EqualFold(req.Side, "long"),
		Leverage:      req.Leverage,
		OrderType:     orderType,
		StopLoss:      req.StopLoss,
		TakeProfit:    req.TakeProfit,
		Slippage:      slippage,
		TraderAddress: req.TraderAddress,
	}
	result, err := sdk.PerformTrade(ctx, params, atPrice)
	if err != nil {
		return nil, serviceerr.Normalize("open_position",
			serviceerr.CodeOpenFailed, "Failed to open position", err)
	}

	response := map[string]any{
		"network":      req.Network,
		"pairId":       pairID,
		"orderType":    orderType,
		"triggerPrice": atPrice,
		"status":       "submitted",
		"result":       jsonsafe.Encode(result),
	}
	a.idem.Put(req.IdempotencyKey, response)
	return response, nil
}

// ClosePosition closes all or part of an open position at the current
// market price.
func (a *Adapter) ClosePosition(ctx context.Context, req ClosePositionRequest) (map[string]any, error) {
	if cached, ok := a.idem.Get(req.IdempotencyKey); ok {
		return cached, nil
	}

	sdk, gateErr := a.delegatedSDK(req.Network)
	if gateErr != nil {
		return nil, gateErr
	}

	symbol, symErr := ResolveSymbol(ctx, sdk, req.PairID)
	if symErr != nil {
		return nil, symErr
	}
	if symbol == "" {
		return nil, serviceerr.BadRequest(serviceerr.CodeInvalidMarket,
			fmt.Sprintf("Could not resolve symbol for pairId=%d", req.PairID))
	}
	quote, priceErr := sdk.GetPrice(ctx, symbol, "USD")
	if priceErr != nil || quote.Price == nil {
		e := serviceerr.Upstream(serviceerr.CodePriceFetchFailed,
			"Could not determine market price for "+symbol)
		if priceErr != nil {
			e = e.WithDetails(map[string]any{"error": priceErr.Error()})
		}
		return nil, e
	}

	closePct := req.ClosePercentage
	if closePct <= 0 {
		closePct = defaultClosePct
	}
	slippage := req.Slippage
	if slippage <= 0 {
		slippage = defaultSlippagePct
	}

	result, err := sdk.CloseTrade(ctx, CloseParams{
		PairID:          req.PairID,
		TradeIndex:      req.TradeIndex,
		MarketPrice:     *quote.Price,
		ClosePercentage: closePct,
		Slippage:        slippage,
		TraderAddress:   req.TraderAddress,
	})
	if err != nil {
		return nil, serviceerr.Normalize("close_position",
			serviceerr.CodeCloseFailed, "Failed to close position", err)
	}

	response := map[string]any{
		"network":    req.Network,
		"pairId":     req.PairID,
		"tradeIndex": req.TradeIndex,
		"status":     "submitted",
		"result":     jsonsafe.Encode(result),
	}
	a.idem.Put(req.IdempotencyKey, response)
	return response, nil
}

// UpdateStopLoss moves the stop-loss price on an open position.
func (a *Adapter) UpdateStopLoss(ctx context.Context, req StopAdjustRequest) (map[string]any, error) {
	sdk, gateErr := a.delegatedSDK(req.Network)
	if gateErr != nil {
		return nil, gateErr
	}
	result, err := sdk.UpdateSL(ctx, req.PairID, req.TradeIndex, req.Price, req.TraderAddress)
	if err != nil {
		return nil, serviceerr.Normalize("update_sl",
			serviceerr.CodeUpdateSLFailed, "Failed to update stop loss", err)
	}
	return map[string]any{
		"network":    req.Network,
		"pairId":     req.PairID,
		"tradeIndex": req.TradeIndex,
		"slPrice":    req.Price,
		"status":     "submitted",
		"result":     jsonsafe.Encode(result),
	}, nil
}

// UpdateTakeProfit moves the take-profit price on an open position.
func (a *Adapter) UpdateTakeProfit(ctx context.Context, req StopAdjustRequest) (map[string]any, error) {
	sdk, gateErr := a.delegatedSDK(req.Network)
	if gateErr != nil {
		return nil, gateErr
	}
	result, err := sdk.UpdateTP(ctx, req.PairID, req.TradeIndex, req.Price, req.TraderAddress)
	if err != nil {
		return nil, serviceerr.Normalize("update_tp",
			serviceerr.CodeUpdateTPFailed, "Failed to update take profit", err)
	}
	return map[string]any{
		"network":    req.Network,
		"pairId":     req.PairID,
		"tradeIndex": req.TradeIndex,
		"tpPrice":    req.Price,
		"status":     "submitted",
		"result":     jsonsafe.Encode(result),
	}, nil
}

// PositionMetrics returns live metrics (PnL, funding, liquidation price) for
// one open trade.
func (a *Adapter) PositionMetrics(ctx context.Context, network string, pairID, tradeIndex int, traderAddress string) (map[string]any, error) {
	sdk, gateErr := a.delegatedSDK(network)
	if gateErr != nil {
		return nil, gateErr
	}
	metrics, err := sdk.OpenTradeMetrics(ctx, pairID, tradeIndex, traderAddress)
	if err != nil {
		return nil, serviceerr.Upstream(serviceerr.CodeMetricsFetch,
			"Failed to fetch position metrics").
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network":    network,
		"pairId":     pairID,
		"tradeIndex": tradeIndex,
		"metrics":    jsonsafe.Encode(metrics),
	}, nil
}
