package ostium

import (
	"context"

	"github.com/shopspring/decimal"

	"ostium-api/pkg/jsonsafe"
	"ostium-api/pkg/serviceerr"
)

// ListOrders returns the trader's resting orders.
func (a *Adapter) ListOrders(ctx context.Context, network, traderAddress string) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	orders, err := sdk.Orders(ctx, traderAddress)
	if err != nil {
		return nil, serviceerr.Upstream(serviceerr.CodeOrdersFetch,
			"Failed to fetch orders").
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network":       network,
		"traderAddress": traderAddress,
		"orders":        jsonsafe.EncodeList(orders),
	}, nil
}

// CancelOrder cancels a resting limit or stop order. Replays through the
// idempotency key return the original response.
func (a *Adapter) CancelOrder(ctx context.Context, req CancelOrderRequest) (map[string]any, error) {
	if cached, ok := a.idem.Get(req.IdempotencyKey); ok {
		return cached, nil
	}
	sdk, gateErr := a.delegatedSDK(req.Network)
	if gateErr != nil {
		return nil, gateErr
	}
	result, err := sdk.CancelLimitOrder(ctx, req.PairID, req.TradeIndex, req.TraderAddress)
	if err != nil {
		return nil, serviceerr.Normalize("cancel_order",
			serviceerr.CodeCancelOrderFailed, "Failed to cancel order", err)
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

// UpdateOrder rewrites the price, take-profit or stop-loss of a resting
// order. Only the supplied fields change.
func (a *Adapter) UpdateOrder(ctx context.Context, req UpdateOrderRequest) (map[string]any, error) {
	sdk, gateErr := a.delegatedSDK(req.Network)
	if gateErr != nil {
		return nil, gateErr
	}
	update := LimitOrderUpdate{PairID: req.PairID, TradeIndex: req.TradeIndex}
	if req.Price != nil {
		d := decimal.NewFromFloat(*req.Price)
		update.Price = &d
	}
	if req.TakeProfit != nil {
		d := decimal.NewFromFloat(*req.TakeProfit)
		update.TakeProfit = &d
	}
	if req.StopLoss != nil {
		d := decimal.NewFromFloat(*req.StopLoss)
		update.StopLoss = &d
	}
	result, err := sdk.UpdateLimitOrder(ctx, update)
	if err != nil {
		return nil, serviceerr.Normalize("update_order",
			serviceerr.CodeUpdateOrderFailed, "Failed to update order", err)
	}
	return map[string]any{
		"network":    req.Network,
		"pairId":     req.PairID,
		"tradeIndex": req.TradeIndex,
		"status":     "submitted",
		"result":     jsonsafe.Encode(result),
	}, nil
}

// TrackOrder reports the lifecycle state of a submitted order.
func (a *Adapter) TrackOrder(ctx context.Context, network, orderID string) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	result, err := sdk.TrackOrder(ctx, orderID)
	if err != nil {
		return nil, serviceerr.Upstream(serviceerr.CodeOrderTracking,
			"Failed to track order "+orderID).
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network": network,
		"orderId": orderID,
		"result":  jsonsafe.Encode(result),
	}, nil
}
