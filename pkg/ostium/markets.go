package ostium

import (
	"context"
	"fmt"
	"strings"

	"ostium-api/pkg/jsonsafe"
	"ostium-api/pkg/serviceerr"
)

// ListMarkets returns the tradeable market catalog for a network.
func (a *Adapter) ListMarkets(ctx context.Context, network string) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	pairs, err := ListPairs(ctx, sdk)
	if err != nil {
		return nil, err
	}

	markets := make([]map[string]any, 0, len(pairs))
	for _, pair := range pairs {
		id, ok := pairIdentifier(pair)
		if !ok {
			continue
		}
		base := upperField(pair, "from")
		quote := upperField(pair, "to")
		if quote == "" {
			quote = "USD"
		}
		status := "active"
		if paused, ok := pair["isPaused"].(bool); ok && paused {
			status = "paused"
		}
		markets = append(markets, map[string]any{
			"pairId": id,
			"symbol": base,
			"pair":   base + "/" + quote,
			"status": status,
		})
	}
	return map[string]any{"network": network, "markets": markets}, nil
}

// GetMarketPrice returns the latest price for base/quote. With detailed set
// the raw feed payload is returned instead of the condensed quote.
func (a *Adapter) GetMarketPrice(ctx context.Context, network, base, quote string, detailed bool) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))

	if detailed {
		raw, err := sdk.LatestPriceDetail(ctx, base, quote)
		if err != nil {
			return nil, priceFetchError(base, quote, err)
		}
		return map[string]any{
			"network":   network,
			"base":      base,
			"quote":     quote,
			"priceData": jsonsafe.Encode(raw),
		}, nil
	}

	priceQuote, err := sdk.GetPrice(ctx, base, quote)
	if err != nil {
		return nil, priceFetchError(base, quote, err)
	}
	result := map[string]any{
		"network":            network,
		"base":               base,
		"quote":              quote,
		"price":              nil,
		"isMarketOpen":       nil,
		"isDayTradingClosed": nil,
	}
	if priceQuote.Price != nil {
		result["price"] = *priceQuote.Price
	}
	if priceQuote.MarketOpen != nil {
		result["isMarketOpen"] = *priceQuote.MarketOpen
	}
	if priceQuote.DayTradingClosed != nil {
		result["isDayTradingClosed"] = *priceQuote.DayTradingClosed
	}
	return result, nil
}

func priceFetchError(base, quote string, err error) *serviceerr.Error {
	return serviceerr.Upstream(serviceerr.CodePriceFetchFailed,
		fmt.Sprintf("Failed to fetch price for %s/%s", base, quote)).
		WithDetails(map[string]any{"error": err.Error()})
}

// GetFundingRate returns funding numbers for a pair over a period.
func (a *Adapter) GetFundingRate(ctx context.Context, network string, pairID, periodHours int) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	if periodHours <= 0 {
		periodHours = 24
	}
	info, err := sdk.FundingRate(ctx, pairID, periodHours)
	if err != nil {
		return nil, serviceerr.Upstream(serviceerr.CodeFundingFetch,
			fmt.Sprintf("Failed to fetch funding rate for pairId=%d", pairID)).
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network":                  network,
		"pairId":                   pairID,
		"periodHours":              periodHours,
		"accFundingLong":           info.AccFundingLong,
		"accFundingShort":          info.AccFundingShort,
		"fundingRatePercent":       info.RatePercent,
		"targetFundingRatePercent": info.TargetRatePercent,
	}, nil
}

// GetRolloverRate returns the rollover rate for a pair over a period.
func (a *Adapter) GetRolloverRate(ctx context.Context, network string, pairID, periodHours int) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	if periodHours <= 0 {
		periodHours = 24
	}
	res, err := sdk.RolloverRate(ctx, pairID, periodHours)
	if err != nil {
		return nil, serviceerr.Upstream(serviceerr.CodeRolloverFetch,
			fmt.Sprintf("Failed to fetch rollover rate for pairId=%d", pairID)).
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network":      network,
		"pairId":       pairID,
		"periodHours":  periodHours,
		"rolloverRate": res,
	}, nil
}

// GetMarketDetails returns the raw subgraph pair entity.
func (a *Adapter) GetMarketDetails(ctx context.Context, network string, pairID int) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	details, err := sdk.PairDetails(ctx, pairID)
	if err != nil {
		return nil, serviceerr.Upstream(serviceerr.CodeMarketDetails,
			fmt.Sprintf("Failed to fetch details for pairId=%d", pairID)).
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network": network,
		"pairId":  pairID,
		"details": jsonsafe.Encode(details),
	}, nil
}

func upperField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.ToUpper(s)
	}
	return ""
}
