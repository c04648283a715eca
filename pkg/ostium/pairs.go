package ostium

import (
	"context"
	"strconv"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/pkg/serviceerr"
)

// ListPairs returns the pair catalog, preferring the formatted feed endpoint
// and falling back to the subgraph only when the primary fails.
func ListPairs(ctx context.Context, sdk SDK) ([]map[string]any, error) {
	pairs, primaryErr := sdk.FormattedPairs(ctx)
	if primaryErr == nil {
		return pairs, nil
	}
	logx.WithContext(ctx).Errorf("formatted pairs fetch failed, falling back to subgraph: %v", primaryErr)

	pairs, fallbackErr := sdk.SubgraphPairs(ctx)
	if fallbackErr == nil {
		return pairs, nil
	}
	return nil, serviceerr.New(serviceerr.CodeMarketsFetchFailed,
		"failed to fetch markets", 502).AsRetryable().
		WithDetails(map[string]any{
			"primary":  primaryErr.Error(),
			"fallback": fallbackErr.Error(),
		})
}

// ResolvePairID maps a client-supplied market identifier to a numeric pair
// id. Pure-numeric input is trusted as-is without a catalog lookup; anything
// else is matched case-insensitively against the catalog's from/symbol/name
// fields.
func ResolvePairID(ctx context.Context, sdk SDK, market string) (int, error) {
	market = strings.TrimSpace(market)
	if market == "" {
		return 0, serviceerr.BadRequest(serviceerr.CodeInvalidMarket, "market is required")
	}
	if id, err := strconv.Atoi(market); err == nil && id >= 0 {
		return id, nil
	}

	pairs, err := ListPairs(ctx, sdk)
	if err != nil {
		return 0, err
	}
	want := strings.ToUpper(market)
	for _, pair := range pairs {
		for _, field := range []string{"from", "symbol", "name"} {
			if s, ok := pair[field].(string); ok && strings.ToUpper(s) == want {
				if id, ok := pairIdentifier(pair); ok {
					return id, nil
				}
			}
		}
	}
	return 0, serviceerr.BadRequest(serviceerr.CodeInvalidMarket,
		"unknown market: "+market).WithDetails(map[string]any{"market": market})
}

// ResolveSymbol returns the base symbol (the catalog "from" field) for a
// pair id, or "" when a successfully fetched catalog does not know the
// pair. A catalog fetch failure is returned as-is so callers surface it as
// a retryable upstream error rather than an unknown market.
func ResolveSymbol(ctx context.Context, sdk SDK, pairID int) (string, error) {
	pairs, err := ListPairs(ctx, sdk)
	if err != nil {
		return "", err
	}
	for _, pair := range pairs {
		if id, ok := pairIdentifier(pair); ok && id == pairID {
			if s, ok := pair["from"].(string); ok {
				return s, nil
			}
		}
	}
	return "", nil
}

// pairIdentifier pulls the numeric pair id from a catalog entry, accepting
// both the feed's pairId and the subgraph's id spelling. Subgraph ids arrive
// as strings, feed ids as JSON numbers.
func pairIdentifier(pair map[string]any) (int, bool) {
	for _, field := range []string{"id", "pairId"} {
		switch v := pair[field].(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case string:
			if id, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return id, true
			}
		}
	}
	return 0, false
}
