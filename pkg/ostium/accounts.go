package ostium

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"

	"ostium-api/pkg/jsonsafe"
	"ostium-api/pkg/serviceerr"
)

// GetBalance returns USDC and native balances for an address. The two reads
// are independent and run concurrently.
func (a *Adapter) GetBalance(ctx context.Context, network, address string) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}

	var (
		usdc, native       decimal.Decimal
		usdcErr, nativeErr error
	)
	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		usdc, usdcErr = sdk.USDCBalance(ctx, address)
	})
	p.Go(func() {
		native, nativeErr = sdk.NativeBalance(ctx, address)
	})
	p.Wait()

	if usdcErr != nil || nativeErr != nil {
		err := usdcErr
		if err == nil {
			err = nativeErr
		}
		return nil, serviceerr.Upstream(serviceerr.CodeBalanceFetchFailed,
			"Failed to fetch balances").
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network": network,
		"address": address,
		"balances": map[string]any{
			"usdc":   jsonsafe.Encode(usdc),
			"native": jsonsafe.Encode(native),
		},
	}, nil
}

// ListPositions returns the trader's open positions.
func (a *Adapter) ListPositions(ctx context.Context, network, traderAddress string) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	positions, err := sdk.OpenTrades(ctx, traderAddress)
	if err != nil {
		return nil, serviceerr.Upstream(serviceerr.CodePositionsFetch,
			"Failed to fetch positions").
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network":       network,
		"traderAddress": traderAddress,
		"positions":     jsonsafe.EncodeList(positions),
	}, nil
}

// GetHistory returns the trader's most recent order history.
func (a *Adapter) GetHistory(ctx context.Context, network, traderAddress string, limit int) (map[string]any, error) {
	sdk, gateErr := a.sdk(network)
	if gateErr != nil {
		return nil, gateErr
	}
	if limit <= 0 {
		limit = 20
	}
	history, err := sdk.RecentHistory(ctx, traderAddress, limit)
	if err != nil {
		return nil, serviceerr.Upstream(serviceerr.CodeHistoryFetch,
			"Failed to fetch history").
			WithDetails(map[string]any{"error": err.Error()})
	}
	return map[string]any{
		"network":       network,
		"traderAddress": traderAddress,
		"history":       jsonsafe.EncodeList(history),
	}, nil
}

// RequestFaucet requests testnet tokens, defaulting the target to the
// delegate address. Mainnet requests are rejected outright and a local rate
// limiter keeps the upstream faucet from being hammered.
func (a *Adapter) RequestFaucet(ctx context.Context, network, traderAddress string) (map[string]any, error) {
	if network != NetworkTestnet {
		return nil, serviceerr.BadRequest(serviceerr.CodeFaucetNotAvailable,
			"Faucet is only available on testnet")
	}
	sdk, gateErr := a.delegatedSDK(network)
	if gateErr != nil {
		return nil, gateErr
	}
	if !a.faucet.Allow() {
		return nil, serviceerr.Unavailable(serviceerr.CodeFaucetUnavailable,
			"Faucet is busy, try again later").AsRetryable()
	}

	target := traderAddress
	if target == "" {
		target = sdk.DelegateAddress()
	}
	result, err := sdk.RequestFaucet(ctx, target)
	if err != nil {
		return nil, serviceerr.Normalize("request_faucet",
			serviceerr.CodeFaucetFailed, "Failed to request faucet tokens", err)
	}
	return map[string]any{
		"network": network,
		"address": target,
		"status":  "submitted",
		"result":  jsonsafe.Encode(result),
	}, nil
}
