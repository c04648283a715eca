package logic

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"ostium-api/pkg/ostium"
	"ostium-api/pkg/serviceerr"
)

// Boundary validation shared across logic handlers. Anything that can be
// decided without talking to the upstream is rejected here; network-dependent
// invariants (symbol resolvability, leverage ceilings) stay in the adapter.

func validateNetwork(network string) error {
	if !ostium.ValidNetwork(network) {
		return serviceerr.BadRequest(serviceerr.CodeInvalidNetwork,
			"network must be 'testnet' or 'mainnet'").
			WithDetails(map[string]any{"network": network})
	}
	return nil
}

func validateSide(side string) error {
	switch strings.ToLower(side) {
	case "long", "short":
		return nil
	}
	return serviceerr.BadRequest(serviceerr.CodeInvalidSide, "side must be long or short")
}

func validateOrderType(orderType string) error {
	switch strings.ToUpper(orderType) {
	case "", ostium.OrderTypeMarket, ostium.OrderTypeLimit, ostium.OrderTypeStop:
		return nil
	}
	return serviceerr.BadRequest(serviceerr.CodeInvalidOrderType,
		"orderType must be market, limit or stop")
}

func validatePositive(name string, value float64) error {
	if value <= 0 {
		return serviceerr.BadRequest(serviceerr.CodeValidation, name+" must be positive")
	}
	return nil
}

// validateAddress accepts an empty address; callers that require one check
// for presence separately.
func validateAddress(name, address string) error {
	if address == "" {
		return nil
	}
	if !common.IsHexAddress(address) {
		return serviceerr.BadRequest(serviceerr.CodeValidation,
			name+" must be a hex address").
			WithDetails(map[string]any{name: address})
	}
	return nil
}

func requireAddress(name, address string) error {
	if address == "" {
		return serviceerr.BadRequest(serviceerr.CodeValidation, name+" is required")
	}
	return validateAddress(name, address)
}
