package serviceerr

import (
	"net/http"
	"strings"
)

// The remote SDK exposes no structured error codes; the only stable signal is
// free-text message content. Normalize matches lower-cased substrings in a
// fixed priority order, first match wins.

type pattern struct {
	needles []string
	build   func(details map[string]any) *Error
}

var sdkPatterns = []pattern{
	{
		needles: []string{"sufficient allowance", "allowance for"},
		build: func(d map[string]any) *Error {
			return BadRequest(CodeAllowanceMissing,
				"Sufficient allowance not present. Approve the trading contract to spend USDC.").WithDetails(d)
		},
	},
	{
		needles: []string{"delegation is not active", "delegation not active"},
		build: func(d map[string]any) *Error {
			return BadRequest(CodeDelegationInactive,
				"Delegation is not active. Approve delegation before write actions.").WithDetails(d)
		},
	},
	{
		needles: []string{"safe wallet not found"},
		build: func(d map[string]any) *Error {
			return BadRequest(CodeSafeWalletMissing,
				"Safe wallet not found for selected network.").WithDetails(d)
		},
	},
	{
		needles: []string{"delegate wallet gas is low", "insufficient funds for gas"},
		build: func(d map[string]any) *Error {
			return BadRequest(CodeDelegateGasLow,
				"Delegate wallet gas is low. Fund delegate wallet with ETH.").WithDetails(d)
		},
	},
}

// Normalize classifies a raw SDK failure into a stable Error. The timeout
// branch derives an operation-scoped code (e.g. OPEN_POSITION_TIMEOUT); any
// unmatched failure falls back to the caller-supplied default as a retryable
// 502. The raw error text and operation are always kept in Details.
func Normalize(operation, defaultCode, defaultMessage string, err error) *Error {
	raw := ""
	if err != nil {
		raw = err.Error()
	}
	lower := strings.ToLower(raw)
	details := map[string]any{"error": raw, "operation": operation}

	for _, p := range sdkPatterns {
		for _, needle := range p.needles {
			if strings.Contains(lower, needle) {
				return p.build(details)
			}
		}
	}
	if strings.Contains(lower, "timeout") || strings.Contains(lower, "timed out") {
		return New(timeoutCode(operation), "Ostium service timed out.", http.StatusGatewayTimeout).
			AsRetryable().WithDetails(details)
	}
	return New(defaultCode, defaultMessage, http.StatusBadGateway).
		AsRetryable().WithDetails(details)
}

func timeoutCode(operation string) string {
	op := strings.ToUpper(strings.TrimSpace(operation))
	if op == "" {
		return CodeServiceTimeout
	}
	return op + "_TIMEOUT"
}
