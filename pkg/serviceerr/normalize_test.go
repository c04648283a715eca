package serviceerr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePatterns(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantCode   string
		wantStatus int
		retryable  bool
	}{
		{
			name:       "allowance",
			raw:        "execution reverted: Sufficient allowance required for trading contract",
			wantCode:   CodeAllowanceMissing,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "allowance alt phrase",
			raw:        "no allowance for spender 0xabc",
			wantCode:   CodeAllowanceMissing,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "delegation",
			raw:        "Delegation is not active for this trader",
			wantCode:   CodeDelegationInactive,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "safe wallet",
			raw:        "safe wallet not found on arbitrum sepolia",
			wantCode:   CodeSafeWalletMissing,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "gas low",
			raw:        "err: insufficient funds for gas * price + value",
			wantCode:   CodeDelegateGasLow,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "timeout",
			raw:        "context deadline exceeded: request timed out",
			wantCode:   "OPEN_POSITION_TIMEOUT",
			wantStatus: http.StatusGatewayTimeout,
			retryable:  true,
		},
		{
			name:       "default",
			raw:        "something unexpected happened",
			wantCode:   CodeOpenFailed,
			wantStatus: http.StatusBadGateway,
			retryable:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Normalize("open_position", CodeOpenFailed, "Failed to open position", errors.New(tc.raw))
			require.Equal(t, tc.wantCode, err.Code)
			require.Equal(t, tc.wantStatus, err.Status)
			require.NotNil(t, err.Retryable)
			require.Equal(t, tc.retryable, *err.Retryable)
			require.Equal(t, tc.raw, err.Details["error"])
			require.Equal(t, "open_position", err.Details["operation"])
		})
	}
}

func TestNormalizeEarlierPatternWins(t *testing.T) {
	// A message matching both the timeout and allowance rules must classify
	// by the higher-priority allowance rule.
	raw := errors.New("timeout while checking sufficient allowance for spender")
	err := Normalize("open_position", CodeOpenFailed, "Failed to open position", raw)
	require.Equal(t, CodeAllowanceMissing, err.Code)
	require.Equal(t, http.StatusBadRequest, err.Status)
	require.False(t, *err.Retryable)
}

func TestNormalizeTimeoutCodeFallback(t *testing.T) {
	err := Normalize("", CodeCloseFailed, "Failed to close position", errors.New("request timed out"))
	require.Equal(t, CodeServiceTimeout, err.Code)

	err = Normalize("close_position", CodeCloseFailed, "Failed to close position", errors.New("request timed out"))
	require.Equal(t, "CLOSE_POSITION_TIMEOUT", err.Code)
}

func TestInternalPreservesContext(t *testing.T) {
	err := Internal("positions/open", errors.New("nil pointer somewhere"))
	require.Equal(t, CodeInternal, err.Code)
	require.Equal(t, http.StatusInternalServerError, err.Status)
	require.Equal(t, "positions/open", err.Details["operation"])
	require.Equal(t, "nil pointer somewhere", err.Details["error"])
}
