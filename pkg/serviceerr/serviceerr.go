// Package serviceerr defines the stable error vocabulary surfaced by the
// Ostium facade and the normalizer that maps raw SDK failures onto it.
package serviceerr

import "net/http"

// Stable client-facing error codes.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeServerMisconfig    = "SERVER_MISCONFIGURED"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidNetwork     = "INVALID_NETWORK"
	CodeInvalidMarket      = "INVALID_MARKET"
	CodeInvalidSide        = "INVALID_SIDE"
	CodeInvalidOrderType   = "INVALID_ORDER_TYPE"
	CodeLeverageTooHigh    = "LEVERAGE_TOO_HIGH"
	CodeTriggerPriceNeeded = "TRIGGER_PRICE_REQUIRED"
	CodePriceFetchFailed   = "PRICE_FETCH_FAILED"
	CodeMarketsFetchFailed = "MARKETS_FETCH_FAILED"
	CodeBalanceFetchFailed = "BALANCE_FETCH_FAILED"
	CodePositionsFetch     = "POSITIONS_FETCH_FAILED"
	CodeHistoryFetch       = "HISTORY_FETCH_FAILED"
	CodeOrdersFetch        = "ORDERS_FETCH_FAILED"
	CodeFundingFetch       = "FUNDING_FETCH_FAILED"
	CodeRolloverFetch      = "ROLLOVER_FETCH_FAILED"
	CodeMarketDetails      = "MARKET_DETAILS_FAILED"
	CodeMetricsFetch       = "METRICS_FETCH_FAILED"
	CodeOpenFailed         = "OPEN_POSITION_FAILED"
	CodeCloseFailed        = "CLOSE_POSITION_FAILED"
	CodeUpdateSLFailed     = "UPDATE_SL_FAILED"
	CodeUpdateTPFailed     = "UPDATE_TP_FAILED"
	CodeCancelOrderFailed  = "CANCEL_ORDER_FAILED"
	CodeUpdateOrderFailed  = "UPDATE_ORDER_FAILED"
	CodeOrderTracking      = "ORDER_TRACKING_FAILED"
	CodeFaucetNotAvailable = "FAUCET_NOT_AVAILABLE"
	CodeFaucetUnavailable  = "FAUCET_UNAVAILABLE"
	CodeFaucetFailed       = "FAUCET_REQUEST_FAILED"
	CodeDelegateKeyMissing = "DELEGATE_KEY_MISSING"
	CodeDelegationInactive = "DELEGATION_NOT_ACTIVE"
	CodeAllowanceMissing   = "ALLOWANCE_MISSING"
	CodeSafeWalletMissing  = "SAFE_WALLET_MISSING"
	CodeDelegateGasLow     = "DELEGATE_GAS_LOW"
	CodeServiceTimeout     = "OSTIUM_SERVICE_TIMEOUT"
	CodeDisabled           = "OSTIUM_DISABLED"
	CodeSDKUnavailable     = "SDK_UNAVAILABLE"
	CodeInternal           = "OSTIUM_INTERNAL_ERROR"
)

// Error is an immutable service error carrying the stable code, the HTTP
// status to surface, and an optional retryability hint. Retryable is a
// tri-state: nil means unknown.
type Error struct {
	Code      string
	Message   string
	Status    int
	Retryable *bool
	Details   map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs an Error with unknown retryability.
func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// Retryable marks the error as safe to retry.
func (e *Error) AsRetryable() *Error {
	v := true
	e.Retryable = &v
	return e
}

// NotRetryable marks the error as permanent.
func (e *Error) AsPermanent() *Error {
	v := false
	e.Retryable = &v
	return e
}

// WithDetails attaches an opaque details mapping.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// BadRequest builds a non-retryable 400 error.
func BadRequest(code, message string) *Error {
	return New(code, message, http.StatusBadRequest).AsPermanent()
}

// Upstream builds a retryable 502 error.
func Upstream(code, message string) *Error {
	return New(code, message, http.StatusBadGateway).AsRetryable()
}

// Unavailable builds a non-retryable 503 error for operator misconfiguration.
func Unavailable(code, message string) *Error {
	return New(code, message, http.StatusServiceUnavailable).AsPermanent()
}

// Internal wraps an unclassified failure as OSTIUM_INTERNAL_ERROR. The
// operation name and the raw error text are preserved in Details; no stack
// information crosses the boundary.
func Internal(operation string, err error) *Error {
	e := New(CodeInternal, "Unexpected failure while processing "+operation, http.StatusInternalServerError).AsPermanent()
	details := map[string]any{"operation": operation}
	if err != nil {
		details["error"] = err.Error()
	}
	return e.WithDetails(details)
}
