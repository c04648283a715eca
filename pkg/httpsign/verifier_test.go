package httpsign

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret"

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestVerifyValidSignature(t *testing.T) {
	now := int64(1_700_000_000_000)
	v := New(testSecret, 5*time.Minute, WithClock(fixedClock(now)))

	ts := strconv.FormatInt(now, 10)
	body := []byte(`{"network":"testnet"}`)
	sig := Sign(testSecret, ts, "POST", "/v1/markets/list", body)

	require.NoError(t, v.Verify("POST", "/v1/markets/list", body, ts, sig))
}

func TestVerifyMethodCaseNormalized(t *testing.T) {
	now := int64(1_700_000_000_000)
	v := New(testSecret, 5*time.Minute, WithClock(fixedClock(now)))

	ts := strconv.FormatInt(now, 10)
	sig := Sign(testSecret, ts, "POST", "/v1/prices/get", nil)

	// Clients may sign with any method casing; the canonical form is upper.
	require.NoError(t, v.Verify("post", "/v1/prices/get", nil, ts, sig))
}

func TestVerifyToleranceInclusive(t *testing.T) {
	now := int64(1_700_000_000_000)
	tolerance := 300_000 * time.Millisecond
	v := New(testSecret, tolerance, WithClock(fixedClock(now)))

	// Exactly at the tolerance bound: accepted.
	ts := strconv.FormatInt(now-300_000, 10)
	sig := Sign(testSecret, ts, "POST", "/v1/prices/get", nil)
	require.NoError(t, v.Verify("POST", "/v1/prices/get", nil, ts, sig))

	// One millisecond past: rejected.
	ts = strconv.FormatInt(now-300_001, 10)
	sig = Sign(testSecret, ts, "POST", "/v1/prices/get", nil)
	require.ErrorIs(t, v.Verify("POST", "/v1/prices/get", nil, ts, sig), ErrExpired)

	// Future skew is bounded symmetrically.
	ts = strconv.FormatInt(now+300_001, 10)
	sig = Sign(testSecret, ts, "POST", "/v1/prices/get", nil)
	require.ErrorIs(t, v.Verify("POST", "/v1/prices/get", nil, ts, sig), ErrExpired)
}

func TestVerifyRejectsSingleByteChanges(t *testing.T) {
	now := int64(1_700_000_000_000)
	v := New(testSecret, 5*time.Minute, WithClock(fixedClock(now)))

	ts := strconv.FormatInt(now, 10)
	body := []byte(`{"network":"testnet"}`)
	sig := Sign(testSecret, ts, "POST", "/v1/positions/open", body)

	require.NoError(t, v.Verify("POST", "/v1/positions/open", body, ts, sig))

	// Changing any single component flips the expected digest.
	require.ErrorIs(t, v.Verify("PUT", "/v1/positions/open", body, ts, sig), ErrBadSignature)
	require.ErrorIs(t, v.Verify("POST", "/v1/positions/opex", body, ts, sig), ErrBadSignature)

	tampered := []byte(`{"network":"mainnet"}`)
	require.ErrorIs(t, v.Verify("POST", "/v1/positions/open", tampered, ts, sig), ErrBadSignature)
}

func TestVerifyMissingHeaders(t *testing.T) {
	v := New(testSecret, 5*time.Minute)
	require.ErrorIs(t, v.Verify("POST", "/v1/prices/get", nil, "", "abc"), ErrMissingHeaders)
	require.ErrorIs(t, v.Verify("POST", "/v1/prices/get", nil, "1700000000000", ""), ErrMissingHeaders)
}

func TestVerifyBadTimestamp(t *testing.T) {
	v := New(testSecret, 5*time.Minute)
	err := v.Verify("POST", "/v1/prices/get", nil, "not-a-number", "deadbeef")
	require.ErrorIs(t, err, ErrBadTimestamp)
}

func TestVerifyNoSecretIsOperatorFault(t *testing.T) {
	v := New("", 5*time.Minute)
	require.ErrorIs(t, v.Verify("POST", "/v1/prices/get", nil, "1700000000000", "deadbeef"), ErrNoSecret)
}

func TestSignEmptyBodyMatchesEmptyString(t *testing.T) {
	ts := "1700000000000"
	require.Equal(t,
		Sign(testSecret, ts, "POST", "/v1/markets/list", nil),
		Sign(testSecret, ts, "POST", "/v1/markets/list", []byte("")),
	)
}
