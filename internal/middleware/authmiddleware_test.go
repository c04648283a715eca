package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx/logtest"

	"ostium-api/pkg/httpsign"
)

const testSecret = "shared-secret"

func fixedClock() time.Time {
	return time.UnixMilli(1_700_000_000_000)
}

func signedRequest(t *testing.T, method, path string, body []byte) *http.Request {
	t.Helper()
	ts := strconv.FormatInt(fixedClock().UnixMilli(), 10)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(httpsign.TimestampHeader, ts)
	req.Header.Set(httpsign.SignatureHeader, httpsign.Sign(testSecret, ts, method, path, body))
	return req
}

func newAuthHandler(secret string) http.HandlerFunc {
	verifier := httpsign.New(secret, 5*time.Minute, httpsign.WithClock(fixedClock))
	return NewAuthMiddleware(verifier).Handle(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareAcceptsValidSignature(t *testing.T) {
	handler := newAuthHandler(testSecret)
	body := []byte(`{"network":"testnet"}`)

	rec := httptest.NewRecorder()
	handler(rec, signedRequest(t, http.MethodPost, "/v1/markets/list", body))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRestoresBodyForHandler(t *testing.T) {
	verifier := httpsign.New(testSecret, 5*time.Minute, httpsign.WithClock(fixedClock))
	body := []byte(`{"network":"testnet"}`)

	var handlerBody []byte
	handler := NewAuthMiddleware(verifier).Handle(func(w http.ResponseWriter, r *http.Request) {
		handlerBody, _ = io.ReadAll(r.Body)
	})
	handler(httptest.NewRecorder(), signedRequest(t, http.MethodPost, "/v1/positions/open", body))
	require.Equal(t, body, handlerBody)
}

func TestAuthMiddlewareRejectsGenerically(t *testing.T) {
	handler := newAuthHandler(testSecret)
	body := []byte(`{"network":"testnet"}`)

	tests := []struct {
		name    string
		mutate  func(*http.Request)
		message string
	}{
		{
			name:   "missing headers",
			mutate: func(r *http.Request) { r.Header.Del(httpsign.SignatureHeader) },
		},
		{
			name:   "garbled timestamp",
			mutate: func(r *http.Request) { r.Header.Set(httpsign.TimestampHeader, "yesterday") },
		},
		{
			name: "stale timestamp",
			mutate: func(r *http.Request) {
				stale := strconv.FormatInt(fixedClock().Add(-6*time.Minute).UnixMilli(), 10)
				r.Header.Set(httpsign.TimestampHeader, stale)
			},
		},
		{
			name:   "tampered body",
			mutate: func(r *http.Request) { r.Body = io.NopCloser(bytes.NewReader([]byte(`{"network":"mainnet"}`))) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := signedRequest(t, http.MethodPost, "/v1/markets/list", body)
			tt.mutate(req)

			rec := httptest.NewRecorder()
			handler(rec, req)
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var envelope struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			require.False(t, envelope.Success)
			require.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
			// Same message for every client-side failure.
			require.Equal(t, "Request authentication failed", envelope.Error.Message)
		})
	}
}

func TestAuthMiddlewareLogsOnlySignatureMismatch(t *testing.T) {
	collector := logtest.NewCollector(t)
	handler := newAuthHandler(testSecret)
	body := []byte(`{"network":"testnet"}`)

	// Clock skew and forgotten headers are routine; they must not reach
	// the log.
	req := signedRequest(t, http.MethodPost, "/v1/markets/list", body)
	stale := strconv.FormatInt(fixedClock().Add(-6*time.Minute).UnixMilli(), 10)
	req.Header.Set(httpsign.TimestampHeader, stale)
	handler(httptest.NewRecorder(), req)
	require.Empty(t, collector.Content())

	req = signedRequest(t, http.MethodPost, "/v1/markets/list", body)
	req.Header.Del(httpsign.SignatureHeader)
	handler(httptest.NewRecorder(), req)
	require.Empty(t, collector.Content())

	// A digest mismatch is a real auth event and is logged.
	req = signedRequest(t, http.MethodPost, "/v1/markets/list", body)
	req.Body = io.NopCloser(bytes.NewReader([]byte(`{"network":"mainnet"}`)))
	handler(httptest.NewRecorder(), req)
	require.Contains(t, collector.Content(), "signature mismatch")
}

func TestAuthMiddlewareMissingSecret(t *testing.T) {
	handler := newAuthHandler("")

	rec := httptest.NewRecorder()
	handler(rec, signedRequest(t, http.MethodPost, "/v1/markets/list", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "SERVER_MISCONFIGURED")
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates and stores id", func(t *testing.T) {
		var got string
		handler := NewRequestIDMiddleware().Handle(func(w http.ResponseWriter, r *http.Request) {
			got = RequestID(r.Context())
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodPost, "/v1/markets/list", nil))

		require.NotEmpty(t, got)
		require.NotEqual(t, "unknown", got)
		require.Equal(t, got, rec.Header().Get(HeaderRequestID))
	})

	t.Run("honors caller id", func(t *testing.T) {
		var got string
		handler := NewRequestIDMiddleware().Handle(func(w http.ResponseWriter, r *http.Request) {
			got = RequestID(r.Context())
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/markets/list", nil)
		req.Header.Set(HeaderRequestID, "caller-chosen")
		rec := httptest.NewRecorder()
		handler(rec, req)

		require.Equal(t, "caller-chosen", got)
		require.Equal(t, "caller-chosen", rec.Header().Get(HeaderRequestID))
	})

	t.Run("unknown outside request scope", func(t *testing.T) {
		require.Equal(t, "unknown", RequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
	})
}
