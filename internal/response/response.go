// Package response renders the service's response envelope. Every payload,
// success or failure, carries meta with the request id and an RFC 3339
// timestamp so callers can correlate retries against server logs.
package response

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"ostium-api/internal/middleware"
	"ostium-api/pkg/serviceerr"
)

type meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Meta    meta `json:"meta"`
}

type errorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Retryable *bool          `json:"retryable,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
	Meta    meta      `json:"meta"`
}

func buildMeta(ctx context.Context) meta {
	return meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		RequestID: middleware.RequestID(ctx),
	}
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, r *http.Request, data any) {
	httpx.WriteJsonCtx(r.Context(), w, http.StatusOK, successEnvelope{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r.Context()),
	})
}

// Fail writes an error envelope. Classified errors keep their status, code
// and details; anything else is logged in full and surfaces as a generic
// internal error so upstream stack detail never reaches the client.
func Fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var svcErr *serviceerr.Error
	if !errors.As(err, &svcErr) {
		logx.WithContext(r.Context()).Errorf("unhandled error in %s: %v", operation, err)
		svcErr = serviceerr.Internal(operation, err)
	}
	Error(w, r, svcErr)
}

// Error writes a classified error envelope.
func Error(w http.ResponseWriter, r *http.Request, svcErr *serviceerr.Error) {
	httpx.WriteJsonCtx(r.Context(), w, svcErr.Status, errorEnvelope{
		Success: false,
		Error: errorBody{
			Code:      svcErr.Code,
			Message:   svcErr.Message,
			Details:   svcErr.Details,
			Retryable: svcErr.Retryable,
		},
		Meta: buildMeta(r.Context()),
	})
}
