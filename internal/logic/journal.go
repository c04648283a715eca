package logic

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/middleware"
	"ostium-api/internal/model"
	"ostium-api/internal/svc"
)

// journalTradeEvent records an accepted mutation in the Postgres journal.
// Best-effort: the submission already happened, so a journal failure is
// logged and swallowed rather than turned into a client-facing error.
func journalTradeEvent(ctx context.Context, svcCtx *svc.ServiceContext, operation, network string, pairID int, tradeIndex *int, payload map[string]any) {
	if svcCtx.TradeEvents == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logx.WithContext(ctx).Errorf("journal %s: encode payload: %v", operation, err)
		return
	}
	event := &model.TradeEvent{
		RequestID: middleware.RequestID(ctx),
		Network:   network,
		Operation: operation,
		PairID:    int64(pairID),
		Payload:   body,
	}
	if tradeIndex != nil {
		idx := int64(*tradeIndex)
		event.TradeIndex = &idx
	}
	if err := svcCtx.TradeEvents.Insert(ctx, event); err != nil {
		logx.WithContext(ctx).Errorf("journal %s: insert: %v", operation, err)
	}
}
