package model

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ TradeEventsModel = (*defaultTradeEventsModel)(nil)

// TradeEvent is one row of the mutation journal: a record that a trade
// mutation was accepted by the relay, keyed by the request id so operators
// can reconcile client reports against what actually went out.
type TradeEvent struct {
	RequestID  string
	Network    string
	Operation  string
	PairID     int64
	TradeIndex *int64
	Payload    []byte
	CreatedAt  time.Time
}

type (
	// TradeEventsModel is insert-only. The journal is an audit trail, not
	// the source of truth; position state always comes from the subgraph.
	TradeEventsModel interface {
		Insert(ctx context.Context, event *TradeEvent) error
	}

	defaultTradeEventsModel struct {
		conn sqlx.SqlConn
	}
)

// NewTradeEventsModel returns a model for the trade_events table.
func NewTradeEventsModel(conn sqlx.SqlConn) TradeEventsModel {
	return &defaultTradeEventsModel{conn: conn}
}

func (m *defaultTradeEventsModel) Insert(ctx context.Context, event *TradeEvent) error {
	const query = `
INSERT INTO trade_events (request_id, network, operation, pair_id, trade_index, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := m.conn.ExecCtx(ctx, query,
		event.RequestID,
		event.Network,
		event.Operation,
		event.PairID,
		event.TradeIndex,
		event.Payload,
		createdAt,
	)
	return err
}
