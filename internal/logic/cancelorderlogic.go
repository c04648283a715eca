package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/ostium"
)

type CancelOrderLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCancelOrderLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CancelOrderLogic {
	return &CancelOrderLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CancelOrderLogic) CancelOrder(req *types.CancelOrderReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := validateAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}

	result, err := l.svcCtx.Adapter.CancelOrder(l.ctx, ostium.CancelOrderRequest{
		Network:        req.Network,
		PairID:         req.PairID,
		TradeIndex:     req.TradeIndex,
		TraderAddress:  req.TraderAddress,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	journalTradeEvent(l.ctx, l.svcCtx, "cancel_order", req.Network, req.PairID, &req.TradeIndex, result)
	return result, nil
}
