package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/ostium"
)

type ClosePositionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewClosePositionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ClosePositionLogic {
	return &ClosePositionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ClosePositionLogic) ClosePosition(req *types.ClosePositionReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := validateAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}

	result, err := l.svcCtx.Adapter.ClosePosition(l.ctx, ostium.ClosePositionRequest{
		Network:         req.Network,
		PairID:          req.PairID,
		TradeIndex:      req.TradeIndex,
		ClosePercentage: req.ClosePercentage,
		Slippage:        req.Slippage,
		TraderAddress:   req.TraderAddress,
		IdempotencyKey:  req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	journalTradeEvent(l.ctx, l.svcCtx, "close_position", req.Network, req.PairID, &req.TradeIndex, result)
	return result, nil
}
