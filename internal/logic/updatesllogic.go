package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/ostium"
)

type UpdateSLLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdateSLLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdateSLLogic {
	return &UpdateSLLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UpdateSLLogic) UpdateSL(req *types.UpdateSLReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := validatePositive("slPrice", req.SLPrice); err != nil {
		return nil, err
	}
	if err := validateAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}

	result, err := l.svcCtx.Adapter.UpdateStopLoss(l.ctx, ostium.StopAdjustRequest{
		Network:       req.Network,
		PairID:        req.PairID,
		TradeIndex:    req.TradeIndex,
		Price:         req.SLPrice,
		TraderAddress: req.TraderAddress,
	})
	if err != nil {
		return nil, err
	}

	journalTradeEvent(l.ctx, l.svcCtx, "update_sl", req.Network, req.PairID, &req.TradeIndex, result)
	return result, nil
}
