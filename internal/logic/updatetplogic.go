package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/ostium"
)

type UpdateTPLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdateTPLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdateTPLogic {
	return &UpdateTPLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UpdateTPLogic) UpdateTP(req *types.UpdateTPReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := validatePositive("tpPrice", req.TPPrice); err != nil {
		return nil, err
	}
	if err := validateAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}

	result, err := l.svcCtx.Adapter.UpdateTakeProfit(l.ctx, ostium.StopAdjustRequest{
		Network:       req.Network,
		PairID:        req.PairID,
		TradeIndex:    req.TradeIndex,
		Price:         req.TPPrice,
		TraderAddress: req.TraderAddress,
	})
	if err != nil {
		return nil, err
	}

	journalTradeEvent(l.ctx, l.svcCtx, "update_tp", req.Network, req.PairID, &req.TradeIndex, result)
	return result, nil
}
