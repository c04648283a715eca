package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/ostium"
	"ostium-api/pkg/serviceerr"
)

type UpdateOrderLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdateOrderLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdateOrderLogic {
	return &UpdateOrderLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *UpdateOrderLogic) UpdateOrder(req *types.UpdateOrderReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if req.Price == nil && req.TPPrice == nil && req.SLPrice == nil {
		return nil, serviceerr.BadRequest(serviceerr.CodeValidation,
			"at least one of price, tpPrice or slPrice is required")
	}
	if err := validateAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}

	result, err := l.svcCtx.Adapter.UpdateOrder(l.ctx, ostium.UpdateOrderRequest{
		Network:       req.Network,
		PairID:        req.PairID,
		TradeIndex:    req.TradeIndex,
		Price:         req.Price,
		TakeProfit:    req.TPPrice,
		StopLoss:      req.SLPrice,
		TraderAddress: req.TraderAddress,
	})
	if err != nil {
		return nil, err
	}

	journalTradeEvent(l.ctx, l.svcCtx, "update_order", req.Network, req.PairID, &req.TradeIndex, result)
	return result, nil
}
