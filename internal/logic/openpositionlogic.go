package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/ostium"
)

type OpenPositionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewOpenPositionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *OpenPositionLogic {
	return &OpenPositionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *OpenPositionLogic) OpenPosition(req *types.OpenPositionReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := validateSide(req.Side); err != nil {
		return nil, err
	}
	if err := validateOrderType(req.OrderType); err != nil {
		return nil, err
	}
	if err := validatePositive("collateral", req.Collateral); err != nil {
		return nil, err
	}
	if err := validatePositive("leverage", req.Leverage); err != nil {
		return nil, err
	}
	if err := validateAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}

	result, err := l.svcCtx.Adapter.OpenPosition(l.ctx, ostium.OpenPositionRequest{
		Network:        req.Network,
		Market:         req.Market,
		Side:           req.Side,
		Collateral:     req.Collateral,
		Leverage:       req.Leverage,
		OrderType:      req.OrderType,
		TriggerPrice:   req.TriggerPrice,
		Slippage:       req.Slippage,
		StopLoss:       req.SLPrice,
		TakeProfit:     req.TPPrice,
		TraderAddress:  req.TraderAddress,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	if pairID, ok := result["pairId"].(int); ok {
		journalTradeEvent(l.ctx, l.svcCtx, "open_position", req.Network, pairID, nil, result)
	}
	return result, nil
}
