package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type PositionMetricsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPositionMetricsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PositionMetricsLogic {
	return &PositionMetricsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *PositionMetricsLogic) PositionMetrics(req *types.PositionMetricsReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := validateAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}
	return l.svcCtx.Adapter.PositionMetrics(l.ctx, req.Network, req.PairID, req.TradeIndex, req.TraderAddress)
}
