package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type RolloverRateLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRolloverRateLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RolloverRateLogic {
	return &RolloverRateLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RolloverRateLogic) RolloverRate(req *types.RolloverRateReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	return l.svcCtx.Adapter.GetRolloverRate(l.ctx, req.Network, req.PairID, req.PeriodHours)
}
