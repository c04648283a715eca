package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type FundingRateLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewFundingRateLogic(ctx context.Context, svcCtx *svc.ServiceContext) *FundingRateLogic {
	return &FundingRateLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *FundingRateLogic) FundingRate(req *types.FundingRateReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	return l.svcCtx.Adapter.GetFundingRate(l.ctx, req.Network, req.PairID, req.PeriodHours)
}
