package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type MarketDetailsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarketDetailsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarketDetailsLogic {
	return &MarketDetailsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *MarketDetailsLogic) MarketDetails(req *types.MarketDetailsReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	return l.svcCtx.Adapter.GetMarketDetails(l.ctx, req.Network, req.PairID)
}
