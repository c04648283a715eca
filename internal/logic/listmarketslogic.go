package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type ListMarketsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListMarketsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListMarketsLogic {
	return &ListMarketsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListMarketsLogic) ListMarkets(req *types.ListMarketsReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	return l.svcCtx.Adapter.ListMarkets(l.ctx, req.Network)
}
