package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type ListPositionsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListPositionsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListPositionsLogic {
	return &ListPositionsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListPositionsLogic) ListPositions(req *types.ListPositionsReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := requireAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}
	return l.svcCtx.Adapter.ListPositions(l.ctx, req.Network, req.TraderAddress)
}
