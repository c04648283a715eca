package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type BalanceLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBalanceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BalanceLogic {
	return &BalanceLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *BalanceLogic) Balance(req *types.BalanceReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := requireAddress("address", req.Address); err != nil {
		return nil, err
	}
	return l.svcCtx.Adapter.GetBalance(l.ctx, req.Network, req.Address)
}
