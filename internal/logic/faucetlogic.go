package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type FaucetLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewFaucetLogic(ctx context.Context, svcCtx *svc.ServiceContext) *FaucetLogic {
	return &FaucetLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *FaucetLogic) Faucet(req *types.FaucetReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if err := validateAddress("traderAddress", req.TraderAddress); err != nil {
		return nil, err
	}
	return l.svcCtx.Adapter.RequestFaucet(l.ctx, req.Network, req.TraderAddress)
}
