package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HealthLogic) Health() *types.HealthResp {
	return &types.HealthResp{Status: "ok", Service: l.svcCtx.Config.Name}
}

func (l *HealthLogic) Ready() *types.ReadyResp {
	return &types.ReadyResp{Status: "ready", Ostium: l.svcCtx.Config.Ostium.Enabled}
}
