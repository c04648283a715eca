package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/serviceerr"
)

type TrackOrderLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTrackOrderLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TrackOrderLogic {
	return &TrackOrderLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *TrackOrderLogic) TrackOrder(req *types.TrackOrderReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, serviceerr.BadRequest(serviceerr.CodeValidation, "orderId is required")
	}
	return l.svcCtx.Adapter.TrackOrder(l.ctx, req.Network, req.OrderID)
}
