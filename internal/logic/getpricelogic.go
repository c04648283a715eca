package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/serviceerr"
)

type GetPriceLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetPriceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetPriceLogic {
	return &GetPriceLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetPriceLogic) GetPrice(req *types.GetPriceReq) (map[string]any, error) {
	if err := validateNetwork(req.Network); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Base) == "" {
		return nil, serviceerr.BadRequest(serviceerr.CodeValidation, "base is required")
	}
	quote := req.Quote
	if strings.TrimSpace(quote) == "" {
		quote = "USD"
	}
	return l.svcCtx.Adapter.GetMarketPrice(l.ctx, req.Network, req.Base, quote, req.Detailed)
}
