// Code scaffolded by goctl. Safe to edit.
package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"ostium-api/internal/logic"
	"ostium-api/internal/response"
	"ostium-api/internal/svc"
	"ostium-api/internal/types"
	"ostium-api/pkg/serviceerr"
)

func CancelOrderHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CancelOrderReq
		if err := httpx.Parse(r, &req); err != nil {
			response.Error(w, r, serviceerr.BadRequest(serviceerr.CodeValidation, err.Error()))
			return
		}

		l := logic.NewCancelOrderLogic(r.Context(), svcCtx)
		resp, err := l.CancelOrder(&req)
		if err != nil {
			response.Fail(w, r, "orders/cancel", err)
			return
		}
		response.OK(w, r, resp)
	}
}
