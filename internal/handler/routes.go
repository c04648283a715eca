// Code scaffolded by goctl. Safe to edit.
package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"ostium-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	// Liveness probes are unauthenticated and carry no request id.
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/ready",
				Handler: ReadyHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.RequestID.Handle, serverCtx.Auth.Handle},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/markets/list",
					Handler: ListMarketsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/prices/get",
					Handler: GetPriceHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/markets/funding-rate",
					Handler: FundingRateHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/markets/rollover-rate",
					Handler: RolloverRateHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/markets/details",
					Handler: MarketDetailsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/accounts/balance",
					Handler: BalanceHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/accounts/history",
					Handler: HistoryHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/faucet/request",
					Handler: FaucetHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/positions/list",
					Handler: ListPositionsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/positions/open",
					Handler: OpenPositionHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/positions/close",
					Handler: ClosePositionHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/positions/update-sl",
					Handler: UpdateSLHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/positions/update-tp",
					Handler: UpdateTPHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/positions/metrics",
					Handler: PositionMetricsHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/orders/list",
					Handler: ListOrdersHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/orders/cancel",
					Handler: CancelOrderHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/orders/update",
					Handler: UpdateOrderHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/orders/track",
					Handler: TrackOrderHandler(serverCtx),
				},
			}...,
		),
		rest.WithPrefix("/v1"),
	)
}
