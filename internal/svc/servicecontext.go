package svc

import (
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"ostium-api/internal/config"
	"ostium-api/internal/middleware"
	"ostium-api/internal/model"
	"ostium-api/pkg/httpsign"
	"ostium-api/pkg/ostium"
)

type ServiceContext struct {
	Config config.Config

	Auth      *middleware.AuthMiddleware
	RequestID *middleware.RequestIDMiddleware

	Adapter *ostium.Adapter

	// Optional mutation journal, wired only when a Postgres DSN is
	// configured. Logic treats a nil model as journaling disabled.
	DBConn      sqlx.SqlConn
	TradeEvents model.TradeEventsModel
}

func NewServiceContext(c config.Config) *ServiceContext {
	verifier := httpsign.New(
		c.Auth.Secret,
		time.Duration(c.Auth.ToleranceMs)*time.Millisecond,
	)

	adapter := ostium.NewAdapter(ostium.Settings{
		Enabled:            c.Ostium.Enabled,
		DelegatePrivateKey: c.Ostium.DelegatePrivateKey,
		Networks:           c.NetworksConfig(),
	})

	svc := &ServiceContext{
		Config:    c,
		Auth:      middleware.NewAuthMiddleware(verifier),
		RequestID: middleware.NewRequestIDMiddleware(),
		Adapter:   adapter,
	}

	if c.Postgres.DSN != "" {
		conn := sqlx.NewSqlConn("pgx", c.Postgres.DSN)
		svc.DBConn = conn
		svc.TradeEvents = model.NewTradeEventsModel(conn)
	}
	return svc
}
