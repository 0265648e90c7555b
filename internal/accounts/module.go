// Package accounts provides the account lifecycle bounded context: role-scoped
// provisioning and permanent retirement of portal accounts.
package accounts

import (
	"warga_portal_backend/internal/accounts/handler"
	"warga_portal_backend/internal/accounts/repository"
	"warga_portal_backend/internal/accounts/service"
	"warga_portal_backend/internal/events"
	apphttp "warga_portal_backend/internal/http"
	"warga_portal_backend/platform/logger"
	"warga_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
}

// NewModule wires the account lifecycle. The AccountStore comes in as an
// interface so the auth module stays behind its adapter.
func NewModule(pool *pgxpool.Pool, accounts service.AccountStore, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(accounts, repo, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "accounts"
}

// RegisterRoutes mounts the lifecycle routes. They sit on the bare v1 group,
// not the token-middleware group, because the service resolves and authorizes
// the bearer token itself and must answer 401/403 with the lifecycle's own
// semantics.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	users := ctx.V1.Group("/users")
	users.POST("/provision", m.handler.Provision)
	users.POST("/retire", m.handler.Retire)
}

var _ apphttp.Module = (*Module)(nil)
