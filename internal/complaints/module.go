// Package complaints provides laporan (resident complaint) handling.
package complaints

import (
	"warga_portal_backend/internal/complaints/handler"
	"warga_portal_backend/internal/complaints/repository"
	"warga_portal_backend/internal/complaints/service"
	apphttp "warga_portal_backend/internal/http"
	"warga_portal_backend/platform/httpkit"
	"warga_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "complaints"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	laporan := ctx.Protected.Group("/laporan")
	laporan.GET("", m.handler.List)
	laporan.GET("/:id", m.handler.Get)
	laporan.POST("", m.handler.Create)
	laporan.PATCH("/:id/status", httpkit.RequireRole("admin", "rw", "rt"), m.handler.UpdateStatus)
}

var _ apphttp.Module = (*Module)(nil)
