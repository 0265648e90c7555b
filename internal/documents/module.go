// Package documents provides surat (letter request) processing.
package documents

import (
	"warga_portal_backend/internal/documents/handler"
	"warga_portal_backend/internal/documents/repository"
	"warga_portal_backend/internal/documents/service"
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
	return "documents"
}

// RegisterRoutes mounts surat routes. Anyone signed in may file and read
// requests; only the pengurus roles process them.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	surat := ctx.Protected.Group("/surat")
	surat.GET("", m.handler.List)
	surat.GET("/:id", m.handler.Get)
	surat.POST("", m.handler.Create)
	surat.PATCH("/:id/status", httpkit.RequireRole("admin", "rw", "rt"), m.handler.UpdateStatus)
}

var (
	_ apphttp.Module = (*Module)(nil)
	_ service.Store  = (*repository.Repository)(nil)
)
