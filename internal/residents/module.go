// Package residents provides the penduduk registry.
package residents

import (
	apphttp "warga_portal_backend/internal/http"
	"warga_portal_backend/internal/residents/handler"
	"warga_portal_backend/internal/residents/repository"
	"warga_portal_backend/internal/residents/service"
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
	return "residents"
}

// RegisterRoutes mounts penduduk routes. The registry is maintained by the
// pengurus roles; residents read their own data through other surfaces.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	penduduk := ctx.Protected.Group("/penduduk")
	penduduk.Use(httpkit.RequireRole("admin", "rw", "rt"))
	penduduk.GET("", m.handler.List)
	penduduk.GET("/:id", m.handler.Get)
	penduduk.POST("", m.handler.Create)
	penduduk.PUT("/:id", m.handler.Update)
	penduduk.DELETE("/:id", m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
