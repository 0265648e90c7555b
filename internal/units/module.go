// Package units provides RW and RT management.
package units

import (
	apphttp "warga_portal_backend/internal/http"
	"warga_portal_backend/internal/units/handler"
	"warga_portal_backend/internal/units/repository"
	"warga_portal_backend/internal/units/service"
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
	return "units"
}

// RegisterRoutes mounts unit routes. Reads are open to any signed-in user;
// RW mutations are admin-only, RT mutations admin or rw.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rw := ctx.Protected.Group("/rw")
	rw.GET("", m.handler.ListRW)
	rw.GET("/:id", m.handler.GetRW)
	rw.POST("", httpkit.RequireRole("admin"), m.handler.CreateRW)
	rw.PUT("/:id", httpkit.RequireRole("admin"), m.handler.UpdateRW)
	rw.DELETE("/:id", httpkit.RequireRole("admin"), m.handler.DeleteRW)

	rt := ctx.Protected.Group("/rt")
	rt.GET("", m.handler.ListRT)
	rt.GET("/:id", m.handler.GetRT)
	rt.POST("", httpkit.RequireRole("admin", "rw"), m.handler.CreateRT)
	rt.PUT("/:id", httpkit.RequireRole("admin", "rw"), m.handler.UpdateRT)
	rt.DELETE("/:id", httpkit.RequireRole("admin", "rw"), m.handler.DeleteRT)
}

var _ apphttp.Module = (*Module)(nil)
