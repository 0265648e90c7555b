// Package announcements provides pengumuman publishing with a realtime feed.
package announcements

import (
	"warga_portal_backend/internal/announcements/handler"
	"warga_portal_backend/internal/announcements/repository"
	"warga_portal_backend/internal/announcements/service"
	"warga_portal_backend/internal/announcements/sse"
	"warga_portal_backend/internal/events"
	apphttp "warga_portal_backend/internal/http"
	"warga_portal_backend/internal/scheduler"
	"warga_portal_backend/platform/httpkit"
	"warga_portal_backend/platform/logger"
	"warga_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
	feed    *sse.Service
}

// NewModule wires pengumuman storage, the SSE feed, and the expiry scheduler.
// expiry may be nil when Redis is not configured.
func NewModule(pool *pgxpool.Pool, bus events.Bus, expiry scheduler.ExpiryScheduler, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, expiry, log)
	feed := sse.New(log)

	r := &relay{feed: feed}
	r.register(bus)

	return &Module{
		handler: handler.New(svc, val),
		feed:    feed,
	}
}

func (m *Module) Name() string {
	return "announcements"
}

func (m *Module) Close() {
	m.feed.Close()
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	pengumuman := ctx.Protected.Group("/pengumuman")
	pengumuman.GET("", m.handler.List)
	pengumuman.GET("/:id", m.handler.Get)
	pengumuman.POST("", httpkit.RequireRole("admin", "rw", "rt"), m.handler.Create)
	pengumuman.PUT("/:id", httpkit.RequireRole("admin", "rw", "rt"), m.handler.Update)
	pengumuman.DELETE("/:id", httpkit.RequireRole("admin", "rw", "rt"), m.handler.Delete)

	// The feed rides the same auth middleware; EventSource clients pass the
	// token as a query param.
	pengumuman.GET("/stream", m.feed.Handler(func(c *gin.Context) (uuid.UUID, string, bool) {
		identity := httpkit.MustGetIdentity(c)
		if identity == nil {
			return uuid.Nil, "", false
		}
		return identity.UserID(), identity.Role(), true
	}))
}

var _ apphttp.Module = (*Module)(nil)
