package handler

import (
	"net/http"
	"time"

	"warga_portal_backend/internal/announcements/repository"
	"warga_portal_backend/internal/announcements/service"
	"warga_portal_backend/internal/announcements/transport"
	"warga_portal_backend/internal/http/response"
	"warga_portal_backend/platform/httpkit"
	"warga_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	fields, ok := h.bindFields(c)
	if !ok {
		return
	}

	ann, err := h.svc.Create(c.Request.Context(), identity.UserID(), fields)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, toResponse(*ann))
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]transport.AnnouncementResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(a))
	}
	response.OK(c, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	ann, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponse(*ann))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	fields, ok := h.bindFields(c)
	if !ok {
		return
	}

	ann, err := h.svc.Update(c.Request.Context(), id, fields)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponse(*ann))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Pengumuman berhasil dihapus"})
}

func (h *Handler) bindFields(c *gin.Context) (repository.Fields, bool) {
	var req transport.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return repository.Fields{}, false
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed")
		return repository.Fields{}, false
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid expires_at")
			return repository.Fields{}, false
		}
		expiresAt = &parsed
	}

	return repository.Fields{
		Judul:          req.Judul,
		Isi:            req.Isi,
		RWID:           req.RWID,
		RTID:           req.RTID,
		TargetAudience: req.TargetAudience,
		IsPinned:       req.IsPinned,
		ExpiresAt:      expiresAt,
	}, true
}

func toResponse(a repository.Announcement) transport.AnnouncementResponse {
	var expiresAt *string
	if a.ExpiresAt != nil {
		v := a.ExpiresAt.Format(time.RFC3339)
		expiresAt = &v
	}

	return transport.AnnouncementResponse{
		ID:             a.ID.String(),
		Judul:          a.Judul,
		Isi:            a.Isi,
		AuthorID:       a.AuthorID.String(),
		AuthorNama:     a.AuthorNama,
		RWID:           uuidToString(a.RWID),
		RTID:           uuidToString(a.RTID),
		TargetAudience: a.TargetAudience,
		IsPinned:       a.IsPinned,
		PublishedAt:    a.PublishedAt.Format(time.RFC3339),
		ExpiresAt:      expiresAt,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

func uuidToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
