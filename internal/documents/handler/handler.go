package handler

import (
	"net/http"
	"time"

	"warga_portal_backend/internal/documents/domain"
	"warga_portal_backend/internal/documents/repository"
	"warga_portal_backend/internal/documents/service"
	"warga_portal_backend/internal/documents/transport"
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
	var req transport.CreateSuratRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	surat, err := h.svc.Create(c.Request.Context(), req.JenisSurat, req.Keperluan, req.PendudukID, req.RTID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, toResponse(*surat))
}

func (h *Handler) List(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]transport.SuratResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toResponse(s))
	}
	response.OK(c, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	surat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponse(*surat))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req transport.UpdateSuratStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	status, _ := domain.ParseStatus(req.Status)
	surat, err := h.svc.UpdateStatus(c.Request.Context(), id, status, req.Catatan, identity.UserID())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponse(*surat))
}

func parseFilter(c *gin.Context) (repository.Filter, bool) {
	var filter repository.Filter
	if raw := c.Query("rt_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid rt_id")
			return filter, false
		}
		filter.RTID = &id
	}
	if raw := c.Query("penduduk_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid penduduk_id")
			return filter, false
		}
		filter.PendudukID = &id
	}
	return filter, true
}

func toResponse(s repository.Surat) transport.SuratResponse {
	var processedBy *string
	if s.ProcessedBy != nil {
		v := s.ProcessedBy.String()
		processedBy = &v
	}
	var processedAt *string
	if s.ProcessedAt != nil {
		v := s.ProcessedAt.Format(time.RFC3339)
		processedAt = &v
	}

	return transport.SuratResponse{
		ID:           s.ID.String(),
		JenisSurat:   s.JenisSurat,
		Keperluan:    s.Keperluan,
		NomorSurat:   s.NomorSurat,
		Status:       s.Status,
		Catatan:      s.Catatan,
		PendudukID:   s.PendudukID.String(),
		PendudukNama: s.PendudukNama,
		RTID:         s.RTID.String(),
		RTNomor:      s.RTNomor,
		ProcessedBy:  processedBy,
		ProcessedAt:  processedAt,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}
