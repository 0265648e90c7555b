package handler

import (
	"net/http"
	"time"

	"warga_portal_backend/internal/complaints/domain"
	"warga_portal_backend/internal/complaints/repository"
	"warga_portal_backend/internal/complaints/service"
	"warga_portal_backend/internal/complaints/transport"
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
	var req transport.CreateLaporanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	laporan, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Judul:      req.Judul,
		Deskripsi:  req.Deskripsi,
		Kategori:   req.Kategori,
		Prioritas:  req.Prioritas,
		PendudukID: req.PendudukID,
		RTID:       req.RTID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, toResponse(*laporan))
}

func (h *Handler) List(c *gin.Context) {
	var filter repository.Filter
	if raw := c.Query("rt_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid rt_id")
			return
		}
		filter.RTID = &id
	}
	if raw := c.Query("penduduk_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid penduduk_id")
			return
		}
		filter.PendudukID = &id
	}

	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]transport.LaporanResponse, 0, len(items))
	for _, l := range items {
		out = append(out, toResponse(l))
	}
	response.OK(c, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	laporan, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponse(*laporan))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req transport.UpdateLaporanStatusRequest
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
	laporan, err := h.svc.UpdateStatus(c.Request.Context(), id, status, req.Tanggapan, identity.UserID())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponse(*laporan))
}

func toResponse(l repository.Laporan) transport.LaporanResponse {
	var processedBy *string
	if l.ProcessedBy != nil {
		v := l.ProcessedBy.String()
		processedBy = &v
	}
	var processedAt *string
	if l.ProcessedAt != nil {
		v := l.ProcessedAt.Format(time.RFC3339)
		processedAt = &v
	}

	return transport.LaporanResponse{
		ID:           l.ID.String(),
		Judul:        l.Judul,
		Deskripsi:    l.Deskripsi,
		Kategori:     l.Kategori,
		Prioritas:    l.Prioritas,
		Status:       l.Status,
		Tanggapan:    l.Tanggapan,
		PendudukID:   l.PendudukID.String(),
		PendudukNama: l.PendudukNama,
		RTID:         l.RTID.String(),
		RTNomor:      l.RTNomor,
		ProcessedBy:  processedBy,
		ProcessedAt:  processedAt,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}
