package handler

import (
	"net/http"
	"time"

	"warga_portal_backend/internal/http/response"
	"warga_portal_backend/internal/units/repository"
	"warga_portal_backend/internal/units/service"
	"warga_portal_backend/internal/units/transport"
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

func (h *Handler) CreateRW(c *gin.Context) {
	in, ok := h.bindUnit(c)
	if !ok {
		return
	}

	rw, err := h.svc.CreateRW(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, toRWResponse(*rw))
}

func (h *Handler) ListRW(c *gin.Context) {
	rws, err := h.svc.ListRW(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]transport.RWResponse, 0, len(rws))
	for _, rw := range rws {
		out = append(out, toRWResponse(rw))
	}
	response.OK(c, out)
}

func (h *Handler) GetRW(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rw, err := h.svc.GetRW(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toRWResponse(*rw))
}

func (h *Handler) UpdateRW(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := h.bindUnit(c)
	if !ok {
		return
	}

	if err := h.svc.UpdateRW(c.Request.Context(), id, in); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "RW berhasil diperbarui"})
}

func (h *Handler) DeleteRW(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteRW(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "RW berhasil dihapus"})
}

func (h *Handler) CreateRT(c *gin.Context) {
	var req struct {
		transport.UnitRequest
		RWID uuid.UUID `json:"rw_id" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	rt, err := h.svc.CreateRT(c.Request.Context(), req.RWID, service.UnitInput{
		Nomor:  req.Nomor,
		Nama:   req.Nama,
		Alamat: req.Alamat,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, toRTResponse(*rt))
}

func (h *Handler) ListRT(c *gin.Context) {
	var rwID *uuid.UUID
	if raw := c.Query("rw_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid rw_id")
			return
		}
		rwID = &id
	}

	rts, err := h.svc.ListRT(c.Request.Context(), rwID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]transport.RTResponse, 0, len(rts))
	for _, rt := range rts {
		out = append(out, toRTResponse(rt))
	}
	response.OK(c, out)
}

func (h *Handler) GetRT(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rt, err := h.svc.GetRT(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toRTResponse(*rt))
}

func (h *Handler) UpdateRT(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := h.bindUnit(c)
	if !ok {
		return
	}

	if err := h.svc.UpdateRT(c.Request.Context(), id, in); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "RT berhasil diperbarui"})
}

func (h *Handler) DeleteRT(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteRT(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "RT berhasil dihapus"})
}

func (h *Handler) bindUnit(c *gin.Context) (service.UnitInput, bool) {
	var req transport.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return service.UnitInput{}, false
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed")
		return service.UnitInput{}, false
	}
	return service.UnitInput{Nomor: req.Nomor, Nama: req.Nama, Alamat: req.Alamat}, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func toRWResponse(rw repository.RW) transport.RWResponse {
	return transport.RWResponse{
		ID:        rw.ID.String(),
		Nomor:     rw.Nomor,
		Nama:      rw.Nama,
		Alamat:    rw.Alamat,
		KetuaID:   uuidToString(rw.KetuaID),
		KetuaNama: rw.KetuaNama,
		CreatedAt: rw.CreatedAt.Format(time.RFC3339),
	}
}

func toRTResponse(rt repository.RT) transport.RTResponse {
	return transport.RTResponse{
		ID:        rt.ID.String(),
		RWID:      rt.RWID.String(),
		RWNomor:   rt.RWNomor,
		Nomor:     rt.Nomor,
		Nama:      rt.Nama,
		Alamat:    rt.Alamat,
		KetuaID:   uuidToString(rt.KetuaID),
		KetuaNama: rt.KetuaNama,
		CreatedAt: rt.CreatedAt.Format(time.RFC3339),
	}
}

func uuidToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
