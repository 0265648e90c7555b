package handler

import (
	"net/http"
	"time"

	"warga_portal_backend/internal/http/response"
	"warga_portal_backend/internal/residents/repository"
	"warga_portal_backend/internal/residents/service"
	"warga_portal_backend/internal/residents/transport"
	"warga_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) Create(c *gin.Context) {
	fields, ok := h.bindFields(c)
	if !ok {
		return
	}

	res, err := h.svc.Create(c.Request.Context(), fields)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, toResponse(*res))
}

func (h *Handler) List(c *gin.Context) {
	var rtID *uuid.UUID
	if raw := c.Query("rt_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid rt_id")
			return
		}
		rtID = &id
	}

	residents, err := h.svc.List(c.Request.Context(), rtID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out := make([]transport.ResidentResponse, 0, len(residents))
	for _, res := range residents {
		out = append(out, toResponse(res))
	}
	response.OK(c, out)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return
	}

	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponse(*res))
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

	if err := h.svc.Update(c.Request.Context(), id, fields); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Data penduduk berhasil diperbarui"})
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
	response.OK(c, gin.H{"message": "Data penduduk berhasil dihapus"})
}

func (h *Handler) bindFields(c *gin.Context) (repository.Fields, bool) {
	var req transport.ResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return repository.Fields{}, false
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed")
		return repository.Fields{}, false
	}

	var tanggalLahir *time.Time
	if req.TanggalLahir != nil && *req.TanggalLahir != "" {
		parsed, err := time.Parse(dateLayout, *req.TanggalLahir)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid tanggal_lahir")
			return repository.Fields{}, false
		}
		tanggalLahir = &parsed
	}

	return repository.Fields{
		Nama:               req.Nama,
		NIK:                req.NIK,
		NoKK:               req.NoKK,
		JenisKelamin:       req.JenisKelamin,
		TempatLahir:        req.TempatLahir,
		TanggalLahir:       tanggalLahir,
		Agama:              req.Agama,
		StatusPerkawinan:   req.StatusPerkawinan,
		Pekerjaan:          req.Pekerjaan,
		StatusKependudukan: req.StatusKependudukan,
		Alamat:             req.Alamat,
		Phone:              req.Phone,
		RTID:               req.RTID,
	}, true
}

func toResponse(res repository.Resident) transport.ResidentResponse {
	var tanggalLahir *string
	if res.TanggalLahir != nil {
		s := res.TanggalLahir.Format(dateLayout)
		tanggalLahir = &s
	}
	var userID *string
	if res.UserID != nil {
		s := res.UserID.String()
		userID = &s
	}

	return transport.ResidentResponse{
		ID:                 res.ID.String(),
		Nama:               res.Nama,
		NIK:                res.NIK,
		NoKK:               res.NoKK,
		JenisKelamin:       res.JenisKelamin,
		TempatLahir:        res.TempatLahir,
		TanggalLahir:       tanggalLahir,
		Agama:              res.Agama,
		StatusPerkawinan:   res.StatusPerkawinan,
		Pekerjaan:          res.Pekerjaan,
		StatusKependudukan: res.StatusKependudukan,
		Alamat:             res.Alamat,
		Phone:              res.Phone,
		RTID:               res.RTID.String(),
		RTNomor:            res.RTNomor,
		UserID:             userID,
		CreatedAt:          res.CreatedAt.Format(time.RFC3339),
	}
}
