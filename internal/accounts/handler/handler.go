package handler

import (
	"net/http"

	"warga_portal_backend/internal/accounts/policy"
	"warga_portal_backend/internal/accounts/service"
	"warga_portal_backend/internal/accounts/transport"
	"warga_portal_backend/internal/http/response"
	"warga_portal_backend/platform/httpkit"
	"warga_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Provision handles POST /users/provision. The route does its own token
// handling because the authorization decision needs the caller's directory
// role, not just a valid token, and the service owns that lookup.
func (h *Handler) Provision(c *gin.Context) {
	token, _ := httpkit.ExtractBearerToken(c.GetHeader("Authorization"))

	var req transport.ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.val.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	role, _ := policy.Parse(req.Role)

	result, err := h.svc.Provision(c.Request.Context(), token, service.ProvisionInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.Nama,
		Role:        role,
		RWID:        req.RWID,
		RTID:        req.RTID,
		ResidentID:  req.PendudukID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, transport.ProvisionResponse{
		Success: true,
		UserID:  result.UserID.String(),
		Message: result.Message,
	})
}

// Retire handles POST /users/retire.
func (h *Handler) Retire(c *gin.Context) {
	token, _ := httpkit.ExtractBearerToken(c.GetHeader("Authorization"))

	var req transport.RetireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.svc.Retire(c.Request.Context(), token, service.RetireInput{
		UserID:     req.UserID,
		ResidentID: req.PendudukID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, transport.RetireResponse{
		Success: true,
		Message: result.Message,
	})
}
