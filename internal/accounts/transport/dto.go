// Package transport defines the wire types for the account lifecycle routes.
package transport

import "github.com/google/uuid"

// ProvisionRequest is the body of POST /api/v1/users/provision.
type ProvisionRequest struct {
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8"`
	Nama       string     `json:"nama" validate:"required"`
	Role       string     `json:"role" validate:"required,oneof=admin rw rt penduduk"`
	RWID       *uuid.UUID `json:"rw_id,omitempty"`
	RTID       *uuid.UUID `json:"rt_id,omitempty"`
	PendudukID *uuid.UUID `json:"penduduk_id,omitempty"`
}

// ProvisionResponse mirrors the original creation response shape.
type ProvisionResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// RetireRequest is the body of POST /api/v1/users/retire. At least one of
// the two identifiers must be present.
type RetireRequest struct {
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	PendudukID *uuid.UUID `json:"penduduk_id,omitempty"`
}

type RetireResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
