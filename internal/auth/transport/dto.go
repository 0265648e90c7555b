// Package transport defines the auth module's request/response DTOs.
package transport

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
}

type ProfileResponse struct {
	ID    string  `json:"id"`
	Nama  string  `json:"nama"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  *string `json:"role,omitempty"`
	RTID  *string `json:"rt_id,omitempty"`
	RWID  *string `json:"rw_id,omitempty"`
}
