package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is the authenticated caller as seen by handlers. It hides the
// gin context keys so handler code never reads them directly.
type Identity interface {
	UserID() uuid.UUID
	Role() string
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	role          string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID     { return i.userID }
func (i *identity) Role() string          { return i.role }
func (i *identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity reads the caller set by AuthRequired. On routes without that
// middleware it returns an unauthenticated identity rather than panicking.
func GetIdentity(c *gin.Context) Identity {
	rawUserID, ok := c.Get(ContextUserIDKey)
	if !ok {
		return &identity{}
	}

	userID, ok := rawUserID.(uuid.UUID)
	if !ok {
		return &identity{}
	}

	var role string
	if rawRole, ok := c.Get(ContextRoleKey); ok {
		role, _ = rawRole.(string)
	}

	return &identity{userID: userID, role: role, authenticated: true}
}

// MustGetIdentity is GetIdentity for routes that require authentication.
// Aborts the request with 401 and returns nil when no caller is present.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
