// Package adapter bridges the account lifecycle to the auth module without
// the lifecycle service importing auth directly.
package adapter

import (
	"context"

	"warga_portal_backend/internal/accounts/service"
	authservice "warga_portal_backend/internal/auth/service"

	"github.com/google/uuid"
)

// AccountStore implements the lifecycle's identity-provider port on top of
// the auth service.
type AccountStore struct {
	auth *authservice.Service
}

func NewAccountStore(auth *authservice.Service) *AccountStore {
	return &AccountStore{auth: auth}
}

func (a *AccountStore) CreateIdentity(ctx context.Context, email, password, displayName string) (uuid.UUID, error) {
	return a.auth.CreateIdentity(ctx, email, password, displayName)
}

func (a *AccountStore) DeleteIdentity(ctx context.Context, id uuid.UUID) error {
	return a.auth.DeleteIdentity(ctx, id)
}

func (a *AccountStore) ResolveToken(ctx context.Context, rawToken string) (uuid.UUID, error) {
	return a.auth.ResolveToken(ctx, rawToken)
}

var _ service.AccountStore = (*AccountStore)(nil)
