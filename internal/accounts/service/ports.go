package service

import (
	"context"
	"errors"

	"warga_portal_backend/internal/accounts/policy"

	"github.com/google/uuid"
)

// Sentinel errors shared by the store implementations and their fakes.
var (
	// ErrNotFound marks a referenced row (resident, profile) that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrRoleNotAssigned marks an account with no role assignment row.
	ErrRoleNotAssigned = errors.New("role not assigned")
	// ErrResidentNotLinked marks a resident record with no linked account.
	ErrResidentNotLinked = errors.New("resident has no linked account")
)

// AccountStore abstracts the external identity provider: credential identity
// creation and destruction, and bearer-token resolution.
type AccountStore interface {
	// CreateIdentity creates a credential identity and returns its id.
	// Duplicate emails are rejected by the provider's uniqueness constraint.
	CreateIdentity(ctx context.Context, email, password, displayName string) (uuid.UUID, error)
	// DeleteIdentity permanently destroys an identity. Irreversible.
	DeleteIdentity(ctx context.Context, id uuid.UUID) error
	// ResolveToken validates a bearer token and returns the live identity
	// behind it.
	ResolveToken(ctx context.Context, rawToken string) (uuid.UUID, error)
}

// ProfileUpdate carries the optional profile fields written during
// provisioning. Nil unit pointers leave the existing values untouched.
type ProfileUpdate struct {
	Nama string
	RTID *uuid.UUID
	RWID *uuid.UUID
}

// DirectoryStore abstracts the relational directory: role assignments,
// profiles, and the weak back-references held by units and resident records.
// Implementations distinguish not-found from transient failure via the
// sentinel errors above.
type DirectoryStore interface {
	// RoleOf returns the account's role assignment, or ErrRoleNotAssigned.
	RoleOf(ctx context.Context, accountID uuid.UUID) (policy.Role, error)
	// AssignRole inserts the account's single role assignment row.
	AssignRole(ctx context.Context, accountID uuid.UUID, role policy.Role) error
	// RemoveRole deletes the account's role assignment row, if any.
	RemoveRole(ctx context.Context, accountID uuid.UUID) error

	// UpdateProfile writes profile fields for the account.
	UpdateProfile(ctx context.Context, accountID uuid.UUID, update ProfileUpdate) error
	// DeleteProfile deletes the account's profile row, if any.
	DeleteProfile(ctx context.Context, accountID uuid.UUID) error

	// ResidentAccount resolves a resident record to its linked account id.
	// Returns ErrNotFound for a missing record and ErrResidentNotLinked for
	// an unlinked one.
	ResidentAccount(ctx context.Context, residentID uuid.UUID) (uuid.UUID, error)
	// LinkResident sets the resident record's weak account reference.
	LinkResident(ctx context.Context, residentID, accountID uuid.UUID) error
	// UnlinkResidents clears the weak reference on every resident record
	// pointing at the account.
	UnlinkResidents(ctx context.Context, accountID uuid.UUID) error

	// SetUnitLeader points an organizational unit's leader reference at the account.
	SetUnitLeader(ctx context.Context, unitID, accountID uuid.UUID) error
	// SetSubUnitLeader points a sub-unit's leader reference at the account.
	SetSubUnitLeader(ctx context.Context, subUnitID, accountID uuid.UUID) error
	// ClearUnitLeader nulls the leader reference on every unit pointing at the account.
	ClearUnitLeader(ctx context.Context, accountID uuid.UUID) error
	// ClearSubUnitLeader nulls the leader reference on every sub-unit pointing at the account.
	ClearSubUnitLeader(ctx context.Context, accountID uuid.UUID) error
}
