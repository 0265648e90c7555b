// Package service implements the role-scoped account lifecycle: provisioning
// an account for a role and permanently retiring one, including the ordering
// and compensation rules that keep the identity provider and the directory
// consistent with each other.
package service

import (
	"context"
	"fmt"
	"strings"

	"warga_portal_backend/internal/accounts/policy"
	"warga_portal_backend/internal/events"
	"warga_portal_backend/platform/apperr"
	"warga_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	accounts AccountStore
	dir      DirectoryStore
	bus      events.Bus
	log      *logger.Logger
}

func New(accounts AccountStore, dir DirectoryStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{accounts: accounts, dir: dir, bus: bus, log: log}
}

// ProvisionInput is the desired account. Unit and resident references are
// optional; which ones apply depends on the role.
type ProvisionInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        policy.Role
	RWID        *uuid.UUID
	RTID        *uuid.UUID
	ResidentID  *uuid.UUID
}

type ProvisionResult struct {
	UserID  uuid.UUID
	Message string
}

type RetireInput struct {
	UserID     *uuid.UUID
	ResidentID *uuid.UUID
}

type RetireResult struct {
	Message string
}

// Provision creates a credential identity and its directory rows for the
// requested role, on behalf of the caller identified by rawToken.
//
// Only the identity/role-assignment pair is a hard invariant: a failed role
// insert unwinds the identity creation. The profile write and the weak
// back-references (resident link, unit leader pointers) are best-effort;
// their failure is logged and does not discard a role-bearing account.
func (s *Service) Provision(ctx context.Context, rawToken string, in ProvisionInput) (ProvisionResult, error) {
	callerID, callerRole, err := s.resolveCaller(ctx, rawToken)
	if err != nil {
		return ProvisionResult{}, err
	}

	if in.Email == "" || in.Password == "" || in.DisplayName == "" || !in.Role.Known() {
		return ProvisionResult{}, apperr.Validation("missing required fields")
	}

	if !policy.CanProvision(callerRole, in.Role) {
		return ProvisionResult{}, apperr.Forbidden(fmt.Sprintf("%s may not create %s accounts", callerRole, in.Role))
	}

	userID, err := s.accounts.CreateIdentity(ctx, in.Email, in.Password, in.DisplayName)
	if err != nil {
		return ProvisionResult{}, apperr.Wrap(apperr.KindBadRequest, err.Error(), err).WithOp("accounts.Provision")
	}

	if err := s.dir.UpdateProfile(ctx, userID, ProfileUpdate{Nama: in.DisplayName, RTID: in.RTID, RWID: in.RWID}); err != nil {
		s.log.Warn("profile update failed during provisioning", "user_id", userID, "error", err)
	}

	if err := s.dir.AssignRole(ctx, userID, in.Role); err != nil {
		s.log.Error("role assignment failed, rolling back identity", "user_id", userID, "role", in.Role, "error", err)
		if delErr := s.accounts.DeleteIdentity(ctx, userID); delErr != nil {
			s.log.Error("identity rollback failed, orphan identity left behind", "user_id", userID, "error", delErr)
		}
		return ProvisionResult{}, apperr.Wrap(apperr.KindInternal, "failed to assign role", err).WithOp("accounts.Provision")
	}

	if in.ResidentID != nil {
		if err := s.dir.LinkResident(ctx, *in.ResidentID, userID); err != nil {
			s.log.Warn("resident link failed during provisioning", "user_id", userID, "penduduk_id", *in.ResidentID, "error", err)
		}
	}

	if in.Role == policy.RoleRT && in.RTID != nil {
		if err := s.dir.SetSubUnitLeader(ctx, *in.RTID, userID); err != nil {
			s.log.Warn("rt leader update failed during provisioning", "user_id", userID, "rt_id", *in.RTID, "error", err)
		}
	}

	if in.Role == policy.RoleRW && in.RWID != nil {
		if err := s.dir.SetUnitLeader(ctx, *in.RWID, userID); err != nil {
			s.log.Warn("rw leader update failed during provisioning", "user_id", userID, "rw_id", *in.RWID, "error", err)
		}
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.AccountProvisioned{
			BaseEvent:   events.NewBaseEvent(),
			UserID:      userID,
			Email:       in.Email,
			DisplayName: in.DisplayName,
			Role:        string(in.Role),
		})
	}

	s.log.Info("account provisioned", "user_id", userID, "role", in.Role, "by", callerID)

	return ProvisionResult{
		UserID:  userID,
		Message: fmt.Sprintf("Akun %s berhasil dibuat", strings.ToUpper(string(in.Role))),
	}, nil
}

// Retire permanently deletes an account. Directory references are cleared
// first, in order, so that referential integrity survives even if the final
// identity deletion fails; that failure leaves a reference-cleared but live
// identity, which is surfaced to the caller rather than masked.
func (s *Service) Retire(ctx context.Context, rawToken string, in RetireInput) (RetireResult, error) {
	callerID, callerRole, err := s.resolveCaller(ctx, rawToken)
	if err != nil {
		return RetireResult{}, err
	}

	if in.UserID == nil && in.ResidentID == nil {
		return RetireResult{}, apperr.Validation("user_id or penduduk_id is required")
	}

	targetID := uuid.Nil
	if in.UserID != nil {
		targetID = *in.UserID
	} else {
		resolved, err := s.dir.ResidentAccount(ctx, *in.ResidentID)
		if err != nil {
			return RetireResult{}, apperr.NotFound("resident not found or has no linked account")
		}
		targetID = resolved
	}

	if targetID == callerID {
		return RetireResult{}, apperr.Forbidden("cannot retire your own account")
	}

	// An orphan identity with no role assignment may only be retired by an
	// administrator.
	targetRole, err := s.dir.RoleOf(ctx, targetID)
	if err != nil {
		targetRole = policy.RoleUnknown
	}

	if !policy.CanRetire(callerRole, targetRole) {
		return RetireResult{}, apperr.Forbidden(fmt.Sprintf("%s may not retire this account", callerRole))
	}

	// Best-effort reference cleanup before the irreversible deletion. Each
	// step is independent and idempotent; a failure is logged and the
	// sequence continues.
	cleanups := []struct {
		name string
		fn   func(context.Context, uuid.UUID) error
	}{
		{"unlink residents", s.dir.UnlinkResidents},
		{"clear rw leader", s.dir.ClearUnitLeader},
		{"clear rt leader", s.dir.ClearSubUnitLeader},
		{"remove role", s.dir.RemoveRole},
		{"delete profile", s.dir.DeleteProfile},
	}
	for _, step := range cleanups {
		if err := step.fn(ctx, targetID); err != nil {
			s.log.Warn("retirement cleanup step failed", "step", step.name, "user_id", targetID, "error", err)
		}
	}

	if err := s.accounts.DeleteIdentity(ctx, targetID); err != nil {
		s.log.Error("identity deletion failed after directory cleanup", "user_id", targetID, "error", err)
		return RetireResult{}, apperr.Wrap(apperr.KindInternal, "failed to delete user account", err).WithOp("accounts.Retire")
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.AccountRetired{
			BaseEvent: events.NewBaseEvent(),
			UserID:    targetID,
			Actor:     callerID,
		})
	}

	s.log.Info("account retired", "user_id", targetID, "by", callerID)

	return RetireResult{Message: "User account permanently deleted"}, nil
}

// resolveCaller authenticates the bearer token and loads the caller's role
// from the directory. A caller without a role assignment cannot manage
// accounts at all.
func (s *Service) resolveCaller(ctx context.Context, rawToken string) (uuid.UUID, policy.Role, error) {
	if rawToken == "" {
		return uuid.Nil, policy.RoleUnknown, apperr.Unauthorized("missing authorization")
	}

	callerID, err := s.accounts.ResolveToken(ctx, rawToken)
	if err != nil {
		return uuid.Nil, policy.RoleUnknown, apperr.Unauthorized("unauthorized")
	}

	callerRole, err := s.dir.RoleOf(ctx, callerID)
	if err != nil {
		return uuid.Nil, policy.RoleUnknown, apperr.Forbidden("caller role not found")
	}

	return callerID, callerRole, nil
}
