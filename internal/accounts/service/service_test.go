package service

import (
	"context"
	"errors"
	"testing"

	"warga_portal_backend/internal/accounts/policy"
	"warga_portal_backend/platform/apperr"
	"warga_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeAccountStore struct {
	tokens     map[string]uuid.UUID
	nextID     uuid.UUID
	createErr  error
	deleteErr  error
	created    []uuid.UUID
	deleted    []uuid.UUID
	createdFor []string
}

func (f *fakeAccountStore) CreateIdentity(_ context.Context, email, _, _ string) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, f.nextID)
	f.createdFor = append(f.createdFor, email)
	return f.nextID, nil
}

func (f *fakeAccountStore) DeleteIdentity(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAccountStore) ResolveToken(_ context.Context, rawToken string) (uuid.UUID, error) {
	id, ok := f.tokens[rawToken]
	if !ok {
		return uuid.Nil, errors.New("invalid token")
	}
	return id, nil
}

type fakeDirectoryStore struct {
	roles     map[uuid.UUID]policy.Role
	residents map[uuid.UUID]*uuid.UUID

	assignErr  error
	profileErr error

	assigned       []uuid.UUID
	rolesRemoved   []uuid.UUID
	profileUpdates []uuid.UUID
	profileDeletes []uuid.UUID
	linked         []uuid.UUID
	unlinked       []uuid.UUID
	rwLeaderSet    []uuid.UUID
	rtLeaderSet    []uuid.UUID
	rwLeaderClears []uuid.UUID
	rtLeaderClears []uuid.UUID
}

func newFakeDirectory() *fakeDirectoryStore {
	return &fakeDirectoryStore{
		roles:     map[uuid.UUID]policy.Role{},
		residents: map[uuid.UUID]*uuid.UUID{},
	}
}

func (f *fakeDirectoryStore) RoleOf(_ context.Context, accountID uuid.UUID) (policy.Role, error) {
	role, ok := f.roles[accountID]
	if !ok {
		return policy.RoleUnknown, ErrRoleNotAssigned
	}
	return role, nil
}

func (f *fakeDirectoryStore) AssignRole(_ context.Context, accountID uuid.UUID, role policy.Role) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.roles[accountID] = role
	f.assigned = append(f.assigned, accountID)
	return nil
}

func (f *fakeDirectoryStore) RemoveRole(_ context.Context, accountID uuid.UUID) error {
	delete(f.roles, accountID)
	f.rolesRemoved = append(f.rolesRemoved, accountID)
	return nil
}

func (f *fakeDirectoryStore) UpdateProfile(_ context.Context, accountID uuid.UUID, _ ProfileUpdate) error {
	if f.profileErr != nil {
		return f.profileErr
	}
	f.profileUpdates = append(f.profileUpdates, accountID)
	return nil
}

func (f *fakeDirectoryStore) DeleteProfile(_ context.Context, accountID uuid.UUID) error {
	f.profileDeletes = append(f.profileDeletes, accountID)
	return nil
}

func (f *fakeDirectoryStore) ResidentAccount(_ context.Context, residentID uuid.UUID) (uuid.UUID, error) {
	linked, ok := f.residents[residentID]
	if !ok {
		return uuid.Nil, ErrNotFound
	}
	if linked == nil {
		return uuid.Nil, ErrResidentNotLinked
	}
	return *linked, nil
}

func (f *fakeDirectoryStore) LinkResident(_ context.Context, residentID, accountID uuid.UUID) error {
	f.residents[residentID] = &accountID
	f.linked = append(f.linked, residentID)
	return nil
}

func (f *fakeDirectoryStore) UnlinkResidents(_ context.Context, accountID uuid.UUID) error {
	for rid, linked := range f.residents {
		if linked != nil && *linked == accountID {
			f.residents[rid] = nil
		}
	}
	f.unlinked = append(f.unlinked, accountID)
	return nil
}

func (f *fakeDirectoryStore) SetUnitLeader(_ context.Context, _, accountID uuid.UUID) error {
	f.rwLeaderSet = append(f.rwLeaderSet, accountID)
	return nil
}

func (f *fakeDirectoryStore) SetSubUnitLeader(_ context.Context, _, accountID uuid.UUID) error {
	f.rtLeaderSet = append(f.rtLeaderSet, accountID)
	return nil
}

func (f *fakeDirectoryStore) ClearUnitLeader(_ context.Context, accountID uuid.UUID) error {
	f.rwLeaderClears = append(f.rwLeaderClears, accountID)
	return nil
}

func (f *fakeDirectoryStore) ClearSubUnitLeader(_ context.Context, accountID uuid.UUID) error {
	f.rtLeaderClears = append(f.rtLeaderClears, accountID)
	return nil
}

const adminToken = "admin-token"

func newTestService(t *testing.T) (*Service, *fakeAccountStore, *fakeDirectoryStore, uuid.UUID) {
	t.Helper()

	adminID := uuid.New()
	accounts := &fakeAccountStore{
		tokens: map[string]uuid.UUID{adminToken: adminID},
		nextID: uuid.New(),
	}
	dir := newFakeDirectory()
	dir.roles[adminID] = policy.RoleAdmin

	svc := New(accounts, dir, nil, logger.New("development"))
	return svc, accounts, dir, adminID
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", kind)
	}
	if got := apperr.GetKind(err); got != kind {
		t.Fatalf("error kind = %v, want %v (err: %v)", got, kind, err)
	}
}

func validInput(role policy.Role) ProvisionInput {
	return ProvisionInput{
		Email:       "warga@example.com",
		Password:    "rahasia123",
		DisplayName: "Budi Santoso",
		Role:        role,
	}
}

func TestProvisionHappyPath(t *testing.T) {
	svc, accounts, dir, _ := newTestService(t)

	result, err := svc.Provision(context.Background(), adminToken, validInput(policy.RolePenduduk))
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if result.UserID != accounts.nextID {
		t.Errorf("UserID = %v, want %v", result.UserID, accounts.nextID)
	}
	if result.Message != "Akun PENDUDUK berhasil dibuat" {
		t.Errorf("Message = %q", result.Message)
	}
	if len(dir.assigned) != 1 || dir.roles[result.UserID] != policy.RolePenduduk {
		t.Errorf("role not assigned: assigned=%v roles=%v", dir.assigned, dir.roles)
	}
	if len(dir.profileUpdates) != 1 {
		t.Errorf("profile updates = %d, want 1", len(dir.profileUpdates))
	}
	if len(accounts.deleted) != 0 {
		t.Errorf("unexpected identity deletions: %v", accounts.deleted)
	}
}

func TestProvisionRejectsMissingToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Provision(context.Background(), "", validInput(policy.RolePenduduk))
	wantKind(t, err, apperr.KindUnauthorized)
}

func TestProvisionRejectsInvalidToken(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Provision(context.Background(), "bogus", validInput(policy.RolePenduduk))
	wantKind(t, err, apperr.KindUnauthorized)
}

func TestProvisionRejectsCallerWithoutRole(t *testing.T) {
	svc, accounts, _, _ := newTestService(t)
	roleless := uuid.New()
	accounts.tokens["roleless"] = roleless

	_, err := svc.Provision(context.Background(), "roleless", validInput(policy.RolePenduduk))
	wantKind(t, err, apperr.KindForbidden)
}

func TestProvisionAuthorizationGrid(t *testing.T) {
	cases := []struct {
		caller  policy.Role
		target  policy.Role
		allowed bool
	}{
		{policy.RoleRW, policy.RoleRT, true},
		{policy.RoleRW, policy.RolePenduduk, true},
		{policy.RoleRW, policy.RoleRW, false},
		{policy.RoleRW, policy.RoleAdmin, false},
		{policy.RoleRT, policy.RolePenduduk, true},
		{policy.RoleRT, policy.RoleRT, false},
		{policy.RolePenduduk, policy.RolePenduduk, false},
	}

	for _, tc := range cases {
		svc, accounts, dir, _ := newTestService(t)
		callerID := uuid.New()
		accounts.tokens["caller"] = callerID
		dir.roles[callerID] = tc.caller

		_, err := svc.Provision(context.Background(), "caller", validInput(tc.target))
		if tc.allowed && err != nil {
			t.Errorf("%s creating %s: unexpected error %v", tc.caller, tc.target, err)
		}
		if !tc.allowed {
			if err == nil {
				t.Errorf("%s creating %s: expected forbidden, got nil", tc.caller, tc.target)
				continue
			}
			wantKind(t, err, apperr.KindForbidden)
			if len(accounts.created) != 0 {
				t.Errorf("%s creating %s: identity created despite denial", tc.caller, tc.target)
			}
		}
	}
}

func TestProvisionRejectsIncompleteInput(t *testing.T) {
	svc, accounts, _, _ := newTestService(t)

	inputs := []ProvisionInput{
		{Password: "rahasia123", DisplayName: "Budi", Role: policy.RolePenduduk},
		{Email: "a@b.c", DisplayName: "Budi", Role: policy.RolePenduduk},
		{Email: "a@b.c", Password: "rahasia123", Role: policy.RolePenduduk},
		{Email: "a@b.c", Password: "rahasia123", DisplayName: "Budi", Role: policy.RoleUnknown},
	}

	for i, in := range inputs {
		_, err := svc.Provision(context.Background(), adminToken, in)
		wantKind(t, err, apperr.KindValidation)
		if len(accounts.created) != 0 {
			t.Errorf("case %d: identity created despite invalid input", i)
		}
	}
}

func TestProvisionSurfacesIdentityCreationFailure(t *testing.T) {
	svc, accounts, dir, _ := newTestService(t)
	accounts.createErr = errors.New("email address already registered")

	_, err := svc.Provision(context.Background(), adminToken, validInput(policy.RolePenduduk))
	wantKind(t, err, apperr.KindBadRequest)
	if len(dir.assigned) != 0 {
		t.Errorf("role assigned despite identity failure")
	}
}

func TestProvisionCompensatesFailedRoleAssignment(t *testing.T) {
	svc, accounts, dir, _ := newTestService(t)
	dir.assignErr = errors.New("insert failed")

	_, err := svc.Provision(context.Background(), adminToken, validInput(policy.RolePenduduk))
	wantKind(t, err, apperr.KindInternal)

	// The freshly created identity must be rolled back.
	if len(accounts.created) != 1 || len(accounts.deleted) != 1 {
		t.Fatalf("created=%v deleted=%v, want one of each", accounts.created, accounts.deleted)
	}
	if accounts.deleted[0] != accounts.created[0] {
		t.Errorf("rolled back %v, want %v", accounts.deleted[0], accounts.created[0])
	}
}

func TestProvisionSucceedsDespiteProfileFailure(t *testing.T) {
	svc, accounts, dir, _ := newTestService(t)
	dir.profileErr = errors.New("profile write failed")

	result, err := svc.Provision(context.Background(), adminToken, validInput(policy.RolePenduduk))
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if dir.roles[result.UserID] != policy.RolePenduduk {
		t.Errorf("role missing after profile failure")
	}
	if len(accounts.deleted) != 0 {
		t.Errorf("identity rolled back for a best-effort failure")
	}
}

func TestProvisionLinksResidentRecord(t *testing.T) {
	svc, _, dir, _ := newTestService(t)
	residentID := uuid.New()
	dir.residents[residentID] = nil

	in := validInput(policy.RolePenduduk)
	in.ResidentID = &residentID

	result, err := svc.Provision(context.Background(), adminToken, in)
	if err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	linked := dir.residents[residentID]
	if linked == nil || *linked != result.UserID {
		t.Errorf("resident not linked to new account")
	}
}

func TestProvisionSetsLeaderReferences(t *testing.T) {
	rtID := uuid.New()
	rwID := uuid.New()

	t.Run("rt role sets sub-unit leader", func(t *testing.T) {
		svc, _, dir, _ := newTestService(t)
		in := validInput(policy.RoleRT)
		in.RTID = &rtID

		if _, err := svc.Provision(context.Background(), adminToken, in); err != nil {
			t.Fatalf("Provision() error = %v", err)
		}
		if len(dir.rtLeaderSet) != 1 {
			t.Errorf("rt leader sets = %d, want 1", len(dir.rtLeaderSet))
		}
		if len(dir.rwLeaderSet) != 0 {
			t.Errorf("rw leader set for an rt account")
		}
	})

	t.Run("rw role sets unit leader", func(t *testing.T) {
		svc, _, dir, _ := newTestService(t)
		in := validInput(policy.RoleRW)
		in.RWID = &rwID

		if _, err := svc.Provision(context.Background(), adminToken, in); err != nil {
			t.Fatalf("Provision() error = %v", err)
		}
		if len(dir.rwLeaderSet) != 1 {
			t.Errorf("rw leader sets = %d, want 1", len(dir.rwLeaderSet))
		}
	})

	t.Run("penduduk role never touches leader references", func(t *testing.T) {
		svc, _, dir, _ := newTestService(t)
		in := validInput(policy.RolePenduduk)
		in.RTID = &rtID
		in.RWID = &rwID

		if _, err := svc.Provision(context.Background(), adminToken, in); err != nil {
			t.Fatalf("Provision() error = %v", err)
		}
		if len(dir.rtLeaderSet) != 0 || len(dir.rwLeaderSet) != 0 {
			t.Errorf("leader references set for a penduduk account")
		}
	})
}

func TestRetireHappyPath(t *testing.T) {
	svc, accounts, dir, _ := newTestService(t)
	target := uuid.New()
	dir.roles[target] = policy.RolePenduduk

	result, err := svc.Retire(context.Background(), adminToken, RetireInput{UserID: &target})
	if err != nil {
		t.Fatalf("Retire() error = %v", err)
	}
	if result.Message != "User account permanently deleted" {
		t.Errorf("Message = %q", result.Message)
	}
	if len(accounts.deleted) != 1 || accounts.deleted[0] != target {
		t.Fatalf("deleted = %v, want [%v]", accounts.deleted, target)
	}

	// Every reference class must be cleared before the identity goes away.
	for name, got := range map[string][]uuid.UUID{
		"unlinked":       dir.unlinked,
		"rwLeaderClears": dir.rwLeaderClears,
		"rtLeaderClears": dir.rtLeaderClears,
		"rolesRemoved":   dir.rolesRemoved,
		"profileDeletes": dir.profileDeletes,
	} {
		if len(got) != 1 || got[0] != target {
			t.Errorf("%s = %v, want [%v]", name, got, target)
		}
	}
}

func TestRetireRequiresSomeIdentifier(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Retire(context.Background(), adminToken, RetireInput{})
	wantKind(t, err, apperr.KindValidation)
}

func TestRetireResolvesTargetViaResident(t *testing.T) {
	svc, accounts, dir, _ := newTestService(t)
	target := uuid.New()
	dir.roles[target] = policy.RolePenduduk
	residentID := uuid.New()
	dir.residents[residentID] = &target

	_, err := svc.Retire(context.Background(), adminToken, RetireInput{ResidentID: &residentID})
	if err != nil {
		t.Fatalf("Retire() error = %v", err)
	}
	if len(accounts.deleted) != 1 || accounts.deleted[0] != target {
		t.Errorf("deleted = %v, want [%v]", accounts.deleted, target)
	}
}

func TestRetireUnresolvableResident(t *testing.T) {
	svc, _, dir, _ := newTestService(t)
	missing := uuid.New()
	unlinked := uuid.New()
	dir.residents[unlinked] = nil

	for _, rid := range []uuid.UUID{missing, unlinked} {
		id := rid
		_, err := svc.Retire(context.Background(), adminToken, RetireInput{ResidentID: &id})
		wantKind(t, err, apperr.KindNotFound)
	}
}

func TestRetireRejectsSelfRetirement(t *testing.T) {
	// Even an administrator may not retire their own account.
	svc, accounts, dir, adminID := newTestService(t)

	_, err := svc.Retire(context.Background(), adminToken, RetireInput{UserID: &adminID})
	wantKind(t, err, apperr.KindForbidden)
	if len(accounts.deleted) != 0 {
		t.Errorf("self-retirement deleted an identity")
	}
	if len(dir.rolesRemoved) != 0 {
		t.Errorf("self-retirement touched directory rows")
	}
}

func TestRetireAuthorizationGrid(t *testing.T) {
	cases := []struct {
		caller  policy.Role
		target  policy.Role
		allowed bool
	}{
		{policy.RoleRW, policy.RolePenduduk, true},
		{policy.RoleRW, policy.RoleRT, false},
		{policy.RoleRW, policy.RoleRW, false},
		{policy.RoleRW, policy.RoleAdmin, false},
		{policy.RoleRT, policy.RolePenduduk, true},
		{policy.RoleRT, policy.RoleRT, false},
		{policy.RolePenduduk, policy.RolePenduduk, false},
	}

	for _, tc := range cases {
		svc, accounts, dir, _ := newTestService(t)
		callerID := uuid.New()
		accounts.tokens["caller"] = callerID
		dir.roles[callerID] = tc.caller
		target := uuid.New()
		dir.roles[target] = tc.target

		_, err := svc.Retire(context.Background(), "caller", RetireInput{UserID: &target})
		if tc.allowed && err != nil {
			t.Errorf("%s retiring %s: unexpected error %v", tc.caller, tc.target, err)
		}
		if !tc.allowed {
			if err == nil {
				t.Errorf("%s retiring %s: expected forbidden, got nil", tc.caller, tc.target)
				continue
			}
			wantKind(t, err, apperr.KindForbidden)
			if len(accounts.deleted) != 0 {
				t.Errorf("%s retiring %s: identity deleted despite denial", tc.caller, tc.target)
			}
		}
	}
}

func TestRetireOrphanIdentity(t *testing.T) {
	// A target with no role row can only be retired by an administrator.
	svc, accounts, _, _ := newTestService(t)
	orphan := uuid.New()

	if _, err := svc.Retire(context.Background(), adminToken, RetireInput{UserID: &orphan}); err != nil {
		t.Fatalf("admin retiring orphan: %v", err)
	}
	if len(accounts.deleted) != 1 {
		t.Fatalf("orphan not deleted")
	}

	svc2, accounts2, dir2, _ := newTestService(t)
	rwID := uuid.New()
	accounts2.tokens["rw"] = rwID
	dir2.roles[rwID] = policy.RoleRW

	_, err := svc2.Retire(context.Background(), "rw", RetireInput{UserID: &orphan})
	wantKind(t, err, apperr.KindForbidden)
}

func TestRetireSurfacesIdentityDeletionFailure(t *testing.T) {
	svc, accounts, dir, _ := newTestService(t)
	accounts.deleteErr = errors.New("provider unavailable")
	target := uuid.New()
	dir.roles[target] = policy.RolePenduduk

	_, err := svc.Retire(context.Background(), adminToken, RetireInput{UserID: &target})
	wantKind(t, err, apperr.KindInternal)

	// The references were already cleared; the degraded state is reported,
	// not rolled back.
	if len(dir.rolesRemoved) != 1 || len(dir.profileDeletes) != 1 {
		t.Errorf("cleanup did not run before the failed deletion")
	}
}
