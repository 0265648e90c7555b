// Package repository implements the directory store over PostgreSQL: role
// assignments, profiles, and the weak references held by rw, rt, and penduduk
// rows.
package repository

import (
	"context"
	"errors"
	"fmt"

	"warga_portal_backend/internal/accounts/policy"
	"warga_portal_backend/internal/accounts/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) RoleOf(ctx context.Context, accountID uuid.UUID) (policy.Role, error) {
	var raw string
	err := r.pool.QueryRow(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1`, accountID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return policy.RoleUnknown, service.ErrRoleNotAssigned
	}
	if err != nil {
		return policy.RoleUnknown, fmt.Errorf("query role: %w", err)
	}

	role, ok := policy.Parse(raw)
	if !ok {
		return policy.RoleUnknown, service.ErrRoleNotAssigned
	}
	return role, nil
}

func (r *Repository) AssignRole(ctx context.Context, accountID uuid.UUID, role policy.Role) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
		accountID, string(role),
	)
	if err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *Repository) RemoveRole(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1`, accountID,
	)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

func (r *Repository) UpdateProfile(ctx context.Context, accountID uuid.UUID, update service.ProfileUpdate) error {
	// Nil unit pointers leave the stored values untouched.
	_, err := r.pool.Exec(ctx,
		`UPDATE profiles
		 SET nama = $2,
		     rt_id = COALESCE($3, rt_id),
		     rw_id = COALESCE($4, rw_id),
		     updated_at = now()
		 WHERE id = $1`,
		accountID, update.Nama, update.RTID, update.RWID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (r *Repository) DeleteProfile(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM profiles WHERE id = $1`, accountID,
	)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func (r *Repository) ResidentAccount(ctx context.Context, residentID uuid.UUID) (uuid.UUID, error) {
	var userID *uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM penduduk WHERE id = $1`, residentID,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, service.ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("query resident: %w", err)
	}
	if userID == nil {
		return uuid.Nil, service.ErrResidentNotLinked
	}
	return *userID, nil
}

func (r *Repository) LinkResident(ctx context.Context, residentID, accountID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE penduduk SET user_id = $2, updated_at = now() WHERE id = $1`,
		residentID, accountID,
	)
	if err != nil {
		return fmt.Errorf("link resident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *Repository) UnlinkResidents(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE penduduk SET user_id = NULL, updated_at = now() WHERE user_id = $1`,
		accountID,
	)
	if err != nil {
		return fmt.Errorf("unlink residents: %w", err)
	}
	return nil
}

func (r *Repository) SetUnitLeader(ctx context.Context, unitID, accountID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rw SET ketua_id = $2, updated_at = now() WHERE id = $1`,
		unitID, accountID,
	)
	if err != nil {
		return fmt.Errorf("set rw leader: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *Repository) SetSubUnitLeader(ctx context.Context, subUnitID, accountID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rt SET ketua_id = $2, updated_at = now() WHERE id = $1`,
		subUnitID, accountID,
	)
	if err != nil {
		return fmt.Errorf("set rt leader: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrNotFound
	}
	return nil
}

func (r *Repository) ClearUnitLeader(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE rw SET ketua_id = NULL, updated_at = now() WHERE ketua_id = $1`,
		accountID,
	)
	if err != nil {
		return fmt.Errorf("clear rw leader: %w", err)
	}
	return nil
}

func (r *Repository) ClearSubUnitLeader(ctx context.Context, accountID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE rt SET ketua_id = NULL, updated_at = now() WHERE ketua_id = $1`,
		accountID,
	)
	if err != nil {
		return fmt.Errorf("clear rt leader: %w", err)
	}
	return nil
}

var _ service.DirectoryStore = (*Repository)(nil)
