// Package repository persists the neighborhood units: rw (rukun warga) and
// rt (rukun tetangga).
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound    = errors.New("unit not found")
	ErrNumberTaken = errors.New("unit number already exists")
	ErrInUse       = errors.New("unit still referenced")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type RW struct {
	ID        uuid.UUID
	Nomor     string
	Nama      string
	Alamat    *string
	KetuaID   *uuid.UUID
	KetuaNama *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RT struct {
	ID        uuid.UUID
	RWID      uuid.UUID
	RWNomor   string
	Nomor     string
	Nama      string
	Alamat    *string
	KetuaID   *uuid.UUID
	KetuaNama *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateRW(ctx context.Context, nomor, nama string, alamat *string) (*RW, error) {
	var rw RW
	err := r.pool.QueryRow(ctx,
		`INSERT INTO rw (nomor, nama, alamat)
		 VALUES ($1, $2, $3)
		 RETURNING id, nomor, nama, alamat, ketua_id, created_at, updated_at`,
		nomor, nama, alamat,
	).Scan(&rw.ID, &rw.Nomor, &rw.Nama, &rw.Alamat, &rw.KetuaID, &rw.CreatedAt, &rw.UpdatedAt)
	if isPgCode(err, uniqueViolation) {
		return nil, ErrNumberTaken
	}
	if err != nil {
		return nil, fmt.Errorf("insert rw: %w", err)
	}
	return &rw, nil
}

func (r *Repository) ListRW(ctx context.Context) ([]RW, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT w.id, w.nomor, w.nama, w.alamat, w.ketua_id, p.nama,
		        w.created_at, w.updated_at
		 FROM rw w
		 LEFT JOIN profiles p ON p.id = w.ketua_id
		 ORDER BY w.nomor`)
	if err != nil {
		return nil, fmt.Errorf("query rw: %w", err)
	}
	defer rows.Close()

	var result []RW
	for rows.Next() {
		var rw RW
		if err := rows.Scan(&rw.ID, &rw.Nomor, &rw.Nama, &rw.Alamat, &rw.KetuaID, &rw.KetuaNama,
			&rw.CreatedAt, &rw.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rw: %w", err)
		}
		result = append(result, rw)
	}
	return result, rows.Err()
}

func (r *Repository) GetRW(ctx context.Context, id uuid.UUID) (*RW, error) {
	var rw RW
	err := r.pool.QueryRow(ctx,
		`SELECT w.id, w.nomor, w.nama, w.alamat, w.ketua_id, p.nama,
		        w.created_at, w.updated_at
		 FROM rw w
		 LEFT JOIN profiles p ON p.id = w.ketua_id
		 WHERE w.id = $1`, id,
	).Scan(&rw.ID, &rw.Nomor, &rw.Nama, &rw.Alamat, &rw.KetuaID, &rw.KetuaNama,
		&rw.CreatedAt, &rw.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query rw: %w", err)
	}
	return &rw, nil
}

func (r *Repository) UpdateRW(ctx context.Context, id uuid.UUID, nomor, nama string, alamat *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rw SET nomor = $2, nama = $3, alamat = $4, updated_at = now() WHERE id = $1`,
		id, nomor, nama, alamat,
	)
	if isPgCode(err, uniqueViolation) {
		return ErrNumberTaken
	}
	if err != nil {
		return fmt.Errorf("update rw: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteRW(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rw WHERE id = $1`, id)
	if isPgCode(err, foreignKeyViolation) {
		return ErrInUse
	}
	if err != nil {
		return fmt.Errorf("delete rw: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CreateRT(ctx context.Context, rwID uuid.UUID, nomor, nama string, alamat *string) (*RT, error) {
	var rt RT
	err := r.pool.QueryRow(ctx,
		`INSERT INTO rt (rw_id, nomor, nama, alamat)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, rw_id, nomor, nama, alamat, ketua_id, created_at, updated_at`,
		rwID, nomor, nama, alamat,
	).Scan(&rt.ID, &rt.RWID, &rt.Nomor, &rt.Nama, &rt.Alamat, &rt.KetuaID, &rt.CreatedAt, &rt.UpdatedAt)
	if isPgCode(err, uniqueViolation) {
		return nil, ErrNumberTaken
	}
	if isPgCode(err, foreignKeyViolation) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("insert rt: %w", err)
	}
	return &rt, nil
}

// ListRT returns sub-units joined with their parent unit number and leader
// name. A nil rwID lists everything.
func (r *Repository) ListRT(ctx context.Context, rwID *uuid.UUID) ([]RT, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.rw_id, w.nomor, t.nomor, t.nama, t.alamat, t.ketua_id, p.nama,
		        t.created_at, t.updated_at
		 FROM rt t
		 JOIN rw w ON w.id = t.rw_id
		 LEFT JOIN profiles p ON p.id = t.ketua_id
		 WHERE $1::uuid IS NULL OR t.rw_id = $1
		 ORDER BY w.nomor, t.nomor`, rwID)
	if err != nil {
		return nil, fmt.Errorf("query rt: %w", err)
	}
	defer rows.Close()

	var result []RT
	for rows.Next() {
		var rt RT
		if err := rows.Scan(&rt.ID, &rt.RWID, &rt.RWNomor, &rt.Nomor, &rt.Nama, &rt.Alamat,
			&rt.KetuaID, &rt.KetuaNama, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rt: %w", err)
		}
		result = append(result, rt)
	}
	return result, rows.Err()
}

func (r *Repository) GetRT(ctx context.Context, id uuid.UUID) (*RT, error) {
	var rt RT
	err := r.pool.QueryRow(ctx,
		`SELECT t.id, t.rw_id, w.nomor, t.nomor, t.nama, t.alamat, t.ketua_id, p.nama,
		        t.created_at, t.updated_at
		 FROM rt t
		 JOIN rw w ON w.id = t.rw_id
		 LEFT JOIN profiles p ON p.id = t.ketua_id
		 WHERE t.id = $1`, id,
	).Scan(&rt.ID, &rt.RWID, &rt.RWNomor, &rt.Nomor, &rt.Nama, &rt.Alamat,
		&rt.KetuaID, &rt.KetuaNama, &rt.CreatedAt, &rt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query rt: %w", err)
	}
	return &rt, nil
}

func (r *Repository) UpdateRT(ctx context.Context, id uuid.UUID, nomor, nama string, alamat *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rt SET nomor = $2, nama = $3, alamat = $4, updated_at = now() WHERE id = $1`,
		id, nomor, nama, alamat,
	)
	if isPgCode(err, uniqueViolation) {
		return ErrNumberTaken
	}
	if err != nil {
		return fmt.Errorf("update rt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteRT(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM rt WHERE id = $1`, id)
	if isPgCode(err, foreignKeyViolation) {
		return ErrInUse
	}
	if err != nil {
		return fmt.Errorf("delete rt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
