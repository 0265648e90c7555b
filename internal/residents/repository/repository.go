// Package repository persists penduduk records.
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
	ErrNotFound = errors.New("resident not found")
	ErrNIKTaken = errors.New("nik already registered")
)

const uniqueViolation = "23505"

type Resident struct {
	ID                 uuid.UUID
	Nama               string
	NIK                string
	NoKK               *string
	JenisKelamin       *string
	TempatLahir        *string
	TanggalLahir       *time.Time
	Agama              *string
	StatusPerkawinan   *string
	Pekerjaan          *string
	StatusKependudukan *string
	Alamat             *string
	Phone              *string
	RTID               uuid.UUID
	RTNomor            string
	UserID             *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Fields carries the writable columns of a penduduk row.
type Fields struct {
	Nama               string
	NIK                string
	NoKK               *string
	JenisKelamin       *string
	TempatLahir        *string
	TanggalLahir       *time.Time
	Agama              *string
	StatusPerkawinan   *string
	Pekerjaan          *string
	StatusKependudukan *string
	Alamat             *string
	Phone              *string
	RTID               uuid.UUID
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const residentColumns = `p.id, p.nama, p.nik, p.no_kk, p.jenis_kelamin, p.tempat_lahir,
	p.tanggal_lahir, p.agama, p.status_perkawinan, p.pekerjaan, p.status_kependudukan,
	p.alamat, p.phone, p.rt_id, t.nomor, p.user_id, p.created_at, p.updated_at`

func (r *Repository) Create(ctx context.Context, f Fields) (*Resident, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO penduduk
		   (nama, nik, no_kk, jenis_kelamin, tempat_lahir, tanggal_lahir, agama,
		    status_perkawinan, pekerjaan, status_kependudukan, alamat, phone, rt_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		f.Nama, f.NIK, f.NoKK, f.JenisKelamin, f.TempatLahir, f.TanggalLahir, f.Agama,
		f.StatusPerkawinan, f.Pekerjaan, f.StatusKependudukan, f.Alamat, f.Phone, f.RTID,
	).Scan(&id)
	if isUniqueViolation(err) {
		return nil, ErrNIKTaken
	}
	if err != nil {
		return nil, fmt.Errorf("insert penduduk: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Resident, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+residentColumns+`
		 FROM penduduk p
		 JOIN rt t ON t.id = p.rt_id
		 WHERE p.id = $1`, id)
	return scanResident(row)
}

// List returns residents, optionally restricted to one RT.
func (r *Repository) List(ctx context.Context, rtID *uuid.UUID) ([]Resident, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+residentColumns+`
		 FROM penduduk p
		 JOIN rt t ON t.id = p.rt_id
		 WHERE $1::uuid IS NULL OR p.rt_id = $1
		 ORDER BY p.nama`, rtID)
	if err != nil {
		return nil, fmt.Errorf("query penduduk: %w", err)
	}
	defer rows.Close()

	var result []Resident
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	return result, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, f Fields) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE penduduk SET
		   nama = $2, nik = $3, no_kk = $4, jenis_kelamin = $5, tempat_lahir = $6,
		   tanggal_lahir = $7, agama = $8, status_perkawinan = $9, pekerjaan = $10,
		   status_kependudukan = $11, alamat = $12, phone = $13, rt_id = $14,
		   updated_at = now()
		 WHERE id = $1`,
		id, f.Nama, f.NIK, f.NoKK, f.JenisKelamin, f.TempatLahir, f.TanggalLahir,
		f.Agama, f.StatusPerkawinan, f.Pekerjaan, f.StatusKependudukan, f.Alamat,
		f.Phone, f.RTID,
	)
	if isUniqueViolation(err) {
		return ErrNIKTaken
	}
	if err != nil {
		return fmt.Errorf("update penduduk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM penduduk WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete penduduk: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanResident(row pgx.Row) (*Resident, error) {
	var res Resident
	err := row.Scan(&res.ID, &res.Nama, &res.NIK, &res.NoKK, &res.JenisKelamin,
		&res.TempatLahir, &res.TanggalLahir, &res.Agama, &res.StatusPerkawinan,
		&res.Pekerjaan, &res.StatusKependudukan, &res.Alamat, &res.Phone,
		&res.RTID, &res.RTNomor, &res.UserID, &res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan penduduk: %w", err)
	}
	return &res, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
