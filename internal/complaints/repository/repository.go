// Package repository persists laporan rows.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("laporan not found")

type Laporan struct {
	ID           uuid.UUID
	Judul        string
	Deskripsi    string
	Kategori     *string
	Prioritas    *string
	Status       string
	Tanggapan    *string
	PendudukID   uuid.UUID
	PendudukNama string
	RTID         uuid.UUID
	RTNomor      string
	ProcessedBy  *uuid.UUID
	ProcessedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Filter struct {
	RTID       *uuid.UUID
	PendudukID *uuid.UUID
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const laporanColumns = `l.id, l.judul, l.deskripsi, l.kategori, l.prioritas, l.status, l.tanggapan,
	l.penduduk_id, p.nama, l.rt_id, t.nomor, l.processed_by, l.processed_at,
	l.created_at, l.updated_at`

func (r *Repository) Create(ctx context.Context, judul, deskripsi string, kategori, prioritas *string, pendudukID, rtID uuid.UUID) (*Laporan, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO laporan (judul, deskripsi, kategori, prioritas, penduduk_id, rt_id, status)
		 VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		 RETURNING id`,
		judul, deskripsi, kategori, prioritas, pendudukID, rtID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert laporan: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Laporan, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+laporanColumns+`
		 FROM laporan l
		 JOIN penduduk p ON p.id = l.penduduk_id
		 JOIN rt t ON t.id = l.rt_id
		 WHERE l.id = $1`, id)
	return scanLaporan(row)
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Laporan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+laporanColumns+`
		 FROM laporan l
		 JOIN penduduk p ON p.id = l.penduduk_id
		 JOIN rt t ON t.id = l.rt_id
		 WHERE ($1::uuid IS NULL OR l.rt_id = $1)
		   AND ($2::uuid IS NULL OR l.penduduk_id = $2)
		 ORDER BY l.created_at DESC`, f.RTID, f.PendudukID)
	if err != nil {
		return nil, fmt.Errorf("query laporan: %w", err)
	}
	defer rows.Close()

	var result []Laporan
	for rows.Next() {
		l, err := scanLaporan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	return result, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, tanggapan *string, processedBy uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE laporan SET
		   status = $2,
		   tanggapan = COALESCE($3, tanggapan),
		   processed_by = $4,
		   processed_at = now(),
		   updated_at = now()
		 WHERE id = $1`,
		id, status, tanggapan, processedBy,
	)
	if err != nil {
		return fmt.Errorf("update laporan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLaporan(row pgx.Row) (*Laporan, error) {
	var l Laporan
	err := row.Scan(&l.ID, &l.Judul, &l.Deskripsi, &l.Kategori, &l.Prioritas, &l.Status,
		&l.Tanggapan, &l.PendudukID, &l.PendudukNama, &l.RTID, &l.RTNomor,
		&l.ProcessedBy, &l.ProcessedAt, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan laporan: %w", err)
	}
	return &l, nil
}
