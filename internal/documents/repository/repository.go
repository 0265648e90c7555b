// Package repository persists surat requests.
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
	ErrNotFound = errors.New("surat not found")
	// ErrNomorTaken reports a letter number already assigned to another
	// request; the caller picks the next number and retries.
	ErrNomorTaken = errors.New("nomor surat already assigned")
)

type Surat struct {
	ID           uuid.UUID
	JenisSurat   string
	Keperluan    *string
	NomorSurat   *string
	Status       string
	Catatan      *string
	PendudukID   uuid.UUID
	PendudukNama string
	RTID         uuid.UUID
	RTNomor      string
	ProcessedBy  *uuid.UUID
	ProcessedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter narrows listing; nil fields match everything.
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

const suratColumns = `s.id, s.jenis_surat, s.keperluan, s.nomor_surat, s.status, s.catatan,
	s.penduduk_id, p.nama, s.rt_id, t.nomor, s.processed_by, s.processed_at,
	s.created_at, s.updated_at`

func (r *Repository) Create(ctx context.Context, jenis string, keperluan *string, pendudukID, rtID uuid.UUID) (*Surat, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO surat (jenis_surat, keperluan, penduduk_id, rt_id, status)
		 VALUES ($1, $2, $3, $4, 'pending')
		 RETURNING id`,
		jenis, keperluan, pendudukID, rtID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert surat: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Surat, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+suratColumns+`
		 FROM surat s
		 JOIN penduduk p ON p.id = s.penduduk_id
		 JOIN rt t ON t.id = s.rt_id
		 WHERE s.id = $1`, id)
	return scanSurat(row)
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Surat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+suratColumns+`
		 FROM surat s
		 JOIN penduduk p ON p.id = s.penduduk_id
		 JOIN rt t ON t.id = s.rt_id
		 WHERE ($1::uuid IS NULL OR s.rt_id = $1)
		   AND ($2::uuid IS NULL OR s.penduduk_id = $2)
		 ORDER BY s.created_at DESC`, f.RTID, f.PendudukID)
	if err != nil {
		return nil, fmt.Errorf("query surat: %w", err)
	}
	defer rows.Close()

	var result []Surat
	for rows.Next() {
		s, err := scanSurat(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// UpdateStatus writes the new status, processing metadata, and an optional
// letter number in one statement.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, catatan *string, processedBy uuid.UUID, nomorSurat *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE surat SET
		   status = $2,
		   catatan = COALESCE($3, catatan),
		   processed_by = $4,
		   processed_at = now(),
		   nomor_surat = COALESCE($5, nomor_surat),
		   updated_at = now()
		 WHERE id = $1`,
		id, status, catatan, processedBy, nomorSurat,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrNomorTaken
		}
		return fmt.Errorf("update surat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountCompletedInYear counts the letters an RT has issued in a year. The
// sequence in a letter number is per RT, matching the RT number the format
// embeds.
func (r *Repository) CountCompletedInYear(ctx context.Context, rtID uuid.UUID, year int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM surat
		 WHERE rt_id = $1
		   AND nomor_surat IS NOT NULL
		   AND date_part('year', processed_at) = $2`, rtID, year,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count surat: %w", err)
	}
	return count, nil
}

func scanSurat(row pgx.Row) (*Surat, error) {
	var s Surat
	err := row.Scan(&s.ID, &s.JenisSurat, &s.Keperluan, &s.NomorSurat, &s.Status, &s.Catatan,
		&s.PendudukID, &s.PendudukNama, &s.RTID, &s.RTNomor, &s.ProcessedBy, &s.ProcessedAt,
		&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan surat: %w", err)
	}
	return &s, nil
}
