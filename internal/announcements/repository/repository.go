// Package repository persists pengumuman rows.
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

var ErrNotFound = errors.New("pengumuman not found")

type Announcement struct {
	ID             uuid.UUID
	Judul          string
	Isi            string
	AuthorID       uuid.UUID
	AuthorNama     *string
	RWID           *uuid.UUID
	RTID           *uuid.UUID
	TargetAudience []string
	IsPinned       bool
	PublishedAt    time.Time
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Fields struct {
	Judul          string
	Isi            string
	RWID           *uuid.UUID
	RTID           *uuid.UUID
	TargetAudience []string
	IsPinned       bool
	ExpiresAt      *time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const announcementColumns = `a.id, a.judul, a.isi, a.author_id, p.nama, a.rw_id, a.rt_id,
	a.target_audience, a.is_pinned, a.published_at, a.expires_at, a.created_at, a.updated_at`

func (r *Repository) Create(ctx context.Context, authorID uuid.UUID, f Fields) (*Announcement, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO pengumuman
		   (judul, isi, author_id, rw_id, rt_id, target_audience, is_pinned, published_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), $8)
		 RETURNING id`,
		f.Judul, f.Isi, authorID, f.RWID, f.RTID, f.TargetAudience, f.IsPinned, f.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert pengumuman: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+announcementColumns+`
		 FROM pengumuman a
		 LEFT JOIN profiles p ON p.id = a.author_id
		 WHERE a.id = $1`, id)
	return scanAnnouncement(row)
}

// ListActive returns announcements that have not expired, pinned first.
func (r *Repository) ListActive(ctx context.Context) ([]Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+announcementColumns+`
		 FROM pengumuman a
		 LEFT JOIN profiles p ON p.id = a.author_id
		 WHERE a.expires_at IS NULL OR a.expires_at > now()
		 ORDER BY a.is_pinned DESC, a.published_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query pengumuman: %w", err)
	}
	defer rows.Close()

	var result []Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, f Fields) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pengumuman SET
		   judul = $2, isi = $3, rw_id = $4, rt_id = $5, target_audience = $6,
		   is_pinned = $7, expires_at = $8, updated_at = now()
		 WHERE id = $1`,
		id, f.Judul, f.Isi, f.RWID, f.RTID, f.TargetAudience, f.IsPinned, f.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update pengumuman: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pengumuman WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pengumuman: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsExpired reports whether the announcement exists and has passed its
// expiry timestamp.
func (r *Repository) IsExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	var expired bool
	err := r.pool.QueryRow(ctx,
		`SELECT expires_at IS NOT NULL AND expires_at <= now()
		 FROM pengumuman WHERE id = $1`, id,
	).Scan(&expired)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("query pengumuman expiry: %w", err)
	}
	return expired, nil
}

func scanAnnouncement(row pgx.Row) (*Announcement, error) {
	var a Announcement
	err := row.Scan(&a.ID, &a.Judul, &a.Isi, &a.AuthorID, &a.AuthorNama, &a.RWID, &a.RTID,
		&a.TargetAudience, &a.IsPinned, &a.PublishedAt, &a.ExpiresAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pengumuman: %w", err)
	}
	return &a, nil
}
