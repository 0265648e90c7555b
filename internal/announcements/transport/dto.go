// Package transport defines wire types for pengumuman routes.
package transport

import "github.com/google/uuid"

type AnnouncementRequest struct {
	Judul          string     `json:"judul" validate:"required"`
	Isi            string     `json:"isi" validate:"required"`
	RWID           *uuid.UUID `json:"rw_id,omitempty"`
	RTID           *uuid.UUID `json:"rt_id,omitempty"`
	TargetAudience []string   `json:"target_audience,omitempty" validate:"dive,oneof=admin rw rt penduduk"`
	IsPinned       bool       `json:"is_pinned"`
	ExpiresAt      *string    `json:"expires_at,omitempty"`
}

type AnnouncementResponse struct {
	ID             string   `json:"id"`
	Judul          string   `json:"judul"`
	Isi            string   `json:"isi"`
	AuthorID       string   `json:"author_id"`
	AuthorNama     *string  `json:"author_nama,omitempty"`
	RWID           *string  `json:"rw_id,omitempty"`
	RTID           *string  `json:"rt_id,omitempty"`
	TargetAudience []string `json:"target_audience,omitempty"`
	IsPinned       bool     `json:"is_pinned"`
	PublishedAt    string   `json:"published_at"`
	ExpiresAt      *string  `json:"expires_at,omitempty"`
	CreatedAt      string   `json:"created_at"`
}
