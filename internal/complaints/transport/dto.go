// Package transport defines wire types for laporan routes.
package transport

import "github.com/google/uuid"

type CreateLaporanRequest struct {
	Judul      string    `json:"judul" validate:"required"`
	Deskripsi  string    `json:"deskripsi" validate:"required"`
	Kategori   *string   `json:"kategori,omitempty"`
	Prioritas  *string   `json:"prioritas,omitempty"`
	PendudukID uuid.UUID `json:"penduduk_id" validate:"required"`
	RTID       uuid.UUID `json:"rt_id" validate:"required"`
}

type UpdateLaporanStatusRequest struct {
	Status    string  `json:"status" validate:"required,oneof=diproses ditindaklanjuti selesai ditolak"`
	Tanggapan *string `json:"tanggapan,omitempty"`
}

type LaporanResponse struct {
	ID           string  `json:"id"`
	Judul        string  `json:"judul"`
	Deskripsi    string  `json:"deskripsi"`
	Kategori     *string `json:"kategori,omitempty"`
	Prioritas    *string `json:"prioritas,omitempty"`
	Status       string  `json:"status"`
	Tanggapan    *string `json:"tanggapan,omitempty"`
	PendudukID   string  `json:"penduduk_id"`
	PendudukNama string  `json:"penduduk_nama"`
	RTID         string  `json:"rt_id"`
	RTNomor      string  `json:"rt_nomor"`
	ProcessedBy  *string `json:"processed_by,omitempty"`
	ProcessedAt  *string `json:"processed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
