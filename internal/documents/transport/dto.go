// Package transport defines wire types for surat routes.
package transport

import "github.com/google/uuid"

type CreateSuratRequest struct {
	JenisSurat string    `json:"jenis_surat" validate:"required"`
	Keperluan  *string   `json:"keperluan,omitempty"`
	PendudukID uuid.UUID `json:"penduduk_id" validate:"required"`
	RTID       uuid.UUID `json:"rt_id" validate:"required"`
}

type UpdateSuratStatusRequest struct {
	Status  string  `json:"status" validate:"required,oneof=diproses selesai ditolak"`
	Catatan *string `json:"catatan,omitempty"`
}

type SuratResponse struct {
	ID           string  `json:"id"`
	JenisSurat   string  `json:"jenis_surat"`
	Keperluan    *string `json:"keperluan,omitempty"`
	NomorSurat   *string `json:"nomor_surat,omitempty"`
	Status       string  `json:"status"`
	Catatan      *string `json:"catatan,omitempty"`
	PendudukID   string  `json:"penduduk_id"`
	PendudukNama string  `json:"penduduk_nama"`
	RTID         string  `json:"rt_id"`
	RTNomor      string  `json:"rt_nomor"`
	ProcessedBy  *string `json:"processed_by,omitempty"`
	ProcessedAt  *string `json:"processed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
