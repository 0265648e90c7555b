// Package transport defines wire types for the resident registry.
package transport

import "github.com/google/uuid"

type ResidentRequest struct {
	Nama               string    `json:"nama" validate:"required"`
	NIK                string    `json:"nik" validate:"required,len=16,numeric"`
	NoKK               *string   `json:"no_kk,omitempty"`
	JenisKelamin       *string   `json:"jenis_kelamin,omitempty" validate:"omitempty,oneof=L P"`
	TempatLahir        *string   `json:"tempat_lahir,omitempty"`
	TanggalLahir       *string   `json:"tanggal_lahir,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Agama              *string   `json:"agama,omitempty"`
	StatusPerkawinan   *string   `json:"status_perkawinan,omitempty"`
	Pekerjaan          *string   `json:"pekerjaan,omitempty"`
	StatusKependudukan *string   `json:"status_kependudukan,omitempty"`
	Alamat             *string   `json:"alamat,omitempty"`
	Phone              *string   `json:"phone,omitempty"`
	RTID               uuid.UUID `json:"rt_id" validate:"required"`
}

type ResidentResponse struct {
	ID                 string  `json:"id"`
	Nama               string  `json:"nama"`
	NIK                string  `json:"nik"`
	NoKK               *string `json:"no_kk,omitempty"`
	JenisKelamin       *string `json:"jenis_kelamin,omitempty"`
	TempatLahir        *string `json:"tempat_lahir,omitempty"`
	TanggalLahir       *string `json:"tanggal_lahir,omitempty"`
	Agama              *string `json:"agama,omitempty"`
	StatusPerkawinan   *string `json:"status_perkawinan,omitempty"`
	Pekerjaan          *string `json:"pekerjaan,omitempty"`
	StatusKependudukan *string `json:"status_kependudukan,omitempty"`
	Alamat             *string `json:"alamat,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	RTID               string  `json:"rt_id"`
	RTNomor            string  `json:"rt_nomor"`
	UserID             *string `json:"user_id,omitempty"`
	CreatedAt          string  `json:"created_at"`
}
