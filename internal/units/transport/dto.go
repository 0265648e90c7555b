// Package transport defines wire types for unit management routes.
package transport

type UnitRequest struct {
	Nomor  string  `json:"nomor" validate:"required"`
	Nama   string  `json:"nama" validate:"required"`
	Alamat *string `json:"alamat,omitempty"`
}

type RWResponse struct {
	ID        string  `json:"id"`
	Nomor     string  `json:"nomor"`
	Nama      string  `json:"nama"`
	Alamat    *string `json:"alamat,omitempty"`
	KetuaID   *string `json:"ketua_id,omitempty"`
	KetuaNama *string `json:"ketua_nama,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type RTResponse struct {
	ID        string  `json:"id"`
	RWID      string  `json:"rw_id"`
	RWNomor   string  `json:"rw_nomor"`
	Nomor     string  `json:"nomor"`
	Nama      string  `json:"nama"`
	Alamat    *string `json:"alamat,omitempty"`
	KetuaID   *string `json:"ketua_id,omitempty"`
	KetuaNama *string `json:"ketua_nama,omitempty"`
	CreatedAt string  `json:"created_at"`
}
