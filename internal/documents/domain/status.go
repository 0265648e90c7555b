// Package domain holds the surat state machine and letter type catalog.
package domain

// Status is the processing state of a letter request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusDiproses Status = "diproses"
	StatusSelesai  Status = "selesai"
	StatusDitolak  Status = "ditolak"
)

// transitions lists the allowed next states per state. Selesai and ditolak
// are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusDiproses, StatusDitolak},
	StatusDiproses: {StatusSelesai, StatusDitolak},
}

// ParseStatus maps a wire status string, rejecting unknown values.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusDiproses, StatusSelesai, StatusDitolak:
		return Status(value), true
	default:
		return "", false
	}
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// JenisSurat lists the letter types residents can request.
var JenisSurat = map[string]string{
	"domisili":    "Surat Keterangan Domisili",
	"pengantar":   "Surat Pengantar",
	"keterangan":  "Surat Keterangan",
	"tidak_mampu": "Surat Keterangan Tidak Mampu",
	"kelahiran":   "Surat Keterangan Kelahiran",
	"kematian":    "Surat Keterangan Kematian",
	"pindah":      "Surat Keterangan Pindah",
	"usaha":       "Surat Keterangan Usaha",
}

// KnownJenis reports whether the letter type is recognized.
func KnownJenis(jenis string) bool {
	_, ok := JenisSurat[jenis]
	return ok
}
