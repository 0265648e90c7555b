// Package domain holds the laporan state machine and its category and
// priority catalogs.
package domain

// Status is the handling state of a complaint.
type Status string

const (
	StatusPending         Status = "pending"
	StatusDiproses        Status = "diproses"
	StatusDitindaklanjuti Status = "ditindaklanjuti"
	StatusSelesai         Status = "selesai"
	StatusDitolak         Status = "ditolak"
)

var transitions = map[Status][]Status{
	StatusPending:         {StatusDiproses, StatusDitolak},
	StatusDiproses:        {StatusDitindaklanjuti, StatusSelesai, StatusDitolak},
	StatusDitindaklanjuti: {StatusSelesai, StatusDitolak},
}

// ParseStatus maps a wire status string, rejecting unknown values.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusDiproses, StatusDitindaklanjuti, StatusSelesai, StatusDitolak:
		return Status(value), true
	default:
		return "", false
	}
}

// CanTransition reports whether a complaint may move between statuses.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Kategori lists recognized complaint categories.
var Kategori = map[string]string{
	"infrastruktur": "Infrastruktur",
	"keamanan":      "Keamanan",
	"kebersihan":    "Kebersihan",
	"sosial":        "Sosial",
	"lainnya":       "Lainnya",
}

// Prioritas lists recognized priorities.
var Prioritas = map[string]string{
	"rendah": "Rendah",
	"normal": "Normal",
	"tinggi": "Tinggi",
	"urgent": "Urgent",
}
