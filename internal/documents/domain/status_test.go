package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusDiproses, true},
		{StatusPending, StatusDitolak, true},
		{StatusPending, StatusSelesai, false},
		{StatusPending, StatusPending, false},

		{StatusDiproses, StatusSelesai, true},
		{StatusDiproses, StatusDitolak, true},
		{StatusDiproses, StatusPending, false},
		{StatusDiproses, StatusDiproses, false},

		// Terminal states allow nothing.
		{StatusSelesai, StatusPending, false},
		{StatusSelesai, StatusDiproses, false},
		{StatusSelesai, StatusDitolak, false},
		{StatusDitolak, StatusPending, false},
		{StatusDitolak, StatusDiproses, false},
		{StatusDitolak, StatusSelesai, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "diproses", "selesai", "ditolak"} {
		if _, ok := ParseStatus(valid); !ok {
			t.Errorf("ParseStatus(%q) rejected a valid status", valid)
		}
	}
	for _, invalid := range []string{"", "done", "Pending", "ditindaklanjuti"} {
		if _, ok := ParseStatus(invalid); ok {
			t.Errorf("ParseStatus(%q) accepted an invalid status", invalid)
		}
	}
}

func TestKnownJenis(t *testing.T) {
	if !KnownJenis("domisili") || !KnownJenis("usaha") {
		t.Error("known letter types rejected")
	}
	if KnownJenis("") || KnownJenis("sakti") {
		t.Error("unknown letter types accepted")
	}
}
