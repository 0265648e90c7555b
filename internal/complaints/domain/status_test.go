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
		{StatusPending, StatusDitindaklanjuti, false},
		{StatusPending, StatusSelesai, false},

		{StatusDiproses, StatusDitindaklanjuti, true},
		{StatusDiproses, StatusSelesai, true},
		{StatusDiproses, StatusDitolak, true},
		{StatusDiproses, StatusPending, false},

		{StatusDitindaklanjuti, StatusSelesai, true},
		{StatusDitindaklanjuti, StatusDitolak, true},
		{StatusDitindaklanjuti, StatusDiproses, false},

		{StatusSelesai, StatusDiproses, false},
		{StatusDitolak, StatusDiproses, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
