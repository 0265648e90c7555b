package policy

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"admin", RoleAdmin, true},
		{"rw", RoleRW, true},
		{"rt", RoleRT, true},
		{"penduduk", RolePenduduk, true},
		{"", RoleUnknown, false},
		{"superadmin", RoleUnknown, false},
		{"Admin", RoleUnknown, false},
		{"RT", RoleUnknown, false},
	}

	for _, tc := range cases {
		got, ok := Parse(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestCanProvision(t *testing.T) {
	// Full actor x target grid. The creation hierarchy is strict: nobody may
	// create a peer or a superior, and penduduk may create nothing.
	cases := []struct {
		actor  Role
		target Role
		want   bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleRW, true},
		{RoleAdmin, RoleRT, true},
		{RoleAdmin, RolePenduduk, true},

		{RoleRW, RoleAdmin, false},
		{RoleRW, RoleRW, false},
		{RoleRW, RoleRT, true},
		{RoleRW, RolePenduduk, true},

		{RoleRT, RoleAdmin, false},
		{RoleRT, RoleRW, false},
		{RoleRT, RoleRT, false},
		{RoleRT, RolePenduduk, true},

		{RolePenduduk, RoleAdmin, false},
		{RolePenduduk, RoleRW, false},
		{RolePenduduk, RoleRT, false},
		{RolePenduduk, RolePenduduk, false},
	}

	for _, tc := range cases {
		if got := CanProvision(tc.actor, tc.target); got != tc.want {
			t.Errorf("CanProvision(%q, %q) = %v, want %v", tc.actor, tc.target, got, tc.want)
		}
	}
}

func TestCanProvisionUnknownTarget(t *testing.T) {
	for _, actor := range []Role{RoleAdmin, RoleRW, RoleRT, RolePenduduk, RoleUnknown} {
		if CanProvision(actor, RoleUnknown) {
			t.Errorf("CanProvision(%q, unknown) = true, want false", actor)
		}
		if CanProvision(actor, Role("superuser")) {
			t.Errorf("CanProvision(%q, unrecognized) = true, want false", actor)
		}
	}
}

func TestCanRetire(t *testing.T) {
	cases := []struct {
		actor  Role
		target Role
		want   bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleRW, true},
		{RoleAdmin, RoleRT, true},
		{RoleAdmin, RolePenduduk, true},
		// Only an administrator may clean up an orphan identity.
		{RoleAdmin, RoleUnknown, true},

		{RoleRW, RoleAdmin, false},
		{RoleRW, RoleRW, false},
		{RoleRW, RoleRT, false},
		{RoleRW, RolePenduduk, true},
		{RoleRW, RoleUnknown, false},

		{RoleRT, RoleAdmin, false},
		{RoleRT, RoleRW, false},
		{RoleRT, RoleRT, false},
		{RoleRT, RolePenduduk, true},
		{RoleRT, RoleUnknown, false},

		{RolePenduduk, RoleAdmin, false},
		{RolePenduduk, RoleRW, false},
		{RolePenduduk, RoleRT, false},
		{RolePenduduk, RolePenduduk, false},
		{RolePenduduk, RoleUnknown, false},
	}

	for _, tc := range cases {
		if got := CanRetire(tc.actor, tc.target); got != tc.want {
			t.Errorf("CanRetire(%q, %q) = %v, want %v", tc.actor, tc.target, got, tc.want)
		}
	}
}
