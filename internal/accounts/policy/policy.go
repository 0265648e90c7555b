// Package policy encodes which actor role may provision or retire which
// target role. Pure decision functions, no I/O, fully decoupled from the
// directory lookups that produce the role values.
package policy

// Role is an account's single role in the neighborhood hierarchy.
type Role string

const (
	// RoleAdmin is the kelurahan administrator.
	RoleAdmin Role = "admin"
	// RoleRW leads an organizational unit (rukun warga).
	RoleRW Role = "rw"
	// RoleRT leads a sub-unit (rukun tetangga).
	RoleRT Role = "rt"
	// RolePenduduk is a regular resident account.
	RolePenduduk Role = "penduduk"
	// RoleUnknown marks a target with no role assignment (orphan identity).
	RoleUnknown Role = ""
)

// Parse maps a wire-level role string to a Role. Anything unrecognized,
// including the empty string, parses to RoleUnknown with ok=false.
func Parse(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleRW, RoleRT, RolePenduduk:
		return Role(value), true
	default:
		return RoleUnknown, false
	}
}

// Known reports whether the role is one of the four assignable roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleRW, RoleRT, RolePenduduk:
		return true
	default:
		return false
	}
}

// CanProvision reports whether an actor role may create an account with the
// target role.
//
//	admin    -> any role
//	rw       -> rt, penduduk
//	rt       -> penduduk
//	penduduk -> nothing
func CanProvision(actor, target Role) bool {
	if !target.Known() {
		return false
	}

	switch actor {
	case RoleAdmin:
		return true
	case RoleRW:
		return target == RoleRT || target == RolePenduduk
	case RoleRT:
		return target == RolePenduduk
	default:
		return false
	}
}

// CanRetire reports whether an actor role may permanently retire an account
// with the target role. Self-retirement is rejected separately by identity
// comparison, never here.
//
//	admin    -> any role, including orphans with no role assignment
//	rw       -> penduduk
//	rt       -> penduduk
//	penduduk -> nothing
func CanRetire(actor, target Role) bool {
	switch actor {
	case RoleAdmin:
		return true
	case RoleRW, RoleRT:
		return target == RolePenduduk
	default:
		return false
	}
}
