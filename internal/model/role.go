package model

// Role is the privilege level carried by a session
type Role string

const (
	// RoleAdmin can apply score deltas
	RoleAdmin Role = "admin"
	// RoleDictator can apply score deltas and toggle the global lock
	RoleDictator Role = "dictator"
)

// Valid reports whether the role is one of the known enum values.
// Anything else is treated as no session at all.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDictator
}
