// Package accounts implements the authoritative identity tables: the active
// credential directory and the pending-registration queue. Both share the
// same record shape and the same global uniqueness rule — a username lives in
// at most one of the two tables at any time.
package accounts

import "strconv"

// Role determines which menu a session enters and which stores it may touch.
type Role int

const (
	RoleEngineer     Role = 1
	RoleOrganization Role = 2
	RoleAdmin        Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleEngineer:
		return "Engineer"
	case RoleOrganization:
		return "Organization"
	case RoleAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleEngineer || r == RoleOrganization || r == RoleAdmin
}

// ParseRole parses the stored numeric role field. ok is false for
// non-numeric or out-of-range values, which callers treat as a malformed
// record to skip.
func ParseRole(s string) (Role, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	r := Role(n)
	return r, r.Valid()
}

// Account is one identity record: `username password role`, space-delimited
// in the backing file.
type Account struct {
	Username string
	Password string
	Role     Role
}
