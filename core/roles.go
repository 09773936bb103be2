package core

// Role is the closed set of account types. The zero value is not a valid
// role; anything outside the set parses to it and fails every gate.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// ParseRole maps a stored or claimed string onto the closed set. Unknown
// values come back as the invalid zero Role rather than an error so a
// garbage claim is merely unauthorized.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return Role(s)
	default:
		return Role("")
	}
}

// Valid reports whether r belongs to the closed set.
func (r Role) Valid() bool {
	return ParseRole(string(r)) != Role("")
}

// In reports whether r is one of the allowed roles.
func (r Role) In(allowed ...Role) bool {
	if !r.Valid() {
		return false
	}
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// CanManageInventory reports whether the role may reach the inventory
// management surface.
func (r Role) CanManageInventory() bool {
	return r.In(RoleEmployee, RoleAdmin)
}
