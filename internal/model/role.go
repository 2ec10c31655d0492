package model

// Role is the single role a user account holds.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeacher    Role = "teacher"
	RoleParent     Role = "parent"
	RoleAccountant Role = "accountant"
	RoleStudent    Role = "student"
)

// AllRoles lists every assignable role.
var AllRoles = []Role{RoleAdmin, RoleTeacher, RoleParent, RoleAccountant, RoleStudent}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// In reports whether r is contained in the allow-list.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
