package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "superadmin" // Can manage admin accounts
	RoleAdmin      Role = "admin"      // Can manage employees and view all time logs
	RoleEmployee   Role = "employee"   // Regular employee
)

type User struct {
	ID           string
	EmployeeID   string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSuperAdmin checks if the role can manage admin accounts
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// IsAdmin checks if the role is admin or superadmin
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee:
		return true
	}
	return false
}
