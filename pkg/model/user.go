package model

// Role is the role of a user account.
type Role string

const (
	// RoleMember is a standard authenticated user.
	RoleMember Role = "Member"
	// RoleAdmin may create, update, and delete alerts.
	RoleAdmin Role = "Admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// User is a weather-alert service account. Immutable once fetched; the
// server is the only writer.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the user may perform privileged alert operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
