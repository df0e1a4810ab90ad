package model

// Roles a principal can act under for the current request.
const (
	RoleStudent      = "student"
	RoleProfessor    = "professor"
	RoleFacultyAdmin = "faculty_admin"
)

// Principal is the authenticated caller's identity plus effective role/faculty
// context. Authentication itself happens upstream; this package only models
// the already-resolved result.
type Principal struct {
	UserID          string `json:"user_id"`
	DisplayName     string `json:"display_name"`
	Email           string `json:"email"`
	IsSuperAdmin    bool   `json:"is_super_admin"`
	ActiveRole      string `json:"active_role"`
	ActiveFacultyID string `json:"active_faculty_id,omitempty"`
}

// Privileged reports whether the principal bypasses quota enforcement.
// Super admins and faculty admins are never quota-gated.
func (p Principal) Privileged() bool {
	return p.IsSuperAdmin || p.ActiveRole == RoleFacultyAdmin
}

// CanUpload reports whether the principal may create content.
func (p Principal) CanUpload() bool {
	return p.IsSuperAdmin || p.ActiveRole == RoleProfessor || p.ActiveRole == RoleFacultyAdmin
}
