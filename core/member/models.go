package member

// Statuses
const (
	StatusActive   = "Active"
	StatusAlumni   = "Alumni"
	StatusRemoved  = "Removed"
	StatusDeceased = "Deceased"
)

// Roles
const (
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

var AllStatuses = []string{StatusActive, StatusAlumni, StatusRemoved, StatusDeceased}

// Member is a chapter member. This service only reads members; they are owned
// by the member-management service.
type Member struct {
	ID         string `json:"id"`
	RollNo     string `json:"roll_no"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Status     string `json:"status"`
	Role       string `json:"role"`
	IsECouncil bool   `json:"is_ecouncil"`
}

func (m Member) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	return m.FirstName + " " + m.LastName
}

func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin || m.Role == RoleSuperAdmin
}

// IsPrivileged reports whether the member may view and edit the whole
// chapter's standings: admins, superadmins and E-Council members.
func (m Member) IsPrivileged() bool {
	return m.IsAdmin() || m.IsECouncil
}

func (m Member) IsActive() bool {
	return m.Status == StatusActive
}
