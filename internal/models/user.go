package models

import "strings"

// Role is the profile tag that selects a dashboard and its permissions.
type Role string

const (
	RoleNationalOffice   Role = "national_office"
	RoleRegionalOffice   Role = "regional_office"
	RoleZoneOffice       Role = "zone_office"
	RoleWeredaOffice     Role = "wereda_office"
	RoleUniversity       Role = "university"
	RoleCollege          Role = "college"
	RoleSenate           Role = "senate"
	RoleSchool           Role = "school"
	RoleViceDirector     Role = "vice_director"
	RoleDepartmentHead   Role = "department_head"
	RoleTeacher          Role = "teacher"
	RoleLibrarian        Role = "librarian"
	RoleRecordOfficer    Role = "record_officer"
	RoleStudent          Role = "student"
	RoleInventorian      Role = "inventorian"
	RoleStoreManager     Role = "store_man"
	RoleDormitoryManager Role = "dormitory_manager"
	RoleHROfficer        Role = "hr_officer"
)

// Label renders a role for display ("wereda_office" -> "Wereda Office").
func (r Role) Label() string {
	if r == "" {
		return "General Access"
	}
	words := strings.Split(string(r), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// IsOffice reports whether the role belongs to the administrative hierarchy.
func (r Role) IsOffice() bool {
	switch r {
	case RoleNationalOffice, RoleRegionalOffice, RoleZoneOffice, RoleWeredaOffice:
		return true
	}
	return false
}

// UserProfile is the authenticated user's own record, cached in the session.
type UserProfile struct {
	ID           ID     `json:"id"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"first_name" form:"first_name"`
	LastName     string `json:"last_name" form:"last_name"`
	Email        string `json:"email" form:"email"`
	Role         Role   `json:"role"`
	NationalID   string `json:"national_id,omitempty" form:"national_id"`
	Phone        string `json:"phone,omitempty" form:"phone"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
}

// FullName joins first and last name, falling back to the username.
func (u *UserProfile) FullName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// ProfileUpdate is the explicit profile-update payload.
type ProfileUpdate struct {
	FirstName string `json:"first_name,omitempty" form:"first_name"`
	LastName  string `json:"last_name,omitempty" form:"last_name"`
	Email     string `json:"email,omitempty" form:"email" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" form:"phone"`
}
