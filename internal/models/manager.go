package models

import "strings"

// ManagerAccount is the nested account block on manager and supervisor records.
type ManagerAccount struct {
	ID         ID     `json:"id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Username   string `json:"username,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       Role   `json:"role,omitempty"`
}

// SchoolRef is the compact school reference embedded in registrations.
type SchoolRef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Credentials are the server-generated login details returned on registration.
type Credentials struct {
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	PlainPassword string `json:"plain_password,omitempty"`
}

// Secret returns whichever password field the backend populated.
func (c Credentials) Secret() string {
	if c.PlainPassword != "" {
		return c.PlainPassword
	}
	return c.Password
}

// WeredaManager is a wereda office manager (/api/wereda/officer/).
type WeredaManager struct {
	ID         ID              `json:"id,omitempty" form:"id"`
	StaffID    string          `json:"staff_id,omitempty"`
	Wereda     ID              `json:"wereda,omitempty" form:"wereda" label:"Wereda" validate:"notblank"`
	FirstName  string          `json:"first_name,omitempty" form:"first_name" label:"First Name" validate:"notblank"`
	LastName   string          `json:"last_name,omitempty" form:"last_name" label:"Last Name" validate:"notblank"`
	Email      string          `json:"email,omitempty" form:"email" label:"Email" validate:"notblank"`
	Phone      string          `json:"phone,omitempty" form:"phone"`
	Department string          `json:"department,omitempty" form:"department"`
	Status     string          `json:"status,omitempty"`
	User       *ManagerAccount `json:"user,omitempty"`
	CreatedAt  string          `json:"created_at,omitempty"`
	Credentials
}

// NewWeredaManager returns a blank manager for the add form.
func NewWeredaManager() *WeredaManager {
	return &WeredaManager{Department: "Wereda Management"}
}

// Normalize lifts the nested account into the flat form fields.
func (m *WeredaManager) Normalize() {
	if m.User == nil {
		return
	}
	m.FirstName = firstNonEmpty(m.FirstName, m.User.FirstName)
	m.LastName = firstNonEmpty(m.LastName, m.User.LastName)
	m.Email = firstNonEmpty(m.Email, m.User.Email)
	m.Phone = firstNonEmpty(m.Phone, m.User.Phone)
}

// SchoolManager is a school director account (/api/register_school_manager/).
type SchoolManager struct {
	ID               ID              `json:"id,omitempty" form:"id"`
	FirstName        string          `json:"first_name,omitempty" form:"first_name" label:"First Name" validate:"notblank"`
	LastName         string          `json:"last_name,omitempty" form:"last_name" label:"Last Name" validate:"notblank"`
	Email            string          `json:"email,omitempty" form:"email" label:"Email" validate:"notblank"`
	NationalID       string          `json:"national_id,omitempty" form:"national_id" label:"National ID" validate:"notblank"`
	AssignedSchoolID ID              `json:"assigned_school_id,omitempty" form:"assigned_school_id" label:"Assigned School" validate:"notblank"`
	Phone            string          `json:"phone,omitempty" form:"phone"`
	Department       string          `json:"department,omitempty" form:"department"`
	HireDate         string          `json:"hire_date,omitempty" form:"hire_date"`
	Address          string          `json:"address,omitempty" form:"address"`
	AssignedSchool   *SchoolRef      `json:"assigned_school,omitempty"`
	User             *ManagerAccount `json:"user,omitempty"`
	CreatedAt        string          `json:"created_at,omitempty"`
	Credentials
}

// NewSchoolManager returns a blank school manager for the add form.
func NewSchoolManager() *SchoolManager {
	return &SchoolManager{Department: "School Management"}
}

// Normalize lifts nested account and school blocks into the flat form fields.
func (m *SchoolManager) Normalize() {
	if m.User != nil {
		m.FirstName = firstNonEmpty(m.FirstName, m.User.FirstName)
		m.LastName = firstNonEmpty(m.LastName, m.User.LastName)
		m.Email = firstNonEmpty(m.Email, m.User.Email)
		m.NationalID = firstNonEmpty(m.NationalID, m.User.NationalID)
		m.Username = firstNonEmpty(m.Username, m.User.Username)
	}
	if m.AssignedSchool != nil && m.AssignedSchoolID == "" {
		m.AssignedSchoolID = m.AssignedSchool.ID
	}
}

// Supervisor oversees several schools (/api/register_schools_supervisor/).
type Supervisor struct {
	ID                ID          `json:"id,omitempty" form:"id"`
	FirstName         string      `json:"first_name" form:"first_name" label:"First Name" validate:"notblank"`
	LastName          string      `json:"last_name" form:"last_name" label:"Last Name" validate:"notblank"`
	Email             string      `json:"email" form:"email" label:"Email" validate:"notblank"`
	NationalID        string      `json:"national_id" form:"national_id" label:"National ID" validate:"notblank"`
	Role              Role        `json:"role,omitempty"`
	AssignedSchoolIDs []ID        `json:"assigned_school_ids,omitempty" form:"assigned_school_ids" label:"Assigned Schools" validate:"min=1"`
	AssignedSchools   []SchoolRef `json:"assigned_schools,omitempty"`
	Credentials
}

// NewSupervisor returns a blank supervisor for the add form.
func NewSupervisor() *Supervisor {
	return &Supervisor{}
}

// Normalize derives school ids from the nested school list.
func (s *Supervisor) Normalize() {
	if len(s.AssignedSchoolIDs) > 0 {
		return
	}
	for _, school := range s.AssignedSchools {
		s.AssignedSchoolIDs = append(s.AssignedSchoolIDs, school.ID)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
