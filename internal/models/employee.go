package models

import "strings"

// Employee statuses.
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusOnLeave  = "on_leave"
	EmployeeStatusInactive = "inactive"
)

// EmployeeUser is the nested account block the backend returns for staff records.
type EmployeeUser struct {
	ID         ID     `json:"id,omitempty"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
	Role       Role   `json:"role,omitempty"`
	NationalID string `json:"national_id,omitempty"`
}

// Employee is a staff profile as exchanged with /api/employees/. Writes use the flat
// first_name/last_name/national_id fields; reads carry the nested User block.
type Employee struct {
	ID               ID            `json:"id,omitempty" form:"id"`
	User             *EmployeeUser `json:"user,omitempty"`
	FirstName        string        `json:"first_name,omitempty" form:"first_name" label:"First Name" validate:"notblank"`
	LastName         string        `json:"last_name,omitempty" form:"last_name" label:"Last Name" validate:"notblank"`
	Email            string        `json:"email,omitempty" form:"email"`
	NationalID       string        `json:"national_id,omitempty" form:"national_id" label:"National ID" validate:"notblank"`
	Phone            string        `json:"phone,omitempty" form:"phone" label:"Phone" validate:"notblank"`
	Role             Role          `json:"role,omitempty" form:"role"`
	Department       string        `json:"department" form:"department" label:"Department" validate:"notblank"`
	Subject          string        `json:"subject,omitempty" form:"subject"`
	HireDate         string        `json:"hire_date,omitempty" form:"hire_date"`
	Salary           Decimal       `json:"salary,omitempty" form:"salary"`
	Qualifications   string        `json:"qualifications,omitempty" form:"qualifications"`
	Status           string        `json:"status,omitempty" form:"status"`
	Address          string        `json:"address,omitempty" form:"address"`
	EmergencyContact string        `json:"emergency_contact,omitempty" form:"emergency_contact"`
	Notes            string        `json:"notes,omitempty" form:"notes"`
	StaffID          string        `json:"staff_id,omitempty"`
	Password         string        `json:"password,omitempty"`
}

// NewEmployee returns a blank staff record for the add form.
func NewEmployee() *Employee {
	return &Employee{Role: RoleTeacher, Status: EmployeeStatusActive}
}

// Normalize copies the nested user block into the flat fields so forms and filters see one shape.
func (e *Employee) Normalize() {
	if e.User == nil {
		return
	}
	if e.FirstName == "" {
		e.FirstName = e.User.FirstName
	}
	if e.LastName == "" {
		e.LastName = e.User.LastName
	}
	if e.Email == "" {
		e.Email = e.User.Email
	}
	if e.Role == "" {
		e.Role = e.User.Role
	}
	if e.NationalID == "" {
		e.NationalID = e.User.NationalID
	}
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ToggledStatus returns the status an active/inactive toggle moves to.
func (e Employee) ToggledStatus() string {
	if e.Status == EmployeeStatusActive {
		return EmployeeStatusInactive
	}
	return EmployeeStatusActive
}

// EmployeeStats are the counters shown above the staff table.
type EmployeeStats struct {
	Total    int `json:"total"`
	Teachers int `json:"teachers"`
	Admin    int `json:"admin"`
	Active   int `json:"active"`
	OnLeave  int `json:"on_leave"`
}

// ComputeEmployeeStats derives the staff counters from an in-memory list.
func ComputeEmployeeStats(employees []Employee) EmployeeStats {
	stats := EmployeeStats{Total: len(employees)}
	for _, e := range employees {
		if e.Role == RoleTeacher {
			stats.Teachers++
		} else {
			stats.Admin++
		}
		switch e.Status {
		case EmployeeStatusActive:
			stats.Active++
		case EmployeeStatusOnLeave:
			stats.OnLeave++
		}
	}
	return stats
}
