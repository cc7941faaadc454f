package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/eschool-portal/internal/listing"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/export"
)

func decimalText(d models.Decimal) string {
	if d == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(d), 'f', -1, 64)
}

func countText(c models.Count) string { return strconv.Itoa(c.Int()) }

func idsText(ids []models.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ";")
}

// StudentEntity manages /api/students/.
func StudentEntity() Entity[models.Student] {
	return Entity[models.Student]{
		Name:           "Student",
		ExportFilename: "students.csv",
		New:            models.NewStudent,
		ID:             func(s *models.Student) string { return s.ID.String() },
		Listing: listing.Spec[models.Student]{
			SearchFields: []func(models.Student) string{
				func(s models.Student) string { return s.FirstName },
				func(s models.Student) string { return s.LastName },
				func(s models.Student) string { return s.AdmissionNo },
				func(s models.Student) string { return s.Username },
			},
			Dropdowns: map[string]listing.Dropdown[models.Student]{
				"class":  {Value: func(s models.Student) string { return s.ClassSection }},
				"gender": {Value: func(s models.Student) string { return s.Gender }, FoldCase: true},
				"status": {Value: func(s models.Student) string { return s.AcademicStatus }},
			},
			Columns: map[string]func(models.Student) string{
				"admission_no":  func(s models.Student) string { return s.AdmissionNo },
				"first_name":    func(s models.Student) string { return s.FirstName },
				"last_name":     func(s models.Student) string { return s.LastName },
				"class_section": func(s models.Student) string { return s.ClassSection },
			},
		},
		Columns: []export.Column[models.Student]{
			{Header: "Admission No", Value: func(s models.Student) string { return s.AdmissionNo }},
			{Header: "Student ID", Value: func(s models.Student) string { return s.StudentID }},
			{Header: "First Name", Value: func(s models.Student) string { return s.FirstName }},
			{Header: "Last Name", Value: func(s models.Student) string { return s.LastName }},
			{Header: "Gender", Value: func(s models.Student) string { return s.Gender }},
			{Header: "Class Section", Value: func(s models.Student) string { return s.ClassSection }},
			{Header: "Status", Value: func(s models.Student) string { return s.AcademicStatus }},
			{Header: "Guardian Contact", Value: func(s models.Student) string { return s.GuardianContact }},
		},
	}
}

// EmployeeEntity manages /api/employees/.
func EmployeeEntity() Entity[models.Employee] {
	return Entity[models.Employee]{
		Name:           "Employee",
		ExportFilename: "employees.csv",
		New:            models.NewEmployee,
		ID:             func(e *models.Employee) string { return e.ID.String() },
		Normalize:      (*models.Employee).Normalize,
		Listing: listing.Spec[models.Employee]{
			SearchFields: []func(models.Employee) string{
				func(e models.Employee) string { return e.FirstName },
				func(e models.Employee) string { return e.LastName },
				func(e models.Employee) string { return e.Email },
				func(e models.Employee) string { return e.NationalID },
				func(e models.Employee) string { return e.StaffID },
			},
			Dropdowns: map[string]listing.Dropdown[models.Employee]{
				"department": {Value: func(e models.Employee) string { return e.Department }},
				"status":     {Value: func(e models.Employee) string { return e.Status }},
				"role":       {Value: func(e models.Employee) string { return string(e.Role) }},
			},
			Columns: map[string]func(models.Employee) string{
				"first_name": func(e models.Employee) string { return e.FirstName },
				"department": func(e models.Employee) string { return e.Department },
				"hire_date":  func(e models.Employee) string { return e.HireDate },
			},
		},
		Columns: []export.Column[models.Employee]{
			{Header: "Staff ID", Value: func(e models.Employee) string { return e.StaffID }},
			{Header: "First Name", Value: func(e models.Employee) string { return e.FirstName }},
			{Header: "Last Name", Value: func(e models.Employee) string { return e.LastName }},
			{Header: "Role", Value: func(e models.Employee) string { return e.Role.Label() }},
			{Header: "Department", Value: func(e models.Employee) string { return e.Department }},
			{Header: "Phone", Value: func(e models.Employee) string { return e.Phone }},
			{Header: "Status", Value: func(e models.Employee) string { return e.Status }},
			{Header: "Hire Date", Value: func(e models.Employee) string { return e.HireDate }},
		},
	}
}

// SchoolEntity manages /api/schools/.
func SchoolEntity() Entity[models.School] {
	return Entity[models.School]{
		Name:           "School",
		ExportFilename: "schools.csv",
		New:            models.NewSchool,
		ID:             func(s *models.School) string { return s.ID.String() },
		Listing: listing.Spec[models.School]{
			SearchFields: []func(models.School) string{
				func(s models.School) string { return s.Name },
				func(s models.School) string { return s.Code },
				func(s models.School) string { return s.Principal },
			},
			Dropdowns: map[string]listing.Dropdown[models.School]{
				"level": {Value: func(s models.School) string { return s.Level }},
				"type":  {Value: func(s models.School) string { return s.Type }},
			},
			Columns: map[string]func(models.School) string{
				"name":          func(s models.School) string { return s.Name },
				"student_count": func(s models.School) string { return countText(s.StudentCount) },
				"teacher_count": func(s models.School) string { return countText(s.TeacherCount) },
			},
		},
		Columns: []export.Column[models.School]{
			{Header: "Name", Value: func(s models.School) string { return s.Name }},
			{Header: "Code", Value: func(s models.School) string { return s.Code }},
			{Header: "Level", Value: func(s models.School) string { return s.Level }},
			{Header: "Type", Value: func(s models.School) string { return s.Type }},
			{Header: "Students", Value: func(s models.School) string { return countText(s.StudentCount) }},
			{Header: "Teachers", Value: func(s models.School) string { return countText(s.TeacherCount) }},
			{Header: "Principal", Value: func(s models.School) string { return s.Principal }},
		},
	}
}

// WeredaEntity manages /api/weredas/.
func WeredaEntity() Entity[models.Wereda] {
	return Entity[models.Wereda]{
		Name:           "Wereda",
		ExportFilename: "weredas.csv",
		New:            models.NewWereda,
		ID:             func(w *models.Wereda) string { return w.ID.String() },
		Listing: listing.Spec[models.Wereda]{
			SearchFields: []func(models.Wereda) string{
				func(w models.Wereda) string { return w.Name },
				func(w models.Wereda) string { return w.CreatedByUsername },
			},
			Dropdowns: map[string]listing.Dropdown[models.Wereda]{
				"status": {Value: func(w models.Wereda) string { return w.Status }},
			},
			Columns: map[string]func(models.Wereda) string{
				"name":               func(w models.Wereda) string { return w.Name },
				"population":         func(w models.Wereda) string { return countText(w.Population) },
				"area":               func(w models.Wereda) string { return decimalText(w.Area) },
				"number_of_schools":  func(w models.Wereda) string { return countText(w.NumberOfSchools) },
				"number_of_students": func(w models.Wereda) string { return countText(w.NumberOfStudents) },
				"number_of_teachers": func(w models.Wereda) string { return countText(w.NumberOfTeachers) },
				"literacy_rate":      func(w models.Wereda) string { return decimalText(w.LiteracyRate) },
			},
		},
		Columns: []export.Column[models.Wereda]{
			{Header: "Name", Value: func(w models.Wereda) string { return w.Name }},
			{Header: "Population", Value: func(w models.Wereda) string { return countText(w.Population) }},
			{Header: "Area (km2)", Value: func(w models.Wereda) string { return decimalText(w.Area) }},
			{Header: "Schools", Value: func(w models.Wereda) string { return countText(w.NumberOfSchools) }},
			{Header: "Students", Value: func(w models.Wereda) string { return countText(w.NumberOfStudents) }},
			{Header: "Teachers", Value: func(w models.Wereda) string { return countText(w.NumberOfTeachers) }},
			{Header: "Literacy Rate", Value: func(w models.Wereda) string { return decimalText(w.LiteracyRate) }},
			{Header: "Status", Value: func(w models.Wereda) string { return w.Status }},
		},
	}
}

func credentialsMessage(subject string, c models.Credentials) string {
	if c.Username == "" && c.Secret() == "" {
		return subject + " registered successfully!"
	}
	return fmt.Sprintf("%s registered! Username: %s, Password: %s", subject, models.OrNA(c.Username), models.OrNA(c.Secret()))
}

// WeredaManagerEntity manages /api/wereda/officer/.
func WeredaManagerEntity() Entity[models.WeredaManager] {
	return Entity[models.WeredaManager]{
		Name:           "Manager",
		ExportFilename: "wereda_managers.csv",
		New:            models.NewWeredaManager,
		ID:             func(m *models.WeredaManager) string { return m.ID.String() },
		Normalize:      (*models.WeredaManager).Normalize,
		CreatedMessage: func(m *models.WeredaManager) string { return credentialsMessage("Manager", m.Credentials) },
		Credentials:    func(m *models.WeredaManager) *models.Credentials { c := m.Credentials; return &c },
		Listing: listing.Spec[models.WeredaManager]{
			SearchFields: []func(models.WeredaManager) string{
				func(m models.WeredaManager) string { return m.FirstName },
				func(m models.WeredaManager) string { return m.LastName },
				func(m models.WeredaManager) string { return m.Email },
				func(m models.WeredaManager) string { return m.StaffID },
			},
			Dropdowns: map[string]listing.Dropdown[models.WeredaManager]{
				"wereda": {Value: func(m models.WeredaManager) string { return m.Wereda.String() }},
				"status": {Value: func(m models.WeredaManager) string { return m.Status }},
			},
		},
		Columns: []export.Column[models.WeredaManager]{
			{Header: "Staff ID", Value: func(m models.WeredaManager) string { return m.StaffID }},
			{Header: "First Name", Value: func(m models.WeredaManager) string { return m.FirstName }},
			{Header: "Last Name", Value: func(m models.WeredaManager) string { return m.LastName }},
			{Header: "Email", Value: func(m models.WeredaManager) string { return m.Email }},
			{Header: "Wereda", Value: func(m models.WeredaManager) string { return m.Wereda.String() }},
			{Header: "Phone", Value: func(m models.WeredaManager) string { return m.Phone }},
		},
	}
}

// SchoolManagerEntity manages /api/register_school_manager/.
func SchoolManagerEntity() Entity[models.SchoolManager] {
	return Entity[models.SchoolManager]{
		Name:           "Manager",
		ExportFilename: "school_managers.csv",
		New:            models.NewSchoolManager,
		ID:             func(m *models.SchoolManager) string { return m.ID.String() },
		Normalize:      (*models.SchoolManager).Normalize,
		CreatedMessage: func(m *models.SchoolManager) string { return credentialsMessage("Manager", m.Credentials) },
		Credentials:    func(m *models.SchoolManager) *models.Credentials { c := m.Credentials; return &c },
		Listing: listing.Spec[models.SchoolManager]{
			SearchFields: []func(models.SchoolManager) string{
				func(m models.SchoolManager) string { return m.FirstName },
				func(m models.SchoolManager) string { return m.LastName },
				func(m models.SchoolManager) string { return m.Email },
				func(m models.SchoolManager) string { return m.NationalID },
			},
			Dropdowns: map[string]listing.Dropdown[models.SchoolManager]{
				"school": {Value: func(m models.SchoolManager) string { return m.AssignedSchoolID.String() }},
			},
		},
		Columns: []export.Column[models.SchoolManager]{
			{Header: "First Name", Value: func(m models.SchoolManager) string { return m.FirstName }},
			{Header: "Last Name", Value: func(m models.SchoolManager) string { return m.LastName }},
			{Header: "Email", Value: func(m models.SchoolManager) string { return m.Email }},
			{Header: "National ID", Value: func(m models.SchoolManager) string { return m.NationalID }},
			{Header: "School", Value: func(m models.SchoolManager) string {
				if m.AssignedSchool != nil {
					return m.AssignedSchool.Name
				}
				return m.AssignedSchoolID.String()
			}},
		},
	}
}

// SupervisorEntity manages /api/register_schools_supervisor/.
func SupervisorEntity() Entity[models.Supervisor] {
	return Entity[models.Supervisor]{
		Name:           "Supervisor",
		ExportFilename: "supervisors.csv",
		New:            models.NewSupervisor,
		ID:             func(s *models.Supervisor) string { return s.ID.String() },
		Normalize:      (*models.Supervisor).Normalize,
		CreatedMessage: func(s *models.Supervisor) string { return credentialsMessage("Supervisor", s.Credentials) },
		Credentials:    func(s *models.Supervisor) *models.Credentials { c := s.Credentials; return &c },
		Listing: listing.Spec[models.Supervisor]{
			SearchFields: []func(models.Supervisor) string{
				func(s models.Supervisor) string { return s.FirstName },
				func(s models.Supervisor) string { return s.LastName },
				func(s models.Supervisor) string { return s.Email },
				func(s models.Supervisor) string { return s.NationalID },
			},
		},
		Columns: []export.Column[models.Supervisor]{
			{Header: "First Name", Value: func(s models.Supervisor) string { return s.FirstName }},
			{Header: "Last Name", Value: func(s models.Supervisor) string { return s.LastName }},
			{Header: "Email", Value: func(s models.Supervisor) string { return s.Email }},
			{Header: "National ID", Value: func(s models.Supervisor) string { return s.NationalID }},
			{Header: "Schools", Value: func(s models.Supervisor) string { return idsText(s.AssignedSchoolIDs) }},
		},
	}
}
