package models

import "strings"

// Academic statuses of a student record.
const (
	AcademicStatusActive    = "Active"
	AcademicStatusInactive  = "Inactive"
	AcademicStatusGraduated = "Graduated"
)

// Student is a student profile as exchanged with /api/students/.
type Student struct {
	ID               ID     `json:"id,omitempty" form:"id"`
	AdmissionNo      string `json:"admission_no" form:"admission_no" label:"Admission No" validate:"notblank"`
	StudentID        string `json:"student_id,omitempty" form:"student_id"`
	Username         string `json:"username,omitempty"`
	FirstName        string `json:"first_name" form:"first_name" label:"First Name" validate:"notblank"`
	LastName         string `json:"last_name" form:"last_name" label:"Last Name" validate:"notblank"`
	Email            string `json:"email,omitempty" form:"email"`
	NationalID       string `json:"national_id,omitempty" form:"national_id"`
	Gender           string `json:"gender,omitempty" form:"gender"`
	DOB              string `json:"dob,omitempty" form:"dob"`
	ClassSection     string `json:"class_section" form:"class_section" label:"Class Section" validate:"notblank"`
	Department       string `json:"department,omitempty" form:"department"`
	Year             string `json:"year,omitempty" form:"year"`
	AcademicStatus   string `json:"academic_status,omitempty" form:"academic_status"`
	EnrollmentDate   string `json:"enrollment_date,omitempty" form:"enrollment_date"`
	Phone            string `json:"phone,omitempty" form:"phone"`
	Address          string `json:"address,omitempty" form:"address"`
	BloodGroup       string `json:"blood_group,omitempty" form:"blood_group"`
	MedicalCondition string `json:"medical_condition,omitempty" form:"medical_condition"`
	ExtraActivities  string `json:"extra_activities,omitempty" form:"extra_activities"`
	Remarks          string `json:"remarks,omitempty" form:"remarks"`
	FatherName       string `json:"father_name,omitempty" form:"father_name"`
	MotherName       string `json:"mother_name,omitempty" form:"mother_name"`
	GuardianContact  string `json:"guardian_contact,omitempty" form:"guardian_contact"`
	GuardianEmail    string `json:"guardian_email,omitempty" form:"guardian_email"`
	GuardianRelation string `json:"guardian_relation,omitempty" form:"guardian_relation"`
	Photo            string `json:"photo,omitempty"`
	Password         string `json:"password,omitempty"`
}

// NewStudent returns a blank student with the defaults the add form starts from.
func NewStudent() *Student {
	return &Student{AcademicStatus: AcademicStatusActive}
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// StudentStats are the counters shown above the student table.
type StudentStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Inactive  int `json:"inactive"`
	Graduated int `json:"graduated"`
	Male      int `json:"male"`
	Female    int `json:"female"`
}

// ComputeStudentStats derives the counters from an in-memory list.
func ComputeStudentStats(students []Student) StudentStats {
	stats := StudentStats{Total: len(students)}
	for _, s := range students {
		switch strings.ToLower(s.AcademicStatus) {
		case "active", "":
			stats.Active++
		case "inactive":
			stats.Inactive++
		case "graduated":
			stats.Graduated++
		}
		switch strings.ToLower(s.Gender) {
		case "male", "m":
			stats.Male++
		case "female", "f":
			stats.Female++
		}
	}
	return stats
}
