package models

// GradeRecord is one assessment result. Read-only for students.
type GradeRecord struct {
	SubjectName  string  `json:"subject_name"`
	SubjectCode  string  `json:"subject_code,omitempty"`
	GradeType    string  `json:"grade_type"`
	Score        Decimal `json:"score"`
	FullMark     Decimal `json:"full_mark"`
	SemesterName string  `json:"semester_name,omitempty"`
	AcademicYear string  `json:"academic_year,omitempty"`
	DateRecorded string  `json:"date_recorded,omitempty"`
}

// Percentage returns score/fullMark*100, or 0 when the full mark is not positive.
func (g GradeRecord) Percentage() float64 {
	if g.FullMark <= 0 {
		return 0
	}
	return float64(g.Score) / float64(g.FullMark) * 100
}

// GradesResponse is the my_grades payload.
type GradesResponse struct {
	Grades []GradeRecord `json:"grades"`
}

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// AttendanceRecord is one day's attendance entry.
type AttendanceRecord struct {
	ID          ID     `json:"id,omitempty"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Subject     string `json:"subject,omitempty"`
	SubjectName string `json:"subject_name,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

// AttendanceStatistics are the server-computed attendance counters.
type AttendanceStatistics struct {
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	TotalDays            int     `json:"total_days"`
	AttendancePercentage Decimal `json:"attendance_percentage"`
}

// AttendanceResponse is the my_attendance payload.
type AttendanceResponse struct {
	Attendance []AttendanceRecord    `json:"attendance"`
	Statistics *AttendanceStatistics `json:"statistics,omitempty"`
}

// Subject is an enrolled subject with aggregate scores.
type Subject struct {
	ID           ID      `json:"id,omitempty"`
	Name         string  `json:"name"`
	Code         string  `json:"code,omitempty"`
	CreditHours  Count   `json:"credit_hours,omitempty"`
	Department   string  `json:"department,omitempty"`
	Level        string  `json:"level,omitempty"`
	TotalGrades  Count   `json:"total_grades,omitempty"`
	AverageScore Decimal `json:"average_score,omitempty"`
}

// SubjectsResponse is the my_subjects payload.
type SubjectsResponse struct {
	Subjects []Subject `json:"subjects"`
}

// LibraryRecord is a book borrowed by the student.
type LibraryRecord struct {
	ID                 ID     `json:"id,omitempty"`
	BookTitle          string `json:"book_title"`
	BookAuthor         string `json:"book_author,omitempty"`
	BookISBN           string `json:"book_isbn,omitempty"`
	BorrowDate         string `json:"borrow_date"`
	ExpectedReturnDate string `json:"expected_return_date"`
	ActualReturnDate   string `json:"actual_return_date,omitempty"`
	Returned           bool   `json:"returned"`
	Overdue            bool   `json:"overdue"`
}

// LibraryResponse is the my_library_records payload.
type LibraryResponse struct {
	Records []LibraryRecord `json:"library_records"`
}

// Borrowed counts books not yet returned.
func (r LibraryResponse) Borrowed() (borrowed, overdue int) {
	for _, rec := range r.Records {
		if rec.Returned {
			continue
		}
		borrowed++
		if rec.Overdue {
			overdue++
		}
	}
	return borrowed, overdue
}

// StudentInfo is the identity block of the academic summary.
type StudentInfo struct {
	Name         string `json:"name,omitempty"`
	StudentID    string `json:"student_id,omitempty"`
	ClassSection string `json:"class_section,omitempty"`
	Department   string `json:"department,omitempty"`
}

// SubjectPerformance is a per-subject line of the academic summary.
type SubjectPerformance struct {
	SubjectName      string  `json:"subject_name"`
	SubjectCode      string  `json:"subject_code,omitempty"`
	AverageScore     Decimal `json:"average_score"`
	TotalAssessments int     `json:"total_assessments"`
}

// AcademicPerformance is the server-computed performance block.
type AcademicPerformance struct {
	OverallAverage      Decimal              `json:"overall_average"`
	TotalAssessments    int                  `json:"total_assessments"`
	SubjectsCount       int                  `json:"subjects_count"`
	SubjectsPerformance []SubjectPerformance `json:"subjects_performance,omitempty"`
}

// AcademicSummary is the academic_summary payload.
type AcademicSummary struct {
	StudentInfo         StudentInfo          `json:"student_info"`
	AcademicPerformance AcademicPerformance  `json:"academic_performance"`
	AttendanceSummary   AttendanceStatistics `json:"attendance_summary"`
}

// StudentQuery carries the optional filters of the student-self endpoints.
type StudentQuery struct {
	DateFrom     string `form:"date_from" json:"date_from,omitempty"`
	DateTo       string `form:"date_to" json:"date_to,omitempty"`
	Subject      string `form:"subject" json:"subject,omitempty"`
	Semester     string `form:"semester" json:"semester,omitempty"`
	AcademicYear string `form:"academic_year" json:"academic_year,omitempty"`
}

// Params returns the non-empty filters as query parameters.
func (q StudentQuery) Params() map[string]string {
	params := make(map[string]string, 5)
	for key, value := range map[string]string{
		"date_from":     q.DateFrom,
		"date_to":       q.DateTo,
		"subject":       q.Subject,
		"semester":      q.Semester,
		"academic_year": q.AcademicYear,
	} {
		if value != "" {
			params[key] = value
		}
	}
	return params
}
