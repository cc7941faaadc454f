package models

// TeacherInfo identifies the teacher on the dashboard summary.
type TeacherInfo struct {
	Name         string `json:"name"`
	EmployeeID   string `json:"employee_id,omitempty"`
	Department   string `json:"department,omitempty"`
	AcademicRank string `json:"academic_rank,omitempty"`
}

// TeacherStatistics are the counters of the teacher dashboard.
type TeacherStatistics struct {
	TotalSubjects         int     `json:"total_subjects"`
	TotalStudents         int     `json:"total_students"`
	RecentGradesEntered   int     `json:"recent_grades_entered"`
	RecentAttendanceTaken int     `json:"recent_attendance_taken"`
	PendingAttendance     int     `json:"pending_attendance"`
	AvgClassPerformance   Decimal `json:"avg_class_performance"`
}

// ScheduleSlot is one lesson of today's timetable.
type ScheduleSlot struct {
	Subject string `json:"subject"`
	Section string `json:"section"`
	Room    string `json:"room"`
	Time    string `json:"time"`
}

// TeacherDashboard is the dashboard_summary payload.
type TeacherDashboard struct {
	TeacherInfo   TeacherInfo       `json:"teacher_info"`
	Statistics    TeacherStatistics `json:"statistics"`
	TodaySchedule []ScheduleSlot    `json:"today_schedule"`
}

// TeacherClass is a section the teacher advises, calls names for, or teaches.
type TeacherClass struct {
	ID             ID       `json:"id"`
	Name           string   `json:"name"`
	ClassGroup     string   `json:"class_group"`
	Section        string   `json:"section"`
	Level          string   `json:"level,omitempty"`
	Program        string   `json:"program,omitempty"`
	StudentCount   int      `json:"student_count"`
	IsAdvisor      bool     `json:"is_advisor"`
	IsNameCaller   bool     `json:"is_name_caller"`
	SubjectsTaught []string `json:"subjects_taught"`
}

// TeacherStudentPerformance is the per-student performance block.
type TeacherStudentPerformance struct {
	AverageGrade     Decimal  `json:"average_grade"`
	TotalAssessments int      `json:"total_assessments"`
	SubjectsTaught   []string `json:"subjects_taught"`
}

// TeacherStudent is a student taught by the teacher.
type TeacherStudent struct {
	StudentID           ID                        `json:"student_id"`
	StudentName         string                    `json:"student_name"`
	AdmissionNo         string                    `json:"admission_no"`
	StudentIDNumber     string                    `json:"student_id_number,omitempty"`
	ClassSection        string                    `json:"class_section"`
	Email               string                    `json:"email,omitempty"`
	AcademicPerformance TeacherStudentPerformance `json:"academic_performance"`
}

// AttendanceEntry is a teacher-recorded attendance row.
type AttendanceEntry struct {
	ID          ID     `json:"id,omitempty"`
	Student     ID     `json:"student" form:"student" label:"Student" validate:"notblank"`
	StudentName string `json:"student_name,omitempty"`
	Section     ID     `json:"section" form:"section" label:"Section" validate:"notblank"`
	SectionName string `json:"section_name,omitempty"`
	Subject     ID     `json:"subject,omitempty" form:"subject"`
	SubjectName string `json:"subject_name,omitempty"`
	Date        string `json:"date" form:"date" label:"Date" validate:"notblank"`
	Status      string `json:"status" form:"status" label:"Status" validate:"oneof=present absent"`
}

// AttendanceSheetSummary summarises the attendance list a teacher sees.
type AttendanceSheetSummary struct {
	TotalRecords   int     `json:"total_records"`
	PresentCount   int     `json:"present_count"`
	AbsentCount    int     `json:"absent_count"`
	AttendanceRate Decimal `json:"attendance_rate"`
}

// AttendanceSheet is the attendance_management GET payload.
type AttendanceSheet struct {
	Records []AttendanceEntry      `json:"attendance_records"`
	Summary AttendanceSheetSummary `json:"summary"`
}

// AttendanceMarkResult is the attendance_management POST payload.
type AttendanceMarkResult struct {
	Created int               `json:"created"`
	Errors  int               `json:"errors"`
	Records []AttendanceEntry `json:"records,omitempty"`
}

// AttendanceFilter narrows the teacher attendance list.
type AttendanceFilter struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Subject  string `form:"subject"`
	Section  string `form:"section"`
	Status   string `form:"status"`
}

// Params returns the non-empty filters as query parameters.
func (f AttendanceFilter) Params() map[string]string {
	params := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			params[key] = value
		}
	}
	set("date_from", f.DateFrom)
	set("date_to", f.DateTo)
	set("subject", f.Subject)
	set("section", f.Section)
	set("status", f.Status)
	return params
}

// Assessment kinds a teacher may record.
const (
	GradeAssignment = "assignment"
	GradeQuiz       = "quiz"
	GradeMidterm    = "midterm"
	GradeFinal      = "final"
	GradeProject    = "project"
)

// GradeTypeOption is a selectable assessment kind.
type GradeTypeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// GradeTypes are the assessment kinds in display order.
var GradeTypes = []GradeTypeOption{
	{Value: GradeAssignment, Label: "Assignment"},
	{Value: GradeQuiz, Label: "Quiz"},
	{Value: GradeMidterm, Label: "Midterm Exam"},
	{Value: GradeFinal, Label: "Final Exam"},
	{Value: GradeProject, Label: "Project"},
}

// TeacherGrade is a grade the teacher entered through grade_management.
type TeacherGrade struct {
	ID           ID      `json:"id,omitempty" form:"id"`
	Student      ID      `json:"student" form:"student" label:"Student" validate:"notblank"`
	StudentName  string  `json:"student_name,omitempty"`
	Subject      ID      `json:"subject" form:"subject" label:"Subject" validate:"notblank"`
	SubjectName  string  `json:"subject_name,omitempty"`
	Section      ID      `json:"section" form:"section" label:"Section" validate:"notblank"`
	SectionName  string  `json:"section_name,omitempty"`
	Semester     ID      `json:"semester,omitempty" form:"semester"`
	GradeType    string  `json:"grade_type" form:"grade_type" label:"Grade Type" validate:"oneof=assignment quiz midterm final project"`
	Score        Decimal `json:"score" form:"score" label:"Score" validate:"gte=0"`
	FullMark     Decimal `json:"full_mark" form:"full_mark" label:"Full Mark" validate:"gt=0"`
	AcademicYear string  `json:"academic_year,omitempty" form:"academic_year"`
	DateRecorded string  `json:"date_recorded,omitempty"`
}

// GradeDistribution counts grades per letter band.
type GradeDistribution struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
	F int `json:"F"`
}

// GradeStatistics summarises a grade list.
type GradeStatistics struct {
	TotalGrades       int               `json:"total_grades"`
	AverageScore      Decimal           `json:"average_score"`
	GradeDistribution GradeDistribution `json:"grade_distribution"`
}

// GradeBook is the grade_management GET payload.
type GradeBook struct {
	Grades     []TeacherGrade  `json:"grades"`
	Statistics GradeStatistics `json:"statistics"`
}

// BulkGradeResult is the grade_management POST payload for a list of grades.
type BulkGradeResult struct {
	Created      int              `json:"created"`
	Errors       int              `json:"errors"`
	Grades       []TeacherGrade   `json:"grades,omitempty"`
	ErrorDetails []map[string]any `json:"error_details,omitempty"`
}

// GradeFilter narrows the teacher grade list.
type GradeFilter struct {
	Semester  string `form:"semester" json:"semester,omitempty"`
	Subject   string `form:"subject" json:"subject,omitempty"`
	Section   string `form:"section" json:"section,omitempty"`
	GradeType string `form:"grade_type" json:"grade_type,omitempty"`
	Student   string `form:"student" json:"student,omitempty"`
}

// Params returns the non-empty filters as query parameters.
func (f GradeFilter) Params() map[string]string {
	params := map[string]string{}
	for key, value := range map[string]string{
		"semester":   f.Semester,
		"subject":    f.Subject,
		"section":    f.Section,
		"grade_type": f.GradeType,
		"student":    f.Student,
	} {
		if value != "" {
			params[key] = value
		}
	}
	return params
}

// TeacherLesson is one slot of the weekly timetable.
type TeacherLesson struct {
	ID          ID     `json:"id"`
	Subject     string `json:"subject"`
	SubjectCode string `json:"subject_code,omitempty"`
	Section     string `json:"section"`
	Room        string `json:"room"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Duration    string `json:"duration,omitempty"`
}

// ScheduleDay is one weekday of the teacher timetable.
type ScheduleDay struct {
	Day     string          `json:"day"`
	Lessons []TeacherLesson `json:"lessons"`
}

// TeacherProfile is the my_profile payload. The backend does not accept edits to it.
type TeacherProfile struct {
	ID           ID          `json:"id"`
	User         UserProfile `json:"user"`
	EmployeeID   string      `json:"employee_id"`
	Department   string      `json:"department"`
	HireDate     string      `json:"hire_date,omitempty"`
	AcademicRank string      `json:"academic_rank,omitempty"`
	SubjectNames []string    `json:"subject_names"`
}
