package models

// RoleDashboard describes the landing dashboard shown to a role.
type RoleDashboard struct {
	Title string `json:"title"`
	Scope string `json:"scope"`
	Color string `json:"color"`
	Home  string `json:"home,omitempty"`
}

var roleDashboards = map[Role]RoleDashboard{
	RoleNationalOffice:   {Title: "National Office Dashboard", Scope: "National Level Access", Color: "#2c3e50"},
	RoleRegionalOffice:   {Title: "Regional Office Dashboard", Scope: "Regional Level Access", Color: "#34495e"},
	RoleZoneOffice:       {Title: "Zone Office Dashboard", Scope: "Zone Level Access", Color: "#16a085", Home: "/zone/wereda/manage"},
	RoleWeredaOffice:     {Title: "Wereda Office Dashboard", Scope: "Wereda Level Access", Color: "#27ae60", Home: "/wereda/schools"},
	RoleUniversity:       {Title: "University Dashboard", Scope: "University Level Access", Color: "#2980b9"},
	RoleCollege:          {Title: "College Dashboard", Scope: "College Level Access", Color: "#8e44ad"},
	RoleSenate:           {Title: "Senate Dashboard", Scope: "Academic Senate Access", Color: "#f39c12"},
	RoleSchool:           {Title: "School Dashboard", Scope: "School Level Access", Color: "#d35400", Home: "/director/staff"},
	RoleViceDirector:     {Title: "Vice Director Dashboard", Scope: "Deputy Leadership Access", Color: "#c0392b", Home: "/vice/discipline"},
	RoleDepartmentHead:   {Title: "Department Dashboard", Scope: "Department Level Access", Color: "#7f8c8d"},
	RoleTeacher:          {Title: "Teacher Dashboard", Scope: "Classroom Level Access", Color: "#2c3e50", Home: "/teacher"},
	RoleLibrarian:        {Title: "Librarian Dashboard", Scope: "Library Access", Color: "#16a085"},
	RoleRecordOfficer:    {Title: "Record Officer Dashboard", Scope: "Records Management Access", Color: "#27ae60", Home: "/record/students"},
	RoleStudent:          {Title: "Student Dashboard", Scope: "Student Access", Color: "#2980b9", Home: "/student"},
	RoleInventorian:      {Title: "Inventory Manager Dashboard", Scope: "Inventory Management Access", Color: "#8e44ad"},
	RoleStoreManager:     {Title: "Store Manager Dashboard", Scope: "Store Management Access", Color: "#f39c12"},
	RoleDormitoryManager: {Title: "Dormitory Manager Dashboard", Scope: "Dormitory Management Access", Color: "#d35400"},
	RoleHROfficer:        {Title: "HR Officer Dashboard", Scope: "Human Resources Access", Color: "#c0392b", Home: "/director/staff"},
}

var generalDashboard = RoleDashboard{Title: "General Dashboard", Scope: "System Access", Color: "#7f8c8d"}

// DashboardFor returns the dashboard descriptor of a role, or the general one.
func DashboardFor(role Role) RoleDashboard {
	if d, ok := roleDashboards[role]; ok {
		return d
	}
	return generalDashboard
}

// Status is a labelled, coloured classification (GPA status, attendance bucket).
type Status struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// OfficeTotals are live counters for office roles.
type OfficeTotals struct {
	Weredas  int `json:"weredas"`
	Schools  int `json:"schools"`
	Students int `json:"students"`
	Teachers int `json:"teachers"`
}

// StudentOverview is the student dashboard's headline figures.
type StudentOverview struct {
	StudentInfo          StudentInfo `json:"student_info"`
	GPA                  float64     `json:"gpa"`
	GPAStatus            Status      `json:"gpa_status"`
	AttendancePercentage float64     `json:"attendance_percentage"`
	AttendanceStatus     Status      `json:"attendance_status"`
	LowAttendance        bool        `json:"low_attendance"`
	SubjectCount         int         `json:"subject_count"`
	BorrowedBooks        int         `json:"borrowed_books"`
	OverdueBooks         int         `json:"overdue_books"`
}

// Dashboard is the payload of the role landing page.
type Dashboard struct {
	User    *UserProfile      `json:"user"`
	Config  RoleDashboard     `json:"config"`
	Office  *OfficeTotals     `json:"office,omitempty"`
	Student *StudentOverview  `json:"student,omitempty"`
	Teacher *TeacherDashboard `json:"teacher,omitempty"`
}
