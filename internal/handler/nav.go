package handler

import "github.com/noah-isme/eschool-portal/internal/models"

type navItem struct {
	Label string
	Path  string
}

var roleNav = map[models.Role][]navItem{
	models.RoleZoneOffice: {
		{"Weredas", "/zone/wereda/manage"},
		{"Wereda Managers", "/zone/awm"},
		{"Capacity Building", "/zone/training"},
		{"School Infrastructure", "/zone/schools/infrastructure"},
	},
	models.RoleWeredaOffice: {
		{"Schools", "/wereda/schools"},
		{"School Directors", "/wereda/schools/directors"},
		{"Supervisors", "/wereda/supervisors"},
	},
	models.RoleSchool:        {{"Staff", "/director/staff"}},
	models.RoleHROfficer:     {{"Staff", "/director/staff"}},
	models.RoleViceDirector:  {{"Discipline", "/vice/discipline"}},
	models.RoleRecordOfficer: {{"Students", "/record/students"}},
	models.RoleStudent: {
		{"Overview", "/student"},
		{"Grades", "/student/grades"},
		{"Attendance", "/student/attendance"},
		{"Subjects", "/student/subjects"},
		{"Library", "/student/library"},
		{"My Profile", "/student/profile"},
	},
	models.RoleTeacher: {
		{"Overview", "/teacher"},
		{"My Classes", "/teacher/classes"},
		{"My Students", "/teacher/students"},
		{"Attendance", "/teacher/attendance"},
		{"Grades", "/teacher/grades"},
		{"Schedule", "/teacher/schedule"},
		{"Teacher Profile", "/teacher/profile"},
	},
}

// navFor builds the sidebar of a role: the dashboard, the role's pages, then settings.
func navFor(user *models.UserProfile) []navItem {
	items := []navItem{{"Dashboard", "/dashboard"}}
	if user != nil {
		items = append(items, roleNav[user.Role]...)
	}
	return append(items, navItem{"Profile", "/profile"}, navItem{"Settings", "/settings"})
}
