package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
)

const teacherSelfPath = "/api/teacher-self/"

// TeacherSelfRepository reads and writes the teacher-scoped endpoints.
type TeacherSelfRepository struct {
	client *apiclient.Client
}

// NewTeacherSelfRepository constructs the repository.
func NewTeacherSelfRepository(client *apiclient.Client) *TeacherSelfRepository {
	return &TeacherSelfRepository{client: client}
}

// Dashboard returns the dashboard summary.
func (r *TeacherSelfRepository) Dashboard(ctx context.Context, tokens apiclient.TokenSource) (*models.TeacherDashboard, error) {
	var out models.TeacherDashboard
	if err := getJSON(ctx, r.client, tokens, teacherSelfPath+"dashboard_summary/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Classes returns the sections the teacher is attached to.
func (r *TeacherSelfRepository) Classes(ctx context.Context, tokens apiclient.TokenSource) ([]models.TeacherClass, error) {
	out := []models.TeacherClass{}
	if err := getJSON(ctx, r.client, tokens, teacherSelfPath+"my_classes/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Students returns the students taught by the teacher.
func (r *TeacherSelfRepository) Students(ctx context.Context, tokens apiclient.TokenSource) ([]models.TeacherStudent, error) {
	out := []models.TeacherStudent{}
	if err := getJSON(ctx, r.client, tokens, teacherSelfPath+"my_students/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Attendance lists recorded attendance.
func (r *TeacherSelfRepository) Attendance(ctx context.Context, tokens apiclient.TokenSource, filter models.AttendanceFilter) (*models.AttendanceSheet, error) {
	var out models.AttendanceSheet
	if err := getJSON(ctx, r.client, tokens, teacherSelfPath+"attendance_management/", filter.Params(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAttendance records a batch of attendance rows. The backend takes a bare JSON array.
func (r *TeacherSelfRepository) MarkAttendance(ctx context.Context, tokens apiclient.TokenSource, entries []models.AttendanceEntry) (*models.AttendanceMarkResult, error) {
	var out models.AttendanceMarkResult
	if err := sendJSON(ctx, r.client, tokens, http.MethodPost, teacherSelfPath+"attendance_management/", entries, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Grades lists the grades the teacher entered.
func (r *TeacherSelfRepository) Grades(ctx context.Context, tokens apiclient.TokenSource, filter models.GradeFilter) (*models.GradeBook, error) {
	var out models.GradeBook
	if err := getJSON(ctx, r.client, tokens, teacherSelfPath+"grade_management/", filter.Params(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddGrade records one grade.
func (r *TeacherSelfRepository) AddGrade(ctx context.Context, tokens apiclient.TokenSource, grade models.TeacherGrade) (*models.TeacherGrade, error) {
	var out models.TeacherGrade
	if err := sendJSON(ctx, r.client, tokens, http.MethodPost, teacherSelfPath+"grade_management/", grade, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateGrade replaces a grade. The endpoint takes the id in the body, not the path.
func (r *TeacherSelfRepository) UpdateGrade(ctx context.Context, tokens apiclient.TokenSource, grade models.TeacherGrade) (*models.TeacherGrade, error) {
	var out models.TeacherGrade
	if err := sendJSON(ctx, r.client, tokens, http.MethodPut, teacherSelfPath+"grade_management/", grade, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddGrades records a batch of grades as a bare JSON array.
func (r *TeacherSelfRepository) AddGrades(ctx context.Context, tokens apiclient.TokenSource, grades []models.TeacherGrade) (*models.BulkGradeResult, error) {
	var out models.BulkGradeResult
	if err := sendJSON(ctx, r.client, tokens, http.MethodPost, teacherSelfPath+"grade_management/", grades, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Schedule returns the weekly timetable keyed by weekday name.
func (r *TeacherSelfRepository) Schedule(ctx context.Context, tokens apiclient.TokenSource) (map[string][]models.TeacherLesson, error) {
	out := map[string][]models.TeacherLesson{}
	if err := getJSON(ctx, r.client, tokens, teacherSelfPath+"my_schedule/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile returns the teacher record of the logged-in user.
func (r *TeacherSelfRepository) Profile(ctx context.Context, tokens apiclient.TokenSource) (*models.TeacherProfile, error) {
	var out models.TeacherProfile
	if err := getJSON(ctx, r.client, tokens, teacherSelfPath+"my_profile/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
