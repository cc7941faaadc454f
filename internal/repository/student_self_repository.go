package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
)

const studentSelfPath = "/api/student-self/"

// StudentSelfRepository reads the student-scoped endpoints of the logged-in student.
type StudentSelfRepository struct {
	client *apiclient.Client
}

// NewStudentSelfRepository constructs the repository.
func NewStudentSelfRepository(client *apiclient.Client) *StudentSelfRepository {
	return &StudentSelfRepository{client: client}
}

// Profile returns the student's own record.
func (r *StudentSelfRepository) Profile(ctx context.Context, tokens apiclient.TokenSource) (*models.Student, error) {
	var student models.Student
	if err := getJSON(ctx, r.client, tokens, studentSelfPath+"my_profile/", nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateProfile patches the student's contact details.
func (r *StudentSelfRepository) UpdateProfile(ctx context.Context, tokens apiclient.TokenSource, patch map[string]interface{}) (*models.Student, error) {
	var student models.Student
	if err := sendJSON(ctx, r.client, tokens, http.MethodPatch, studentSelfPath+"my_profile/", patch, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Grades returns grade records matching the query filters.
func (r *StudentSelfRepository) Grades(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) ([]models.GradeRecord, error) {
	var out models.GradesResponse
	if err := getJSON(ctx, r.client, tokens, studentSelfPath+"my_grades/", q.Params(), &out); err != nil {
		return nil, err
	}
	return out.Grades, nil
}

// Attendance returns attendance records and the server's statistics.
func (r *StudentSelfRepository) Attendance(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) (*models.AttendanceResponse, error) {
	var out models.AttendanceResponse
	if err := getJSON(ctx, r.client, tokens, studentSelfPath+"my_attendance/", q.Params(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Subjects returns the student's enrolled subjects.
func (r *StudentSelfRepository) Subjects(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) ([]models.Subject, error) {
	var out models.SubjectsResponse
	if err := getJSON(ctx, r.client, tokens, studentSelfPath+"my_subjects/", q.Params(), &out); err != nil {
		return nil, err
	}
	return out.Subjects, nil
}

// Library returns borrowing history.
func (r *StudentSelfRepository) Library(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) (*models.LibraryResponse, error) {
	var out models.LibraryResponse
	if err := getJSON(ctx, r.client, tokens, studentSelfPath+"my_library_records/", q.Params(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summary returns the server-computed academic summary.
func (r *StudentSelfRepository) Summary(ctx context.Context, tokens apiclient.TokenSource, q models.StudentQuery) (*models.AcademicSummary, error) {
	var out models.AcademicSummary
	if err := getJSON(ctx, r.client, tokens, studentSelfPath+"academic_summary/", q.Params(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
