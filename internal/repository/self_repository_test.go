package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-portal/internal/models"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

func TestAuthLoginAcceptsShortTokenNames(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var body models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@school.et", body.Email)
		_, _ = io.WriteString(w, `{"access":"a1","refresh":"r1","user":{"id":5,"username":"jane","role":"student"}}`)
	})

	out, err := NewAuthRepository(client).Login(context.Background(), models.LoginRequest{Email: "jane@school.et", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a1", out.AccessToken)
	assert.Equal(t, "r1", out.RefreshToken)
	assert.Equal(t, models.RoleStudent, out.User.Role)
}

func TestAuthLoginRejected(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Invalid credentials"}`)
	})

	_, err := NewAuthRepository(client).Login(context.Background(), models.LoginRequest{Email: "x", Password: "y"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestAuthUpdateProfilePatches(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/user/", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":5,"first_name":"Janet","role":"teacher"}`)
	})

	user, err := NewAuthRepository(client).UpdateProfile(context.Background(), &staticTokens{access: "tok"}, models.ProfileUpdate{FirstName: "Janet"})
	require.NoError(t, err)
	assert.Equal(t, "Janet", user.FirstName)
}

func TestStudentSelfGradesForwardsFilters(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/student-self/my_grades/", r.URL.Path)
		assert.Equal(t, "Semester 1", r.URL.Query().Get("semester"))
		assert.Equal(t, "2024", r.URL.Query().Get("academic_year"))
		assert.False(t, r.URL.Query().Has("subject"))
		_, _ = io.WriteString(w, `{"grades":[{"subject_name":"Math","score":"45","full_mark":50}]}`)
	})

	grades, err := NewStudentSelfRepository(client).Grades(context.Background(), &staticTokens{access: "tok"},
		models.StudentQuery{Semester: "Semester 1", AcademicYear: "2024"})
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.InDelta(t, 90.0, grades[0].Percentage(), 1e-9)
}

func TestStudentSelfLibrary(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"library_records":[{"book_title":"Fikir","returned":false,"overdue":true},{"book_title":"Oromay","returned":true}]}`)
	})

	lib, err := NewStudentSelfRepository(client).Library(context.Background(), &staticTokens{access: "tok"}, models.StudentQuery{})
	require.NoError(t, err)
	borrowed, overdue := lib.Borrowed()
	assert.Equal(t, 1, borrowed)
	assert.Equal(t, 1, overdue)
}

func TestTeacherMarkAttendancePostsArray(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/teacher-self/attendance_management/", r.URL.Path)
		var body []models.AttendanceEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 2)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"created":2,"errors":0}`)
	})

	res, err := NewTeacherSelfRepository(client).MarkAttendance(context.Background(), &staticTokens{access: "tok"}, []models.AttendanceEntry{
		{Student: "1", Section: "4", Date: "2024-05-01", Status: models.AttendancePresent},
		{Student: "2", Section: "4", Date: "2024-05-01", Status: models.AttendanceAbsent},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
}

func TestActivityFetchLive(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/discipline/", r.URL.Path)
		_, _ = io.WriteString(w, `{"classes":[{"class":"Grade 9A","incidents":3}]}`)
	})

	var report models.DisciplineReport
	require.NoError(t, NewActivityRepository(client).Fetch(context.Background(), &staticTokens{access: "tok"}, models.FeatureDiscipline, &report))
	require.Len(t, report.Classes, 1)
}

func TestTeacherUpdateGradePutsIDInBody(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/teacher-self/grade_management/", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(31), body["id"])
		assert.Equal(t, "quiz", body["grade_type"])
		_, _ = io.WriteString(w, `{"id":31,"student":3,"subject":2,"section":4,"grade_type":"quiz","score":"18.5","full_mark":20}`)
	})

	grade, err := NewTeacherSelfRepository(client).UpdateGrade(context.Background(), &staticTokens{access: "tok"}, models.TeacherGrade{
		ID: "31", Student: "3", Subject: "2", Section: "4", GradeType: models.GradeQuiz, Score: 18.5, FullMark: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ID("31"), grade.ID)
	assert.InDelta(t, 18.5, grade.Score.Float(), 1e-9)
}

func TestTeacherGradesForwardsFilters(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/teacher-self/grade_management/", r.URL.Path)
		assert.Equal(t, "midterm", r.URL.Query().Get("grade_type"))
		assert.Equal(t, "4", r.URL.Query().Get("section"))
		assert.False(t, r.URL.Query().Has("student"))
		_, _ = io.WriteString(w, `{"grades":[{"id":1,"score":40,"full_mark":50}],"statistics":{"total_grades":1,"average_score":"40.00","grade_distribution":{"A":0,"B":1,"C":0,"D":0,"F":0}}}`)
	})

	book, err := NewTeacherSelfRepository(client).Grades(context.Background(), &staticTokens{access: "tok"},
		models.GradeFilter{GradeType: "midterm", Section: "4"})
	require.NoError(t, err)
	require.Len(t, book.Grades, 1)
	assert.Equal(t, 1, book.Statistics.GradeDistribution.B)
}

func TestTeacherScheduleKeyedByDay(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/teacher-self/my_schedule/", r.URL.Path)
		_, _ = io.WriteString(w, `{"Monday":[{"id":1,"subject":"Math","section":"Grade 9 - A","room":"TBA","start_time":"08:00","end_time":"08:45"}]}`)
	})

	schedule, err := NewTeacherSelfRepository(client).Schedule(context.Background(), &staticTokens{access: "tok"})
	require.NoError(t, err)
	require.Len(t, schedule["Monday"], 1)
	assert.Equal(t, "TBA", schedule["Monday"][0].Room)
}
