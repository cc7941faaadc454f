package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type stubLister[T any] struct {
	items []T
	err   error
}

func (s stubLister[T]) List(context.Context, apiclient.TokenSource, url.Values) ([]T, error) {
	return s.items, s.err
}

func TestDashboardOfficeTotals(t *testing.T) {
	staff := []models.Employee{{Role: models.RoleTeacher}, {Role: models.RoleTeacher}, {Role: models.RoleHROfficer}}
	svc := NewDashboardService(DashboardSources{
		Weredas:   stubLister[models.Wereda]{items: []models.Wereda{{Name: "Bahir Dar"}, {Name: "Gondar"}}},
		Schools:   stubLister[models.School]{items: []models.School{{Name: "Tana"}}},
		Students:  stubLister[models.Student]{err: appErrors.Clone(appErrors.ErrForbidden, "no access")},
		Employees: stubLister[models.Employee]{items: staff},
	}, nil)

	dash, err := svc.Build(context.Background(), noTokens{}, &models.UserProfile{ID: "1", Role: models.RoleZoneOffice})
	require.NoError(t, err)
	assert.Equal(t, "Zone Office Dashboard", dash.Config.Title)
	require.NotNil(t, dash.Office)
	assert.Equal(t, models.OfficeTotals{Weredas: 2, Schools: 1, Students: 0, Teachers: 2}, *dash.Office)
	assert.Nil(t, dash.Student)
}

func TestDashboardAuthFailureAborts(t *testing.T) {
	svc := NewDashboardService(DashboardSources{
		Weredas: stubLister[models.Wereda]{err: appErrors.ErrAuthenticationFailed},
	}, nil)

	_, err := svc.Build(context.Background(), noTokens{}, &models.UserProfile{Role: models.RoleWeredaOffice})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrAuthenticationFailed)
}

func TestDashboardStudentOverview(t *testing.T) {
	repo := &fakeStudentSelf{
		grades: []models.GradeRecord{
			{SubjectName: "Math", Score: 95, FullMark: 100},
			{SubjectName: "Physics", Score: 92, FullMark: 100},
		},
		attendance: &models.AttendanceResponse{Attendance: []models.AttendanceRecord{
			{Date: "2024-03-01", Status: models.AttendancePresent},
			{Date: "2024-03-02", Status: models.AttendancePresent},
		}},
		subjects: []models.Subject{{Name: "Math"}, {Name: "Physics"}, {Name: "Math"}},
	}
	portal := NewStudentPortalService(repo, nil, nil)
	svc := NewDashboardService(DashboardSources{Student: portal}, nil)

	dash, err := svc.Build(context.Background(), noTokens{}, &models.UserProfile{ID: "7", Role: models.RoleStudent})
	require.NoError(t, err)
	require.NotNil(t, dash.Student)
	overview := dash.Student
	assert.Equal(t, 4.0, overview.GPA)
	assert.Equal(t, "Excellent", overview.GPAStatus.Label)
	assert.Equal(t, 100.0, overview.AttendancePercentage)
	assert.False(t, overview.LowAttendance)
	assert.Equal(t, 2, overview.SubjectCount)
	assert.Equal(t, 1, overview.BorrowedBooks)
	assert.Equal(t, "Abebe Kebede", overview.StudentInfo.Name)
}

func TestDashboardGeneralRole(t *testing.T) {
	svc := NewDashboardService(DashboardSources{}, nil)
	dash, err := svc.Build(context.Background(), noTokens{}, &models.UserProfile{Role: "janitor"})
	require.NoError(t, err)
	assert.Equal(t, "General Dashboard", dash.Config.Title)
	assert.Nil(t, dash.Office)

	_, err = svc.Build(context.Background(), noTokens{}, nil)
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
}
