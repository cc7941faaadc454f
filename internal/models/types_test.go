package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12, "b": "x-1", "c": null}`), &payload))
	assert.Equal(t, ID("12"), payload.A)
	assert.Equal(t, ID("x-1"), payload.B)
	assert.Equal(t, ID(""), payload.C)

	out, err := json.Marshal(map[string]ID{"a": "12", "b": "x-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 12, "b": "x-1"}`, string(out))
}

func TestDecimalAcceptsStrings(t *testing.T) {
	var g GradeRecord
	require.NoError(t, json.Unmarshal([]byte(`{"subject_name":"Math","score":"87.50","full_mark":100}`), &g))
	assert.InDelta(t, 87.5, g.Percentage(), 0.001)

	var blank Decimal
	require.NoError(t, blank.UnmarshalJSON([]byte(`""`)))
	assert.Zero(t, blank)

	assert.Error(t, blank.UnmarshalParam("abc"))
}

func TestGradePercentageGuardsZeroFullMark(t *testing.T) {
	assert.Zero(t, GradeRecord{Score: 10, FullMark: 0}.Percentage())
}

func TestLoginResponseAcceptsBothSpellings(t *testing.T) {
	var long LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"access_token":"a","refresh_token":"r","user":{"id":1,"role":"student"}}`), &long))
	assert.Equal(t, "a", long.AccessToken)
	assert.Equal(t, "r", long.RefreshToken)
	assert.Equal(t, RoleStudent, long.User.Role)

	var short LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"access":"a2","refresh":"r2","user":{"id":"7"}}`), &short))
	assert.Equal(t, "a2", short.AccessToken)
	assert.Equal(t, "r2", short.RefreshToken)
	assert.Equal(t, ID("7"), short.User.ID)
}

func TestRoleLabelAndDashboard(t *testing.T) {
	assert.Equal(t, "Wereda Office", RoleWeredaOffice.Label())
	assert.Equal(t, "General Access", Role("").Label())
	assert.Equal(t, "Student Dashboard", DashboardFor(RoleStudent).Title)
	assert.Equal(t, "General Dashboard", DashboardFor("unknown").Title)
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, NotAvailable, OrNA("  "))
	assert.Equal(t, "x", OrNA("x"))
}

func TestEntityStats(t *testing.T) {
	students := []Student{
		{AcademicStatus: "Active", Gender: "Male"},
		{AcademicStatus: "Graduated", Gender: "female"},
		{AcademicStatus: "Inactive", Gender: "F"},
	}
	stats := ComputeStudentStats(students)
	assert.Equal(t, StudentStats{Total: 3, Active: 1, Inactive: 1, Graduated: 1, Male: 1, Female: 2}, stats)

	employees := []Employee{
		{Role: RoleTeacher, Status: EmployeeStatusActive},
		{Role: RoleHROfficer, Status: EmployeeStatusOnLeave},
	}
	assert.Equal(t, EmployeeStats{Total: 2, Teachers: 1, Admin: 1, Active: 1, OnLeave: 1}, ComputeEmployeeStats(employees))

	e := Employee{User: &EmployeeUser{FirstName: "Abebe", LastName: "Kebede", Role: RoleTeacher}}
	e.Normalize()
	assert.Equal(t, "Abebe Kebede", e.FullName())
	assert.Equal(t, EmployeeStatusActive, e.ToggledStatus())
}

func TestDisciplineStats(t *testing.T) {
	r := DisciplineReport{
		Classes:         []DisciplineClass{{Incidents: 5, Resolved: 3}, {Incidents: 8, Resolved: 5}},
		RepeatOffenders: 3,
	}
	r.ComputeStats()
	assert.Equal(t, DisciplineStats{TotalIncidents: 13, ResolvedCases: 8, PendingCases: 5, RepeatOffenders: 3}, r.Stats)
}
