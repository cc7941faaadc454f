package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/session"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]byte
	scopes  map[string][]string
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}, scopes: map[string][]string{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Put(_ context.Context, scope, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = raw
	m.scopes[scope] = append(m.scopes[scope], key)
	m.mu.Unlock()
	return nil
}

func (m *memoryCacheRepo) Purge(_ context.Context, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range m.scopes[scope] {
		delete(m.entries, key)
	}
	delete(m.scopes, scope)
	return nil
}

type fakeStudentSelf struct {
	mu         sync.Mutex
	calls      map[string]int
	grades     []models.GradeRecord
	attendance *models.AttendanceResponse
	subjects   []models.Subject
	subjectErr error
	profile    *models.Student
	patched    map[string]interface{}
}

func (f *fakeStudentSelf) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeStudentSelf) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeStudentSelf) Profile(context.Context, apiclient.TokenSource) (*models.Student, error) {
	f.hit("profile")
	return f.profile, nil
}

func (f *fakeStudentSelf) UpdateProfile(_ context.Context, _ apiclient.TokenSource, patch map[string]interface{}) (*models.Student, error) {
	f.hit("update")
	f.patched = patch
	updated := *f.profile
	if phone, ok := patch["phone"].(string); ok {
		updated.Phone = phone
	}
	return &updated, nil
}

func (f *fakeStudentSelf) Grades(context.Context, apiclient.TokenSource, models.StudentQuery) ([]models.GradeRecord, error) {
	f.hit("grades")
	return f.grades, nil
}

func (f *fakeStudentSelf) Attendance(context.Context, apiclient.TokenSource, models.StudentQuery) (*models.AttendanceResponse, error) {
	f.hit("attendance")
	return f.attendance, nil
}

func (f *fakeStudentSelf) Subjects(context.Context, apiclient.TokenSource, models.StudentQuery) ([]models.Subject, error) {
	f.hit("subjects")
	return f.subjects, f.subjectErr
}

func (f *fakeStudentSelf) Library(context.Context, apiclient.TokenSource, models.StudentQuery) (*models.LibraryResponse, error) {
	f.hit("library")
	return &models.LibraryResponse{Records: []models.LibraryRecord{{BookTitle: "Things Fall Apart"}}}, nil
}

func (f *fakeStudentSelf) Summary(context.Context, apiclient.TokenSource, models.StudentQuery) (*models.AcademicSummary, error) {
	f.hit("summary")
	return &models.AcademicSummary{StudentInfo: models.StudentInfo{Name: "Abebe Kebede"}}, nil
}

func newStudentPortal(repo *fakeStudentSelf) (*StudentPortalService, *memoryCacheRepo) {
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	return NewStudentPortalService(repo, cache, nil), cacheRepo
}

func TestStudentGradesUsesCreditHours(t *testing.T) {
	repo := &fakeStudentSelf{
		grades: []models.GradeRecord{
			{SubjectName: "Math", Score: 95, FullMark: 100, SemesterName: "S1"},
			{SubjectName: "Biology", Score: 72, FullMark: 100, SemesterName: "S1"},
		},
		subjects: []models.Subject{{Name: "Math", CreditHours: 4}, {Name: "Biology", CreditHours: 1}},
	}
	svc, _ := newStudentPortal(repo)

	view, err := svc.Grades(context.Background(), noTokens{}, "7", models.StudentQuery{})
	require.NoError(t, err)
	assert.False(t, view.Cached)
	// (4.0*4 + 2.7*1) / 5
	assert.InDelta(t, 3.74, view.Report.GPA, 0.001)
	assert.Len(t, view.Report.Subjects, 2)

	again, err := svc.Grades(context.Background(), noTokens{}, "7", models.StudentQuery{})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, 1, repo.count("grades"))
	assert.Equal(t, 1, repo.count("subjects"))
}

func TestStudentGradesFallsBackToDefaultCredits(t *testing.T) {
	repo := &fakeStudentSelf{
		grades:     []models.GradeRecord{{SubjectName: "Math", Score: 95, FullMark: 100}, {SubjectName: "Biology", Score: 92, FullMark: 100}},
		subjectErr: appErrors.Clone(appErrors.ErrUpstream, "down"),
	}
	svc, _ := newStudentPortal(repo)

	view, err := svc.Grades(context.Background(), noTokens{}, "7", models.StudentQuery{})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, view.Report.GPA, 0.001)
}

func TestStudentGradesEmpty(t *testing.T) {
	svc, _ := newStudentPortal(&fakeStudentSelf{})

	view, err := svc.Grades(context.Background(), noTokens{}, "7", models.StudentQuery{})
	require.NoError(t, err)
	assert.NotNil(t, view.Records)
	assert.Zero(t, view.Report.GPA)
}

func TestStudentCacheIsKeyedByFilters(t *testing.T) {
	repo := &fakeStudentSelf{attendance: &models.AttendanceResponse{Attendance: []models.AttendanceRecord{
		{Date: "2024-03-01", Status: models.AttendancePresent},
		{Date: "2024-03-02", Status: models.AttendanceAbsent},
	}}}
	svc, _ := newStudentPortal(repo)
	ctx := context.Background()

	view, err := svc.Attendance(ctx, noTokens{}, "7", models.StudentQuery{})
	require.NoError(t, err)
	assert.Equal(t, 50.0, view.Summary.Percentage)
	assert.True(t, view.Summary.LowAttendance)

	_, err = svc.Attendance(ctx, noTokens{}, "7", models.StudentQuery{DateFrom: "2024-03-01"})
	require.NoError(t, err)
	_, err = svc.Attendance(ctx, noTokens{}, "7", models.StudentQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.count("attendance"))

	_, err = svc.Attendance(ctx, noTokens{}, "8", models.StudentQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.count("attendance"))
}

func TestStudentReadsWithoutUserIDSkipCache(t *testing.T) {
	repo := &fakeStudentSelf{}
	svc, cacheRepo := newStudentPortal(repo)
	ctx := context.Background()

	_, err := svc.Library(ctx, noTokens{}, "", models.StudentQuery{})
	require.NoError(t, err)
	_, err = svc.Library(ctx, noTokens{}, "", models.StudentQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.count("library"))
	assert.Empty(t, cacheRepo.entries)
}

func TestStudentCacheDroppedOnLogout(t *testing.T) {
	repo := &fakeStudentSelf{}
	svc, cacheRepo := newStudentPortal(repo)
	ctx := context.Background()

	_, err := svc.Library(ctx, noTokens{}, "7", models.StudentQuery{})
	require.NoError(t, err)
	_, err = svc.Library(ctx, noTokens{}, "8", models.StudentQuery{})
	require.NoError(t, err)
	require.Len(t, cacheRepo.entries, 2)

	svc.OnSessionEvent(session.Event{SessionID: "s1", Kind: session.EventAccessTokenSet, UserID: "7"})
	assert.Len(t, cacheRepo.entries, 2)

	svc.OnSessionEvent(session.Event{SessionID: "s1", Kind: session.EventCleared, UserID: "7"})
	assert.Len(t, cacheRepo.entries, 1)

	_, err = svc.Library(ctx, noTokens{}, "7", models.StudentQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.count("library"))
}

func TestStudentUpdateProfileInvalidates(t *testing.T) {
	repo := &fakeStudentSelf{profile: &models.Student{ID: "7", FirstName: "Abebe", Phone: "0911"}}
	svc, _ := newStudentPortal(repo)
	ctx := context.Background()

	_, err := svc.Profile(ctx, noTokens{}, "7")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, noTokens{}, "7", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	updated, err := svc.UpdateProfile(ctx, noTokens{}, "7", map[string]interface{}{"phone": "0922"})
	require.NoError(t, err)
	assert.Equal(t, "0922", updated.Phone)

	_, err = svc.Profile(ctx, noTokens{}, "7")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.count("profile"))
}

func TestStudentTranscript(t *testing.T) {
	repo := &fakeStudentSelf{
		grades:  []models.GradeRecord{{SubjectName: "Math", Score: 88, FullMark: 100, SemesterName: "S1"}},
		profile: &models.Student{AdmissionNo: "ADM-1", ClassSection: "9A"},
	}
	svc := NewStudentPortalService(repo, nil, nil)
	user := &models.UserProfile{ID: "7", Username: "abebe", FirstName: "Abebe"}

	file, err := svc.Transcript(context.Background(), noTokens{}, user, models.StudentQuery{Semester: "S1"})
	require.NoError(t, err)
	assert.Equal(t, "transcript_abebe.pdf", file.Filename)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))

	svc.OnSessionEvent(session.Event{Kind: session.EventCleared, UserID: "7"})
}
