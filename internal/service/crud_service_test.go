package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-portal/internal/listing"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type fakeResourceRepo[T any] struct {
	mu          sync.Mutex
	items       []T
	setID       func(*T, string)
	getID       func(*T) string
	onCreate    func(*T)
	createErr   error
	createDelay time.Duration

	listCalls, createCalls, updateCalls, deleteCalls, importCalls int
	importMessage string
	exportBody    []byte
}

func (f *fakeResourceRepo[T]) List(context.Context, apiclient.TokenSource, url.Values) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]T(nil), f.items...), nil
}

func (f *fakeResourceRepo[T]) Get(_ context.Context, _ apiclient.TokenSource, id string) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.getID(&f.items[i]) == id {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "")
}

func (f *fakeResourceRepo[T]) Create(_ context.Context, _ apiclient.TokenSource, item *T) (*T, error) {
	if f.createDelay > 0 {
		time.Sleep(f.createDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *item
	f.setID(&stored, strconv.Itoa(len(f.items)+1))
	if f.onCreate != nil {
		f.onCreate(&stored)
	}
	f.items = append(f.items, stored)
	return &stored, nil
}

func (f *fakeResourceRepo[T]) Update(_ context.Context, _ apiclient.TokenSource, id string, item *T) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	for i := range f.items {
		if f.getID(&f.items[i]) == id {
			f.items[i] = *item
			stored := *item
			return &stored, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "")
}

func (f *fakeResourceRepo[T]) Delete(_ context.Context, _ apiclient.TokenSource, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	for i := range f.items {
		if f.getID(&f.items[i]) == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "")
}

func (f *fakeResourceRepo[T]) ImportCSV(_ context.Context, _ apiclient.TokenSource, _ string, content io.Reader) (string, error) {
	f.importCalls++
	_, _ = io.ReadAll(content)
	return f.importMessage, nil
}

func (f *fakeResourceRepo[T]) ExportCSV(context.Context, apiclient.TokenSource) ([]byte, error) {
	return f.exportBody, nil
}

func newStudentRepo() *fakeResourceRepo[models.Student] {
	return &fakeResourceRepo[models.Student]{
		setID: func(s *models.Student, id string) { s.ID = models.ID(id) },
		getID: func(s *models.Student) string { return s.ID.String() },
	}
}

type noTokens struct{}

func (noTokens) AccessToken(context.Context) (string, error)  { return "tok", nil }
func (noTokens) RefreshToken(context.Context) (string, error) { return "", nil }
func (noTokens) SetAccessToken(context.Context, string) error { return nil }
func (noTokens) Clear(context.Context) error                  { return nil }

func TestStudentCreateThenMissingAdmissionNo(t *testing.T) {
	repo := newStudentRepo()
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})
	ctx := context.Background()

	before, err := svc.List(ctx, noTokens{}, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, before.Total)

	form, err := svc.Open(ctx, noTokens{}, FormAdd, "")
	require.NoError(t, err)
	form.Record.AdmissionNo = "A123"
	form.Record.FirstName = "Jane"
	form.Record.LastName = "Doe"
	form.Record.ClassSection = "Grade 10A"

	res, err := svc.Submit(ctx, noTokens{}, FormAdd, "", form.IdempotencyKey, form.Record)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, models.FlashSuccess, res.Flash.Kind)
	assert.Equal(t, "Student added successfully!", res.Flash.Message)
	assert.Equal(t, int64(3000), res.Flash.DismissAfterMs)

	createCalls, listCalls := repo.createCalls, repo.listCalls
	second := &models.Student{FirstName: "Jane", LastName: "Doe", ClassSection: "Grade 10A"}
	_, err = svc.Submit(ctx, noTokens{}, FormAdd, "", "", second)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, map[string]string{"admission_no": "Admission No is required"}, appErr.Fields)
	assert.Equal(t, createCalls, repo.createCalls)
	assert.Equal(t, listCalls, repo.listCalls)
}

func TestSubmitRejectsWhitespaceOnlyFields(t *testing.T) {
	repo := newStudentRepo()
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})

	_, err := svc.Submit(context.Background(), noTokens{}, FormAdd, "", "", &models.Student{AdmissionNo: "  ", FirstName: "A", LastName: "B"})
	require.Error(t, err)
	fields := appErrors.FromError(err).Fields
	assert.Equal(t, "Admission No is required", fields["admission_no"])
	assert.Equal(t, "Class Section is required", fields["class_section"])
	assert.Zero(t, repo.createCalls)
}

func TestSubmitSameKeyCreatesOnce(t *testing.T) {
	repo := newStudentRepo()
	repo.createDelay = 20 * time.Millisecond
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})
	record := &models.Student{AdmissionNo: "A1", FirstName: "Sara", LastName: "M", ClassSection: "9B"}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), noTokens{}, FormAdd, "", "key-1", record)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	_, err := svc.Submit(context.Background(), noTokens{}, FormAdd, "", "key-1", record)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.createCalls)
	assert.Len(t, repo.items, 1)
}

func TestSubmitFailureIsNotRemembered(t *testing.T) {
	repo := newStudentRepo()
	repo.createErr = appErrors.FromUpstream(http.StatusBadRequest, []byte(`{"admission_no":["already exists"]}`))
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})
	record := &models.Student{AdmissionNo: "A1", FirstName: "Sara", LastName: "M", ClassSection: "9B"}

	_, err := svc.Submit(context.Background(), noTokens{}, FormAdd, "", "key-2", record)
	require.Error(t, err)
	assert.Equal(t, "already exists", appErrors.FromError(err).Fields["admission_no"])

	repo.createErr = nil
	res, err := svc.Submit(context.Background(), noTokens{}, FormAdd, "", "key-2", record)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, repo.createCalls)
}

func TestEditAndViewSeedFromStoredRecord(t *testing.T) {
	repo := newStudentRepo()
	repo.items = []models.Student{{ID: "9", AdmissionNo: "A9", FirstName: "Dawit", LastName: "K", ClassSection: "10A"}}
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})
	ctx := context.Background()

	view, err := svc.Open(ctx, noTokens{}, FormView, "9")
	require.NoError(t, err)
	assert.True(t, view.ReadOnly)
	assert.Empty(t, view.IdempotencyKey)
	assert.Equal(t, "Dawit", view.Record.FirstName)

	_, err = svc.Submit(ctx, noTokens{}, FormView, "9", "", view.Record)
	require.Error(t, err)

	edit, err := svc.Open(ctx, noTokens{}, FormEdit, "9")
	require.NoError(t, err)
	edit.Record.FirstName = "Dawit M."
	res, err := svc.Submit(ctx, noTokens{}, FormEdit, "9", edit.IdempotencyKey, edit.Record)
	require.NoError(t, err)
	assert.Equal(t, "Student updated successfully!", res.Flash.Message)
	assert.Equal(t, "Dawit M.", res.Items[0].FirstName)

	add, err := svc.Open(ctx, noTokens{}, FormAdd, "")
	require.NoError(t, err)
	assert.Equal(t, models.AcademicStatusActive, add.Record.AcademicStatus)
	assert.NotEmpty(t, add.IdempotencyKey)
}

func TestEditRejectsRecordOfAnotherID(t *testing.T) {
	repo := newStudentRepo()
	repo.items = []models.Student{
		{ID: "1", AdmissionNo: "A1", FirstName: "Abebe", LastName: "B", ClassSection: "9A"},
		{ID: "2", AdmissionNo: "A2", FirstName: "Sara", LastName: "T", ClassSection: "9B"},
	}
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})
	ctx := context.Background()

	record := repo.items[1]
	record.FirstName = "Changed"
	_, err := svc.Submit(ctx, noTokens{}, FormEdit, "1", "", &record)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Fields, "id")
	assert.Zero(t, repo.updateCalls)

	record.ID = ""
	_, err = svc.Submit(ctx, noTokens{}, FormEdit, "1", "", &record)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestStatusDropdownComparesExactly(t *testing.T) {
	repo := newStudentRepo()
	repo.items = []models.Student{
		{ID: "1", AdmissionNo: "A1", FirstName: "Abebe", Gender: "Male", AcademicStatus: "Graduated"},
		{ID: "2", AdmissionNo: "A2", FirstName: "Hana", Gender: "Female", AcademicStatus: "graduated"},
		{ID: "3", AdmissionNo: "A3", FirstName: "Sara", Gender: "female", AcademicStatus: "Active"},
	}
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})
	ctx := context.Background()

	res, err := svc.List(ctx, noTokens{}, ListQuery{Criteria: listing.Criteria{Selected: map[string]string{"status": "Graduated"}}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Matched)
	assert.Equal(t, "Abebe", res.Items[0].FirstName)

	res, err = svc.List(ctx, noTokens{}, ListQuery{Criteria: listing.Criteria{Selected: map[string]string{"gender": "FEMALE"}}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matched)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	repo := newStudentRepo()
	repo.items = []models.Student{{ID: "1"}, {ID: "2"}}
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})

	_, err := svc.Delete(context.Background(), noTokens{}, "1", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConfirmationRequired))
	assert.Zero(t, repo.deleteCalls)

	res, err := svc.Delete(context.Background(), noTokens{}, "1", true)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, "Student deleted successfully!", res.Flash.Message)
}

func TestImportUsesServerOrDefaultMessage(t *testing.T) {
	repo := newStudentRepo()
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})

	res, err := svc.Import(context.Background(), noTokens{}, "s.csv", bytes.NewBufferString("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "CSV imported successfully!", res.Flash.Message)

	repo.importMessage = "Imported 4 students successfully"
	res, err = svc.Import(context.Background(), noTokens{}, "s.csv", bytes.NewBufferString("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "Imported 4 students successfully", res.Flash.Message)
	assert.Equal(t, 2, repo.listCalls)
}

func TestExportUsesFixedFilename(t *testing.T) {
	repo := newStudentRepo()
	repo.exportBody = []byte("id\n1\n")
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{})

	file, err := svc.Export(context.Background(), noTokens{})
	require.NoError(t, err)
	assert.Equal(t, "students.csv", file.Filename)
	assert.Equal(t, "id\n1\n", string(file.Data))
}

func TestListFiltersAndExportView(t *testing.T) {
	repo := newStudentRepo()
	repo.items = []models.Student{
		{ID: "1", AdmissionNo: "A1", FirstName: "Abebe", ClassSection: "10A", Gender: "Male"},
		{ID: "2", AdmissionNo: "A2", FirstName: "Hana", ClassSection: "10A", Gender: "Female"},
		{ID: "3", AdmissionNo: "B1", FirstName: "Sara", ClassSection: "9B", Gender: "female"},
	}
	svc := NewCRUDService[models.Student](repo, StudentEntity(), CRUDOptions{PageSize: 1})
	q := ListQuery{Criteria: listing.Criteria{Selected: map[string]string{"gender": "female"}}}

	res, err := svc.List(context.Background(), noTokens{}, q)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Matched)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.Equal(t, []string{listing.All, "10A", "9B"}, res.Options["class"])

	file, err := svc.ExportView(context.Background(), noTokens{}, q, FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(file.Data), "Hana")
	assert.Contains(t, string(file.Data), "Sara")
	assert.NotContains(t, string(file.Data), "Abebe")

	file, err = svc.ExportView(context.Background(), noTokens{}, q, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "students.xlsx", file.Filename)

	_, err = svc.ExportView(context.Background(), noTokens{}, q, "pdf")
	assert.Error(t, err)
}

func TestSupervisorRegistrationShowsCredentials(t *testing.T) {
	repo := &fakeResourceRepo[models.Supervisor]{
		setID: func(s *models.Supervisor, id string) { s.ID = models.ID(id) },
		getID: func(s *models.Supervisor) string { return s.ID.String() },
		onCreate: func(s *models.Supervisor) {
			s.Username = "supervisor_abebe"
			s.PlainPassword = "x7Yp2"
		},
	}
	svc := NewCRUDService[models.Supervisor](repo, SupervisorEntity(), CRUDOptions{})

	_, err := svc.Submit(context.Background(), noTokens{}, FormAdd, "", "", &models.Supervisor{
		FirstName: "Abebe", LastName: "K", Email: "a@k.et", NationalID: "123",
	})
	require.Error(t, err)
	assert.Equal(t, "Assigned Schools is required", appErrors.FromError(err).Fields["assigned_school_ids"])

	res, err := svc.Submit(context.Background(), noTokens{}, FormAdd, "", "", &models.Supervisor{
		FirstName: "Abebe", LastName: "K", Email: "a@k.et", NationalID: "123", AssignedSchoolIDs: []models.ID{"4"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Supervisor registered! Username: supervisor_abebe, Password: x7Yp2", res.Flash.Message)
	require.NotNil(t, res.Credentials)
	assert.Equal(t, "x7Yp2", res.Credentials.Secret())
}

func TestStaffToggleStatus(t *testing.T) {
	repo := &fakeResourceRepo[models.Employee]{
		setID: func(e *models.Employee, id string) { e.ID = models.ID(id) },
		getID: func(e *models.Employee) string { return e.ID.String() },
		items: []models.Employee{{ID: "1", Status: models.EmployeeStatusActive, User: &models.EmployeeUser{FirstName: "Almaz"}}},
	}
	svc := NewStaffService(repo, CRUDOptions{})

	res, err := svc.ToggleStatus(context.Background(), noTokens{}, "1")
	require.NoError(t, err)
	assert.Equal(t, "Employee is now inactive", res.Flash.Message)
	assert.Equal(t, models.EmployeeStatusInactive, res.Items[0].Status)
	assert.Equal(t, "Almaz", res.Items[0].FirstName)

	res, err = svc.ToggleStatus(context.Background(), noTokens{}, "1")
	require.NoError(t, err)
	assert.Equal(t, "Employee is now active", res.Flash.Message)
}
