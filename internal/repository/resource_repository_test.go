package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type staticTokens struct {
	access  string
	cleared bool
}

func (s *staticTokens) AccessToken(context.Context) (string, error)  { return s.access, nil }
func (s *staticTokens) RefreshToken(context.Context) (string, error) { return "", nil }
func (s *staticTokens) SetAccessToken(_ context.Context, t string) error {
	s.access = t
	return nil
}
func (s *staticTokens) Clear(context.Context) error {
	s.cleared = true
	s.access = ""
	return nil
}

func newBackend(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Options{BaseURL: srv.URL})
}

func TestResourceListAcceptsArrayAndPage(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		if r.URL.Query().Get("paged") == "1" {
			_, _ = io.WriteString(w, `{"count":1,"results":[{"id":7,"admission_no":"A7","first_name":"Sara"}]}`)
			return
		}
		_, _ = io.WriteString(w, `[{"id":1,"admission_no":"A1"},{"id":"2","admission_no":"A2"}]`)
	})
	repo := NewResourceRepository[models.Student](client, "/api/students")
	assert.Equal(t, "/api/students/", repo.Path())

	tokens := &staticTokens{access: "tok"}
	items, err := repo.List(context.Background(), tokens, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.ID("2"), items[1].ID)

	items, err = repo.List(context.Background(), tokens, map[string][]string{"paged": {"1"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sara", items[0].FirstName)
}

func TestResourceListEmptyBody(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})
	items, err := NewResourceRepository[models.School](client, "/api/schools/").List(context.Background(), &staticTokens{access: "tok"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestResourceCreateUpdateDelete(t *testing.T) {
	var calls []string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Bole", body["name"])
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":3,"name":"Bole","status":"active"}`)
		case http.MethodPut:
			_, _ = io.WriteString(w, `{"id":3,"name":"Bole East"}`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	repo := NewResourceRepository[models.Wereda](client, "/api/weredas/")
	tokens := &staticTokens{access: "tok"}

	created, err := repo.Create(context.Background(), tokens, &models.Wereda{Name: "Bole"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), created.ID)

	updated, err := repo.Update(context.Background(), tokens, "3", &models.Wereda{Name: "Bole East"})
	require.NoError(t, err)
	assert.Equal(t, "Bole East", updated.Name)

	require.NoError(t, repo.Delete(context.Background(), tokens, "3"))
	assert.Equal(t, []string{"POST /api/weredas/", "PUT /api/weredas/3/", "DELETE /api/weredas/3/"}, calls)
}

func TestResourceCreatePassesServerErrorsThrough(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"admission_no":["student with this admission no already exists."]}`)
	})
	repo := NewResourceRepository[models.Student](client, "/api/students/")

	_, err := repo.Create(context.Background(), &staticTokens{access: "tok"}, &models.Student{AdmissionNo: "A1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "student with this admission no already exists.", appErr.Fields["admission_no"])
}

func TestResourceImportCSV(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/students/import_csv/", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "students.csv", header.Filename)
		assert.Equal(t, "admission_no,class_section\nA1,10A\n", string(content))
		_, _ = io.WriteString(w, `{"message":"Imported 1 students successfully"}`)
	})
	repo := NewResourceRepository[models.Student](client, "/api/students/")

	msg, err := repo.ImportCSV(context.Background(), &staticTokens{access: "tok"}, "students.csv", strings.NewReader("admission_no,class_section\nA1,10A\n"))
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 students successfully", msg)
}

func TestResourceImportCSVFailureKeepsServerText(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"No file uploaded"}`)
	})
	repo := NewResourceRepository[models.Student](client, "/api/students/")

	_, err := repo.ImportCSV(context.Background(), &staticTokens{access: "tok"}, "x.csv", strings.NewReader(""))
	require.Error(t, err)
	assert.Equal(t, "No file uploaded", appErrors.FromError(err).Message)
}

func TestResourceExportCSV(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/employees/export_csv/", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "id,first_name\n1,Abebe\n")
	})
	repo := NewResourceRepository[models.Employee](client, "/api/employees/")

	body, err := repo.ExportCSV(context.Background(), &staticTokens{access: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "id,first_name\n1,Abebe\n", string(body))
}

func TestResourceWithoutTokenMakesNoCall(t *testing.T) {
	called := false
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	repo := NewResourceRepository[models.Student](client, "/api/students/")

	_, err := repo.List(context.Background(), &staticTokens{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
	assert.False(t, called)
}
