package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-portal/internal/middleware"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/repository"
	"github.com/noah-isme/eschool-portal/internal/service"
	"github.com/noah-isme/eschool-portal/internal/session"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	"github.com/noah-isme/eschool-portal/web"
)

const testCookie = "eschool_session"

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	Flash *models.Flash          `json:"flash"`
	Meta  map[string]interface{} `json:"meta"`
}

// fakeBackend imitates the school REST API closely enough for the portal routes.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int
}

func (b *fakeBackend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.calls[r.Method+" "+r.URL.Path]++
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/login/":
		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access":"acc","refresh":"ref","user":{"id":"7","username":"abebe","first_name":"Abebe","last_name":"Kebede","email":"abebe@example.com","role":"record_officer"}}`))
	case r.Header.Get("Authorization") != "Bearer acc":
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token not valid"}`))
	case r.URL.Path == "/api/students/" && r.Method == http.MethodGet:
		_, _ = w.Write([]byte(`[
			{"id":"1","admission_no":"A-1","first_name":"Abebe","last_name":"Bikila","class_section":"9A","gender":"Male","academic_status":"active"},
			{"id":"2","admission_no":"A-2","first_name":"Tirunesh","last_name":"Dibaba","class_section":"9B","gender":"Female","academic_status":"active"},
			{"id":"3","admission_no":"A-3","first_name":"Haile","last_name":"Gebrselassie","class_section":"9A","gender":"Male","academic_status":"graduated"}
		]`))
	case r.URL.Path == "/api/teacher-self/grade_management/":
		b.grades(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	}
}

func (b *fakeBackend) grades(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	_ = json.NewDecoder(r.Body).Decode(&body)
	switch r.Method {
	case http.MethodGet:
		_, _ = w.Write([]byte(`{"grades":[{"id":31,"student":1,"student_name":"Abebe Bikila","subject":2,"section":4,"grade_type":"quiz","score":"18.00","full_mark":"20.00"}],
			"statistics":{"total_grades":1,"average_score":18,"grade_distribution":{"A":1,"B":0,"C":0,"D":0,"F":0}}}`))
	case http.MethodPost:
		if strings.HasPrefix(strings.TrimSpace(string(body)), "[") {
			var grades []map[string]interface{}
			_ = json.Unmarshal(body, &grades)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]int{"created": len(grades), "errors": 0})
			return
		}
		var grade map[string]interface{}
		_ = json.Unmarshal(body, &grade)
		grade["id"] = 40
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(grade)
	case http.MethodPut:
		var grade map[string]interface{}
		_ = json.Unmarshal(body, &grade)
		if grade["id"] != float64(31) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Grade not found or not authorized"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(grade)
	}
}

type testPortal struct {
	engine  *gin.Engine
	store   *session.Store
	backend *fakeBackend
}

func newTestPortal(t *testing.T) *testPortal {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{calls: map[string]int{}}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	store := session.NewStore(session.NewMemoryBackend(), time.Hour, nil)
	validate := service.NewValidator()
	opts := service.CRUDOptions{Validator: validate, PageSize: 10, IdempotencyTTL: time.Minute}

	students := service.NewCRUDService[models.Student](repository.NewResourceRepository[models.Student](client, "/api/students/"), service.StudentEntity(), opts)
	settings := service.NewSettingsService(store, validate, nil)
	teacherPortal := service.NewTeacherPortalService(repository.NewTeacherSelfRepository(client), validate, time.Minute, nil)
	studentPortal := service.NewStudentPortalService(repository.NewStudentSelfRepository(client), nil, nil)
	dashboard := service.NewDashboardService(service.DashboardSources{Student: studentPortal, Teacher: teacherPortal}, nil)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	r.SetHTMLTemplate(tmpl)

	render := NewRenderer(settings, "/login", nil)
	crud := func() *CRUDHandler[models.Student] {
		return NewCRUDHandler(students, render, "/record/students", "Student Records").
			WithStats(func(all []models.Student) interface{} { return models.ComputeStudentStats(all) })
	}
	staff := service.NewStaffService(repository.NewResourceRepository[models.Employee](client, "/api/employees/"), opts)
	RegisterRoutes(r, Handlers{
		Auth:      NewAuthHandler(service.NewAuthService(repository.NewAuthRepository(client), validate, nil), settings, render, "/dashboard"),
		Dashboard: NewDashboardHandler(dashboard, render),
		Student:   NewStudentHandler(studentPortal, dashboard, render),
		Teacher:   NewTeacherHandler(teacherPortal, render),
		Activity:  NewActivityHandler(service.NewActivityService(nil, nil, nil), render),
		Settings:  NewSettingsHandler(settings, render),
		Metrics:   NewMetricsHandler(service.NewMetricsService()),

		Students:       crud(),
		Staff:          NewStaffHandler(staff, render, "/director/staff"),
		Schools:        NewCRUDHandler(service.NewCRUDService[models.School](repository.NewResourceRepository[models.School](client, "/api/schools/"), service.SchoolEntity(), opts), render, "/wereda/schools", "Schools"),
		SchoolManagers: NewCRUDHandler(service.NewCRUDService[models.SchoolManager](repository.NewResourceRepository[models.SchoolManager](client, "/api/register_school_manager/"), service.SchoolManagerEntity(), opts), render, "/wereda/schools/directors", "School Directors"),
		Supervisors:    NewCRUDHandler(service.NewCRUDService[models.Supervisor](repository.NewResourceRepository[models.Supervisor](client, "/api/register_schools_supervisor/"), service.SupervisorEntity(), opts), render, "/wereda/supervisors", "Supervisors"),
		Weredas:        NewCRUDHandler(service.NewCRUDService[models.Wereda](repository.NewResourceRepository[models.Wereda](client, "/api/weredas/"), service.WeredaEntity(), opts), render, "/zone/wereda/manage", "Weredas"),
		WeredaManagers: NewCRUDHandler(service.NewCRUDService[models.WeredaManager](repository.NewResourceRepository[models.WeredaManager](client, "/api/wereda/officer/"), service.WeredaManagerEntity(), opts), render, "/zone/awm", "Wereda Managers"),
	}, RouterConfig{Store: store, Cookie: middleware.SessionCookie{Name: testCookie, TTL: time.Hour}, LoginPath: "/login"})

	return &testPortal{engine: r, store: store, backend: backend}
}

// loginAs seeds an authenticated session directly in the store.
func (p *testPortal) loginAs(t *testing.T, role models.Role) *http.Cookie {
	t.Helper()
	ctx := context.Background()
	id := p.store.NewID()
	sess := p.store.Session(id)
	require.NoError(t, sess.SetAccessToken(ctx, "acc"))
	require.NoError(t, sess.SetUser(ctx, &models.UserProfile{ID: "7", Username: "abebe", FirstName: "Abebe", Role: role}))
	return &http.Cookie{Name: testCookie, Value: id}
}

func (p *testPortal) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	p.engine.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}
