package middleware

import (
	"context"
	"html/template"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/session"
)

func TestEvaluateGuard(t *testing.T) {
	teacher := &models.UserProfile{ID: "1", Role: models.RoleTeacher}
	cases := []struct {
		name     string
		auth     bool
		user     *models.UserProfile
		required models.Role
		want     GuardDecision
	}{
		{"anonymous", false, nil, "", RedirectLogin},
		{"anonymous with stale profile", false, teacher, models.RoleTeacher, RedirectLogin},
		{"any role", true, teacher, "", Allow},
		{"matching role", true, teacher, models.RoleTeacher, Allow},
		{"other role", true, teacher, models.RoleStudent, Deny},
		{"no profile", true, nil, models.RoleStudent, Deny},
		{"no profile no role", true, nil, "", Allow},
	}
	for _, tc := range cases {
		if got := EvaluateGuard(tc.auth, tc.user, tc.required); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestEvaluateGuardDeterministic(t *testing.T) {
	roles := []models.Role{"", models.RoleStudent, models.RoleTeacher, models.RoleSchool}
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		auth := rng.Intn(2) == 0
		var user *models.UserProfile
		if rng.Intn(3) > 0 {
			user = &models.UserProfile{Role: roles[rng.Intn(len(roles))]}
		}
		required := roles[rng.Intn(len(roles))]
		first := EvaluateGuard(auth, user, required)
		if again := EvaluateGuard(auth, user, required); again != first {
			t.Fatalf("decision changed between calls: %s vs %s", first, again)
		}
		if !auth && first != RedirectLogin {
			t.Fatalf("unauthenticated caller must be redirected, got %s", first)
		}
	}
}

func TestAccessDeniedUnknownRole(t *testing.T) {
	view := NewAccessDenied(models.RoleStudent, nil, "/login")
	if view.UserRole != "Unknown" || view.RequiredRole != "student" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func guardedRouter(t *testing.T, store *session.Store, required models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("access_denied.html").Parse(
		`denied: need {{.Denied.RequiredRole}}, have {{.Denied.UserRole}}`)))
	router.Use(Sessions(store, SessionCookie{Name: "sid", TTL: time.Hour}))
	router.GET("/page", RequireAuth("/login", required), func(c *gin.Context) {
		c.String(http.StatusOK, "hello %s", CurrentUser(c).Username)
	})
	return router
}

func TestRequireAuthRedirectsAnonymousBrowser(t *testing.T) {
	store := session.NewStore(session.NewMemoryBackend(), time.Hour, nil)
	router := guardedRouter(t, store, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/page", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	cookie := rec.Result().Cookies()
	if len(cookie) != 1 || cookie[0].Name != "sid" || !cookie[0].HttpOnly {
		t.Fatalf("expected an HttpOnly session cookie, got %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for JSON caller, got %d", rec.Code)
	}
}

func loggedIn(t *testing.T, store *session.Store, role models.Role) *http.Cookie {
	t.Helper()
	id := store.NewID()
	sess := store.Session(id)
	ctx := context.Background()
	if err := sess.SetAccessToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := sess.SetUser(ctx, &models.UserProfile{ID: "9", Username: "almaz", Role: role}); err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: "sid", Value: id}
}

func TestRequireAuthRoleMismatchRendersDenied(t *testing.T) {
	store := session.NewStore(session.NewMemoryBackend(), time.Hour, nil)
	router := guardedRouter(t, store, models.RoleStudent)
	cookie := loggedIn(t, store, models.RoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Fatalf("denied page must not redirect")
	}
	if body := rec.Body.String(); !strings.Contains(body, "need student, have teacher") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRequireAuthAllowsMatchingRole(t *testing.T) {
	store := session.NewStore(session.NewMemoryBackend(), time.Hour, nil)
	router := guardedRouter(t, store, models.RoleTeacher)
	cookie := loggedIn(t, store, models.RoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "hello almaz" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestWantsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	c.Request.Header.Set("Accept", "text/html,application/json")
	if WantsJSON(c) {
		t.Fatalf("browser accept header must prefer HTML")
	}
	c.Request.Header.Set("Accept", "application/json")
	if !WantsJSON(c) {
		t.Fatalf("expected JSON negotiation")
	}
}
