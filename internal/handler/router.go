package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/middleware"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/session"
)

type routeRegistrar interface {
	Register(g gin.IRoutes)
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Student   *StudentHandler
	Teacher   *TeacherHandler
	Activity  *ActivityHandler
	Settings  *SettingsHandler
	Metrics   *MetricsHandler

	Students       *CRUDHandler[models.Student]
	Staff          *StaffHandler
	Schools        *CRUDHandler[models.School]
	SchoolManagers *CRUDHandler[models.SchoolManager]
	Supervisors    *CRUDHandler[models.Supervisor]
	Weredas        *CRUDHandler[models.Wereda]
	WeredaManagers *CRUDHandler[models.WeredaManager]
}

// RouterConfig carries the session wiring of the router.
type RouterConfig struct {
	Store     *session.Store
	Cookie    middleware.SessionCookie
	LoginPath string
}

// RegisterRoutes mounts every portal route on r. Student and teacher pages require the matching
// role; the other pages only require a logged-in session.
func RegisterRoutes(r *gin.Engine, h Handlers, cfg RouterConfig) {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	web := r.Group("/")
	web.Use(middleware.Sessions(cfg.Store, cfg.Cookie))
	web.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
	web.GET(cfg.LoginPath, h.Auth.LoginPage)
	web.POST(cfg.LoginPath, h.Auth.Login)
	web.GET("/logout", h.Auth.Logout)
	web.POST("/logout", h.Auth.Logout)
	web.GET("/api/session", h.Auth.Session)

	authed := web.Group("/")
	authed.Use(middleware.RequireAuth(cfg.LoginPath, ""))
	authed.GET("/dashboard", h.Dashboard.Show)
	authed.GET("/profile", h.Auth.Profile)
	authed.POST("/profile", h.Auth.UpdateProfile)
	authed.POST("/profile/draft", h.Auth.SaveProfileDraft)
	if h.Metrics != nil {
		authed.GET("/api/metrics", h.Metrics.Snapshot)
	}
	h.Settings.Register(authed)
	h.Activity.Register(authed)
	for _, reg := range []routeRegistrar{h.Students, h.Staff, h.Schools, h.SchoolManagers, h.Supervisors, h.Weredas, h.WeredaManagers} {
		reg.Register(authed)
	}

	student := web.Group("/")
	student.Use(middleware.RequireAuth(cfg.LoginPath, models.RoleStudent))
	h.Student.Register(student)

	teacher := web.Group("/")
	teacher.Use(middleware.RequireAuth(cfg.LoginPath, models.RoleTeacher))
	h.Teacher.Register(teacher)
}
