package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/eschool-portal/internal/middleware"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/service"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/observability"
	"github.com/noah-isme/eschool-portal/pkg/response"
)

// pageView is the data every HTML template receives.
type pageView struct {
	Title    string
	User     *models.UserProfile
	Nav      []navItem
	Flash    *models.Flash
	Settings models.UISettings
	Path     string
	Data     interface{}
}

// Renderer answers a route with an HTML page or, for JSON callers, the response envelope.
type Renderer struct {
	settings  *service.SettingsService
	loginPath string
	logger    *zap.Logger
}

// NewRenderer constructs a renderer. settings may be nil.
func NewRenderer(settings *service.SettingsService, loginPath string, logger *zap.Logger) *Renderer {
	if loginPath == "" {
		loginPath = "/login"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{settings: settings, loginPath: loginPath, logger: logger}
}

func (r *Renderer) view(c *gin.Context, title string, data interface{}) pageView {
	user := userFromContext(c)
	v := pageView{
		Title:    title,
		User:     user,
		Nav:      navFor(user),
		Settings: models.DefaultUISettings(),
		Path:     c.Request.URL.Path,
		Data:     data,
	}
	if r.settings != nil && user != nil {
		v.Settings = r.settings.Settings(c.Request.Context(), user.ID)
	}
	if sess := sessionFromContext(c); sess != nil {
		if flash, err := sess.PopFlash(c.Request.Context()); err == nil {
			v.Flash = flash
		}
	}
	return v
}

func wantsJSON(c *gin.Context) bool { return middleware.WantsJSON(c) }

// Page renders template with data, or data itself as JSON.
func (r *Renderer) Page(c *gin.Context, status int, template, title string, data interface{}, pagination *models.Pagination) {
	if middleware.WantsJSON(c) {
		response.JSON(c, status, data, pagination, middleware.ExtractMeta(c))
		return
	}
	c.HTML(status, template, r.view(c, title, data))
}

// Done finishes a mutation. JSON callers get the result with its banner; browsers get the banner
// stored for the next page and a redirect to target.
func (r *Renderer) Done(c *gin.Context, status int, data interface{}, flash models.Flash, target string) {
	if middleware.WantsJSON(c) {
		response.WithFlash(c, status, data, &flash)
		return
	}
	if sess := sessionFromContext(c); sess != nil {
		if err := sess.SetFlash(c.Request.Context(), flash); err != nil {
			r.logger.Warn("failed to store flash", zap.Error(err))
		}
	}
	c.Redirect(http.StatusSeeOther, target)
}

// Fail renders err at page level. Authentication failures send browsers back to the login page.
func (r *Renderer) Fail(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError && !errors.Is(err, appErrors.ErrUpstream) {
		observability.CaptureErr(err)
		r.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	if middleware.WantsJSON(c) {
		response.Error(c, appErr)
		return
	}
	if errors.Is(err, appErrors.ErrUnauthenticated) || errors.Is(err, appErrors.ErrAuthenticationFailed) {
		c.Redirect(http.StatusFound, r.loginPath)
		return
	}
	c.HTML(appErr.Status, "error.html", r.view(c, "Error", appErr))
}

// FormError re-renders a form with field errors (browsers) or returns them as JSON.
func (r *Renderer) FormError(c *gin.Context, template, title string, form interface{}, err error) {
	appErr := appErrors.FromError(err)
	if middleware.WantsJSON(c) || (len(appErr.Fields) == 0 && appErr.Status != http.StatusBadRequest) {
		r.Fail(c, err)
		return
	}
	c.HTML(appErr.Status, template, r.view(c, title, form))
}
