package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/models"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/response"
)

// ContextUserKey is the gin context key storing the authenticated user's profile.
const ContextUserKey = "currentUser"

// GuardDecision is the outcome of evaluating a protected route.
type GuardDecision int

const (
	Allow GuardDecision = iota
	RedirectLogin
	Deny
)

func (d GuardDecision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	default:
		return "deny"
	}
}

// EvaluateGuard decides whether a protected page may render. An empty required role admits
// every authenticated user.
func EvaluateGuard(authenticated bool, user *models.UserProfile, required models.Role) GuardDecision {
	if !authenticated {
		return RedirectLogin
	}
	if required == "" {
		return Allow
	}
	if user == nil || user.Role != required {
		return Deny
	}
	return Allow
}

// AccessDenied is rendered when an authenticated user lacks the page's role.
type AccessDenied struct {
	RequiredRole string `json:"required_role"`
	UserRole     string `json:"user_role"`
	LoginPath    string `json:"login_path"`
}

// NewAccessDenied builds the denial view; a missing user or role reads "Unknown".
func NewAccessDenied(required models.Role, user *models.UserProfile, loginPath string) AccessDenied {
	actual := "Unknown"
	if user != nil && user.Role != "" {
		actual = string(user.Role)
	}
	return AccessDenied{RequiredRole: string(required), UserRole: actual, LoginPath: loginPath}
}

// WantsJSON reports whether the caller negotiated a JSON response.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// RequireAuth guards a route group. Unauthenticated browsers are redirected to loginPath and JSON
// callers get 401; a role mismatch renders the access denied view with 403 and no redirect.
func RequireAuth(loginPath string, required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil {
			response.Error(c, appErrors.Clone(appErrors.ErrInternal, "session middleware missing"))
			c.Abort()
			return
		}
		ctx := c.Request.Context()
		authenticated, err := sess.IsAuthenticated(ctx)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "session store unavailable"))
			c.Abort()
			return
		}
		var user *models.UserProfile
		if authenticated {
			user, _ = sess.User(ctx)
		}

		switch EvaluateGuard(authenticated, user, required) {
		case RedirectLogin:
			if WantsJSON(c) {
				response.Error(c, appErrors.ErrUnauthenticated)
			} else {
				c.Redirect(http.StatusFound, loginPath)
			}
			c.Abort()
		case Deny:
			view := NewAccessDenied(required, user, loginPath)
			if WantsJSON(c) {
				denied := appErrors.Clone(appErrors.ErrForbidden, "Access Denied")
				denied.Fields = map[string]string{"required_role": view.RequiredRole, "user_role": view.UserRole}
				response.Error(c, denied)
			} else {
				c.HTML(http.StatusForbidden, "access_denied.html", gin.H{"Denied": view, "User": user})
			}
			c.Abort()
		default:
			if user != nil {
				c.Set(ContextUserKey, user)
			}
			c.Next()
		}
	}
}

// CurrentUser returns the profile attached by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.UserProfile {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*models.UserProfile); ok {
			return user
		}
	}
	return nil
}
