package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/session"
)

// ContextSessionKey is the gin context key storing the browser's session handle.
const ContextSessionKey = "portalSession"

const contextCookieKey = "portalSessionCookie"

// SessionCookie configures the opaque session cookie.
type SessionCookie struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Sessions loads the session named by the cookie, issuing a fresh id when the browser has none.
// A known session has its idle timeout restarted along with the cookie.
func Sessions(store *session.Store, cookie SessionCookie) gin.HandlerFunc {
	if cookie.Name == "" {
		cookie.Name = "eschool_session"
	}
	return func(c *gin.Context) {
		c.Set(contextCookieKey, cookie)
		id, err := c.Cookie(cookie.Name)
		if err != nil || id == "" {
			id = store.NewID()
		}
		sess := store.Session(id)
		if err == nil {
			_ = sess.Touch(c.Request.Context())
		}
		attach(c, cookie, sess)
		c.Next()
	}
}

func attach(c *gin.Context, cookie SessionCookie, sess *session.Session) {
	header := c.Writer.Header()
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, cookie.Name+"=") {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cookie.Name,
		Value:    sess.ID(),
		Path:     "/",
		MaxAge:   int(cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(ContextSessionKey, sess)
}

// ReplaceSession points the browser at sess, overriding the cookie issued earlier in the request.
func ReplaceSession(c *gin.Context, sess *session.Session) {
	cookie, _ := c.Get(contextCookieKey)
	cfg, ok := cookie.(SessionCookie)
	if !ok {
		cfg = SessionCookie{Name: "eschool_session"}
	}
	attach(c, cfg, sess)
}

// CurrentSession returns the session attached by Sessions, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextSessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
