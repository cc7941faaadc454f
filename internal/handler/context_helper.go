package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/middleware"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/session"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
)

func sessionFromContext(c *gin.Context) *session.Session {
	return middleware.CurrentSession(c)
}

// tokensFromContext returns the session as the token source of upstream calls.
func tokensFromContext(c *gin.Context) apiclient.TokenSource {
	if sess := middleware.CurrentSession(c); sess != nil {
		return sess
	}
	return nil
}

func userFromContext(c *gin.Context) *models.UserProfile {
	if user := middleware.CurrentUser(c); user != nil {
		return user
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		user, _ := sess.User(c.Request.Context())
		return user
	}
	return nil
}

func userIDFromContext(c *gin.Context) models.ID {
	if user := userFromContext(c); user != nil {
		return user.ID
	}
	return ""
}
