package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/middleware"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/service"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/response"
)

// AuthHandler serves login, logout, the session info endpoint and the profile page.
type AuthHandler struct {
	service  *service.AuthService
	settings *service.SettingsService
	render   *Renderer
	home     string
}

// NewAuthHandler creates a new handler. Successful logins land on home.
func NewAuthHandler(svc *service.AuthService, settings *service.SettingsService, render *Renderer, home string) *AuthHandler {
	if home == "" {
		home = "/dashboard"
	}
	return &AuthHandler{service: svc, settings: settings, render: render, home: home}
}

type loginPage struct {
	Email string
	Error string
}

// LoginPage renders the login form, or sends an authenticated browser to its dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if sess := sessionFromContext(c); sess != nil {
		if ok, _ := sess.IsAuthenticated(c.Request.Context()); ok {
			c.Redirect(http.StatusFound, h.home)
			return
		}
	}
	c.HTML(http.StatusOK, "login.html", h.render.view(c, "Login", loginPage{}))
}

// Login godoc
// @Summary Log in against the school backend
// @Description Stores the tokens and profile in the portal session.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c, req, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	user, sess, err := h.service.Login(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		h.loginFailed(c, req, err)
		return
	}
	middleware.ReplaceSession(c, sess)
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, user, nil)
		return
	}
	c.Redirect(http.StatusSeeOther, h.home)
}

func (h *AuthHandler) loginFailed(c *gin.Context, req models.LoginRequest, err error) {
	if wantsJSON(c) {
		response.Error(c, err)
		return
	}
	appErr := appErrors.FromError(err)
	c.HTML(appErr.Status, "login.html", h.render.view(c, "Login", loginPage{Email: req.Email, Error: appErr.Message}))
}

// Logout godoc
// @Summary Clear the portal session
// @Tags Authentication
// @Produce json
// @Success 204
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), sessionFromContext(c)); err != nil {
		h.render.Fail(c, err)
		return
	}
	if wantsJSON(c) {
		response.NoContent(c)
		return
	}
	c.Redirect(http.StatusFound, h.render.loginPath)
}

// Session godoc
// @Summary Describe the current session
// @Description Reports whether an access token is present, the cached profile and the token expiry.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	info, err := h.service.SessionInfo(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

type profilePage struct {
	User    *models.UserProfile
	Draft   *models.ProfileUpdate
	Fields  []formField
	Message string
}

func (h *AuthHandler) profilePage(c *gin.Context, user *models.UserProfile, update *models.ProfileUpdate, errs map[string]string) profilePage {
	page := profilePage{User: user}
	if update == nil && h.settings != nil && user != nil {
		if draft, err := h.settings.ProfileDraft(c.Request.Context(), user.ID); err == nil && draft != nil {
			page.Draft = draft
			update = draft
		}
	}
	if update == nil && user != nil {
		update = &models.ProfileUpdate{FirstName: user.FirstName, LastName: user.LastName, Email: user.Email, Phone: user.Phone}
	}
	page.Fields = formFields(update, errs)
	return page
}

// Profile godoc
// @Summary Show the logged-in user's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.service.Profile(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, user, nil)
		return
	}
	h.render.Page(c, http.StatusOK, "profile.html", "My Profile", h.profilePage(c, user, nil, nil), nil)
}

// UpdateProfile godoc
// @Summary Update the logged-in user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body models.ProfileUpdate true "Profile fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /profile [post]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBind(&update); err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	ctx := c.Request.Context()
	user, err := h.service.UpdateProfile(ctx, sessionFromContext(c), update)
	if err != nil {
		page := h.profilePage(c, userFromContext(c), &update, appErrors.FromError(err).Fields)
		page.Message = appErrors.FromError(err).Message
		h.render.FormError(c, "profile.html", "My Profile", page, err)
		return
	}
	if h.settings != nil {
		_ = h.settings.DiscardProfileDraft(ctx, user.ID)
	}
	flash := models.Flash{Kind: models.FlashSuccess, Message: "Profile updated successfully!", DismissAfterMs: 3000}
	h.render.Done(c, http.StatusOK, user, flash, "/profile")
}

// SaveProfileDraft godoc
// @Summary Keep an unfinished profile edit for later
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body models.ProfileUpdate true "Profile fields"
// @Success 200 {object} response.Envelope
// @Router /profile/draft [post]
func (h *AuthHandler) SaveProfileDraft(c *gin.Context) {
	var draft models.ProfileUpdate
	if err := c.ShouldBind(&draft); err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	if err := h.settings.SaveProfileDraft(c.Request.Context(), userIDFromContext(c), draft); err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Done(c, http.StatusOK, draft, models.Flash{Kind: models.FlashSuccess, Message: "Draft saved", DismissAfterMs: 3000}, "/profile")
}
