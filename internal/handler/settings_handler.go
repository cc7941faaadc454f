package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/service"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

// SettingsHandler serves the per-user UI settings page.
type SettingsHandler struct {
	service *service.SettingsService
	render  *Renderer
}

// NewSettingsHandler creates a new handler.
func NewSettingsHandler(svc *service.SettingsService, render *Renderer) *SettingsHandler {
	return &SettingsHandler{service: svc, render: render}
}

// Register mounts the settings routes on g.
func (h *SettingsHandler) Register(g gin.IRoutes) {
	g.GET("/settings", h.Show)
	g.POST("/settings", h.Save)
	g.PUT("/settings", h.Save)
	g.POST("/settings/reset", h.Reset)
}

type settingsPage struct {
	Settings models.UISettings
	Fields   []formField
}

// Show godoc
// @Summary Current UI settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Show(c *gin.Context) {
	settings := h.service.Settings(c.Request.Context(), userIDFromContext(c))
	h.render.Page(c, http.StatusOK, "settings.html", "Settings", settingsPage{Settings: settings, Fields: formFields(&settings, nil)}, nil)
}

// Save godoc
// @Summary Store UI settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body models.UISettings true "Settings"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /settings [put]
func (h *SettingsHandler) Save(c *gin.Context) {
	var settings models.UISettings
	if err := c.ShouldBind(&settings); err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid settings payload"))
		return
	}
	saved, err := h.service.SaveSettings(c.Request.Context(), userIDFromContext(c), settings)
	if err != nil {
		h.render.FormError(c, "settings.html", "Settings", settingsPage{Settings: settings, Fields: formFields(&settings, appErrors.FromError(err).Fields)}, err)
		return
	}
	h.render.Done(c, http.StatusOK, saved, models.Flash{Kind: models.FlashSuccess, Message: "Settings saved", DismissAfterMs: 3000}, "/settings")
}

// Reset godoc
// @Summary Restore default UI settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/reset [post]
func (h *SettingsHandler) Reset(c *gin.Context) {
	if err := h.service.ResetSettings(c.Request.Context(), userIDFromContext(c)); err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Done(c, http.StatusOK, models.DefaultUISettings(), models.Flash{Kind: models.FlashSuccess, Message: "Settings reset", DismissAfterMs: 3000}, "/settings")
}
