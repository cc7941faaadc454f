package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type dashboardBuilder interface {
	Build(ctx context.Context, tokens apiclient.TokenSource, user *models.UserProfile) (*models.Dashboard, error)
}

// DashboardHandler serves the role landing page.
type DashboardHandler struct {
	service dashboardBuilder
	render  *Renderer
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardBuilder, render *Renderer) *DashboardHandler {
	return &DashboardHandler{service: service, render: render}
}

// Show godoc
// @Summary Role landing dashboard
// @Description Office roles get live totals, students their overview and teachers their schedule.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Show(c *gin.Context) {
	if h.service == nil {
		h.render.Fail(c, appErrors.ErrInternal)
		return
	}
	dash, err := h.service.Build(c.Request.Context(), tokensFromContext(c), userFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "dashboard.html", dash.Config.Title, dash, nil)
}
