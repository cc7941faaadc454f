package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/listing"
	"github.com/noah-isme/eschool-portal/internal/middleware"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/service"
	"github.com/noah-isme/eschool-portal/pkg/response"
)

// ActivityHandler serves the discipline, training and infrastructure pages.
type ActivityHandler struct {
	service *service.ActivityService
	render  *Renderer
}

// NewActivityHandler creates a new handler.
func NewActivityHandler(svc *service.ActivityService, render *Renderer) *ActivityHandler {
	return &ActivityHandler{service: svc, render: render}
}

// Register mounts the activity routes on g.
func (h *ActivityHandler) Register(g gin.IRoutes) {
	g.GET("/vice/discipline", h.Discipline)
	g.GET("/zone/training", h.CapacityBuilding)
	g.GET("/zone/schools/infrastructure", h.Infrastructure)
}

func criteriaFrom(c *gin.Context, dropdowns ...string) listing.Criteria {
	criteria := listing.Criteria{Search: strings.TrimSpace(c.Query("search")), Selected: map[string]string{}}
	for _, name := range dropdowns {
		if v := c.Query(name); v != "" {
			criteria.Selected[name] = v
		}
	}
	return criteria
}

// Discipline godoc
// @Summary Discipline report with per-class incidents
// @Tags Activities
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /vice/discipline [get]
func (h *ActivityHandler) Discipline(c *gin.Context) {
	page, err := h.service.Discipline(c.Request.Context(), tokensFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	middleware.SetDataSource(c, page.Source)
	h.render.Page(c, http.StatusOK, "discipline.html", "Discipline Management", page, nil)
}

type trainingPage struct {
	*models.ActivityPage[models.CapacityBuildingReport]
	Criteria listing.Criteria
}

// CapacityBuilding godoc
// @Summary Capacity building trainings
// @Tags Activities
// @Produce json
// @Param search query string false "Title, category or facilitator"
// @Param status query string false "Training status"
// @Param category query string false "Training category"
// @Success 200 {object} response.Envelope
// @Router /zone/training [get]
func (h *ActivityHandler) CapacityBuilding(c *gin.Context) {
	criteria := criteriaFrom(c, "status", "category")
	page, err := h.service.CapacityBuilding(c.Request.Context(), tokensFromContext(c), criteria)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	middleware.SetDataSource(c, page.Source)
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, page, nil, middleware.ExtractMeta(c))
		return
	}
	h.render.Page(c, http.StatusOK, "training.html", "Capacity Building", trainingPage{ActivityPage: page, Criteria: criteria}, nil)
}

type infrastructurePage struct {
	*models.ActivityPage[models.InfrastructureReport]
	Query service.InfrastructureQuery
}

// Infrastructure godoc
// @Summary School infrastructure snapshot of the zone
// @Tags Activities
// @Produce json
// @Param wereda query string false "Wereda ID"
// @Param search query string false "School name"
// @Param status query string false "Facility status"
// @Param sort query string false "name, students, classrooms, labs or status"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /zone/schools/infrastructure [get]
func (h *ActivityHandler) Infrastructure(c *gin.Context) {
	q := service.InfrastructureQuery{
		Wereda:   models.ID(c.Query("wereda")),
		Criteria: criteriaFrom(c, "status"),
		Sort:     c.Query("sort"),
		Desc:     c.Query("order") == "desc",
	}
	page, err := h.service.Infrastructure(c.Request.Context(), tokensFromContext(c), q)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	middleware.SetDataSource(c, page.Source)
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, page, nil, middleware.ExtractMeta(c))
		return
	}
	h.render.Page(c, http.StatusOK, "infrastructure.html", "School Infrastructure", infrastructurePage{ActivityPage: page, Query: q}, nil)
}
