package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/service"
)

// StaffHandler is the employee CRUD page with an extra status toggle per row.
type StaffHandler struct {
	*CRUDHandler[models.Employee]
	staff *service.StaffService
}

// NewStaffHandler mounts the staff pages at base.
func NewStaffHandler(svc *service.StaffService, render *Renderer, base string) *StaffHandler {
	crud := NewCRUDHandler(svc.CRUDService, render, base, "Staff Management").
		WithStats(func(all []models.Employee) interface{} { return models.ComputeEmployeeStats(all) }).
		WithRowAction("Toggle status", "toggle")
	return &StaffHandler{CRUDHandler: crud, staff: svc}
}

// Register mounts the CRUD routes plus the toggle.
func (h *StaffHandler) Register(g gin.IRoutes) {
	h.CRUDHandler.Register(g)
	g.POST(h.Base+"/:id/toggle", h.Toggle)
}

// Toggle godoc
// @Summary Flip an employee between active and inactive
// @Tags Management
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Router /director/staff/{id}/toggle [post]
func (h *StaffHandler) Toggle(c *gin.Context) {
	result, err := h.staff.ToggleStatus(c.Request.Context(), tokensFromContext(c), c.Param("id"))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Done(c, http.StatusOK, result, result.Flash, h.Base)
}
