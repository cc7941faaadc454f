package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/middleware"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/service"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/response"
)

// StudentHandler serves the logged-in student's own pages below /student.
type StudentHandler struct {
	portal    *service.StudentPortalService
	dashboard *service.DashboardService
	render    *Renderer
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(portal *service.StudentPortalService, dashboard *service.DashboardService, render *Renderer) *StudentHandler {
	return &StudentHandler{portal: portal, dashboard: dashboard, render: render}
}

// Register mounts the student routes on g.
func (h *StudentHandler) Register(g gin.IRoutes) {
	g.GET("/student", h.Overview)
	g.GET("/student/grades", h.Grades)
	g.GET("/student/grades/transcript.pdf", h.Transcript)
	g.GET("/student/attendance", h.Attendance)
	g.GET("/student/subjects", h.Subjects)
	g.GET("/student/library", h.Library)
	g.GET("/student/summary", h.Summary)
	g.GET("/student/profile", h.Profile)
	g.POST("/student/profile", h.UpdateProfile)
	g.PATCH("/student/profile", h.UpdateProfile)
}

type studentPage struct {
	Query models.StudentQuery
	View  interface{}
}

func studentQuery(c *gin.Context) models.StudentQuery {
	var q models.StudentQuery
	_ = c.ShouldBindQuery(&q)
	return q
}

// Overview godoc
// @Summary Student landing page
// @Description GPA, attendance rate, enrolled subjects and borrowed books of the logged-in student.
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student [get]
func (h *StudentHandler) Overview(c *gin.Context) {
	overview, err := h.dashboard.StudentOverview(c.Request.Context(), tokensFromContext(c), userIDFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "student_overview.html", "My Dashboard", overview, nil)
}

// Grades godoc
// @Summary Grade records with GPA and letter grades
// @Tags Student
// @Produce json
// @Param date_from query string false "From date"
// @Param date_to query string false "To date"
// @Param subject query string false "Subject"
// @Param semester query string false "Semester"
// @Param academic_year query string false "Academic year"
// @Success 200 {object} response.Envelope
// @Router /student/grades [get]
func (h *StudentHandler) Grades(c *gin.Context) {
	q := studentQuery(c)
	view, err := h.portal.Grades(c.Request.Context(), tokensFromContext(c), userIDFromContext(c), q)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	middleware.SetCacheHit(c, view.Cached)
	h.render.Page(c, http.StatusOK, "student_grades.html", "My Grades", studentPage{Query: q, View: view}, nil)
}

// Transcript godoc
// @Summary Download the grades report as PDF
// @Tags Student
// @Produce application/pdf
// @Success 200 {file} file
// @Router /student/grades/transcript.pdf [get]
func (h *StudentHandler) Transcript(c *gin.Context) {
	user := userFromContext(c)
	if user == nil {
		h.render.Fail(c, appErrors.ErrUnauthenticated)
		return
	}
	file, err := h.portal.Transcript(c.Request.Context(), tokensFromContext(c), user, studentQuery(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// Attendance godoc
// @Summary Attendance records with summary counts and rate
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/attendance [get]
func (h *StudentHandler) Attendance(c *gin.Context) {
	q := studentQuery(c)
	view, err := h.portal.Attendance(c.Request.Context(), tokensFromContext(c), userIDFromContext(c), q)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	middleware.SetCacheHit(c, view.Cached)
	h.render.Page(c, http.StatusOK, "student_attendance.html", "My Attendance", studentPage{Query: q, View: view}, nil)
}

// Subjects godoc
// @Summary Enrolled subjects
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/subjects [get]
func (h *StudentHandler) Subjects(c *gin.Context) {
	q := studentQuery(c)
	subjects, err := h.portal.Subjects(c.Request.Context(), tokensFromContext(c), userIDFromContext(c), q)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "student_subjects.html", "My Subjects", studentPage{Query: q, View: subjects}, nil)
}

// Library godoc
// @Summary Borrowed books and overdue count
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/library [get]
func (h *StudentHandler) Library(c *gin.Context) {
	q := studentQuery(c)
	library, err := h.portal.Library(c.Request.Context(), tokensFromContext(c), userIDFromContext(c), q)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "student_library.html", "My Library", studentPage{Query: q, View: library}, nil)
}

// Summary godoc
// @Summary Academic summary
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/summary [get]
func (h *StudentHandler) Summary(c *gin.Context) {
	q := studentQuery(c)
	summary, err := h.portal.Summary(c.Request.Context(), tokensFromContext(c), userIDFromContext(c), q)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "student_summary.html", "Academic Summary", studentPage{Query: q, View: summary}, nil)
}

// Profile godoc
// @Summary The student record of the logged-in student
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /student/profile [get]
func (h *StudentHandler) Profile(c *gin.Context) {
	profile, err := h.portal.Profile(c.Request.Context(), tokensFromContext(c), userIDFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "student_profile.html", "My Record", profile, nil)
}

var studentEditable = []string{"email", "phone", "address", "guardian_contact", "guardian_email", "extra_activities"}

func profilePatch(c *gin.Context) (map[string]interface{}, error) {
	patch := map[string]interface{}{}
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		if err := c.ShouldBindJSON(&patch); err != nil {
			return nil, err
		}
		return patch, nil
	}
	for _, name := range studentEditable {
		if v, ok := c.GetPostForm(name); ok && strings.TrimSpace(v) != "" {
			patch[name] = strings.TrimSpace(v)
		}
	}
	return patch, nil
}

// UpdateProfile godoc
// @Summary Patch the logged-in student's record
// @Description Photo uploads are not forwarded.
// @Tags Student
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/profile [patch]
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	patch, err := profilePatch(c)
	if err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	student, err := h.portal.UpdateProfile(c.Request.Context(), tokensFromContext(c), userIDFromContext(c), patch)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	flash := models.Flash{Kind: models.FlashSuccess, Message: "Profile updated successfully!", DismissAfterMs: 3000}
	h.render.Done(c, http.StatusOK, student, flash, "/student/profile")
}
