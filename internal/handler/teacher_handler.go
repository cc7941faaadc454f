package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/service"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/response"
)

// TeacherHandler serves the logged-in teacher's pages below /teacher.
type TeacherHandler struct {
	portal *service.TeacherPortalService
	render *Renderer
}

// NewTeacherHandler creates a new handler.
func NewTeacherHandler(portal *service.TeacherPortalService, render *Renderer) *TeacherHandler {
	return &TeacherHandler{portal: portal, render: render}
}

// Register mounts the teacher routes on g.
func (h *TeacherHandler) Register(g gin.IRoutes) {
	g.GET("/teacher", h.Dashboard)
	g.GET("/teacher/classes", h.Classes)
	g.GET("/teacher/students", h.Students)
	g.GET("/teacher/attendance", h.Attendance)
	g.GET("/teacher/attendance/mark", h.Roster)
	g.POST("/teacher/attendance", h.MarkAttendance)
	g.GET("/teacher/grades", h.Grades)
	g.GET("/teacher/grades/new", h.GradeForm)
	g.POST("/teacher/grades", h.SaveGrade)
	g.GET("/teacher/grades/bulk", h.GradeSheet)
	g.POST("/teacher/grades/bulk", h.SaveGrades)
	g.GET("/teacher/schedule", h.Schedule)
	g.GET("/teacher/profile", h.Profile)
}

// Dashboard godoc
// @Summary Teacher landing page
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher [get]
func (h *TeacherHandler) Dashboard(c *gin.Context) {
	dash, err := h.portal.Dashboard(c.Request.Context(), tokensFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "teacher_dashboard.html", "Teacher Dashboard", dash, nil)
}

// Classes godoc
// @Summary Sections the teacher advises or teaches
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/classes [get]
func (h *TeacherHandler) Classes(c *gin.Context) {
	classes, err := h.portal.Classes(c.Request.Context(), tokensFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "teacher_classes.html", "My Classes", classes, nil)
}

type teacherStudentsPage struct {
	Section  string
	Students []models.TeacherStudent
}

// Students godoc
// @Summary Students taught by the teacher
// @Tags Teacher
// @Produce json
// @Param section query string false "Class section name"
// @Success 200 {object} response.Envelope
// @Router /teacher/students [get]
func (h *TeacherHandler) Students(c *gin.Context) {
	section := strings.TrimSpace(c.Query("section"))
	students, err := h.portal.Students(c.Request.Context(), tokensFromContext(c), section)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, students, nil)
		return
	}
	h.render.Page(c, http.StatusOK, "teacher_students.html", "My Students", teacherStudentsPage{Section: section, Students: students}, nil)
}

type attendanceListPage struct {
	Filter models.AttendanceFilter
	Sheet  *models.AttendanceSheet
}

// Attendance godoc
// @Summary Recorded attendance
// @Tags Teacher
// @Produce json
// @Param date_from query string false "From date"
// @Param date_to query string false "To date"
// @Param subject query string false "Subject"
// @Param section query string false "Section"
// @Param status query string false "present or absent"
// @Success 200 {object} response.Envelope
// @Router /teacher/attendance [get]
func (h *TeacherHandler) Attendance(c *gin.Context) {
	var filter models.AttendanceFilter
	_ = c.ShouldBindQuery(&filter)
	sheet, err := h.portal.Attendance(c.Request.Context(), tokensFromContext(c), filter)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, sheet, nil)
		return
	}
	h.render.Page(c, http.StatusOK, "teacher_attendance.html", "Attendance", attendanceListPage{Filter: filter, Sheet: sheet}, nil)
}

type rosterPage struct {
	Classes        []models.TeacherClass
	Section        *models.TeacherClass
	Subject        string
	Date           string
	IdempotencyKey string
	Entries        []models.AttendanceEntry
	Errors         map[string]string
	Message        string
}

// Roster godoc
// @Summary Attendance sheet for one section with everyone marked present
// @Tags Teacher
// @Produce json
// @Param section query string false "Section ID"
// @Success 200 {object} response.Envelope
// @Router /teacher/attendance/mark [get]
func (h *TeacherHandler) Roster(c *gin.Context) {
	ctx := c.Request.Context()
	tokens := tokensFromContext(c)
	classes, err := h.portal.Classes(ctx, tokens)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	page := rosterPage{Classes: classes, Subject: c.Query("subject"), IdempotencyKey: uuid.NewString()}
	if id := c.Query("section"); id != "" {
		for i := range classes {
			if classes[i].ID.String() == id {
				page.Section = &classes[i]
				break
			}
		}
		if page.Section == nil {
			h.render.Fail(c, appErrors.Clone(appErrors.ErrNotFound, "section not found"))
			return
		}
		entries, err := h.portal.Roster(ctx, tokens, *page.Section)
		if err != nil {
			h.render.Fail(c, err)
			return
		}
		page.Entries = entries
		if len(entries) > 0 {
			page.Date = entries[0].Date
		}
	}
	h.render.Page(c, http.StatusOK, "teacher_mark.html", "Mark Attendance", page, nil)
}

// markRequest reads a JSON body, or the roster form's parallel student/status fields.
func markRequest(c *gin.Context) (service.MarkAttendanceRequest, error) {
	var req service.MarkAttendanceRequest
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		err := c.ShouldBindJSON(&req)
		if req.IdempotencyKey == "" {
			req.IdempotencyKey = c.GetHeader(IdempotencyHeader)
		}
		return req, err
	}
	if err := c.ShouldBind(&req); err != nil {
		return req, err
	}
	students := c.PostFormArray("student")
	statuses := c.PostFormArray("status")
	names := c.PostFormArray("student_name")
	for i, id := range students {
		entry := models.AttendanceEntry{Student: models.ID(id)}
		if i < len(statuses) {
			entry.Status = statuses[i]
		}
		if i < len(names) {
			entry.StudentName = names[i]
		}
		req.Entries = append(req.Entries, entry)
	}
	return req, nil
}

// MarkAttendance godoc
// @Summary Submit a bulk attendance sheet
// @Description Every entry is validated before anything is sent. Repeating an idempotency key returns the first result.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Submission key"
// @Param payload body service.MarkAttendanceRequest true "Attendance sheet"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teacher/attendance [post]
func (h *TeacherHandler) MarkAttendance(c *gin.Context) {
	req, err := markRequest(c)
	if err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}
	result, replayed, err := h.portal.MarkAttendance(c.Request.Context(), tokensFromContext(c), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		h.render.FormError(c, "teacher_mark.html", "Mark Attendance", rosterPage{
			Date:           req.Date,
			Subject:        req.Subject.String(),
			IdempotencyKey: req.IdempotencyKey,
			Entries:        req.Entries,
			Errors:         appErr.Fields,
			Message:        appErr.Message,
		}, err)
		return
	}
	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	flash := models.Flash{Kind: models.FlashSuccess, Message: "Attendance saved", DismissAfterMs: 3000}
	if result.Errors > 0 {
		flash = models.Flash{Kind: models.FlashError, Message: "Some attendance records could not be saved", DismissAfterMs: 5000}
	}
	h.render.Done(c, status, result, flash, "/teacher/attendance")
}

type gradeListPage struct {
	Filter models.GradeFilter
	Book   *models.GradeBook
	Types  []models.GradeTypeOption
	Query  string
}

// NewURL opens the grade form with the current filters as defaults.
func (p gradeListPage) NewURL() string { return withQuery("/teacher/grades/new", p.Query) }

// EditURL opens the grade form for id, returning to the current filters.
func (p gradeListPage) EditURL(id models.ID) string {
	return withQuery("/teacher/grades/new?id="+url.QueryEscape(id.String()), p.Query)
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + query
	}
	return path + "?" + query
}

// Grades godoc
// @Summary Grades the teacher entered
// @Tags Teacher
// @Produce json
// @Param semester query string false "Semester"
// @Param subject query string false "Subject"
// @Param section query string false "Section"
// @Param grade_type query string false "assignment, quiz, midterm, final or project"
// @Param student query string false "Student"
// @Success 200 {object} response.Envelope
// @Router /teacher/grades [get]
func (h *TeacherHandler) Grades(c *gin.Context) {
	var filter models.GradeFilter
	_ = c.ShouldBindQuery(&filter)
	book, err := h.portal.Grades(c.Request.Context(), tokensFromContext(c), filter)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, book, nil)
		return
	}
	h.render.Page(c, http.StatusOK, "teacher_grades.html", "Grades", gradeListPage{
		Filter: filter,
		Book:   book,
		Types:  models.GradeTypes,
		Query:  c.Request.URL.RawQuery,
	}, nil)
}

type gradeFormPage struct {
	Grade          models.TeacherGrade
	Types          []models.GradeTypeOption
	Query          string
	IdempotencyKey string
	Errors         map[string]string
	Message        string
}

// Action is the form target, carrying the list filters.
func (p gradeFormPage) Action() string { return withQuery("/teacher/grades", p.Query) }

// GradeForm godoc
// @Summary Form for a new grade, or for the grade with the given id
// @Tags Teacher
// @Produce json
// @Param id query string false "Grade ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teacher/grades/new [get]
func (h *TeacherHandler) GradeForm(c *gin.Context) {
	page := gradeFormPage{Types: models.GradeTypes, IdempotencyKey: uuid.NewString()}
	var filter models.GradeFilter
	_ = c.ShouldBindQuery(&filter)
	query := c.Request.URL.Query()
	query.Del("id")
	page.Query = query.Encode()
	page.Grade = models.TeacherGrade{Subject: models.ID(filter.Subject), Section: models.ID(filter.Section), Semester: models.ID(filter.Semester), GradeType: filter.GradeType, Student: models.ID(filter.Student)}
	if id := c.Query("id"); id != "" {
		book, err := h.portal.Grades(c.Request.Context(), tokensFromContext(c), filter)
		if err != nil {
			h.render.Fail(c, err)
			return
		}
		found := false
		for _, grade := range book.Grades {
			if grade.ID.String() == id {
				page.Grade, found = grade, true
				break
			}
		}
		if !found {
			h.render.Fail(c, appErrors.Clone(appErrors.ErrNotFound, "grade not found"))
			return
		}
	}
	h.render.Page(c, http.StatusOK, "teacher_grade_form.html", "Grade", page, nil)
}

// SaveGrade godoc
// @Summary Add a grade, or replace the grade whose id is in the body
// @Description The grade list matching the query filters is returned with the saved grade. Repeating an idempotency key returns the first result.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Submission key"
// @Param payload body models.TeacherGrade true "Grade"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teacher/grades [post]
func (h *TeacherHandler) SaveGrade(c *gin.Context) {
	var req service.SaveGradeRequest
	if err := c.ShouldBind(&req.Grade); err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade payload"))
		return
	}
	_ = c.ShouldBindQuery(&req.Filter)
	req.IdempotencyKey = idempotencyKey(c)
	mutation, replayed, err := h.portal.SaveGrade(c.Request.Context(), tokensFromContext(c), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		h.render.FormError(c, "teacher_grade_form.html", "Grade", gradeFormPage{
			Grade:          req.Grade,
			Types:          models.GradeTypes,
			Query:          c.Request.URL.RawQuery,
			IdempotencyKey: req.IdempotencyKey,
			Errors:         appErr.Fields,
			Message:        appErr.Message,
		}, err)
		return
	}
	status, message := http.StatusCreated, "Grade added"
	if req.Grade.ID != "" {
		status, message = http.StatusOK, "Grade updated"
	}
	if replayed {
		status = http.StatusOK
	}
	h.render.Done(c, status, mutation, models.Flash{Kind: models.FlashSuccess, Message: message, DismissAfterMs: 3000},
		withQuery("/teacher/grades", c.Request.URL.RawQuery))
}

type gradeSheetPage struct {
	Classes        []models.TeacherClass
	Section        *models.TeacherClass
	Types          []models.GradeTypeOption
	Request        service.BulkGradeRequest
	IdempotencyKey string
	Errors         map[string]string
	Message        string
}

// GradeSheet godoc
// @Summary One assessment for every student of a section
// @Tags Teacher
// @Produce json
// @Param section query string false "Section ID"
// @Success 200 {object} response.Envelope
// @Router /teacher/grades/bulk [get]
func (h *TeacherHandler) GradeSheet(c *gin.Context) {
	ctx := c.Request.Context()
	tokens := tokensFromContext(c)
	classes, err := h.portal.Classes(ctx, tokens)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	page := gradeSheetPage{Classes: classes, Types: models.GradeTypes, IdempotencyKey: uuid.NewString()}
	if id := c.Query("section"); id != "" {
		for i := range classes {
			if classes[i].ID.String() == id {
				page.Section = &classes[i]
				break
			}
		}
		if page.Section == nil {
			h.render.Fail(c, appErrors.Clone(appErrors.ErrNotFound, "section not found"))
			return
		}
		students, err := h.portal.Students(ctx, tokens, page.Section.Name)
		if err != nil {
			h.render.Fail(c, err)
			return
		}
		page.Request = service.BulkGradeRequest{Section: page.Section.ID, Subject: models.ID(c.Query("subject"))}
		for _, st := range students {
			page.Request.Grades = append(page.Request.Grades, models.TeacherGrade{Student: st.StudentID, StudentName: st.StudentName})
		}
	}
	h.render.Page(c, http.StatusOK, "teacher_grade_sheet.html", "Record Grades", page, nil)
}

// bulkGradeRequest reads a JSON body, or the grade sheet's parallel student/score fields.
func bulkGradeRequest(c *gin.Context) (service.BulkGradeRequest, error) {
	var req service.BulkGradeRequest
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		err := c.ShouldBindJSON(&req)
		if req.IdempotencyKey == "" {
			req.IdempotencyKey = c.GetHeader(IdempotencyHeader)
		}
		return req, err
	}
	if err := c.ShouldBind(&req); err != nil {
		return req, err
	}
	students := c.PostFormArray("student")
	scores := c.PostFormArray("score")
	names := c.PostFormArray("student_name")
	for i, id := range students {
		grade := models.TeacherGrade{Student: models.ID(id)}
		if i < len(scores) {
			if err := grade.Score.UnmarshalParam(scores[i]); err != nil {
				return req, err
			}
		}
		if i < len(names) {
			grade.StudentName = names[i]
		}
		req.Grades = append(req.Grades, grade)
	}
	return req, nil
}

// SaveGrades godoc
// @Summary Record one assessment for many students
// @Description Every grade is validated before anything is sent. Repeating an idempotency key returns the first result.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Submission key"
// @Param payload body service.BulkGradeRequest true "Grades"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teacher/grades/bulk [post]
func (h *TeacherHandler) SaveGrades(c *gin.Context) {
	req, err := bulkGradeRequest(c)
	if err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grades payload"))
		return
	}
	result, replayed, err := h.portal.SaveGrades(c.Request.Context(), tokensFromContext(c), req)
	if err != nil {
		appErr := appErrors.FromError(err)
		h.render.FormError(c, "teacher_grade_sheet.html", "Record Grades", gradeSheetPage{
			Types:          models.GradeTypes,
			Request:        req,
			IdempotencyKey: req.IdempotencyKey,
			Errors:         appErr.Fields,
			Message:        appErr.Message,
		}, err)
		return
	}
	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	flash := models.Flash{Kind: models.FlashSuccess, Message: "Grades saved", DismissAfterMs: 3000}
	if result.Errors > 0 {
		flash = models.Flash{Kind: models.FlashError, Message: "Some grades could not be saved", DismissAfterMs: 5000}
	}
	h.render.Done(c, status, result, flash, withQuery("/teacher/grades", url.Values{"section": {req.Section.String()}}.Encode()))
}

// Schedule godoc
// @Summary Weekly timetable from Monday to Sunday
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/schedule [get]
func (h *TeacherHandler) Schedule(c *gin.Context) {
	days, err := h.portal.Schedule(c.Request.Context(), tokensFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "teacher_schedule.html", "My Schedule", days, nil)
}

// Profile godoc
// @Summary Teacher record of the logged-in user
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teacher/profile [get]
func (h *TeacherHandler) Profile(c *gin.Context) {
	profile, err := h.portal.Profile(c.Request.Context(), tokensFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Page(c, http.StatusOK, "teacher_profile.html", "Teacher Profile", profile, nil)
}
