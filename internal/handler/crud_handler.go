package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-portal/internal/listing"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/service"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/export"
	"github.com/noah-isme/eschool-portal/pkg/response"
)

// IdempotencyHeader carries the form's idempotency key on JSON submits.
const IdempotencyHeader = "Idempotency-Key"

// listPage is the data of list.html.
type listPage struct {
	Entity     string
	Base       string
	Table      export.Dataset
	IDs        []string
	Pagination models.Pagination
	Options    map[string][]string
	Search     string
	Selected   map[string]string
	Sort       string
	Desc       bool
	Total      int
	Matched    int
	Stats      []statTile
	Extra      []rowAction
}

// rowAction is an additional per-row POST button (e.g. toggling a status).
type rowAction struct {
	Label  string
	Suffix string
}

// formPage is the data of form.html.
type formPage struct {
	Entity         string
	Base           string
	Mode           service.FormMode
	ID             string
	ReadOnly       bool
	IdempotencyKey string
	Fields         []formField
	Errors         map[string]string
	Message        string
}

// CRUDHandler serves the list, form, submit, delete, import and export routes of one managed
// collection below Base.
type CRUDHandler[T any] struct {
	svc     *service.CRUDService[T]
	render  *Renderer
	Base    string
	Title   string
	stats   func([]T) interface{}
	actions []rowAction
}

// NewCRUDHandler constructs a CRUD handler mounted at base.
func NewCRUDHandler[T any](svc *service.CRUDService[T], render *Renderer, base, title string) *CRUDHandler[T] {
	return &CRUDHandler[T]{svc: svc, render: render, Base: strings.TrimRight(base, "/"), Title: title}
}

// WithStats adds counters computed over the full list.
func (h *CRUDHandler[T]) WithStats(fn func([]T) interface{}) *CRUDHandler[T] {
	h.stats = fn
	return h
}

// WithRowAction adds a POST button posting to Base/<id>/<suffix>.
func (h *CRUDHandler[T]) WithRowAction(label, suffix string) *CRUDHandler[T] {
	h.actions = append(h.actions, rowAction{Label: label, Suffix: suffix})
	return h
}

// Register mounts the routes on g.
func (h *CRUDHandler[T]) Register(g gin.IRoutes) {
	g.GET(h.Base, h.List)
	g.GET(h.Base+"/new", h.New)
	g.GET(h.Base+"/export", h.Export)
	g.GET(h.Base+"/download", h.Download)
	g.POST(h.Base, h.Create)
	g.POST(h.Base+"/import", h.Import)
	g.GET(h.Base+"/:id", h.View)
	g.GET(h.Base+"/:id/edit", h.Edit)
	g.POST(h.Base+"/:id", h.Update)
	g.PUT(h.Base+"/:id", h.Update)
	g.POST(h.Base+"/:id/delete", h.Delete)
	g.DELETE(h.Base+"/:id", h.Delete)
}

func (h *CRUDHandler[T]) listQuery(c *gin.Context) service.ListQuery {
	q := service.ListQuery{
		Criteria: listing.Criteria{Search: strings.TrimSpace(c.Query("search")), Selected: map[string]string{}},
		Sort:     c.Query("sort"),
		Desc:     c.Query("order") == "desc",
	}
	for name := range h.svc.Entity().Listing.Dropdowns {
		if v := c.Query(name); v != "" {
			q.Criteria.Selected[name] = v
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		q.Page = page
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil {
		q.PageSize = size
	}
	return q
}

// List godoc
// @Summary List a managed collection with search, dropdown filters, sort and paging
// @Tags Management
// @Produce json
// @Param search query string false "Free-text search"
// @Param page query int false "Page"
// @Param page_size query int false "Rows per page"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /record/students [get]
func (h *CRUDHandler[T]) List(c *gin.Context) {
	q := h.listQuery(c)
	if q.PageSize == 0 && h.render.settings != nil {
		if user := userFromContext(c); user != nil {
			q.PageSize = h.render.settings.Settings(c.Request.Context(), user.ID).RowsPerPage
		}
	}
	result, err := h.svc.List(c.Request.Context(), tokensFromContext(c), q)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	var stats interface{}
	if h.stats != nil {
		stats = h.stats(result.All)
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, gin.H{
			"items":   result.Items,
			"options": result.Options,
			"total":   result.Total,
			"matched": result.Matched,
			"stats":   stats,
		}, &result.Pagination)
		return
	}

	entity := h.svc.Entity()
	ids := make([]string, len(result.Items))
	for i := range result.Items {
		ids[i] = entity.ID(&result.Items[i])
	}
	h.render.Page(c, http.StatusOK, "list.html", h.Title, listPage{
		Entity:     entity.Name,
		Base:       h.Base,
		Table:      export.Table(entity.Columns, result.Items),
		IDs:        ids,
		Pagination: result.Pagination,
		Options:    result.Options,
		Search:     q.Criteria.Search,
		Selected:   q.Criteria.Selected,
		Sort:       q.Sort,
		Desc:       q.Desc,
		Total:      result.Total,
		Matched:    result.Matched,
		Stats:      statTiles(stats),
		Extra:      h.actions,
	}, &result.Pagination)
}

func (h *CRUDHandler[T]) formPage(form *service.Form[T], id string) formPage {
	return formPage{
		Entity:         h.svc.Entity().Name,
		Base:           h.Base,
		Mode:           form.Mode,
		ID:             id,
		ReadOnly:       form.ReadOnly,
		IdempotencyKey: form.IdempotencyKey,
		Fields:         formFields(form.Record, form.Errors),
		Errors:         form.Errors,
	}
}

func (h *CRUDHandler[T]) open(c *gin.Context, mode service.FormMode) {
	id := c.Param("id")
	form, err := h.svc.Open(c.Request.Context(), tokensFromContext(c), mode, id)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, form, nil)
		return
	}
	h.render.Page(c, http.StatusOK, "form.html", h.Title, h.formPage(form, id), nil)
}

// New godoc
// @Summary Open a blank add form
// @Tags Management
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /record/students/new [get]
func (h *CRUDHandler[T]) New(c *gin.Context) { h.open(c, service.FormAdd) }

// View godoc
// @Summary Open a record read-only
// @Tags Management
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /record/students/{id} [get]
func (h *CRUDHandler[T]) View(c *gin.Context) { h.open(c, service.FormView) }

// Edit godoc
// @Summary Open a record for editing
// @Tags Management
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /record/students/{id}/edit [get]
func (h *CRUDHandler[T]) Edit(c *gin.Context) { h.open(c, service.FormEdit) }

func idempotencyKey(c *gin.Context) string {
	if key := c.GetHeader(IdempotencyHeader); key != "" {
		return key
	}
	return c.PostForm("idempotency_key")
}

func (h *CRUDHandler[T]) submit(c *gin.Context, mode service.FormMode) {
	id := c.Param("id")
	record := h.svc.Entity().New()
	if mode == service.FormEdit {
		record = new(T)
	}
	if err := c.ShouldBind(record); err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	key := idempotencyKey(c)
	result, err := h.svc.Submit(c.Request.Context(), tokensFromContext(c), mode, id, key, record)
	if err != nil {
		form := &service.Form[T]{Mode: mode, Record: record, IdempotencyKey: key, Errors: appErrors.FromError(err).Fields}
		page := h.formPage(form, id)
		page.Message = appErrors.FromError(err).Message
		h.render.FormError(c, "form.html", h.Title, page, err)
		return
	}
	status := http.StatusOK
	if mode == service.FormAdd {
		status = http.StatusCreated
	}
	h.render.Done(c, status, result, result.Flash, h.Base)
}

// Create godoc
// @Summary Submit the add form
// @Description Required fields are checked locally; field errors return 400 without a backend call.
// @Tags Management
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Form idempotency key"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /record/students [post]
func (h *CRUDHandler[T]) Create(c *gin.Context) { h.submit(c, service.FormAdd) }

// Update godoc
// @Summary Submit the edit form
// @Tags Management
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /record/students/{id} [put]
func (h *CRUDHandler[T]) Update(c *gin.Context) { h.submit(c, service.FormEdit) }

// Delete godoc
// @Summary Delete a record after confirmation
// @Tags Management
// @Produce json
// @Param id path string true "Record ID"
// @Param confirmed query bool true "Explicit confirmation"
// @Success 200 {object} response.Envelope
// @Failure 428 {object} response.Envelope
// @Router /record/students/{id} [delete]
func (h *CRUDHandler[T]) Delete(c *gin.Context) {
	confirmed := c.Query("confirmed") == "true" || c.PostForm("confirmed") == "true"
	result, err := h.svc.Delete(c.Request.Context(), tokensFromContext(c), c.Param("id"), confirmed)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Done(c, http.StatusOK, result, result.Flash, h.Base)
}

// Import godoc
// @Summary Import records from a CSV file
// @Tags Management
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} response.Envelope
// @Router /record/students/import [post]
func (h *CRUDHandler[T]) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.render.Fail(c, appErrors.Clone(appErrors.ErrValidation, "Please select a CSV file"))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.render.Fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload"))
		return
	}
	defer file.Close()

	result, err := h.svc.Import(c.Request.Context(), tokensFromContext(c), header.Filename, file)
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	h.render.Done(c, http.StatusOK, result, result.Flash, h.Base)
}

// Export godoc
// @Summary Download the backend CSV export
// @Tags Management
// @Produce text/csv
// @Success 200 {file} file
// @Router /record/students/export [get]
func (h *CRUDHandler[T]) Export(c *gin.Context) {
	file, err := h.svc.Export(c.Request.Context(), tokensFromContext(c))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// Download godoc
// @Summary Download the filtered list as CSV or XLSX
// @Tags Management
// @Produce octet-stream
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Router /record/students/download [get]
func (h *CRUDHandler[T]) Download(c *gin.Context) {
	file, err := h.svc.ExportView(c.Request.Context(), tokensFromContext(c), h.listQuery(c), c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		h.render.Fail(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
