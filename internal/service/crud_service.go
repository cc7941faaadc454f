package service

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/eschool-portal/internal/listing"
	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
	"github.com/noah-isme/eschool-portal/pkg/export"
)

// ResourceRepository is the backend collection a CRUD page manages.
type ResourceRepository[T any] interface {
	List(ctx context.Context, tokens apiclient.TokenSource, query url.Values) ([]T, error)
	Get(ctx context.Context, tokens apiclient.TokenSource, id string) (*T, error)
	Create(ctx context.Context, tokens apiclient.TokenSource, item *T) (*T, error)
	Update(ctx context.Context, tokens apiclient.TokenSource, id string, item *T) (*T, error)
	Delete(ctx context.Context, tokens apiclient.TokenSource, id string) error
	ImportCSV(ctx context.Context, tokens apiclient.TokenSource, filename string, content io.Reader) (string, error)
	ExportCSV(ctx context.Context, tokens apiclient.TokenSource) ([]byte, error)
}

// FormMode is the mode a record form is opened in.
type FormMode string

const (
	FormAdd  FormMode = "add"
	FormEdit FormMode = "edit"
	FormView FormMode = "view"
)

// Valid reports whether m is a known mode.
func (m FormMode) Valid() bool {
	return m == FormAdd || m == FormEdit || m == FormView
}

// Entity describes one managed collection.
type Entity[T any] struct {
	Name           string
	ExportFilename string
	New            func() *T
	ID             func(*T) string
	// Normalize runs on every record read from the backend. Optional.
	Normalize func(*T)
	// CreatedMessage overrides the add success banner, e.g. to show generated credentials.
	CreatedMessage func(stored *T) string
	// Credentials extracts server-generated login details from a stored record. Optional.
	Credentials func(stored *T) *models.Credentials
	Listing     listing.Spec[T]
	Columns     []export.Column[T]
}

// Form is the state of an opened record form.
type Form[T any] struct {
	Mode           FormMode          `json:"mode"`
	Record         *T                `json:"record"`
	ReadOnly       bool              `json:"read_only"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	Errors         map[string]string `json:"errors,omitempty"`
}

// ListQuery is the filter, sort and page state of a list page.
type ListQuery struct {
	Criteria listing.Criteria
	Page     int
	PageSize int
	Sort     string
	Desc     bool
}

// ListResult is one rendered page of a list.
type ListResult[T any] struct {
	Items      []T                 `json:"items"`
	Pagination models.Pagination   `json:"pagination"`
	Options    map[string][]string `json:"options"`
	Total      int                 `json:"total"`
	Matched    int                 `json:"matched"`
	All        []T                 `json:"-"`
}

// MutationResult is returned by every successful write. Items is the list re-fetched after the write.
type MutationResult[T any] struct {
	Record      *T                  `json:"record,omitempty"`
	Items       []T                 `json:"items"`
	Flash       models.Flash        `json:"flash"`
	Credentials *models.Credentials `json:"credentials,omitempty"`
}

// CRUDOptions tunes a CRUDService.
type CRUDOptions struct {
	Validator      *validator.Validate
	Logger         *zap.Logger
	FlashTTL       time.Duration
	PageSize       int
	IdempotencyTTL time.Duration
}

// CRUDService implements the list, form, submit, delete, import and export flow of a
// management page over one backend collection.
type CRUDService[T any] struct {
	repo      ResourceRepository[T]
	entity    Entity[T]
	validator *validator.Validate
	logger    *zap.Logger
	flashTTL  time.Duration
	pageSize  int
	guard     *submitGuard
	csv       *export.CSVExporter
	xlsx      *export.XLSXExporter
}

// NewCRUDService constructs a CRUD service.
func NewCRUDService[T any](repo ResourceRepository[T], entity Entity[T], opts CRUDOptions) *CRUDService[T] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Validator == nil {
		opts.Validator = NewValidator()
	}
	if opts.FlashTTL <= 0 {
		opts.FlashTTL = 3 * time.Second
	}
	if opts.PageSize <= 0 {
		opts.PageSize = listing.DefaultPageSize
	}
	return &CRUDService[T]{
		repo:      repo,
		entity:    entity,
		validator: opts.Validator,
		logger:    opts.Logger.With(zap.String("entity", entity.Name)),
		flashTTL:  opts.FlashTTL,
		pageSize:  opts.PageSize,
		guard:     newSubmitGuard(opts.IdempotencyTTL),
		csv:       export.NewCSVExporter(),
		xlsx:      export.NewXLSXExporter(),
	}
}

// Entity returns the entity description.
func (s *CRUDService[T]) Entity() Entity[T] { return s.entity }

func (s *CRUDService[T]) fetchAll(ctx context.Context, tokens apiclient.TokenSource) ([]T, error) {
	items, err := s.repo.List(ctx, tokens, nil)
	if err != nil {
		return nil, err
	}
	if s.entity.Normalize != nil {
		for i := range items {
			s.entity.Normalize(&items[i])
		}
	}
	return items, nil
}

// List fetches the collection and applies the filter, sort and page of q.
func (s *CRUDService[T]) List(ctx context.Context, tokens apiclient.TokenSource, q ListQuery) (*ListResult[T], error) {
	all, err := s.fetchAll(ctx, tokens)
	if err != nil {
		s.logger.Warn("failed to load list", zap.Error(err))
		return nil, err
	}
	return s.view(all, q), nil
}

func (s *CRUDService[T]) view(all []T, q ListQuery) *ListResult[T] {
	spec := s.entity.Listing
	matched := spec.Apply(all, q.Criteria)
	if q.Sort != "" {
		spec.SortBy(matched, q.Sort, q.Desc)
	}
	size := q.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	page, pagination := listing.Paginate(matched, q.Page, size)
	options := make(map[string][]string, len(spec.Dropdowns))
	for name := range spec.Dropdowns {
		options[name] = spec.Options(all, name)
	}
	return &ListResult[T]{
		Items:      page,
		Pagination: pagination,
		Options:    options,
		Total:      len(all),
		Matched:    len(matched),
		All:        all,
	}
}

// Open seeds a form. Add starts from a blank record; edit and view start from a copy of the
// stored record.
func (s *CRUDService[T]) Open(ctx context.Context, tokens apiclient.TokenSource, mode FormMode, id string) (*Form[T], error) {
	form := &Form[T]{Mode: mode, ReadOnly: mode == FormView}
	switch mode {
	case FormAdd:
		form.Record = s.entity.New()
	case FormEdit, FormView:
		if id == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "record id is required")
		}
		record, err := s.repo.Get(ctx, tokens, id)
		if err != nil {
			return nil, err
		}
		if s.entity.Normalize != nil {
			s.entity.Normalize(record)
		}
		form.Record = record
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown form mode")
	}
	if mode != FormView {
		form.IdempotencyKey = uuid.NewString()
	}
	return form, nil
}

// Submit validates record locally, writes it and re-fetches the list. Field errors are returned
// as a validation *errors.Error and no backend call is made. Submits sharing an idempotency key
// reuse the first successful result.
func (s *CRUDService[T]) Submit(ctx context.Context, tokens apiclient.TokenSource, mode FormMode, id, idempotencyKey string, record *T) (*MutationResult[T], error) {
	if mode != FormAdd && mode != FormEdit {
		return nil, appErrors.Clone(appErrors.ErrValidation, "form is read-only")
	}
	if record == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "record is required")
	}
	if verr := validateFields(s.validator, record); verr != nil {
		return nil, verr
	}
	if mode == FormEdit {
		if id == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "record id is required")
		}
		if s.entity.ID != nil {
			if bodyID := s.entity.ID(record); bodyID != "" && bodyID != id {
				return nil, appErrors.Validation(map[string]string{"id": "Record id does not match the record being edited"})
			}
		}
	}

	value, replayed, err := s.guard.Do(idempotencyKey, func() (interface{}, error) {
		if mode == FormAdd {
			return s.repo.Create(ctx, tokens, record)
		}
		return s.repo.Update(ctx, tokens, id, record)
	})
	if err != nil {
		s.logger.Warn("failed to save record", zap.String("mode", string(mode)), zap.Error(err))
		return nil, err
	}
	stored := value.(*T)
	if replayed {
		s.logger.Info("duplicate submit collapsed", zap.String("idempotency_key", idempotencyKey))
	}

	result := &MutationResult[T]{Record: stored, Flash: s.success(s.submitMessage(mode, stored))}
	if s.entity.Credentials != nil {
		if creds := s.entity.Credentials(stored); creds != nil && (creds.Username != "" || creds.Secret() != "") {
			result.Credentials = creds
		}
	}
	// The list is fetched strictly after the write so it reflects server-derived fields.
	items, err := s.fetchAll(ctx, tokens)
	if err != nil {
		return nil, err
	}
	result.Items = items
	return result, nil
}

func (s *CRUDService[T]) submitMessage(mode FormMode, stored *T) string {
	if mode == FormAdd {
		if s.entity.CreatedMessage != nil {
			return s.entity.CreatedMessage(stored)
		}
		return s.entity.Name + " added successfully!"
	}
	return s.entity.Name + " updated successfully!"
}

// Mutate loads a record, applies change and writes it back without form validation. message
// builds the success banner from the stored record.
func (s *CRUDService[T]) Mutate(ctx context.Context, tokens apiclient.TokenSource, id string, change func(*T), message func(*T) string) (*MutationResult[T], error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "record id is required")
	}
	record, err := s.repo.Get(ctx, tokens, id)
	if err != nil {
		return nil, err
	}
	if s.entity.Normalize != nil {
		s.entity.Normalize(record)
	}
	change(record)
	stored, err := s.repo.Update(ctx, tokens, id, record)
	if err != nil {
		s.logger.Warn("failed to update record", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if s.entity.Normalize != nil {
		s.entity.Normalize(stored)
	}
	items, err := s.fetchAll(ctx, tokens)
	if err != nil {
		return nil, err
	}
	return &MutationResult[T]{Record: stored, Items: items, Flash: s.success(message(stored))}, nil
}

// Delete removes a record once the caller has confirmed, then re-fetches the list.
func (s *CRUDService[T]) Delete(ctx context.Context, tokens apiclient.TokenSource, id string, confirmed bool) (*MutationResult[T], error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "record id is required")
	}
	if !confirmed {
		return nil, appErrors.Clone(appErrors.ErrConfirmationRequired, "Are you sure you want to delete this "+s.entity.Name+"?")
	}
	if err := s.repo.Delete(ctx, tokens, id); err != nil {
		s.logger.Warn("failed to delete record", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	items, err := s.fetchAll(ctx, tokens)
	if err != nil {
		return nil, err
	}
	return &MutationResult[T]{Items: items, Flash: s.success(s.entity.Name + " deleted successfully!")}, nil
}

// Import uploads a CSV file. The server's message is shown when present.
func (s *CRUDService[T]) Import(ctx context.Context, tokens apiclient.TokenSource, filename string, content io.Reader) (*MutationResult[T], error) {
	if content == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Please select a CSV file")
	}
	message, err := s.repo.ImportCSV(ctx, tokens, filename, content)
	if err != nil {
		s.logger.Warn("csv import failed", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}
	if message == "" {
		message = "CSV imported successfully!"
	}
	items, err := s.fetchAll(ctx, tokens)
	if err != nil {
		return nil, err
	}
	return &MutationResult[T]{Items: items, Flash: s.success(message)}, nil
}

// Export downloads the backend's CSV export under the entity's fixed filename.
func (s *CRUDService[T]) Export(ctx context.Context, tokens apiclient.TokenSource) (*export.File, error) {
	body, err := s.repo.ExportCSV(ctx, tokens)
	if err != nil {
		return nil, err
	}
	return &export.File{Filename: s.entity.ExportFilename, ContentType: export.ContentTypeCSV, Data: body}, nil
}

// Export formats rendered locally from the filtered list.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportView renders the filtered and sorted list (all pages) without a backend export call.
func (s *CRUDService[T]) ExportView(ctx context.Context, tokens apiclient.TokenSource, q ListQuery, format string) (*export.File, error) {
	if len(s.entity.Columns) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export is not available for "+s.entity.Name)
	}
	all, err := s.fetchAll(ctx, tokens)
	if err != nil {
		return nil, err
	}
	matched := s.entity.Listing.Apply(all, q.Criteria)
	if q.Sort != "" {
		s.entity.Listing.SortBy(matched, q.Sort, q.Desc)
	}
	data := export.Table(s.entity.Columns, matched)

	switch format {
	case FormatXLSX:
		file, err := s.xlsx.File(data, s.entity.Name, s.entity.ExportFilename)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render workbook")
		}
		return file, nil
	case FormatCSV, "":
		file, err := s.csv.File(data, s.entity.ExportFilename)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return file, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format "+format)
	}
}

func (s *CRUDService[T]) success(message string) models.Flash {
	return models.Flash{Kind: models.FlashSuccess, Message: message, DismissAfterMs: s.flashTTL.Milliseconds()}
}
