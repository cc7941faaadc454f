package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/session"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type preferenceStore interface {
	Preferences(userID models.ID) *session.Preferences
}

// SettingsService loads and saves per-user UI settings and the unsaved profile draft.
type SettingsService struct {
	store     preferenceStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs the settings service.
func NewSettingsService(store preferenceStore, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{store: store, validator: validate, logger: logger}
}

// Settings returns the saved settings merged over the defaults. Unreadable blobs fall back to defaults.
func (s *SettingsService) Settings(ctx context.Context, userID models.ID) models.UISettings {
	settings := models.DefaultUISettings()
	if _, err := s.store.Preferences(userID).Load(ctx, session.PrefUISettings, &settings); err != nil {
		s.logger.Warn("ui settings unreadable, using defaults", zap.String("user_id", userID.String()), zap.Error(err))
		return models.DefaultUISettings()
	}
	return s.complete(settings)
}

func (s *SettingsService) complete(settings models.UISettings) models.UISettings {
	defaults := models.DefaultUISettings()
	if strings.TrimSpace(settings.Theme) == "" {
		settings.Theme = defaults.Theme
	}
	if strings.TrimSpace(settings.Language) == "" {
		settings.Language = defaults.Language
	}
	if settings.RowsPerPage == 0 {
		settings.RowsPerPage = defaults.RowsPerPage
	}
	return settings
}

// SaveSettings validates and persists settings.
func (s *SettingsService) SaveSettings(ctx context.Context, userID models.ID, settings models.UISettings) (models.UISettings, error) {
	settings = s.complete(settings)
	if verr := validateFields(s.validator, &settings); verr != nil {
		return settings, verr
	}
	if err := s.store.Preferences(userID).Save(ctx, session.PrefUISettings, settings); err != nil {
		return settings, preferenceError(err)
	}
	return settings, nil
}

func preferenceError(err error) error {
	if errors.Is(err, session.ErrNoPreferenceOwner) {
		return appErrors.Clone(appErrors.ErrValidation, "preferences are unavailable for a profile without an id")
	}
	return err
}

// ResetSettings drops saved settings so the defaults apply again.
func (s *SettingsService) ResetSettings(ctx context.Context, userID models.ID) error {
	return s.store.Preferences(userID).Discard(ctx, session.PrefUISettings)
}

// ProfileDraft returns an unsaved profile edit, if one was stored.
func (s *SettingsService) ProfileDraft(ctx context.Context, userID models.ID) (*models.ProfileUpdate, error) {
	var draft models.ProfileUpdate
	ok, err := s.store.Preferences(userID).Load(ctx, session.PrefProfileDraft, &draft)
	if err != nil || !ok {
		return nil, err
	}
	return &draft, nil
}

// SaveProfileDraft stores a profile edit for later.
func (s *SettingsService) SaveProfileDraft(ctx context.Context, userID models.ID, draft models.ProfileUpdate) error {
	return preferenceError(s.store.Preferences(userID).Save(ctx, session.PrefProfileDraft, draft))
}

// DiscardProfileDraft drops the stored draft, typically after the profile was saved.
func (s *SettingsService) DiscardProfileDraft(ctx context.Context, userID models.ID) error {
	return s.store.Preferences(userID).Discard(ctx, session.PrefProfileDraft)
}
