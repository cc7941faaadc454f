package service

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/internal/session"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

type authRepository interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	CurrentUser(ctx context.Context, tokens apiclient.TokenSource) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, tokens apiclient.TokenSource, update models.ProfileUpdate) (*models.UserProfile, error)
}

// AuthService runs login, logout and profile flows against the backend and keeps the session
// in step with them.
type AuthService struct {
	repo      authRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authRepository, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &AuthService{repo: repo, validator: validate, logger: logger}
}

// Login authenticates against the backend. On success the previous session is cleared and the
// tokens and profile are stored under a new session id, returned alongside the user.
func (s *AuthService) Login(ctx context.Context, previous *session.Session, req models.LoginRequest) (*models.UserProfile, *session.Session, error) {
	if verr := validateFields(s.validator, &req); verr != nil {
		return nil, nil, verr
	}

	resp, err := s.repo.Login(ctx, req)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Status == http.StatusBadRequest || appErr.Status == http.StatusUnauthorized || appErr.Status == http.StatusNotFound {
			return nil, nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		s.logger.Warn("login request failed", zap.Error(err))
		return nil, nil, err
	}
	if resp.AccessToken == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrUpstream, "login response carried no access token")
	}

	storeErr := func(err error) error {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session")
	}
	sess, err := previous.Rotate(ctx)
	if err != nil {
		return nil, nil, storeErr(err)
	}
	if err := sess.SetAccessToken(ctx, resp.AccessToken); err != nil {
		return nil, nil, storeErr(err)
	}
	if err := sess.SetRefreshToken(ctx, resp.RefreshToken); err != nil {
		return nil, nil, storeErr(err)
	}
	user := resp.User
	if err := sess.SetUser(ctx, &user); err != nil {
		return nil, nil, storeErr(err)
	}

	fields := []zap.Field{zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role))}
	if exp := TokenExpiry(resp.AccessToken); exp != nil {
		fields = append(fields, zap.Time("access_token_expires_at", *exp))
	}
	s.logger.Info("user logged in", fields...)
	return &user, sess, nil
}

// Logout clears the session.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if err := sess.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session")
	}
	return nil
}

// SessionInfo describes the session for the session endpoint.
func (s *AuthService) SessionInfo(ctx context.Context, sess *session.Session) (*models.SessionInfo, error) {
	authenticated, err := sess.IsAuthenticated(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read session")
	}
	info := &models.SessionInfo{Authenticated: authenticated}
	if !authenticated {
		return info, nil
	}
	user, err := sess.User(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read session")
	}
	info.User = user
	if user != nil {
		info.Dashboard = models.DashboardFor(user.Role).Title
	}
	token, err := sess.AccessToken(ctx)
	if err == nil {
		info.AccessTokenExpiresAt = TokenExpiry(token)
	}
	return info, nil
}

// Profile returns the session's profile, loading it from the backend when it is missing.
func (s *AuthService) Profile(ctx context.Context, sess *session.Session) (*models.UserProfile, error) {
	user, err := sess.User(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read session")
	}
	if user != nil {
		return user, nil
	}
	user, err = s.repo.CurrentUser(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := sess.SetUser(ctx, user); err != nil {
		s.logger.Warn("failed to cache profile", zap.Error(err))
	}
	return user, nil
}

// UpdateProfile patches the profile and caches the stored version in the session.
func (s *AuthService) UpdateProfile(ctx context.Context, sess *session.Session, update models.ProfileUpdate) (*models.UserProfile, error) {
	if verr := validateFields(s.validator, &update); verr != nil {
		return nil, verr
	}
	user, err := s.repo.UpdateProfile(ctx, sess, update)
	if err != nil {
		return nil, err
	}
	if err := sess.SetUser(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store profile")
	}
	return user, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying it. The portal cannot verify
// backend tokens; the value is informational only.
func TokenExpiry(token string) *time.Time {
	if token == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time.UTC()
	return &t
}
