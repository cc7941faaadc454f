// Package session keeps the per-browser login state of the portal: access and refresh tokens,
// the cached user profile, one-shot flash banners, and per-user preference blobs.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/eschool-portal/internal/models"
)

// Backend is the key/value storage behind the store.
type Backend interface {
	// Get returns the value and whether the key was present and unexpired.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes all keys in a single operation.
	Delete(ctx context.Context, keys ...string) error
	// Expire resets the expiry of the keys that are still present. A non-positive ttl means no expiry.
	Expire(ctx context.Context, ttl time.Duration, keys ...string) error
}

// EventKind enumerates session mutations.
type EventKind string

const (
	EventAccessTokenSet  EventKind = "access_token_set"
	EventRefreshTokenSet EventKind = "refresh_token_set"
	EventUserSet         EventKind = "user_set"
	EventCleared         EventKind = "cleared"
)

// Event is published synchronously after every token, profile or clear mutation.
type Event struct {
	SessionID string
	Kind      EventKind
	UserID    models.ID
}

// Observer receives session events.
type Observer func(Event)

const flashTTL = 5 * time.Minute

// Store hands out session handles over a backend and fans out mutation events.
type Store struct {
	backend Backend
	ttl     time.Duration
	logger  *zap.Logger

	mu        sync.RWMutex
	nextID    int
	observers map[int]Observer
}

// NewStore constructs a store. ttl bounds how long an idle session survives.
func NewStore(backend Backend, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, ttl: ttl, logger: logger, observers: make(map[int]Observer)}
}

// NewID returns a fresh opaque session id.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Session returns the handle for an existing or new session id.
func (s *Store) Session(id string) *Session {
	return &Session{id: id, store: s}
}

// Subscribe registers an observer and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(evt Event) {
	s.mu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.RUnlock()
	for _, fn := range observers {
		fn(evt)
	}
}

// Session is the handle for one browser's login state.
type Session struct {
	id    string
	store *Store
}

// ID returns the session id carried in the cookie.
func (s *Session) ID() string { return s.id }

func (s *Session) key(name string) string {
	return "session:" + s.id + ":" + name
}

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
	keyFlash        = "flash"
)

func (s *Session) loginKeys() []string {
	return []string{s.key(keyAccessToken), s.key(keyRefreshToken), s.key(keyUser)}
}

// Touch restarts the idle timeout of the tokens and profile together so they expire as one.
func (s *Session) Touch(ctx context.Context) error {
	return s.store.backend.Expire(ctx, s.store.ttl, s.loginKeys()...)
}

func (s *Session) write(ctx context.Context, name, value string) error {
	if err := s.store.backend.Set(ctx, s.key(name), value, s.store.ttl); err != nil {
		return err
	}
	return s.Touch(ctx)
}

// SetAccessToken stores the access token.
func (s *Session) SetAccessToken(ctx context.Context, token string) error {
	if err := s.write(ctx, keyAccessToken, token); err != nil {
		return err
	}
	s.store.publish(Event{SessionID: s.id, Kind: EventAccessTokenSet})
	return nil
}

// SetRefreshToken stores the refresh token. An empty token removes the stored one.
func (s *Session) SetRefreshToken(ctx context.Context, token string) error {
	if token == "" {
		return s.store.backend.Delete(ctx, s.key(keyRefreshToken))
	}
	if err := s.write(ctx, keyRefreshToken, token); err != nil {
		return err
	}
	s.store.publish(Event{SessionID: s.id, Kind: EventRefreshTokenSet})
	return nil
}

// AccessToken returns the stored access token or "" when absent.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	token, _, err := s.store.backend.Get(ctx, s.key(keyAccessToken))
	return token, err
}

// RefreshToken returns the stored refresh token or "" when absent.
func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	token, _, err := s.store.backend.Get(ctx, s.key(keyRefreshToken))
	return token, err
}

// SetUser caches the authenticated user's profile.
func (s *Session) SetUser(ctx context.Context, user *models.UserProfile) error {
	if user == nil {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.write(ctx, keyUser, string(raw)); err != nil {
		return err
	}
	s.store.publish(Event{SessionID: s.id, Kind: EventUserSet, UserID: user.ID})
	return nil
}

// User returns the cached profile, or nil when it was never set or cannot be parsed.
func (s *Session) User(ctx context.Context) (*models.UserProfile, error) {
	raw, ok, err := s.store.backend.Get(ctx, s.key(keyUser))
	if err != nil || !ok {
		return nil, err
	}
	var user models.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.store.logger.Warn("discarding corrupt session profile", zap.String("session_id", s.id), zap.Error(err))
		return nil, nil
	}
	return &user, nil
}

// IsAuthenticated reports whether an access token is present. Expiry is not checked.
func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	_, ok, err := s.store.backend.Get(ctx, s.key(keyAccessToken))
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Clear removes both tokens and the profile in one backend call.
func (s *Session) Clear(ctx context.Context) error {
	var userID models.ID
	if user, err := s.User(ctx); err == nil && user != nil {
		userID = user.ID
	}
	if err := s.store.backend.Delete(ctx, s.loginKeys()...); err != nil {
		return err
	}
	s.store.publish(Event{SessionID: s.id, Kind: EventCleared, UserID: userID})
	return nil
}

// Rotate ends the login state held under this id and returns a handle with a fresh id.
func (s *Session) Rotate(ctx context.Context) (*Session, error) {
	if err := s.Clear(ctx); err != nil {
		return nil, err
	}
	return s.store.Session(s.store.NewID()), nil
}

// SetFlash stores a banner for the next rendered page.
func (s *Session) SetFlash(ctx context.Context, flash models.Flash) error {
	raw, err := json.Marshal(flash)
	if err != nil {
		return err
	}
	return s.store.backend.Set(ctx, s.key(keyFlash), string(raw), flashTTL)
}

// PopFlash returns and removes the pending banner.
func (s *Session) PopFlash(ctx context.Context) (*models.Flash, error) {
	key := s.key(keyFlash)
	raw, ok, err := s.store.backend.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	if err := s.store.backend.Delete(ctx, key); err != nil {
		return nil, err
	}
	var flash models.Flash
	if err := json.Unmarshal([]byte(raw), &flash); err != nil {
		return nil, nil
	}
	return &flash, nil
}
