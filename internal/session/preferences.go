package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/noah-isme/eschool-portal/internal/models"
)

// Preference blob names.
const (
	PrefUISettings   = "ui_settings"
	PrefProfileDraft = "profile_draft"
)

// ErrNoPreferenceOwner is returned when saving preferences for a profile without an id.
var ErrNoPreferenceOwner = errors.New("preferences need a user id")

// Preferences stores per-user blobs that outlive sessions. Blobs are written only on an explicit save.
type Preferences struct {
	userID models.ID
	store  *Store
}

// Preferences returns the preference handle of a user.
func (s *Store) Preferences(userID models.ID) *Preferences {
	return &Preferences{userID: userID, store: s}
}

func (p *Preferences) key(name string) string {
	return "prefs:" + string(p.userID) + ":" + name
}

// Load decodes the named blob into dest and reports whether it existed.
// A profile without an id never has stored blobs.
func (p *Preferences) Load(ctx context.Context, name string, dest interface{}) (bool, error) {
	if p.userID == "" {
		return false, nil
	}
	raw, ok, err := p.store.backend.Get(ctx, p.key(name))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode preference %s: %w", name, err)
	}
	return true, nil
}

// Save writes the named blob without expiry.
func (p *Preferences) Save(ctx context.Context, name string, value interface{}) error {
	if p.userID == "" {
		return ErrNoPreferenceOwner
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode preference %s: %w", name, err)
	}
	return p.store.backend.Set(ctx, p.key(name), string(raw), 0)
}

// Discard removes the named blob.
func (p *Preferences) Discard(ctx context.Context, name string) error {
	if p.userID == "" {
		return nil
	}
	return p.store.backend.Delete(ctx, p.key(name))
}
