package models

import (
	"encoding/json"
	"time"
)

// LoginRequest holds credentials for authenticating against the backend.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse is the backend login payload. Both {access_token, refresh_token} and the
// short {access, refresh} spellings are accepted.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         UserProfile `json:"user"`
}

// UnmarshalJSON normalises the two token spellings.
func (r *LoginResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken  string      `json:"access_token"`
		RefreshToken string      `json:"refresh_token"`
		Access       string      `json:"access"`
		Refresh      string      `json:"refresh"`
		User         UserProfile `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.AccessToken = raw.AccessToken
	if r.AccessToken == "" {
		r.AccessToken = raw.Access
	}
	r.RefreshToken = raw.RefreshToken
	if r.RefreshToken == "" {
		r.RefreshToken = raw.Refresh
	}
	r.User = raw.User
	return nil
}

// SessionInfo describes the current portal session.
type SessionInfo struct {
	Authenticated        bool         `json:"authenticated"`
	User                 *UserProfile `json:"user,omitempty"`
	AccessTokenExpiresAt *time.Time   `json:"access_token_expires_at,omitempty"`
	Dashboard            string       `json:"dashboard,omitempty"`
}
