package repository

import (
	"context"
	"net/http"

	"github.com/noah-isme/eschool-portal/internal/models"
	"github.com/noah-isme/eschool-portal/pkg/apiclient"
)

const (
	loginPath = "/api/login/"
	userPath  = "/api/user/"
)

// AuthRepository talks to the backend login and current-user endpoints.
type AuthRepository struct {
	client *apiclient.Client
}

// NewAuthRepository constructs the repository.
func NewAuthRepository(client *apiclient.Client) *AuthRepository {
	return &AuthRepository{client: client}
}

// Login exchanges credentials for a token pair and the user profile.
func (r *AuthRepository) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	resp, err := r.client.Post(ctx, loginPath, req)
	if err != nil {
		return nil, err
	}
	var out models.LoginResponse
	if err := apiclient.DecodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser fetches the authenticated user's profile.
func (r *AuthRepository) CurrentUser(ctx context.Context, tokens apiclient.TokenSource) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := getJSON(ctx, r.client, tokens, userPath, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches the authenticated user's profile and returns the stored version.
func (r *AuthRepository) UpdateProfile(ctx context.Context, tokens apiclient.TokenSource, update models.ProfileUpdate) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := sendJSON(ctx, r.client, tokens, http.MethodPatch, userPath, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
