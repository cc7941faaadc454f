package repository

import (
	"context"

	"github.com/noah-isme/eschool-portal/pkg/apiclient"
)

// ActivityRepository reads activity reports served live by the backend at /api/<feature>/.
type ActivityRepository struct {
	client *apiclient.Client
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(client *apiclient.Client) *ActivityRepository {
	return &ActivityRepository{client: client}
}

// Fetch decodes the feature's report into dest.
func (r *ActivityRepository) Fetch(ctx context.Context, tokens apiclient.TokenSource, feature string, dest interface{}) error {
	return getJSON(ctx, r.client, tokens, "/api/"+feature+"/", nil, dest)
}
