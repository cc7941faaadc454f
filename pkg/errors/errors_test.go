package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromUpstreamKeepsServerText(t *testing.T) {
	err := FromUpstream(http.StatusBadRequest, []byte(`{"error":"Invalid CSV header"}`))
	assert.Equal(t, "Invalid CSV header", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Nil(t, err.Fields)
}

func TestFromUpstreamMapsFieldErrors(t *testing.T) {
	err := FromUpstream(http.StatusBadRequest, []byte(`{"admission_no":["student with this admission no already exists."],"email":"Enter a valid email address."}`))
	assert.Equal(t, "student with this admission no already exists.", err.Fields["admission_no"])
	assert.Equal(t, "Enter a valid email address.", err.Fields["email"])
	assert.Contains(t, err.Message, "admission_no:")
}

func TestFromUpstreamPlainTextAndServerErrors(t *testing.T) {
	err := FromUpstream(http.StatusInternalServerError, []byte("boom"))
	assert.Equal(t, "boom", err.Message)
	assert.Equal(t, http.StatusBadGateway, err.Status)

	err = FromUpstream(http.StatusNotFound, nil)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "backend returned status 404", err.Message)
}

func TestClonePreservesIdentity(t *testing.T) {
	clone := Clone(ErrAuthenticationFailed, "session expired")
	assert.True(t, errors.Is(clone, ErrAuthenticationFailed))
	assert.False(t, errors.Is(clone, ErrUnauthenticated))
	assert.Equal(t, "session expired", clone.Message)
}
