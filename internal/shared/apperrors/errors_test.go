package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-backend/pkg/docstore"
)

func TestHTTPStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"validation", Validation("title is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", NotFound("project", "abc"), http.StatusNotFound, "NOT_FOUND"},
		{"storage", Storage(errors.New("connection refused")), http.StatusInternalServerError, "STORAGE_ERROR"},
		{"unknown", errors.New("something else"), http.StatusInternalServerError, "STORAGE_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, HTTPStatus(tt.err))
			assert.Equal(t, tt.wantCode, Code(tt.err))
		})
	}
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage(cause)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Storage(nil))
}

func TestFromStore(t *testing.T) {
	err := FromStore(docstore.ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)

	err = FromStore(errors.New("io timeout"))
	assert.ErrorIs(t, err, ErrStorage)

	assert.Nil(t, FromStore(nil))
}
