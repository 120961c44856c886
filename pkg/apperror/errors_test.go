package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Client")

	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "Client not found", err.Message)
}

func TestIsAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("loading quote: %w", ErrNotFound)

	assert.True(t, IsAppError(wrapped))
	assert.False(t, IsAppError(errors.New("connection refused")))
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(NewConflictError("Email already registered"))
	assert.Equal(t, http.StatusConflict, appErr.Code)

	plain := GetAppError(errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "connection refused", plain.Message)
}
