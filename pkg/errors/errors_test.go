package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsCodeAndStatus(t *testing.T) {
	clone := Clone(ErrNotFound, "session not found")

	assert.Equal(t, "NOT_FOUND", clone.Code)
	assert.Equal(t, http.StatusNotFound, clone.Status)
	assert.Equal(t, "session not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
	assert.Nil(t, Clone(nil, "x"))
}

func TestIsMatchesByCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("append: %w", Clone(ErrInvalidInput, "unknown skill value"))

	assert.True(t, Is(err, ErrInvalidInput))
	assert.False(t, Is(err, ErrValidation))
	assert.False(t, Is(nil, ErrInvalidInput))
	assert.False(t, Is(errors.New("plain"), ErrInternal))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(errors.New("disk full"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
	assert.Equal(t, ErrInternal.Message, plain.Message)

	wrapped := Wrap(errors.New("pq: deadlock"), ErrInternal.Code, ErrInternal.Status, "failed to record point event")
	assert.Same(t, wrapped, FromError(wrapped))
	assert.Equal(t, "failed to record point event: pq: deadlock", wrapped.Error())
	assert.ErrorContains(t, errors.Unwrap(wrapped), "deadlock")
}
