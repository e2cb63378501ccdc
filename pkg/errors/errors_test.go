package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMatchesPredefined(t *testing.T) {
	err := Clone(ErrNotFound, "student not found")

	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrValidation))
	assert.Equal(t, "student not found", err.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, ErrValidation.Code, ErrValidation.Status, "invalid payload")

	assert.True(t, stderrors.Is(err, ErrValidation))
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "invalid payload: boom", err.Error())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	wrapped := fmt.Errorf("context: %w", ErrDuplicateEnrollment)
	assert.Equal(t, ErrDuplicateEnrollment, FromError(wrapped))

	plain := FromError(fmt.Errorf("plain"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}
