package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := newError(ErrConflict, "用户名已存在")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "用户名已存在", Message(err))

	wrapped := fmt.Errorf("register: %w", err)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, "用户名已存在", Message(wrapped))
}

func TestStorageErrorHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := storageError(cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrStorage.Error(), Message(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageForUnknownError(t *testing.T) {
	assert.Equal(t, ErrStorage.Error(), Message(errors.New("boom")))
}
