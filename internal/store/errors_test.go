package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityNotFoundErrorsWrapNotFound(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrBookNotFound, ErrBorrowNotFound} {
		t.Run(err.Error(), func(t *testing.T) {
			assert.ErrorIs(t, err, ErrNotFound)
			assert.True(t, IsNotFoundError(err))
			assert.True(t, IsNotFoundError(fmt.Errorf("service: %w", err)))
		})
	}

	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(nil))
	assert.NotErrorIs(t, ErrUserNotFound, ErrBookNotFound)
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name    string
		err     *StoreError
		message string
	}{
		{
			name:    "with cause",
			err:     NewStoreError("books", "update", "failed to update document", cause),
			message: "update operation on books failed: failed to update document: connection reset",
		},
		{
			name:    "without cause",
			err:     NewStoreError("users", "create", "id already taken", nil),
			message: "create operation on users failed: id already taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, tt.err.Err, tt.err.Unwrap())
		})
	}

	wrapped := fmt.Errorf("outer: %w", NewStoreError("borrows", "get", "lookup failed", ErrNotFound))
	var storeErr *StoreError
	assert.True(t, errors.As(wrapped, &storeErr))
	assert.Equal(t, "borrows", storeErr.Entity)
	assert.ErrorIs(t, wrapped, ErrNotFound)
}
