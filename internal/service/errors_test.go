package service

import (
	"errors"
	"testing"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			service:  "user",
			op:       "create",
			err:      errors.New("database connection failed"),
			expected: "user service create operation failed: database connection failed",
		},
		{
			name:     "without underlying error",
			service:  "book",
			op:       "delete",
			err:      nil,
			expected: "book service delete operation failed",
		},
		{
			name:     "with sentinel error",
			service:  "borrow",
			op:       "get",
			err:      store.ErrBorrowNotFound,
			expected: "borrow service get operation failed: entity not found: borrow record",
		},
		{
			name:     "empty operation name",
			service:  "book",
			op:       "",
			err:      errors.New("invalid input"),
			expected: "book service  operation failed: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceErr := NewServiceError(tt.service, tt.op, tt.err)
			assert.Equal(t, tt.expected, serviceErr.Error())
		})
	}
}

func TestServiceError_Unwrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not found family", store.ErrUserNotFound, store.ErrNotFound},
		{"entity not found", store.ErrBookNotFound, store.ErrBookNotFound},
		{"domain validation", domain.NewValidationError("copiesAvailable", "negative", domain.ErrInvalidCopies), domain.ErrValidation},
		{"invalid entity", store.ErrInvalidEntity, store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceErr := NewServiceError("book", "update", tt.err)
			assert.ErrorIs(t, serviceErr, tt.target)

			var asServiceErr *ServiceError
			assert.True(t, errors.As(error(serviceErr), &asServiceErr))
			assert.Equal(t, "update", asServiceErr.Op)
		})
	}

	assert.Nil(t, NewServiceError("user", "get", nil).Unwrap())
}
