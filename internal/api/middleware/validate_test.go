package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/library-api/internal/api/middleware"
	"github.com/phrazzld/library-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newValidatedRouter mounts a handler behind ValidateRequest that records the
// body it receives.
func newValidatedRouter(schema validation.RequestSchema, method, pattern string, received *string) http.Handler {
	r := chi.NewRouter()
	r.With(middleware.ValidateRequest(schema)).Method(method, pattern,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			*received = string(body)
			w.WriteHeader(http.StatusNoContent)
		}))
	return r
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	msg, ok := resp["error"].(string)
	require.True(t, ok, "response should carry an error string: %s", rec.Body.String())
	return msg
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		schema        validation.RequestSchema
		method        string
		pattern       string
		target        string
		body          string
		expectedCode  int
		expectedError string
	}{
		{
			name:         "valid book create",
			schema:       validation.Books.Create,
			method:       http.MethodPost,
			pattern:      "/books",
			target:       "/books",
			body:         `{"title":"The Hobbit","author":"J.R.R. Tolkien","copiesAvailable":3}`,
			expectedCode: http.StatusNoContent,
		},
		{
			name:          "invalid book create",
			schema:        validation.Books.Create,
			method:        http.MethodPost,
			pattern:       "/books",
			target:        "/books",
			body:          `{"title":"","author":"","copiesAvailable":-1}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: `Title cannot be empty, Author cannot be empty, "copiesAvailable" must be greater than or equal to 0`,
		},
		{
			name:          "empty update",
			schema:        validation.Books.Update,
			method:        http.MethodPut,
			pattern:       "/books/{id}",
			target:        "/books/b1",
			body:          `{}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: validation.MinFieldsMessage,
		},
		{
			name:          "empty body counts as empty object",
			schema:        validation.Users.Update,
			method:        http.MethodPut,
			pattern:       "/users/{id}",
			target:        "/users/u1",
			body:          ``,
			expectedCode:  http.StatusBadRequest,
			expectedError: validation.MinFieldsMessage,
		},
		{
			name:         "valid borrow update",
			schema:       validation.Borrows.Update,
			method:       http.MethodPut,
			pattern:      "/borrows/{id}",
			target:       "/borrows/r1",
			body:         `{"status":"returned","returnedAt":"2025-01-01T00:00:00Z"}`,
			expectedCode: http.StatusNoContent,
		},
		{
			name:          "malformed json",
			schema:        validation.Users.Create,
			method:        http.MethodPost,
			pattern:       "/users",
			target:        "/users",
			body:          `{"name":`,
			expectedCode:  http.StatusBadRequest,
			expectedError: middleware.MsgInvalidJSON,
		},
		{
			name:          "trailing data",
			schema:        validation.Users.Create,
			method:        http.MethodPost,
			pattern:       "/users",
			target:        "/users",
			body:          `{"name":"Ada","email":"ada@example.com"} {}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: middleware.MsgInvalidJSON,
		},
		{
			name:          "array body",
			schema:        validation.Users.Create,
			method:        http.MethodPost,
			pattern:       "/users",
			target:        "/users",
			body:          `[{"name":"Ada"}]`,
			expectedCode:  http.StatusBadRequest,
			expectedError: middleware.MsgNotObject,
		},
		{
			name:          "null body",
			schema:        validation.Users.Create,
			method:        http.MethodPost,
			pattern:       "/users",
			target:        "/users",
			body:          `null`,
			expectedCode:  http.StatusBadRequest,
			expectedError: middleware.MsgNotObject,
		},
		{
			name:          "oversized body",
			schema:        validation.Users.Create,
			method:        http.MethodPost,
			pattern:       "/users",
			target:        "/users",
			body:          `{"name":"` + strings.Repeat("a", middleware.MaxBodyBytes) + `"}`,
			expectedCode:  http.StatusBadRequest,
			expectedError: middleware.MsgBodyTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var received string
			router := newValidatedRouter(tt.schema, tt.method, tt.pattern, &received)

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorMessage(t, rec))
				assert.Empty(t, received, "next handler must not run on failure")
				return
			}
			assert.Equal(t, tt.body, received, "original body should be replayed")
		})
	}
}

func TestValidateRequest_MissingParam(t *testing.T) {
	t.Parallel()

	called := false
	handler := middleware.ValidateRequest(validation.Books.Update)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	// Without a chi route context there is no id parameter.
	req := httptest.NewRequest(http.MethodPut, "/books/", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Book ID is required, "+validation.MinFieldsMessage, errorMessage(t, rec))
}
