package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/library-api/internal/api/middleware"
	"github.com/phrazzld/library-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockJWTService stubs token validation.
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateToken(ctx context.Context, subject string) (string, error) {
	args := m.Called(ctx, subject)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	var claims *auth.Claims
	if arg := args.Get(0); arg != nil {
		claims = arg.(*auth.Claims)
	}
	return claims, args.Error(1)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		authHeader      string
		token           string
		claims          *auth.Claims
		validateErr     error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			token:          "valid-token",
			claims:         &auth.Claims{Subject: "librarian"},
			expectedStatus: http.StatusOK,
		},
		{
			name:            "missing auth header",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Authorization header required",
		},
		{
			name:            "invalid auth format",
			authHeader:      "Token abc",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid authorization format",
		},
		{
			name:            "expired token",
			authHeader:      "Bearer expired-token",
			token:           "expired-token",
			validateErr:     auth.ErrExpiredToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Token expired",
		},
		{
			name:            "invalid token",
			authHeader:      "Bearer invalid-token",
			token:           "invalid-token",
			validateErr:     auth.ErrInvalidToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:            "unexpected error",
			authHeader:      "Bearer odd-token",
			token:           "odd-token",
			validateErr:     errors.New("key store unavailable"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Authentication error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtService := new(MockJWTService)
			if tt.token != "" {
				jwtService.On("ValidateToken", mock.Anything, tt.token).Return(tt.claims, tt.validateErr)
			}

			var subject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject, _ = middleware.GetSubject(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/books", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middleware.NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedMessage != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedMessage)
			}
			if tt.claims != nil {
				assert.Equal(t, tt.claims.Subject, subject)
			}
			jwtService.AssertExpectations(t)
		})
	}
}

func TestGetSubject_Missing(t *testing.T) {
	t.Parallel()
	subject, ok := middleware.GetSubject(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Empty(t, subject)
}
