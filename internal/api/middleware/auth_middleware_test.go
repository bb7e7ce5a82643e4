package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/api/middleware"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJwtKey = []byte("test-secret-key-123456789012345")

func createTestToken(userID uuid.UUID, email string, duration time.Duration, key any, method jwt.SigningMethod) (string, error) {
	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(method, claims)

	return token.SignedString(key)
}

func mustToken(t *testing.T, email string, duration time.Duration, key any, method jwt.SigningMethod) string {
	t.Helper()

	token, err := createTestToken(uuid.New(), email, duration, key, method)
	require.NoError(t, err)

	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	// Arrange
	authMiddleware := middleware.NewAuthMiddleware(testJwtKey)
	userEmail := "buyer@example.com"

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok, "User claims should be in context")
		assert.Equal(t, userEmail, claims.Email)
		require.NotNil(t, middleware.LoggerFromContext(r.Context()))

		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"success": true}`))
		require.NoError(t, err)
	})

	unauthorized := func(message string) string {
		return `{"success": false, "error": {"code": "UNAUTHORIZED", "message": "` + message + `"}}`
	}

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - Valid Token",
			authHeader:     mustToken(t, userEmail, time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
		},
		{
			name:           "Success - Other HMAC method",
			authHeader:     mustToken(t, userEmail, time.Hour, testJwtKey, jwt.SigningMethodHS512),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success": true}`,
		},
		{
			name:           "Fail - Missing Authorization Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Authorization header is required"),
		},
		{
			name:           "Fail - No Bearer prefix",
			authHeader:     "InvalidTokenFormat",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid authorization format"),
		},
		{
			name:           "Fail - Only Bearer",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
		{
			name:           "Fail - Malformed Token",
			authHeader:     "Bearer not.a.valid.token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
		{
			name:           "Fail - Wrong Signing Key",
			authHeader:     mustToken(t, userEmail, time.Hour, []byte("different-secret-key-0987654321"), jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
		{
			name:           "Fail - Unsigned Token",
			authHeader:     mustToken(t, userEmail, time.Hour, jwt.UnsafeAllowNoneSignatureType, jwt.SigningMethodNone),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
		{
			name:           "Fail - Expired Token",
			authHeader:     mustToken(t, userEmail, -time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Invalid or expired token"),
		},
		{
			name:           "Fail - Token without email",
			authHeader:     mustToken(t, "", time.Hour, testJwtKey, jwt.SigningMethodHS256),
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   unauthorized("Token does not identify a purchaser"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/carts/x/purchase", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			baseLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
			req = req.WithContext(context.WithValue(req.Context(), middleware.LoggerKey, baseLogger))

			rr := httptest.NewRecorder()

			// Act
			authMiddleware.Authenticate(nextHandler).ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code, "Unexpected status code")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Unexpected response body")
		})
	}
}

func TestNewAuthMiddleware(t *testing.T) {
	mw := middleware.NewAuthMiddleware([]byte("some-key"))
	assert.NotNil(t, mw, "Middleware should not be nil")
}

func TestClaimsFromContext(t *testing.T) {
	_, ok := middleware.ClaimsFromContext(t.Context())
	assert.False(t, ok)
}
