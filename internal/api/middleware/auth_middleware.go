package middleware

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserContextKey = contextKey("user")

var hmacMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

var errNoPurchaser = stdErrors.New("token carries no email")

type AuthMiddleware struct {
	parser *jwt.Parser
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{
		parser: jwt.NewParser(jwt.WithValidMethods(hmacMethods), jwt.WithExpirationRequired()),
		jwtKey: jwtKey,
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, *errors.AppError) {
	if header == "" {
		return "", errors.UnauthorizedError("Authorization header is required")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || strings.Contains(token, " ") {
		return "", errors.UnauthorizedError("Invalid authorization format")
	}

	return token, nil
}

func (m *AuthMiddleware) parseClaims(raw string) (*models.Claims, error) {
	claims := &models.Claims{}

	if _, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.jwtKey, nil
	}); err != nil {
		return nil, err
	}

	if strings.TrimSpace(claims.Email) == "" {
		return nil, errNoPurchaser
	}

	return claims, nil
}

// Authenticate requires an HMAC-signed Bearer token whose claims carry an email.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		raw, appErr := bearerToken(r.Header.Get("Authorization"))
		if appErr != nil {
			logger.Warn("Rejected authorization header", slog.String("reason", appErr.Message))
			response.Error(w, appErr)
			return
		}

		claims, err := m.parseClaims(raw)
		switch {
		case stdErrors.Is(err, errNoPurchaser):
			logger.Warn("Token carries no email")
			response.Error(w, errors.UnauthorizedError("Token does not identify a purchaser"))
			return
		case err != nil:
			logger.Warn("JWT validation failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		userLogger := logger.With(slog.String("userId", claims.UserID.String()))
		userLogger.Info("User authenticated")

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		ctx = context.WithValue(ctx, LoggerKey, userLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok && claims != nil
}
