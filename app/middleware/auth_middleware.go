// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/rcsuite/console/app/dto"
	"github.com/rcsuite/console/app/services"
	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates the bearer token and injects the customer identity
// into the request context. Refresh tokens are rejected here; they are only
// accepted by the session refresh endpoint.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Err(
				"Authorization header is required", "MISSING_AUTHORIZATION_HEADER", nil))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Err(
				"Invalid authorization header format. Expected 'Bearer <token>'", "INVALID_AUTHORIZATION_FORMAT", nil))
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Err(
				"Access token is required", "MISSING_ACCESS_TOKEN", nil))
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			return unauthorizedForTokenError(c, err)
		}

		if claims.TokenType != "access" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Err(
				"Access token required", "WRONG_TOKEN_TYPE", nil))
		}

		c.Locals("customer_id", claims.CustomerID)
		c.Locals("token_id", claims.TokenID)
		c.Locals("token_claims", claims)

		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// OptionalAuth injects the customer identity when a valid token is present
// but lets unauthenticated requests through.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Next()
		}

		if claims, err := m.tokenService.ValidateToken(token); err == nil && claims.TokenType == "access" {
			c.Locals("customer_id", claims.CustomerID)
			c.Locals("token_id", claims.TokenID)
			c.Locals("token_claims", claims)
		}

		return c.Next()
	}
}

// GetCustomerIDFromContext reads the authenticated customer id
func GetCustomerIDFromContext(c fiber.Ctx) (uint, bool) {
	customerID, ok := c.Locals("customer_id").(uint)
	return customerID, ok
}

// GetTokenClaimsFromContext reads the validated token claims
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.TokenClaims, bool) {
	claims, ok := c.Locals("token_claims").(*services.TokenClaims)
	return claims, ok
}

func unauthorizedForTokenError(c fiber.Ctx, err error) error {
	var errorCode, message string
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		errorCode = "TOKEN_EXPIRED"
		message = "Access token has expired"
	case errors.Is(err, services.ErrTokenRevoked):
		errorCode = "TOKEN_REVOKED"
		message = "Access token has been revoked"
	case errors.Is(err, services.ErrTokenInvalid):
		errorCode = "TOKEN_INVALID"
		message = "Invalid access token"
	default:
		errorCode = "TOKEN_VALIDATION_FAILED"
		message = "Token validation failed"
	}

	return c.Status(fiber.StatusUnauthorized).JSON(dto.Err(message, errorCode, nil))
}
