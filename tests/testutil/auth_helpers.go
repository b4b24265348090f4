package testutil

import (
	"context"
	"errors"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/zuri-studios/zuri-api/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer, email string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Email: email,
		},
	}
}

// StubVerifier returns a TokenVerifier that accepts exactly one token and
// yields claims for the given user. Any other token is rejected.
func StubVerifier(validToken, subject, email string) middleware.TokenVerifier {
	return func(ctx context.Context, token string) (*validator.ValidatedClaims, error) {
		if token != validToken {
			return nil, errors.New("token is invalid")
		}
		return MockValidatedClaims(subject, "https://auth.test.zuristudios.com/", email), nil
	}
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
