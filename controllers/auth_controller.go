package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/middleware"
	"github.com/zuri-studios/zuri-api/services"
)

// SignUpRequest represents the request body for creating an account
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
}

// SignInRequest represents the request body for signing in
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest represents the request body for a password reset
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SignUp handles POST /api/v1/auth/signup - creates a remote account.
// The provider creates the matching profile row through its own trigger.
func SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	session, err := services.GetSessionService().SignUp(req.Email, req.Password, req.FullName)
	if err != nil {
		status, message := providerErrorResponse(err, "Could not create account")
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SIGNUP_FAILED",
				"message": message,
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    session,
	})
}

// SignIn handles POST /api/v1/auth/signin - authenticates with the hosted
// provider and returns the session token bundle.
func SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	session, err := services.GetSessionService().SignIn(req.Email, req.Password)
	if err != nil {
		_, message := providerErrorResponse(err, "Invalid email or password")
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": message,
			},
		})
		return
	}

	// Set the session cookie so guarded page loads carry the token
	c.SetCookie(middleware.SessionCookieName, session.AccessToken, session.ExpiresIn, "/", "", c.Request.TLS != nil, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

// SignOut handles POST /api/v1/auth/signout - revokes the caller's own
// token with the provider and clears the session cookie. Local state is
// cleared even when the provider call fails.
func SignOut(c *gin.Context) {
	if err := services.GetSessionService().SignOut(middleware.ExtractToken(c)); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Signed out locally; the remote session may already be invalid",
		})
		c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", c.Request.TLS != nil, true)
		return
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed out",
	})
}

// ResetPassword handles POST /api/v1/auth/reset-password - requests a reset
// link. Always responds 200 so the endpoint does not leak which emails
// exist.
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	redirectTo := config.GetConfig().PasswordResetURL
	_ = services.GetSessionService().ResetPassword(req.Email, redirectTo)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the email is registered, a reset link has been sent",
	})
}

// providerErrorResponse maps a provider error to a status code and a
// user-facing message, falling back to the given generic message.
func providerErrorResponse(err error, fallback string) (int, string) {
	var provErr *services.ProviderError
	if errors.As(err, &provErr) {
		status := provErr.StatusCode
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		return status, provErr.UserMessage()
	}
	return http.StatusBadGateway, fallback
}
