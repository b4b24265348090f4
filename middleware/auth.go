package middleware

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/services"
)

const (
	// SessionCookieName is the cookie browsers carry for guarded page loads.
	SessionCookieName = "session_token"

	authStateKey = "auth_state"
)

// CustomClaims contains the custom data we read from provider tokens.
type CustomClaims struct {
	Email string `json:"email"`
}

// Validate does nothing here, but is needed to satisfy the
// validator.CustomClaims interface.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// AuthState is the per-request auth context: the validated identity, the
// resolved profile, and the derived flags. Assembled by Authenticate and
// read by everything downstream.
type AuthState struct {
	UserID        string
	Email         string
	Claims        *validator.ValidatedClaims
	Profile       *models.Profile
	Loading       bool
	Authenticated bool
}

// IsAdmin reports whether the resolved profile carries the admin role.
func (s AuthState) IsAdmin() bool {
	return s.Profile.IsAdmin()
}

// IsStaff reports whether the resolved profile carries a back-office role.
func (s AuthState) IsStaff() bool {
	return s.Profile.IsStaff()
}

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier func(ctx context.Context, token string) (*validator.ValidatedClaims, error)

// NewTokenVerifier builds a verifier against the hosted auth provider's
// JWKS endpoint.
func NewTokenVerifier(cfg *config.Config) TokenVerifier {
	issuer := cfg.AuthIssuer
	if issuer == "" {
		issuer = cfg.AuthProviderURL
	}
	if !strings.HasPrefix(issuer, "http://") && !strings.HasPrefix(issuer, "https://") {
		issuer = "https://" + issuer
	}
	if !strings.HasSuffix(issuer, "/") {
		issuer += "/"
	}

	issuerURL, err := url.Parse(issuer)
	if err != nil {
		log.Fatalf("Failed to parse the issuer url: %v", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	// validator.New rejects an empty audience list; fall back to the
	// issuer itself when no audience is configured.
	audiences := []string{cfg.AuthAudience}
	if cfg.AuthAudience == "" {
		audiences = []string{issuerURL.String()}
	}

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		audiences,
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		log.Fatalf("Failed to set up the jwt validator: %v", err)
	}

	return func(ctx context.Context, token string) (*validator.ValidatedClaims, error) {
		claims, err := jwtValidator.ValidateToken(ctx, token)
		if err != nil {
			return nil, err
		}
		return claims.(*validator.ValidatedClaims), nil
	}
}

// ExtractToken pulls the bearer token from the Authorization header, or
// from the session cookie for plain browser navigations.
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// Authenticate populates the request's AuthState without rejecting
// anything. Requests with no token, or an invalid one, continue
// unauthenticated; the guard or RequireSession decides what to do with
// that.
func Authenticate(verify TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := AuthState{}

		if token := ExtractToken(c); token != "" {
			claims, err := verify(c.Request.Context(), token)
			if err != nil {
				log.Printf("Encountered error while validating JWT: %v", err)
			} else {
				state.UserID = claims.RegisteredClaims.Subject
				state.Claims = claims
				state.Authenticated = true
				if custom, ok := claims.CustomClaims.(*CustomClaims); ok {
					state.Email = custom.Email
				}

				if profiles := services.GetProfileService(); profiles != nil {
					profile, err := profiles.Resolve(state.UserID)
					if err != nil {
						log.Printf("Error resolving profile for %s: %v", state.UserID, err)
					} else {
						state.Profile = profile
					}
				}

				c.Set("user_id", state.UserID)
				c.Set("validated_claims", claims)
			}
		}

		c.Set(authStateKey, state)
		c.Next()
	}
}

// MustAuthState returns the request's AuthState. It panics when the
// handler is not mounted behind Authenticate; that's a wiring bug, not a
// runtime condition, so it fails fast.
func MustAuthState(c *gin.Context) AuthState {
	value, exists := c.Get(authStateKey)
	if !exists {
		panic("auth state not available: handler is not mounted behind the Authenticate middleware")
	}
	return value.(AuthState)
}

// RequireSession rejects unauthenticated requests with a JSON 401. Used on
// API endpoints where a redirect makes no sense.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := MustAuthState(c)
		if !state.Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles rejects requests whose profile role is not in the allowed
// set with a JSON 403. An empty set admits any authenticated user.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := MustAuthState(c)
		if !state.Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			c.Abort()
			return
		}

		if len(allowedRoles) > 0 && !roleAllowed(state.Profile, allowedRoles) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions to access this resource",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func roleAllowed(profile *models.Profile, allowedRoles []string) bool {
	if profile == nil {
		return false
	}
	for _, role := range allowedRoles {
		if profile.Role == role {
			return true
		}
	}
	return false
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get("validated_claims")
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
