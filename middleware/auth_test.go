package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuri-studios/zuri-api/models"
)

// stubVerifier returns fixed claims for a known token and an error for
// everything else.
func stubVerifier(validToken, subject, email string) TokenVerifier {
	return func(ctx context.Context, token string) (*validator.ValidatedClaims, error) {
		if token != validToken {
			return nil, errors.New("invalid token")
		}
		return &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Issuer:  "https://auth.test.zuristudios.com/",
				Subject: subject,
			},
			CustomClaims: &CustomClaims{Email: email},
		}, nil
	}
}

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name              string
		setupRequest      func(*http.Request)
		wantAuthenticated bool
		wantUserID        string
		wantEmail         string
	}{
		{
			name: "valid bearer token",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer good-token")
			},
			wantAuthenticated: true,
			wantUserID:        "user-123",
			wantEmail:         "ada@example.com",
		},
		{
			name: "valid session cookie",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-token"})
			},
			wantAuthenticated: true,
			wantUserID:        "user-123",
			wantEmail:         "ada@example.com",
		},
		{
			name: "invalid token continues unauthenticated",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer forged-token")
			},
			wantAuthenticated: false,
		},
		{
			name:              "no token continues unauthenticated",
			setupRequest:      func(r *http.Request) {},
			wantAuthenticated: false,
		},
		{
			name: "header wins over cookie",
			setupRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer forged-token")
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-token"})
			},
			wantAuthenticated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AuthState

			router := gin.New()
			router.Use(Authenticate(stubVerifier("good-token", "user-123", "ada@example.com")))
			router.GET("/probe", func(c *gin.Context) {
				got = MustAuthState(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			tt.setupRequest(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, "Authenticate never rejects on its own")
			assert.Equal(t, tt.wantAuthenticated, got.Authenticated)
			if tt.wantAuthenticated {
				assert.Equal(t, tt.wantUserID, got.UserID)
				assert.Equal(t, tt.wantEmail, got.Email)
				require.NotNil(t, got.Claims)
			} else {
				assert.Empty(t, got.UserID)
				assert.Nil(t, got.Claims)
			}
		})
	}
}

func TestMustAuthState_PanicsWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.Panics(t, func() { MustAuthState(c) }, "Missing middleware is a wiring bug")
}

func TestAuthState_RoleDerivations(t *testing.T) {
	tests := []struct {
		name      string
		profile   *models.Profile
		wantAdmin bool
		wantStaff bool
	}{
		{"admin", &models.Profile{Role: models.RoleAdmin}, true, true},
		{"manager", &models.Profile{Role: models.RoleManager}, false, true},
		{"staff", &models.Profile{Role: models.RoleStaff}, false, true},
		{"customer", &models.Profile{Role: models.RoleCustomer}, false, false},
		{"no profile resolved", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := AuthState{Profile: tt.profile}
			assert.Equal(t, tt.wantAdmin, state.IsAdmin())
			assert.Equal(t, tt.wantStaff, state.IsStaff())
		})
	}
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		state      AuthState
		wantStatus int
	}{
		{
			name:       "authenticated passes",
			state:      AuthState{UserID: "user-1", Authenticated: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "anonymous rejected with 401",
			state:      AuthState{},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) { c.Set(authStateKey, tt.state) })
			router.Use(RequireSession())
			router.GET("/secure", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminProfile := &models.Profile{UserID: "user-1", Role: models.RoleAdmin}
	customerProfile := &models.Profile{UserID: "user-2", Role: models.RoleCustomer}

	tests := []struct {
		name       string
		state      AuthState
		roles      []string
		wantStatus int
	}{
		{
			name:       "admin allowed",
			state:      AuthState{UserID: "user-1", Authenticated: true, Profile: adminProfile},
			roles:      []string{models.RoleAdmin, models.RoleManager},
			wantStatus: http.StatusOK,
		},
		{
			name:       "customer forbidden",
			state:      AuthState{UserID: "user-2", Authenticated: true, Profile: customerProfile},
			roles:      []string{models.RoleAdmin, models.RoleManager},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing profile forbidden",
			state:      AuthState{UserID: "user-3", Authenticated: true},
			roles:      []string{models.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "anonymous unauthorized",
			state:      AuthState{},
			roles:      []string{models.RoleAdmin},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty role set admits any session",
			state:      AuthState{UserID: "user-2", Authenticated: true, Profile: customerProfile},
			roles:      nil,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(func(c *gin.Context) { c.Set(authStateKey, tt.state) })
			router.Use(RequireRoles(tt.roles...))
			router.GET("/secure", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		setupFunc func(*gin.Context)
		wantID    string
		wantErr   bool
	}{
		{
			name: "successfully extracts user ID",
			setupFunc: func(c *gin.Context) {
				c.Set("user_id", "user-123456")
			},
			wantID:  "user-123456",
			wantErr: false,
		},
		{
			name: "user ID not found in context",
			setupFunc: func(c *gin.Context) {
				// Don't set user_id
			},
			wantID:  "",
			wantErr: true,
		},
		{
			name: "user ID is not a string",
			setupFunc: func(c *gin.Context) {
				c.Set("user_id", 12345) // Set as int instead of string
			},
			wantID:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.setupFunc(c)

			gotID, err := GetUserID(c)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, gotID)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, gotID)
			}
		})
	}
}

func TestGetClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		setupFunc func(*gin.Context)
		wantErr   bool
	}{
		{
			name: "successfully extracts claims",
			setupFunc: func(c *gin.Context) {
				claims := &validator.ValidatedClaims{
					RegisteredClaims: validator.RegisteredClaims{
						Issuer:  "https://auth.test.zuristudios.com/",
						Subject: "user-123456",
					},
					CustomClaims: &CustomClaims{
						Email: "ada@example.com",
					},
				}
				c.Set("validated_claims", claims)
			},
			wantErr: false,
		},
		{
			name: "claims not found in context",
			setupFunc: func(c *gin.Context) {
				// Don't set validated_claims
			},
			wantErr: true,
		},
		{
			name: "claims are not the expected type",
			setupFunc: func(c *gin.Context) {
				c.Set("validated_claims", "invalid")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.setupFunc(c)

			claims, err := GetClaims(c)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, claims)
			}
		})
	}
}

func TestAuthError(t *testing.T) {
	err := &AuthError{
		Code:    "TEST_ERROR",
		Message: "This is a test error",
	}

	assert.Equal(t, "This is a test error", err.Error())
}
