package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zuri-studios/zuri-api/config"
)

// ProviderUser is the identity record held by the hosted auth provider.
type ProviderUser struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"user_metadata,omitempty"`
}

// FullName returns the full_name stored in the user's metadata, if any.
func (u *ProviderUser) FullName() string {
	if u == nil {
		return ""
	}
	return u.Metadata["full_name"]
}

// ProviderSession is the token bundle returned by the provider on sign-up
// and sign-in. Refreshing is the provider's own concern.
type ProviderSession struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	RefreshToken string       `json:"refresh_token"`
	User         ProviderUser `json:"user"`
}

// ProviderError is the error payload the hosted provider returns.
type ProviderError struct {
	StatusCode int
	Code       string `json:"error"`
	Message    string `json:"error_description"`
	Msg        string `json:"msg"`
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Msg
	}
	if msg == "" {
		msg = "authentication request failed"
	}
	return fmt.Sprintf("auth provider returned status %d: %s", e.StatusCode, msg)
}

// UserMessage returns user-facing text for the error, falling back to a
// generic credentials message.
func (e *ProviderError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Msg != "" {
		return e.Msg
	}
	return "Invalid email or password"
}

// AuthProvider is an HTTP client for the hosted auth provider's
// sign-up/sign-in/sign-out/recover endpoints.
type AuthProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewAuthProvider creates a new auth provider client
func NewAuthProvider(cfg *config.Config) *AuthProvider {
	// If the configured value already includes a protocol (for testing),
	// use it as-is
	base := cfg.AuthProviderURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	return &AuthProvider{
		baseURL: strings.TrimSuffix(base, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignUp creates a remote account, attaching the full name as user metadata.
// The provider creates the matching profile row through its own trigger.
func (p *AuthProvider) SignUp(email, password, fullName string) (*ProviderSession, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
		"data": map[string]string{
			"full_name": fullName,
		},
	}

	var session ProviderSession
	if err := p.post("/signup", "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignIn exchanges credentials for a session via the password grant.
func (p *AuthProvider) SignIn(email, password string) (*ProviderSession, error) {
	payload := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	var session ProviderSession
	if err := p.post("/token?grant_type=password", "", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut invalidates the session behind the given access token.
func (p *AuthProvider) SignOut(accessToken string) error {
	return p.post("/logout", accessToken, map[string]interface{}{}, nil)
}

// ResetPassword requests a password reset link for the given email.
// Fire-and-forget from the caller's perspective.
func (p *AuthProvider) ResetPassword(email, redirectTo string) error {
	payload := map[string]interface{}{
		"email":       email,
		"redirect_to": redirectTo,
	}
	return p.post("/recover", "", payload, nil)
}

// GetUser fetches the identity behind an access token. Used to recover an
// existing session at startup.
func (p *AuthProvider) GetUser(accessToken string) (*ProviderUser, error) {
	req, err := http.NewRequest(http.MethodGet, p.baseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+accessToken)

	var user ProviderUser
	if err := p.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// post sends a JSON body to a provider endpoint and decodes the response
// into out when out is non-nil.
func (p *AuthProvider) post(path, accessToken string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Add("Authorization", "Bearer "+accessToken)
	}

	return p.do(req, out)
}

func (p *AuthProvider) do(req *http.Request, out interface{}) error {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call auth provider: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		provErr := &ProviderError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		// Provider error bodies are JSON; keep the status-only error when
		// the body is something else.
		_ = json.Unmarshal(raw, provErr)
		return provErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode auth provider response: %w", err)
	}
	return nil
}
