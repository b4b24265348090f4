package services

import (
	"log"
	"sync"
)

// SessionService wraps the hosted auth provider and holds the current
// session snapshot. Sign-in and sign-out replace the snapshot wholesale and
// notify subscribers, so dependent caches (the profile resolver) can react
// to session changes. Construction subscribes to the session source;
// Close tears the subscriptions down.
type SessionService struct {
	provider *AuthProvider

	mu          sync.RWMutex
	session     *ProviderSession
	user        *ProviderUser
	initErr     error
	subscribers map[int]func(*ProviderSession)
	nextSubID   int
}

var sessionServiceInstance *SessionService

// InitSessionService initializes the session service. When initialToken is
// non-empty an existing session is recovered from the provider;
// recovery failures are logged and surfaced via Err, not fatal.
func InitSessionService(provider *AuthProvider, initialToken string) *SessionService {
	s := &SessionService{
		provider:    provider,
		subscribers: make(map[int]func(*ProviderSession)),
	}

	if initialToken != "" {
		user, err := provider.GetUser(initialToken)
		if err != nil {
			log.Printf("Error recovering initial session: %v", err)
			s.initErr = err
		} else {
			s.session = &ProviderSession{AccessToken: initialToken, User: *user}
			s.user = user
		}
	}

	sessionServiceInstance = s
	return s
}

// GetSessionService returns the initialized session service instance
func GetSessionService() *SessionService {
	return sessionServiceInstance
}

// SetSessionService sets the session service instance (primarily for testing)
func SetSessionService(s *SessionService) {
	sessionServiceInstance = s
}

// SignUp creates a remote account. When the provider auto-confirms and
// returns a session, the snapshot is populated as for sign-in.
func (s *SessionService) SignUp(email, password, fullName string) (*ProviderSession, error) {
	session, err := s.provider.SignUp(email, password, fullName)
	if err != nil {
		log.Printf("Error signing up: %v", err)
		return nil, err
	}

	if session.AccessToken != "" {
		s.setSession(session)
	}
	return session, nil
}

// SignIn authenticates with the provider and replaces the current snapshot.
func (s *SessionService) SignIn(email, password string) (*ProviderSession, error) {
	session, err := s.provider.SignIn(email, password)
	if err != nil {
		log.Printf("Error signing in: %v", err)
		return nil, err
	}

	s.setSession(session)
	return session, nil
}

// SignOut revokes the given access token with the provider. The held
// snapshot is cleared only when it belongs to that token, so one user
// signing out never tears down another user's session. An empty token
// falls back to the snapshot's own token. The provider call is
// best-effort: local state is still cleared when it fails.
func (s *SessionService) SignOut(token string) error {
	s.mu.RLock()
	held := ""
	if s.session != nil {
		held = s.session.AccessToken
	}
	s.mu.RUnlock()

	if token == "" {
		token = held
	}

	var err error
	if token != "" {
		if err = s.provider.SignOut(token); err != nil {
			log.Printf("Error signing out: %v", err)
		}
	}

	if held != "" && token == held {
		s.setSession(nil)
	}
	return err
}

// ResetPassword requests a reset link. Fire-and-forget for the caller.
func (s *SessionService) ResetPassword(email, redirectTo string) error {
	if err := s.provider.ResetPassword(email, redirectTo); err != nil {
		log.Printf("Error resetting password: %v", err)
		return err
	}
	return nil
}

// CurrentSession returns the current session snapshot, nil when signed out.
func (s *SessionService) CurrentSession() *ProviderSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// CurrentUser returns the current user, nil when signed out.
func (s *SessionService) CurrentUser() *ProviderUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a session is held.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Err returns the initialization error, if session recovery failed.
func (s *SessionService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initErr
}

// Subscribe registers a session-change callback and returns its
// unsubscribe function. The callback receives nil on sign-out.
func (s *SessionService) Subscribe(fn func(*ProviderSession)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Close drops all subscriptions. Part of the service teardown lifecycle.
func (s *SessionService) Close() {
	s.mu.Lock()
	s.subscribers = make(map[int]func(*ProviderSession))
	s.mu.Unlock()
}

func (s *SessionService) setSession(session *ProviderSession) {
	s.mu.Lock()
	s.session = session
	if session != nil {
		user := session.User
		s.user = &user
	} else {
		s.user = nil
	}
	subs := make([]func(*ProviderSession), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(session)
	}
}
