// Package auth gates the back office behind a single configured credential
// pair. It is a placeholder, not a user store.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingFields      = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// Message returns the text shown on the login form for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFields):
		return "Please fill in all fields"
	default:
		return "Invalid email or password"
	}
}

type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Authenticator struct {
	email    string
	password string
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]Session
}

type Option func(*Authenticator)

func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) {
		a.now = now
	}
}

func NewAuthenticator(email, password string, ttl time.Duration, opts ...Option) *Authenticator {
	a := &Authenticator{
		email:    email,
		password: password,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Login issues an admin session when email and password exactly match the
// configured pair. Any mismatch yields ErrInvalidCredentials.
func (a *Authenticator) Login(email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, ErrMissingFields
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !emailOK || !passwordOK {
		return Session{}, ErrInvalidCredentials
	}

	s := Session{
		Token:     uuid.NewString(),
		Email:     email,
		ExpiresAt: a.now().Add(a.ttl),
	}
	a.mu.Lock()
	a.sessions[s.Token] = s
	a.mu.Unlock()
	return s, nil
}

func (a *Authenticator) Authorize(token string) (Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[token]
	if !ok {
		return Session{}, ErrUnauthorized
	}
	if !a.now().Before(s.ExpiresAt) {
		delete(a.sessions, token)
		return Session{}, ErrUnauthorized
	}
	return s, nil
}

func (a *Authenticator) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// Sweep drops expired sessions and reports how many were removed.
func (a *Authenticator) Sweep() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	removed := 0
	for token, s := range a.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(a.sessions, token)
			removed++
		}
	}
	return removed
}
