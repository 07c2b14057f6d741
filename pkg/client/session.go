package client

import (
	"errors"
	"sync"
	"time"

	"tosika/pkg/jwt"
)

// ErrSessionExpired signals that the stored token has lapsed, either by a
// local expiry pre-check or by a 401/403 from the backend. Callers should
// prompt for a fresh login.
var ErrSessionExpired = errors.New("session expired, please log in again")

// Session holds the bearer token for authenticated calls. It is safe for
// concurrent use.
type Session struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	userID    string
	role      string
}

func NewSession() *Session {
	return &Session{}
}

// Set stores a token. The expiry claim is read without verifying the
// signature: the client only needs it for the pre-emptive expiry check, the
// backend still validates every request.
func (s *Session) Set(token, userID, role string) error {
	expiresAt, err := jwt.Expiry(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = expiresAt
	s.userID = userID
	s.role = role
	return nil
}

// Token returns the stored token, failing with ErrSessionExpired when no
// token is held or the expiry claim has passed. An expired session never
// reaches the network.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", ErrSessionExpired
	}
	if time.Now().After(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.token, nil
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) Active() bool {
	_, err := s.Token()
	return err == nil
}

// Clear drops the stored token, used on logout and on a 401/403 reply.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	s.userID = ""
	s.role = ""
}
