// Package session holds the operator currently authenticated at the station.
package session

import (
	"sync"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

// Session is the authenticated state between a successful login and the next
// login or logout. The zero value is an empty, unauthenticated session.
type Session struct {
	mu            sync.RWMutex
	user          models.UserInfo
	authenticated bool
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Login replaces the current operator with u.
func (s *Session) Login(u models.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.authenticated = true
}

// Logout clears the session.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = models.UserInfo{}
	s.authenticated = false
}

// User returns the current operator and whether anyone is logged in.
func (s *Session) User() (models.UserInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.authenticated
}

// Prefix returns the label prefix of the current operator, or "" when nobody is logged in.
func (s *Session) Prefix() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Prefix
}

// Authenticated reports whether an operator is logged in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}
