package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"trial-screening/pkg/wizard"
)

var ErrSessionExpired = errors.New("session expired")

// ControllerFactory builds the wizard for a new session id
type ControllerFactory func(sessionID string) *wizard.Controller

type session struct {
	controller *wizard.Controller
	expiresAt  time.Time
}

// SessionStore keeps each browser session's wizard in memory until it
// idles out. Nothing is persisted.
type SessionStore struct {
	newController ControllerFactory
	sessions      map[string]*session
	mu            sync.RWMutex
	timeout       time.Duration
	now           func() time.Time
}

func NewSessionStore(factory ControllerFactory, timeout time.Duration) *SessionStore {
	return &SessionStore{
		newController: factory,
		sessions:      make(map[string]*session),
		timeout:       timeout,
		now:           time.Now,
	}
}

// Create starts a new session and returns its id
func (s *SessionStore) Create() (string, *wizard.Controller) {
	id := uuid.NewString()
	c := s.newController(id)

	s.mu.Lock()
	s.sessions[id] = &session{controller: c, expiresAt: s.now().Add(s.timeout)}
	s.mu.Unlock()

	return id, c
}

// Get returns the session's wizard and extends its idle deadline
func (s *SessionStore) Get(id string) (*wizard.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionExpired
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionExpired
	}
	sess.expiresAt = s.now().Add(s.timeout)
	return sess.controller, nil
}

// Delete drops a session
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len reports how many sessions are held
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps every interval until stop is closed
func (s *SessionStore) StartJanitor(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
