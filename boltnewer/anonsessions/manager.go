package anonsessions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Muneerali199/website-builder/internal/usage"
)

const (
	SessionExpiryDuration = 24 * time.Hour
	CleanupInterval       = 1 * time.Hour
)

// creates a new anonymous session manager
func NewManager() *Manager {
	return newManager(SessionExpiryDuration, CleanupInterval)
}

func newManager(expiry, cleanupInterval time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*AnonymousSession),
		stopChan: make(chan struct{}),
		expiry:   expiry,
	}

	// start cleanup goroutine
	go m.cleanupExpiredSessions(cleanupInterval)

	return m
}

// creates a new anonymous session
func (m *Manager) CreateSession() *AnonymousSession {
	now := time.Now()

	session := &AnonymousSession{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		LastActivity: now,
		storage:      make(map[string]string),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session
}

// retrieves a live session by ID
func (m *Manager) GetSession(sessionID string) (*AnonymousSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, false
	}

	if time.Since(session.lastActivity()) > m.expiry {
		return nil, false
	}

	return session, true
}

// returns the session for sessionID, or a fresh one when it is unknown or expired
func (m *Manager) GetOrCreate(sessionID string) (*AnonymousSession, bool) {
	if sessionID != "" {
		if session, ok := m.GetSession(sessionID); ok {
			session.Touch()
			return session, false
		}
	}

	return m.CreateSession(), true
}

// removes a session from memory
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// returns the number of tracked sessions
func (m *Manager) GetSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// returns a local storage source for the usage resolver
func (m *Manager) LocalSource() usage.LocalSource {
	return func(_ context.Context, sessionID string) (usage.KV, error) {
		session, ok := m.GetSession(sessionID)
		if !ok {
			return nil, ErrSessionNotFound
		}

		return session, nil
	}
}

// returns sessionID if it is live, otherwise the id of a new session
func (m *Manager) Ensure(_ context.Context, sessionID string) (string, error) {
	session, _ := m.GetOrCreate(sessionID)
	return session.ID, nil
}

// periodically removes expired sessions
func (m *Manager) cleanupExpiredSessions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpiredSessions()
		case <-m.stopChan:
			return
		}
	}
}

// removes all expired sessions
func (m *Manager) removeExpiredSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, session := range m.sessions {
		if now.Sub(session.lastActivity()) > m.expiry {
			delete(m.sessions, id)
		}
	}
}

// stops the cleanup goroutine
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}
