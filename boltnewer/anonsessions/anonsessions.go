package anonsessions

import (
	"context"
	"time"
)

// returns a stored local value
func (s *AnonymousSession) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.storage[key]
	return value, ok, nil
}

// stores a local value and refreshes the session
func (s *AnonymousSession) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.storage[key] = value
	s.LastActivity = time.Now()
	return nil
}

// updates the last activity time
func (s *AnonymousSession) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastActivity = time.Now()
}

// safely retrieves the last activity time
func (s *AnonymousSession) lastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastActivity
}
