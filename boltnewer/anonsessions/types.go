package anonsessions

import (
	"errors"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

type Manager struct {
	sessions map[string]*AnonymousSession
	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
	expiry   time.Duration
}

// an anonymous visitor and the local storage their browser would keep
type AnonymousSession struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	storage      map[string]string
	mu           sync.RWMutex
}
