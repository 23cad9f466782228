package notifications

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// notification types raised by prompt submissions
const (
	TypeQuotaLow       = "quota_low"
	TypeQuotaExhausted = "quota_exhausted"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Service struct {
	db *pgxpool.Pool
}

type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"created_at"`
}

type CreateRequest struct {
	UserID string
	Type   string
	Title  string
	Body   string
	Data   map[string]any
}
