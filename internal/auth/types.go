package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// gin context keys set by the middlewares
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextSessionID = "session_id"
)

// header carrying the anonymous visitor's session id
const SessionHeader = "X-Session-ID"

const TokenTTL = 7 * 24 * time.Hour

// represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
