package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/internal/errors"
	"github.com/Muneerali199/website-builder/internal/usage"
)

// validates JWT tokens and adds user info to context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			errors.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			errors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)

		c.Next()
	}
}

// validates JWT if present but doesn't require it. the anonymous session
// header is always recorded so usage can fall back to local storage.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID := strings.TrimSpace(c.GetHeader(SessionHeader)); sessionID != "" {
			c.Set(ContextSessionID, sessionID)
		}

		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := ValidateJWT(token); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUserEmail, claims.Email)
			}
		}

		c.Next()
	}
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}

// returns who is asking: the signed-in user, or the anonymous session
func GetIdentity(c *gin.Context) usage.Identity {
	return usage.Identity{
		UserID:    c.GetString(ContextUserID),
		SessionID: c.GetString(ContextSessionID),
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// gives anonymous visitors a usable session id after OptionalAuthMiddleware
// and echoes it back so the client can keep it
func AnonymousSessionMiddleware(issuer usage.SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, signedIn := GetUserID(c); signedIn {
			c.Next()
			return
		}

		sessionID, err := issuer.Ensure(c.Request.Context(), c.GetString(ContextSessionID))
		if err != nil {
			errors.InternalError(c, "failed to start anonymous session", err)
			c.Abort()
			return
		}

		c.Set(ContextSessionID, sessionID)
		c.Header(SessionHeader, sessionID)

		c.Next()
	}
}
