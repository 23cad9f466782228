package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muneerali199/website-builder/internal/usage"
)

func identityRouter(mw gin.HandlerFunc) (*gin.Engine, *usage.Identity) {
	gin.SetMode(gin.TestMode)

	seen := &usage.Identity{}
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		*seen = GetIdentity(c)
		c.Status(http.StatusNoContent)
	})

	return r, seen
}

func TestOptionalAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT("7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f", "test@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers map[string]string
		want    usage.Identity
	}{
		{"nothing", nil, usage.Identity{}},
		{"session only", map[string]string{SessionHeader: "sess-1"}, usage.Identity{SessionID: "sess-1"}},
		{"bad token", map[string]string{"Authorization": "Bearer nope", SessionHeader: "sess-1"}, usage.Identity{SessionID: "sess-1"}},
		{"signed in", map[string]string{"Authorization": "Bearer " + token}, usage.Identity{UserID: "7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, seen := identityRouter(OptionalAuthMiddleware())

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tt.want, *seen)
		})
	}
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	r, _ := identityRouter(AuthMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization header required")
}

func TestAuthMiddleware_AcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	r, seen := identityRouter(AuthMiddleware())

	token, err := GenerateJWT("7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f", "test@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, seen.SignedIn())
}

type fixedIssuer struct {
	calls int
}

func (f *fixedIssuer) Ensure(_ context.Context, sessionID string) (string, error) {
	f.calls++
	if sessionID == "known" {
		return sessionID, nil
	}
	return "issued", nil
}

func TestAnonymousSessionMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT("7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f", "test@example.com")
	require.NoError(t, err)

	tests := []struct {
		name        string
		headers     map[string]string
		wantSession string
		wantIssued  int
	}{
		{"new visitor gets a session", nil, "issued", 1},
		{"known session kept", map[string]string{SessionHeader: "known"}, "known", 1},
		{"signed in users skip sessions", map[string]string{"Authorization": "Bearer " + token}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := &fixedIssuer{}

			gin.SetMode(gin.TestMode)
			r := gin.New()
			var seen usage.Identity
			r.GET("/whoami", OptionalAuthMiddleware(), AnonymousSessionMiddleware(issuer), func(c *gin.Context) {
				seen = GetIdentity(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantSession, seen.SessionID)
			assert.Equal(t, tt.wantSession, w.Header().Get(SessionHeader))
			assert.Equal(t, tt.wantIssued, issuer.calls)
		})
	}
}
