package usage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muneerali199/website-builder/boltnewer/anonsessions"
	"github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/usage"
)

type staticProfile map[string]any

func (p staticProfile) Metadata(context.Context) (map[string]any, error) {
	return p, nil
}

func (p staticProfile) UpdateMetadata(context.Context, map[string]any) error {
	return nil
}

func newRouter(t *testing.T, profile usage.Profile) (*gin.Engine, *anonsessions.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := anonsessions.NewManager()
	t.Cleanup(sessions.Stop)

	resolver := usage.NewResolver(func(string) usage.Profile { return profile }, sessions.LocalSource())

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), resolver, sessions)
	return r, sessions
}

func get(t *testing.T, r *gin.Engine, headers map[string]string) (*httptest.ResponseRecorder, UsageResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestGetUsage_SignedIn(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	r, _ := newRouter(t, staticProfile{"tier": "enterprise", "remainingTokens": 0})

	token, err := auth.GenerateJWT("7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f", "test@example.com")
	require.NoError(t, err)

	_, resp := get(t, r, map[string]string{"Authorization": "Bearer " + token})

	assert.True(t, resp.SignedIn)
	assert.Equal(t, "profile", resp.Store)
	assert.True(t, resp.Usage.Unlimited)
	assert.Empty(t, resp.SessionID)
}

func TestGetUsage_AnonymousDefaultsAndKeepsSession(t *testing.T) {
	r, sessions := newRouter(t, staticProfile{})

	w, resp := get(t, r, nil)

	assert.False(t, resp.SignedIn)
	assert.Equal(t, "local", resp.Store)
	assert.Equal(t, usage.DefaultRecord().View(), resp.Usage)
	require.NotEmpty(t, resp.SessionID)
	assert.Equal(t, resp.SessionID, w.Header().Get(auth.SessionHeader))

	_, again := get(t, r, map[string]string{auth.SessionHeader: resp.SessionID})
	assert.Equal(t, resp.SessionID, again.SessionID)
	assert.Equal(t, 1, sessions.GetSessionCount())
}

func TestGetUsage_AnonymousReadsLocalRecord(t *testing.T) {
	r, sessions := newRouter(t, staticProfile{})

	session := sessions.CreateSession()
	require.NoError(t, session.Set(context.Background(), usage.LocalStorageKey, `{"tier":"free","remainingTokens":1}`))

	_, resp := get(t, r, map[string]string{auth.SessionHeader: session.ID})

	assert.Equal(t, 1, resp.Usage.RemainingTokens)
	assert.True(t, resp.Usage.QuotaLow)
}

func TestGetUsage_MalformedLocalRecordFallsBack(t *testing.T) {
	r, sessions := newRouter(t, staticProfile{})

	session := sessions.CreateSession()
	require.NoError(t, session.Set(context.Background(), usage.LocalStorageKey, `{not json`))

	_, resp := get(t, r, map[string]string{auth.SessionHeader: session.ID})

	assert.Equal(t, usage.DefaultRecord().View(), resp.Usage)
}
