package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/prompts", nil)

	fn(c)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestQuotaExhausted(t *testing.T) {
	w, body := respond(t, func(c *gin.Context) { QuotaExhausted(c, "/pricing") })

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, CodeQuotaExhausted, body.Error)
	assert.Equal(t, "/pricing", body.Redirect)
}

func TestMustAuthenticate(t *testing.T) {
	w, body := respond(t, MustAuthenticate)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, CodeMustAuthenticate, body.Error)
	assert.Empty(t, body.Redirect)
}

func TestInternalError_SanitizedInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	w, body := respond(t, func(c *gin.Context) {
		InternalError(c, "failed to load usage", fmt.Errorf("query users: %w", pgx.ErrNoRows))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "resource not found", body.Details)
}

func TestClassifyError(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	tests := []struct {
		name     string
		err      error
		category string
	}{
		{"no rows", pgx.ErrNoRows, CategoryNotFound},
		{"deadline", context.DeadlineExceeded, CategoryTimeout},
		{"dial", fmt.Errorf("dial tcp: connection refused"), CategoryNetwork},
		{"redis", fmt.Errorf("redis: pool exhausted"), CategoryDatabase},
		{"binding", fmt.Errorf("binding failed"), CategoryValidation},
		{"other", fmt.Errorf("boom"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := classifyError(tt.err)
			assert.Equal(t, tt.category, info.category)
			assert.Equal(t, tt.err.Error(), info.sanitized)
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3F2504E0-4F89-11D3-9A0C-0305E82C3301"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.True(t, IsValidUUID("7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f"))
	assert.False(t, IsValidUUID("7d5c1f0e2a9b4c3d8e1f0a1b2c3d4e5f"))
	assert.False(t, IsValidUUID("{7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f}"))
	assert.False(t, IsValidUUID("urn:uuid:7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5f"))
	assert.False(t, IsValidUUID("7d5c1f0e-2a9b-4c3d-8e1f-0a1b2c3d4e5g"))
}
