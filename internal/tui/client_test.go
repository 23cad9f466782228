package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muneerali199/website-builder/internal/config"
	"github.com/Muneerali199/website-builder/internal/usage"
)

// serves canned responses for the prompt endpoint
func promptServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/usage":
			w.Header().Set("X-Session-ID", "sess-1")
			json.NewEncoder(w).Encode(usageResponse{ //nolint:errcheck
				Usage: usage.Record{Tier: usage.TierFree, RemainingTokens: 1}.View(),
				Store: "local",
			})
		case "/api/v1/prompts":
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(body) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.ClientConfig{APIEndpoint: srv.URL})
}

func TestClientUsage_KeepsSessionID(t *testing.T) {
	srv := promptServer(t, http.StatusOK, nil)
	client := newTestClient(srv)

	view, signedIn, err := client.Usage(context.Background())

	require.NoError(t, err)
	assert.False(t, signedIn)
	assert.Equal(t, 1, view.RemainingTokens)
	assert.True(t, view.QuotaLow)
	assert.Equal(t, "sess-1", client.SessionID())
}

func TestClientSubmit_Accepted(t *testing.T) {
	srv := promptServer(t, http.StatusOK, map[string]any{
		"status":   "accepted",
		"redirect": "/builder",
		"state":    map[string]string{"prompt": "portfolio"},
		"usage":    usage.Record{Tier: usage.TierFree, RemainingTokens: 2}.View(),
	})

	outcome, err := newTestClient(srv).Submit(context.Background(), "portfolio")

	require.NoError(t, err)
	assert.Equal(t, usage.SignalAccepted, outcome.Signal)
	assert.Equal(t, "portfolio", outcome.Prompt)
	assert.Equal(t, usage.Record{Tier: usage.TierFree, RemainingTokens: 2}, outcome.Record)
}

func TestClientSubmit_Refusals(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   usage.Signal
	}{
		{"must authenticate", http.StatusUnauthorized, usage.SignalMustAuthenticate},
		{"quota exhausted", http.StatusPaymentRequired, usage.SignalQuotaExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := promptServer(t, tt.status, errorResponse{Error: "refused", Message: "no"})

			outcome, err := newTestClient(srv).Submit(context.Background(), "portfolio")

			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Signal)
		})
	}
}

func TestClientSubmit_ServerError(t *testing.T) {
	srv := promptServer(t, http.StatusInternalServerError, errorResponse{Error: "server_error", Message: "boom"})

	_, err := newTestClient(srv).Submit(context.Background(), "portfolio")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_error")
}

func TestNewFeed_Endpoint(t *testing.T) {
	assert.Equal(t, "ws://localhost:8080/api/v1/usage/stream", NewFeed("http://localhost:8080").endpoint)
	assert.Equal(t, "wss://example.com/api/v1/usage/stream", NewFeed("https://example.com").endpoint)
}
