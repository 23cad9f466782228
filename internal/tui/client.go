package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/config"
	"github.com/Muneerali199/website-builder/internal/usage"
)

// creates a REST client for the configured endpoint. requests are throttled
// to stay under the server's prompt rate limit.
func NewClient(cfg config.ClientConfig) *Client {
	return &Client{
		endpoint:   cfg.APIEndpoint,
		token:      cfg.Token,
		sessionID:  cfg.SessionID,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
	}
}

// returns the anonymous session id the server handed out, if any
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Client) SignedIn() bool {
	return c.token != ""
}

// fetches the visitor's current usage
func (c *Client) Usage(ctx context.Context) (usage.View, bool, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/api/v1/usage", nil)
	if err != nil {
		return usage.View{}, false, err
	}

	if resp.StatusCode != http.StatusOK {
		return usage.View{}, false, responseError(resp.StatusCode, body)
	}

	var result usageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return usage.View{}, false, fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Usage, result.SignedIn, nil
}

// sends a prompt and maps the response onto a submission outcome
func (c *Client) Submit(ctx context.Context, prompt string) (usage.Outcome, error) {
	payload, err := json.Marshal(submitRequest{Prompt: prompt})
	if err != nil {
		return usage.Outcome{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, body, err := c.do(ctx, http.MethodPost, "/api/v1/prompts", payload)
	if err != nil {
		return usage.Outcome{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var result submitResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return usage.Outcome{}, fmt.Errorf("failed to parse response: %w", err)
		}

		outcome := usage.Outcome{
			Signal: usage.SignalIgnored,
			Record: recordFromView(result.Usage),
		}

		if result.Status == "accepted" {
			outcome.Signal = usage.SignalAccepted
			outcome.Prompt = prompt
			if result.State != nil {
				outcome.Prompt = result.State.Prompt
			}
		}

		return outcome, nil

	case http.StatusUnauthorized:
		return usage.Outcome{Signal: usage.SignalMustAuthenticate, Record: usage.DefaultRecord()}, nil

	case http.StatusPaymentRequired:
		return usage.Outcome{
			Signal: usage.SignalQuotaExhausted,
			Record: usage.Record{Tier: usage.TierFree, RemainingTokens: 0},
		}, nil

	default:
		return usage.Outcome{}, responseError(resp.StatusCode, body)
	}
}

// returns a tea.Cmd loading the current usage
func (c *Client) LoadUsageCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		view, signedIn, err := c.Usage(ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return UsageLoadedMsg{view: view, signedIn: signedIn}
	}
}

// returns a tea.Cmd submitting a prompt
func (c *Client) SubmitCmd(prompt string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		outcome, err := c.Submit(ctx, prompt)
		return SubmitResultMsg{outcome: outcome, err: err}
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*http.Response, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if sessionID := c.SessionID(); sessionID != "" {
		req.Header.Set(auth.SessionHeader, sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if sessionID := resp.Header.Get(auth.SessionHeader); sessionID != "" {
		c.mu.Lock()
		c.sessionID = sessionID
		c.mu.Unlock()
	}

	return resp, body, nil
}

func responseError(status int, body []byte) error {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
	}

	return fmt.Errorf("request failed with status %d: %s", status, string(body))
}

func recordFromView(view usage.View) usage.Record {
	return usage.Record{Tier: view.Tier, RemainingTokens: view.RemainingTokens}
}
