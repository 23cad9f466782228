package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/Muneerali199/website-builder/internal/usage"
)

const typeUsageUpdate = "usage_update"

// creates a feed for the API endpoint, e.g. http://localhost:8080
func NewFeed(apiEndpoint string) *Feed {
	endpoint := apiEndpoint
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = "ws://" + strings.TrimPrefix(endpoint, "http://")
	}

	return &Feed{
		endpoint: endpoint + "/api/v1/usage/stream",
		updates:  make(chan usage.View, 8),
	}
}

// dials the feed and starts reading. the first update is the current usage.
func (f *Feed) Connect(ctx context.Context, token, sessionID string) error {
	query := url.Values{}
	if token != "" {
		query.Set("token", token)
	}
	if sessionID != "" {
		query.Set("session_id", sessionID)
	}

	target := f.endpoint
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	f.mu.Lock()
	f.conn = conn
	f.mu.Unlock()

	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec
	conn.SetPingHandler(func(data string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
	})

	go f.readPump(conn)

	return nil
}

// continuously reads messages and forwards usage updates
func (f *Feed) readPump(conn *websocket.Conn) {
	defer close(f.updates)
	defer f.Close()

	for {
		var msg feedMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck,gosec

		if msg.Type != typeUsageUpdate {
			continue
		}

		var view usage.View
		if err := json.Unmarshal(msg.Payload, &view); err != nil {
			continue
		}

		f.updates <- view
	}
}

// closes the connection; safe to call more than once
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	f.closed = true
	if f.conn != nil {
		f.conn.Close() //nolint:errcheck,gosec
	}
}

// returns a tea.Cmd connecting to the feed
func (f *Feed) ConnectCmd(token, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := f.Connect(ctx, token, sessionID); err != nil {
			return FeedClosedMsg{err: err}
		}

		return FeedConnectedMsg{}
	}
}

// returns a tea.Cmd waiting for the next update
func (f *Feed) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		view, ok := <-f.updates
		if !ok {
			return FeedClosedMsg{}
		}

		return UsageUpdateMsg{view: view}
	}
}
