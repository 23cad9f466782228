package tui

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/Muneerali199/website-builder/internal/home"
	"github.com/Muneerali199/website-builder/internal/usage"
)

// represents the current screen of the TUI
type AppState int

const (
	StateHome AppState = iota
	StateBuilder
	StatePage
)

const (
	requestTimeout = 15 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	writeWait      = 10 * time.Second
)

// main TUI application model
type Model struct {
	state    AppState
	width    int
	height   int
	err      error
	signedIn bool

	client *Client
	feed   *Feed
	page   *home.Page
	replay *replaySubmitter

	input       textinput.Model
	submitting  bool
	sidebarItem int

	// where the last navigation went and what it carried
	destination string
	builder     *home.BuilderState

	renderer *glamour.TermRenderer
}

// talks to the REST API on behalf of one visitor
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter

	mu        sync.Mutex
	sessionID string
}

// subscribes to the live usage feed
type Feed struct {
	endpoint string
	updates  chan usage.View

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// sent when the initial usage load completes
type UsageLoadedMsg struct {
	view     usage.View
	signedIn bool
}

// sent when a submission round-trip completes
type SubmitResultMsg struct {
	outcome usage.Outcome
	err     error
}

// sent for every update pushed over the feed
type UsageUpdateMsg struct {
	view usage.View
}

// sent when the feed connects
type FeedConnectedMsg struct{}

// sent when the feed closes; the TUI keeps working without it
type FeedClosedMsg struct {
	err error
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// REST API response shapes

type usageResponse struct {
	Usage     usage.View `json:"usage"`
	Store     string     `json:"store"`
	SignedIn  bool       `json:"signed_in"`
	SessionID string     `json:"session_id,omitempty"`
}

type submitRequest struct {
	Prompt string `json:"prompt"`
}

type submitResponse struct {
	Status   string             `json:"status"`
	Redirect string             `json:"redirect,omitempty"`
	State    *home.BuilderState `json:"state,omitempty"`
	Usage    usage.View         `json:"usage"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

type feedMessage struct {
	Type     string          `json:"type"`
	Sequence uint64          `json:"sequence,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}
