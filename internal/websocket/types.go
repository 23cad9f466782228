package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// message type constants for the usage feed
const (
	// is sent whenever the subscriber's usage changes, and once on connect
	TypeUsageUpdate = "usage_update"

	// is sent when an error occurs
	TypeError = "error"

	// is sent by clients to keep the connection alive
	TypePing = "ping"

	// is sent by server in response to ping
	TypePong = "pong"

	// is sent by server before shutdown
	TypeServerShutdown = "server_shutdown"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// clients only send pings, so frames stay small
	maxMessageSize = 4 * 1024

	sendBufferSize = 32
)

// hub connection limit constants
const (
	maxConnectionsPerFeed = 5
	maxConnectionsPerIP   = 10

	// time clients get to read the shutdown notice before connections close
	defaultShutdownGrace = 500 * time.Millisecond
)

var ErrConnectionClosed = errors.New("connection closed")

// a frame on the usage feed
type Message struct {
	Type      string          `json:"type"`
	Sequence  uint64          `json:"sequence,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`

	feed string
}

type ServerShutdownPayload struct {
	Reason string `json:"reason"`
}

// fans usage changes out to every connection watching the same identity
type Hub struct {
	feeds         map[string]map[string]*Client
	sequences     map[string]uint64
	ipConnections map[string]int
	Register      chan *Client
	Unregister    chan *Client
	Broadcast     chan *Message
	shutdown      chan struct{}
	shutdownOnce  sync.Once
	shutdownGrace time.Duration
	mu            sync.RWMutex
}

// one websocket connection subscribed to a feed
type Client struct {
	ID        string
	Feed      string
	IPAddress string
	initial   *Message
	conn      *websocket.Conn
	hub       *Hub
	send      chan []byte
	closed    bool
	mu        sync.RWMutex
}
