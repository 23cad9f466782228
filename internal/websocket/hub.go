package websocket

import (
	"time"

	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/usage"
)

func NewHub() *Hub {
	return &Hub{
		feeds:         make(map[string]map[string]*Client),
		sequences:     make(map[string]uint64),
		ipConnections: make(map[string]int),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		Broadcast:     make(chan *Message, 256),
		shutdown:      make(chan struct{}),
		shutdownGrace: defaultShutdownGrace,
	}
}

// starts the hub's main loop; returns after Shutdown
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Broadcast:
			h.mu.Lock()
			h.broadcastToFeed(message.feed, message)
			h.mu.Unlock()

		case <-h.shutdown:
			h.closeAllConnections()
			return
		}
	}
}

// queues a usage change for every subscriber of the identity's feed
func (h *Hub) Publish(id usage.Identity, view usage.View) {
	msg, err := NewMessage(TypeUsageUpdate, view)
	if err != nil {
		logger.ErrorErr(err, "failed to build usage update", "feed", id.Key())
		return
	}

	msg.feed = id.Key()

	select {
	case h.Broadcast <- msg:
	case <-h.shutdown:
	default:
		logger.Warn("usage feed backlog full, dropping update", "feed", msg.feed)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.feeds[client.Feed] == nil {
		h.feeds[client.Feed] = make(map[string]*Client)
	}

	h.feeds[client.Feed][client.ID] = client

	if client.IPAddress != "" {
		h.ipConnections[client.IPAddress]++
	}

	logger.Info("usage feed client registered",
		"client_id", client.ID,
		"feed", client.Feed,
	)

	if client.initial != nil {
		if err := client.Send(client.initial); err != nil {
			logger.ErrorErr(err, "failed to send initial usage",
				"client_id", client.ID,
				"feed", client.Feed,
			)
		}
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	feedClients, exists := h.feeds[client.Feed]
	if !exists {
		return
	}

	if _, exists := feedClients[client.ID]; !exists {
		return
	}

	delete(feedClients, client.ID)
	client.Close()

	if client.IPAddress != "" {
		h.ipConnections[client.IPAddress]--

		if h.ipConnections[client.IPAddress] <= 0 {
			delete(h.ipConnections, client.IPAddress)
		}
	}

	logger.Info("usage feed client unregistered",
		"client_id", client.ID,
		"feed", client.Feed,
	)

	if len(feedClients) == 0 {
		delete(h.feeds, client.Feed)
		delete(h.sequences, client.Feed)
	}
}

// must be called with lock held
func (h *Hub) broadcastToFeed(feed string, msg *Message) {
	feedClients, exists := h.feeds[feed]
	if !exists {
		return
	}

	h.sequences[feed]++
	msg.Sequence = h.sequences[feed]

	for clientID, client := range feedClients {
		if err := client.Send(msg); err != nil {
			logger.ErrorErr(err, "failed to send usage update",
				"client_id", clientID,
				"feed", feed,
			)
		}
	}
}

// returns the number of connections watching a feed
func (h *Hub) GetClientCount(feed string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.feeds[feed])
}

func (h *Hub) GetFeedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.feeds)
}

// checks if a new connection should be allowed based on limits
func (h *Hub) CanAcceptConnection(feed, ipAddress string) (bool, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.feeds[feed]) >= maxConnectionsPerFeed {
		return false, "Maximum connections per account exceeded"
	}

	if h.ipConnections[ipAddress] >= maxConnectionsPerIP {
		return false, "Maximum connections per IP address exceeded"
	}

	return true, ""
}

// stops the main loop after notifying and closing every connection
func (h *Hub) Shutdown() {
	h.shutdownOnce.Do(func() {
		close(h.shutdown)
	})
}

// closed once Shutdown has been called; senders on Register select on it
func (h *Hub) Done() <-chan struct{} {
	return h.shutdown
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()

	logger.Info("notifying usage feed clients of server shutdown")

	shutdownMsg, err := NewMessage(TypeServerShutdown, ServerShutdownPayload{
		Reason: "server is shutting down for maintenance",
	})
	if err == nil {
		for feed, feedClients := range h.feeds {
			for _, client := range feedClients {
				if err := client.Send(shutdownMsg); err != nil {
					logger.ErrorErr(err, "failed to send shutdown notification",
						"client_id", client.ID,
						"feed", feed,
					)
				}
			}
		}
	}

	h.mu.Unlock()

	// give clients time to receive the shutdown message
	time.Sleep(h.shutdownGrace)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, feedClients := range h.feeds {
		for _, client := range feedClients {
			client.Close()
		}
	}

	h.feeds = make(map[string]map[string]*Client)
	h.sequences = make(map[string]uint64)
	h.ipConnections = make(map[string]int)
}
