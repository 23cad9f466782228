package websocket

// query parameters accepted when opening the usage stream. browsers cannot set
// headers on websocket requests, so credentials may ride in the query.
type ConnectParams struct {
	Token     string `form:"token"`
	SessionID string `form:"session_id" binding:"max=64"`
}
