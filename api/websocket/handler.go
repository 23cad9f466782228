package websocket

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Muneerali199/website-builder/internal/auth"
	apierrors "github.com/Muneerali199/website-builder/internal/errors"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/usage"
	ws "github.com/Muneerali199/website-builder/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     ws.CheckOrigin,
}

// UsageStreamHandler godoc
// @Summary Live usage feed
// @Description Websocket sending the current usage view on connect and again after every accepted prompt for the same visitor
// @Tags usage
// @Param token query string false "JWT for signed-in users"
// @Param session_id query string false "Anonymous session id"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/usage/stream [get]
func UsageStreamHandler(hub *ws.Hub, resolver *usage.Resolver, sessions usage.SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params ConnectParams
		if err := c.ShouldBindQuery(&params); err != nil {
			apierrors.BadRequest(c, "invalid parameters", err)
			return
		}

		ctx := c.Request.Context()
		id := auth.GetIdentity(c)

		if !id.SignedIn() && params.Token != "" {
			if claims, err := auth.ValidateJWT(params.Token); err == nil {
				id = usage.Identity{UserID: claims.UserID}
			}
		}

		responseHeader := http.Header{}

		if !id.SignedIn() {
			requested := id.SessionID
			if requested == "" {
				requested = params.SessionID
			}

			sessionID, err := sessions.Ensure(ctx, requested)
			if err != nil {
				apierrors.InternalError(c, "failed to start anonymous session", err)
				return
			}

			id.SessionID = sessionID
			responseHeader.Set(auth.SessionHeader, sessionID)
		}

		tracker, err := resolver.Open(ctx, id)
		if tracker == nil {
			apierrors.InternalError(c, "failed to load usage", err)
			return
		}

		if errors.Is(err, usage.ErrMalformedRecord) {
			logger.Warn("stored usage unreadable, streaming defaults", "feed", id.Key(), "error", err)
		}

		ipAddress := c.ClientIP()
		if ok, reason := hub.CanAcceptConnection(id.Key(), ipAddress); !ok {
			apierrors.TooManyRequests(c, reason)
			return
		}

		clientID := ws.GenerateClientID()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, responseHeader)
		if err != nil {
			logger.ErrorErr(err, "failed to upgrade connection",
				"feed", id.Key(),
				"ip", ipAddress,
			)
			return
		}

		client, err := ws.NewClient(clientID, ipAddress, id, tracker.Record().View(), conn, hub)
		if err != nil {
			logger.ErrorErr(err, "failed to create usage feed client", "feed", id.Key())
			conn.Close() //nolint:errcheck,gosec // G104: connection never handed to a pump
			return
		}

		select {
		case hub.Register <- client:
		case <-hub.Done():
			logger.Warn("usage feed shutting down, refusing connection", "feed", id.Key())
			conn.Close() //nolint:errcheck,gosec // G104: connection never handed to a pump
			return
		}

		go client.WritePump()
		go client.ReadPump()

		logger.Info("usage stream connected",
			"client_id", clientID,
			"feed", id.Key(),
			"ip", ipAddress,
		)
	}
}
