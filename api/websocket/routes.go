package websocket

import (
	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/usage"
	ws "github.com/Muneerali199/website-builder/internal/websocket"
)

func RegisterRoutes(router *gin.RouterGroup, hub *ws.Hub, resolver *usage.Resolver, sessions usage.SessionIssuer) {
	router.GET("/usage/stream", auth.OptionalAuthMiddleware(), UsageStreamHandler(hub, resolver, sessions))
}
