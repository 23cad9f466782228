package usage

import (
	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/usage"
)

func RegisterRoutes(router *gin.RouterGroup, resolver *usage.Resolver, sessions usage.SessionIssuer) {
	router.GET("/usage",
		auth.OptionalAuthMiddleware(),
		auth.AnonymousSessionMiddleware(sessions),
		GetUsageHandler(resolver),
	)
}
