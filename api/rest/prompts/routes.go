package prompts

import (
	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/internal/auth"
)

// registers prompt submission behind the given rate limit middleware
func RegisterRoutes(router *gin.RouterGroup, deps Deps, rateLimit gin.HandlerFunc) {
	handlers := []gin.HandlerFunc{
		auth.OptionalAuthMiddleware(),
		auth.AnonymousSessionMiddleware(deps.Sessions),
	}

	if rateLimit != nil {
		handlers = append(handlers, rateLimit)
	}

	handlers = append(handlers, SubmitHandler(deps))
	router.POST("/prompts", handlers...)
}
