package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/boltnewer/users"
	"github.com/Muneerali199/website-builder/internal/auth"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, userRepo *users.Repository, providers []string) {
	authGroup := router.Group("/auth")
	{
		authGroup.GET("/providers", ProvidersHandler(providers))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", auth.AuthMiddleware(), GetCurrentUserHandler(userRepo))
		authGroup.GET("/:provider", BeginAuthHandler(providers))
		authGroup.GET("/:provider/callback", CallbackHandler(userRepo, providers))
	}
}
