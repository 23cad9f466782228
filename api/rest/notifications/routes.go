package notifications

import (
	"github.com/gin-gonic/gin"

	"github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/notifications"
)

func RegisterRoutes(router *gin.RouterGroup, svc *notifications.Service) {
	group := router.Group("/notifications", auth.AuthMiddleware())
	{
		group.GET("", ListHandler(svc))
		group.POST("/read-all", MarkAllReadHandler(svc))
		group.POST("/:id/read", MarkReadHandler(svc))
	}
}
