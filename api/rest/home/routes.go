package home

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recommendations", RecommendationsHandler)
	router.GET("/sidebar", SidebarHandler)
}
