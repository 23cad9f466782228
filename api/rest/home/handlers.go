package home

import (
	"net/http"

	"github.com/gin-gonic/gin"

	homepage "github.com/Muneerali199/website-builder/internal/home"
)

// RecommendationsHandler godoc
// @Summary Suggested prompts
// @Description Prompts offered under the input on the home page
// @Tags home
// @Produce json
// @Success 200 {object} RecommendationsResponse
// @Router /api/v1/recommendations [get]
func RecommendationsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, RecommendationsResponse{Recommendations: homepage.Recommendations})
}

// SidebarHandler godoc
// @Summary Sidebar destinations
// @Tags home
// @Produce json
// @Success 200 {object} SidebarResponse
// @Router /api/v1/sidebar [get]
func SidebarHandler(c *gin.Context) {
	c.JSON(http.StatusOK, SidebarResponse{Items: homepage.SidebarRoutes})
}
