package stats

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	stats := r.Group("/stats")
	{
		stats.GET("/dashboard", handler.Dashboard)
		stats.GET("/activity", handler.Activity)
	}
}
