package audit

import "github.com/gin-gonic/gin"

// RegisterProfileRoutes registers the caller-scoped audit routes.
func RegisterProfileRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/profile/activity", handler.List)
	r.GET("/profile/login-history", handler.LoginHistory)
}

// RegisterFeedRoutes registers the websocket activity feed; it authenticates itself.
func RegisterFeedRoutes(r gin.IRouter, handler *Handler) {
	r.GET("/ws/activity", handler.Feed)
}
