package client

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	clients := r.Group("/clients")
	{
		clients.GET("", handler.List)
		clients.GET("/:id", handler.Get)
		clients.POST("", handler.Create)
		clients.PATCH("/:id", handler.Update)
	}
}

// RegisterAdminRoutes registers client deletion; r must enforce the admin role.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	r.DELETE("/clients/:id", handler.Delete)
}
