package rental

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	rentals := r.Group("/rentals")
	{
		rentals.GET("", handler.List)
		rentals.GET("/overdue", handler.ListOverdue)
		rentals.GET("/:id", handler.Get)
		rentals.POST("", handler.Create)
		rentals.POST("/:id/return", handler.Return)
		rentals.DELETE("/:id", handler.Delete)
	}
}
