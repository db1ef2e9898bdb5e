package employee

import "github.com/gin-gonic/gin"

// RegisterAdminRoutes registers employee management; admin only.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.List)
		employees.GET("/:id", handler.Get)
		employees.POST("", handler.Create)
		employees.PATCH("/:id", handler.Update)
		employees.DELETE("/:id", handler.Delete)
	}
}
