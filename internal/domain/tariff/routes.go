package tariff

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	tariffs := r.Group("/tariffs")
	{
		tariffs.GET("", handler.List)
		tariffs.GET("/default", handler.GetDefault)
		tariffs.POST("/calculate", handler.Calculate)
		tariffs.GET("/:id", handler.Get)
	}
}

// RegisterAdminRoutes expects r to already enforce the admin role.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	tariffs := r.Group("/tariffs")
	{
		tariffs.POST("", handler.Create)
		tariffs.PATCH("/:id", handler.Update)
		tariffs.DELETE("/:id", handler.Delete)
	}
}
