package inventory

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/cassettes", handler.List)
	r.GET("/cassettes/:id", handler.Get)
}

func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/cassettes", handler.Create)
	r.PATCH("/cassettes/:id", handler.Update)
	r.DELETE("/cassettes/:id", handler.Delete)
}
