package catalog

import "github.com/gin-gonic/gin"

// RegisterRoutes registers catalog reads for any authenticated employee.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/genres", handler.ListGenres)
	r.GET("/genres/:id", handler.GetGenre)
	r.GET("/movies", handler.ListMovies)
	r.GET("/movies/:id", handler.GetMovie)
}

// RegisterAdminRoutes registers catalog writes; admin only.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/genres", handler.CreateGenre)
	r.PATCH("/genres/:id", handler.UpdateGenre)
	r.DELETE("/genres/:id", handler.DeleteGenre)
	r.POST("/movies", handler.CreateMovie)
	r.PATCH("/movies/:id", handler.UpdateMovie)
	r.DELETE("/movies/:id", handler.DeleteMovie)
}
