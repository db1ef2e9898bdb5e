package auth

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers login. Extra middleware (the login
// throttle) runs in front of the handler.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, mw ...gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", append(mw, h.Login)...)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)

	profile := protected.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
		profile.POST("/password", h.ChangePassword)
		profile.GET("/statistics", h.Statistics)
	}
}
