package stats

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"videorental/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dashboard handles GET /api/stats/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

// Activity handles GET /api/stats/activity?limit=10
func (h *Handler) Activity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.service.RecentActivity(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role") == "admin", limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
