package audit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"videorental/internal/logger"
	"videorental/internal/pkg/jwt"
	"videorental/internal/pkg/response"
	"videorental/internal/pkg/utils"
)

const roleAdmin = "admin"

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwt.Service
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{service: service, hub: hub, jwt: jwtService}
}

type listResponse struct {
	Entries []Entry `json:"entries"`
	Total   int64   `json:"total"`
}

// List handles GET /api/profile/activity
// Admins may pass employee_id; cashiers always get their own entries.
func (h *Handler) List(c *gin.Context) {
	limit, offset := utils.LimitOffset(c)
	f := Filter{
		EmployeeID: utils.QueryInt64(c, "employee_id"),
		Type:       Type(c.Query("type")),
		EntityType: c.Query("entity_type"),
		Limit:      limit,
		Offset:     offset,
	}

	entries, total, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role") == roleAdmin, f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, listResponse{Entries: entries, Total: total})
}

// LoginHistory handles GET /api/profile/login-history
func (h *Handler) LoginHistory(c *gin.Context) {
	history, err := h.service.LoginHistory(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"history": history, "total": len(history)})
}

// Feed handles GET /ws/activity?token=JWT
//
// Browsers cannot set headers on a websocket handshake, so the token
// travels in the query string.
func (h *Handler) Feed(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required")
		return
	}
	claims, err := h.jwt.Parse(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WarnContext(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}
	h.hub.ServeWS(conn, claims.EmployeeID, claims.IsAdmin())
}
