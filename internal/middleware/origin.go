package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"videorental/internal/domain/audit"
)

// Origin attaches the caller's address and user agent to the request
// context so audit entries can record where an action came from. The first
// X-Forwarded-For hop wins over the socket address.
func Origin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ""
		if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
			ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
		if ip == "" {
			ip = c.ClientIP()
		}
		ua := c.Request.UserAgent()
		if ua == "" {
			ua = "unknown"
		}

		ctx := audit.WithOrigin(c.Request.Context(), audit.Origin{IP: ip, UserAgent: ua})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
