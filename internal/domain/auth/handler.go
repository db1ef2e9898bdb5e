package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"videorental/internal/domain/employee"
	"videorental/internal/domain/rental"
	"videorental/internal/pkg/response"
	"videorental/internal/pkg/validator"
)

// Handler serves login and the caller's own profile.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login authenticates an employee and issues a JWT.
// @Summary		Login
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		request	body	LoginRequest	true	"login and password"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadJSON(c)
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.authError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Me handles GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	e, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.authError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// GetProfile handles GET /api/profile
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.service.Profile(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.authError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// UpdateProfile handles PATCH /api/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req employee.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadJSON(c)
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.authError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// ChangePassword handles POST /api/profile/password
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadJSON(c)
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		h.authError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password changed"})
}

// Statistics handles GET /api/profile/statistics?period=week|month|year
func (h *Handler) Statistics(c *gin.Context) {
	st, err := h.service.Statistics(c.Request.Context(), c.GetInt64("user_id"), rental.Period(c.Query("period")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) authError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Login or password is incorrect")
	case errors.Is(err, ErrAccountDisabled):
		response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is deactivated")
	default:
		response.FromError(c, err)
	}
}
