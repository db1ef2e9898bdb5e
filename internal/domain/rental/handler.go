package rental

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"videorental/internal/domain"
	"videorental/internal/pkg/response"
	"videorental/internal/pkg/utils"
	"videorental/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/rentals
func (h *Handler) List(c *gin.Context) {
	limit, offset := utils.LimitOffset(c)
	res, err := h.service.List(c.Request.Context(), Filter{
		Status:   domain.RentalStatus(c.Query("status")),
		ClientID: utils.QueryInt64(c, "client_id"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ListOverdue handles GET /api/rentals/overdue
func (h *Handler) ListOverdue(c *gin.Context) {
	rentals, err := h.service.ListOverdue(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rentals)
}

// Get handles GET /api/rentals/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rental ID")
		return
	}
	r, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// Create handles POST /api/rentals
func (h *Handler) Create(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadJSON(c)
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}
	r, err := h.service.Issue(c.Request.Context(), IssueInput{
		ClientID:    req.ClientID,
		MediaUnitID: req.MediaUnitID,
		TariffID:    req.TariffID,
		Days:        req.Days,
		StaffID:     c.GetInt64("user_id"),
		Notes:       req.Notes,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

// Return handles POST /api/rentals/:id/return
func (h *Handler) Return(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rental ID")
		return
	}
	var req ReturnRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadJSON(c)
			return
		}
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}
	res, err := h.service.Return(c.Request.Context(), id, ReturnInput{
		Condition: req.Condition,
		Notes:     req.Notes,
		StaffID:   c.GetInt64("user_id"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Delete handles DELETE /api/rentals/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rental ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Rental deleted"})
}
