package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

// ListGenres handles GET /api/genres
func (h *Handler) ListGenres(c *gin.Context) {
	activeOnly := false
	if v := utils.QueryBool(c, "active"); v != nil {
		activeOnly = *v
	}
	genres, err := h.service.ListGenres(c.Request.Context(), activeOnly)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, genres)
}

// GetGenre handles GET /api/genres/:id
func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid genre ID")
		return
	}
	g, err := h.service.GetGenre(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

// CreateGenre handles POST /api/genres
func (h *Handler) CreateGenre(c *gin.Context) {
	var req GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadJSON(c)
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}
	g, err := h.service.CreateGenre(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, g)
}

// UpdateGenre handles PATCH /api/genres/:id
func (h *Handler) UpdateGenre(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid genre ID")
		return
	}
	var req UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadJSON(c)
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}
	g, err := h.service.UpdateGenre(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

// DeleteGenre handles DELETE /api/genres/:id
func (h *Handler) DeleteGenre(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid genre ID")
		return
	}
	if err := h.service.DeleteGenre(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Genre deleted"})
}

// ListMovies handles GET /api/movies
func (h *Handler) ListMovies(c *gin.Context) {
	limit, offset := utils.LimitOffset(c)
	res, err := h.service.ListMovies(c.Request.Context(), MovieFilter{
		Search:   c.Query("search"),
		GenreID:  utils.QueryInt64(c, "genre_id"),
		IsActive: utils.QueryBool(c, "active"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// GetMovie handles GET /api/movies/:id
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid movie ID")
		return
	}
	m, err := h.service.GetMovie(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// CreateMovie handles POST /api/movies
func (h *Handler) CreateMovie(c *gin.Context) {
	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadJSON(c)
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}
	m, err := h.service.CreateMovie(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m)
}

// UpdateMovie handles PATCH /api/movies/:id
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid movie ID")
		return
	}
	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadJSON(c)
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}
	m, err := h.service.UpdateMovie(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, m)
}

// DeleteMovie handles DELETE /api/movies/:id
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid movie ID")
		return
	}
	if err := h.service.DeleteMovie(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Movie deleted"})
}
