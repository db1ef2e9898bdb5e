package catalog

type GenreRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateGenreRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

type CreateMovieRequest struct {
	Title       string  `json:"title" validate:"required,max=300"`
	GenreIDs    []int64 `json:"genre_ids" validate:"required,min=1"`
	Director    string  `json:"director" validate:"max=200"`
	Year        int     `json:"year" validate:"required"`
	Duration    int     `json:"duration" validate:"gte=0"`
	Description string  `json:"description" validate:"max=2000"`
	CoverURL    string  `json:"cover_url" validate:"omitempty,url,max=500"`
	Rating      Rating  `json:"rating"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateMovieRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=300"`
	GenreIDs    *[]int64 `json:"genre_ids"`
	Director    *string  `json:"director" validate:"omitempty,max=200"`
	Year        *int     `json:"year"`
	Duration    *int     `json:"duration" validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	CoverURL    *string  `json:"cover_url" validate:"omitempty,url,max=500"`
	Rating      *Rating  `json:"rating"`
	IsActive    *bool    `json:"is_active"`
}

type MovieListResponse struct {
	Movies []Movie `json:"movies"`
	Total  int64   `json:"total"`
}
