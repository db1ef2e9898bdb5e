package catalog

import (
	"fmt"

	"videorental/internal/pkg/apperr"
)

var (
	ErrGenreNotFound   = fmt.Errorf("%w: genre not found", apperr.ErrNotFound)
	ErrMovieNotFound   = fmt.Errorf("%w: movie not found", apperr.ErrNotFound)
	ErrGenreExists     = fmt.Errorf("%w: genre already exists", apperr.ErrConflict)
	ErrGenreInUse      = fmt.Errorf("%w: genre is used by movies", apperr.ErrConflict)
	ErrMovieHasUnits   = fmt.Errorf("%w: movie has media units", apperr.ErrConflict)
	ErrGenresRequired  = fmt.Errorf("%w: at least one genre is required", apperr.ErrValidation)
	ErrUnknownGenre    = fmt.Errorf("%w: unknown genre", apperr.ErrValidation)
	ErrInvalidYear     = fmt.Errorf("%w: year is out of range", apperr.ErrValidation)
	ErrInvalidRating   = fmt.Errorf("%w: unknown rating", apperr.ErrValidation)
	ErrTitleRequired   = fmt.Errorf("%w: title is required", apperr.ErrValidation)
	ErrGenreNameNeeded = fmt.Errorf("%w: genre name is required", apperr.ErrValidation)
)
