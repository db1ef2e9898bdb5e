package client

import (
	"fmt"

	"videorental/internal/pkg/apperr"
)

var (
	ErrClientNotFound = fmt.Errorf("%w: client not found", apperr.ErrNotFound)
	ErrPhoneTaken     = fmt.Errorf("%w: client with this phone already exists", apperr.ErrConflict)
	ErrHasRentals     = fmt.Errorf("%w: client has active rentals", apperr.ErrConflict)
	ErrNameRequired   = fmt.Errorf("%w: full name is required", apperr.ErrValidation)
	ErrPhoneRequired  = fmt.Errorf("%w: phone is required", apperr.ErrValidation)
	ErrInvalidPhone   = fmt.Errorf("%w: invalid phone number", apperr.ErrValidation)
	ErrInvalidStatus  = fmt.Errorf("%w: unknown client status", apperr.ErrValidation)
)
