package rental

import (
	"fmt"

	"videorental/internal/pkg/apperr"
)

var (
	ErrRentalNotFound   = fmt.Errorf("%w: rental not found", apperr.ErrNotFound)
	ErrAlreadyReturned  = fmt.Errorf("%w: rental is already returned", apperr.ErrConflict)
	ErrNotReturnable    = fmt.Errorf("%w: rental cannot be returned", apperr.ErrConflict)
	ErrNotDeletable     = fmt.Errorf("%w: only active rentals can be deleted", apperr.ErrConflict)
	ErrMissingReference = fmt.Errorf("%w: client, cassette and tariff are required", apperr.ErrValidation)
	ErrInvalidDays      = fmt.Errorf("%w: days must be at least 1", apperr.ErrValidation)
	ErrInvalidCondition = fmt.Errorf("%w: unknown condition", apperr.ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: unknown rental status", apperr.ErrValidation)
)
