package inventory

import (
	"fmt"

	"videorental/internal/pkg/apperr"
)

var (
	ErrUnitNotFound      = fmt.Errorf("%w: media unit not found", apperr.ErrNotFound)
	ErrUnitUnavailable   = fmt.Errorf("%w: media unit is not available", apperr.ErrConflict)
	ErrUnitNotRented     = fmt.Errorf("%w: media unit is not rented", apperr.ErrConflict)
	ErrUnitInUse         = fmt.Errorf("%w: media unit has active rentals", apperr.ErrConflict)
	ErrUnitRented        = fmt.Errorf("%w: status of a rented unit changes only through rentals", apperr.ErrConflict)
	ErrSerialTaken       = fmt.Errorf("%w: serial number already exists", apperr.ErrConflict)
	ErrStatusRented      = fmt.Errorf("%w: status rented is set only by issuing a rental", apperr.ErrValidation)
	ErrInvalidFormat     = fmt.Errorf("%w: unknown format", apperr.ErrValidation)
	ErrInvalidCondition  = fmt.Errorf("%w: unknown condition", apperr.ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: unknown status", apperr.ErrValidation)
	ErrInvalidPrice      = fmt.Errorf("%w: purchase price must not be negative", apperr.ErrValidation)
	ErrMovieRequired     = fmt.Errorf("%w: movie is required", apperr.ErrValidation)
	ErrPurchasePriceNeed = fmt.Errorf("%w: purchase price is required", apperr.ErrValidation)
)
