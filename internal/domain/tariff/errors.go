package tariff

import (
	"fmt"

	"videorental/internal/pkg/apperr"
)

var (
	ErrTariffNotFound     = fmt.Errorf("%w: tariff not found", apperr.ErrNotFound)
	ErrNoActiveTariff     = fmt.Errorf("%w: no active tariff", apperr.ErrNotFound)
	ErrNameTaken          = fmt.Errorf("%w: tariff name already exists", apperr.ErrConflict)
	ErrLastActiveTariff   = fmt.Errorf("%w: cannot delete the last active tariff", apperr.ErrConflict)
	ErrTariffHasRentals   = fmt.Errorf("%w: tariff has active rentals", apperr.ErrConflict)
	ErrInvalidDays        = fmt.Errorf("%w: days must be at least 1", apperr.ErrValidation)
	ErrDuplicateMinDays   = fmt.Errorf("%w: duration discounts must have distinct min_days", apperr.ErrValidation)
	ErrInvalidDiscount    = fmt.Errorf("%w: discount must be between 0 and 100", apperr.ErrValidation)
	ErrInvalidPrice       = fmt.Errorf("%w: base price per day must not be negative", apperr.ErrValidation)
	ErrInvalidMultiplier  = fmt.Errorf("%w: overdue multiplier must be at least 1", apperr.ErrValidation)
	ErrInvalidDamageRates = fmt.Errorf("%w: damage multipliers must not be negative", apperr.ErrValidation)
	ErrNameRequired       = fmt.Errorf("%w: name is required", apperr.ErrValidation)
)
