package employee

import (
	"fmt"

	"videorental/internal/pkg/apperr"
)

var (
	ErrEmployeeNotFound = fmt.Errorf("%w: employee not found", apperr.ErrNotFound)
	ErrLoginTaken       = fmt.Errorf("%w: login already exists", apperr.ErrConflict)
	ErrLastActiveAdmin  = fmt.Errorf("%w: cannot remove the last active admin", apperr.ErrConflict)
	ErrDeleteSelf       = fmt.Errorf("%w: cannot delete your own account", apperr.ErrConflict)
	ErrInvalidRole      = fmt.Errorf("%w: role must be admin or cashier", apperr.ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 6 characters", apperr.ErrValidation)
	ErrLoginTooShort    = fmt.Errorf("%w: login must be at least 3 characters", apperr.ErrValidation)
)

var ErrWrongPassword = fmt.Errorf("%w: current password is incorrect", apperr.ErrValidation)
