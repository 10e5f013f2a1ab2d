package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSlotUnavailable     = errors.New("slot unavailable")
	ErrIllegalTransition   = errors.New("illegal status transition")

	// Table lock errors
	ErrLockHeld           = errors.New("table lock held")
	ErrInvalidLockRequest = errors.New("invalid lock request")

	// Validation errors
	ErrValidation = errors.New("validation error")

	// Operation errors
	ErrStoreFailure = errors.New("store operation failed")
)
