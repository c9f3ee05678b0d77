package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Program errors
	ErrProgramNotFound = errors.New("program not found")

	// Purchase errors
	ErrPurchaseNotFound      = errors.New("purchase not found")
	ErrInvalidQuantity       = errors.New("quantity must be a positive integer")
	ErrUnallocatedBalance    = errors.New("allocation does not cover the total cost")
	ErrPurchaseOrderRequired = errors.New("purchase order number required for account payment")

	// Discount errors
	ErrDiscountRejected = errors.New("discount code rejected")
	ErrStaleDiscount    = errors.New("discount response no longer matches the purchase")

	// Booking errors
	ErrEventNotFound   = errors.New("event not found")
	ErrAttendeeInvalid = errors.New("attendee validation failed")
	ErrBookingRejected = errors.New("booking rejected")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrUpstreamFunctionFailed  = errors.New("upstream function call failed")
)
