package grant

import "errors"

var (
	ErrGrantNotFound = errors.New("grant not found")

	// ErrPoolFullAfterPayment signals that the pool filled between payment
	// capture and the atomic seat reservation. The payment must be
	// refunded; callers surface this distinctly from a pre-payment
	// capacity failure.
	ErrPoolFullAfterPayment = errors.New("pool filled after payment was captured")

	ErrPaymentReferenceRequired = errors.New("payment reference is required")
)
