// Package paymentgateway defines the contract to the external payment
// provider. Charging happens before the seat reservation transaction; Refund
// is the compensation path when the pool fills in between.
package paymentgateway

import "context"

// RefundRequest asks the provider to return a captured payment.
type RefundRequest struct {
	PaymentReference string
	AmountCents      int64
	Reason           string
}

// Gateway is implemented by payment provider adapters. All operations are
// idempotent on the payment reference.
type Gateway interface {
	// Refund returns a captured payment to the purchaser.
	Refund(ctx context.Context, req RefundRequest) error
}
