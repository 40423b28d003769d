package usecases

import (
	"context"
	"fmt"

	"github.com/seatshare-inc/seatshare/internal/application/payment/paymentgateway"
	"github.com/seatshare-inc/seatshare/internal/domain/grant"
	"github.com/seatshare-inc/seatshare/internal/shared/biztime"
	"github.com/seatshare-inc/seatshare/internal/shared/logger"
)

const refundBatchSize = 50

// RetryRefundsUseCase drains the refund task queue: each due task asks the
// payment gateway to return the captured amount. Failures back off
// exponentially until the attempt budget runs out.
type RetryRefundsUseCase struct {
	refundTaskRepo grant.RefundTaskRepository
	gateway        paymentgateway.Gateway
	maxAttempts    int
	logger         logger.Interface
}

func NewRetryRefundsUseCase(
	refundTaskRepo grant.RefundTaskRepository,
	gateway paymentgateway.Gateway,
	maxAttempts int,
	logger logger.Interface,
) *RetryRefundsUseCase {
	return &RetryRefundsUseCase{
		refundTaskRepo: refundTaskRepo,
		gateway:        gateway,
		maxAttempts:    maxAttempts,
		logger:         logger,
	}
}

// Execute attempts one batch of due refund tasks and returns how many were
// attempted.
func (uc *RetryRefundsUseCase) Execute(ctx context.Context) (int, error) {
	due, err := uc.refundTaskRepo.FindDue(ctx, biztime.NowUTC(), refundBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to find due refund tasks: %w", err)
	}

	attempted := 0
	for _, task := range due {
		if ctx.Err() != nil {
			return attempted, ctx.Err()
		}

		attempted++

		refundErr := uc.gateway.Refund(ctx, paymentgateway.RefundRequest{
			PaymentReference: task.PaymentReference(),
			AmountCents:      task.AmountCents(),
			Reason:           task.Reason(),
		})
		if refundErr != nil {
			task.RecordFailure(refundErr, uc.maxAttempts)
			if task.Status() == grant.RefundStatusFailed {
				uc.logger.Errorw("refund task exhausted attempts, needs manual intervention",
					"refund_sid", task.SID(),
					"payment_reference", task.PaymentReference(),
					"attempts", task.Attempts(),
					"error", refundErr)
			} else {
				uc.logger.Warnw("refund attempt failed, will retry",
					"refund_sid", task.SID(),
					"payment_reference", task.PaymentReference(),
					"attempts", task.Attempts(),
					"next_attempt_at", task.NextAttemptAt(),
					"error", refundErr)
			}
		} else {
			task.MarkSucceeded()
			uc.logger.Infow("refund completed",
				"refund_sid", task.SID(),
				"payment_reference", task.PaymentReference(),
				"amount_cents", task.AmountCents())
		}

		if err := uc.refundTaskRepo.Update(ctx, task); err != nil {
			uc.logger.Errorw("failed to persist refund task state",
				"refund_sid", task.SID(), "error", err)
		}
	}

	return attempted, nil
}
