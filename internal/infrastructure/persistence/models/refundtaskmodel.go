package models

import (
	"time"

	"github.com/seatshare-inc/seatshare/internal/shared/constants"
)

// RefundTaskModel is the database persistence model for refund compensation
// tasks created when a pool fills after payment capture.
type RefundTaskModel struct {
	ID               uint   `gorm:"primarykey"`
	SID              string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: ref_xxx"`
	PaymentReference string `gorm:"uniqueIndex;not null;size:100"`
	AmountCents      int64  `gorm:"not null"`
	Reason           string `gorm:"size:255"`
	Status           string `gorm:"not null;size:20;index:idx_refund_status"`
	Attempts         int    `gorm:"not null;default:0"`
	LastError        *string `gorm:"size:500"`
	NextAttemptAt    time.Time `gorm:"not null;index:idx_refund_next_attempt"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (RefundTaskModel) TableName() string {
	return constants.TableRefundTasks
}
