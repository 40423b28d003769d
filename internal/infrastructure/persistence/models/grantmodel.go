package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/seatshare-inc/seatshare/internal/shared/constants"
)

// GrantModel is the database persistence model for purchased seat grants.
// PaymentReference carries a unique index: it is the idempotency key that
// makes purchase retries safe.
type GrantModel struct {
	ID               uint      `gorm:"primarykey"`
	SID              string    `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: grant_xxx"`
	UserID           uint      `gorm:"not null;index:idx_user_grant"`
	PoolID           uint      `gorm:"not null;index:idx_pool_grant"`
	ServiceID        uint      `gorm:"not null;index:idx_service_grant"`
	StartDate        time.Time `gorm:"not null"`
	ExpiryDate       time.Time `gorm:"not null;index:idx_expiry"`
	DurationDays     int       `gorm:"not null"`
	AmountCents      int64     `gorm:"not null;comment:amount actually charged in cents"`
	IsRecurring      bool      `gorm:"not null;default:false"`
	PaymentReference string    `gorm:"uniqueIndex;not null;size:100"`
	AccessType       string    `gorm:"not null;size:20;comment:credential snapshot at purchase time"`
	AccessEmail      *string   `gorm:"size:255"`
	AccessSecret     *string   `gorm:"size:255"`
	InviteLink       *string   `gorm:"size:500"`
	Active           bool      `gorm:"not null;default:true;index"`
	Version          int       `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (GrantModel) TableName() string {
	return constants.TableGrants
}

// BeforeCreate hook for GORM
func (g *GrantModel) BeforeCreate(tx *gorm.DB) error {
	if g.Version == 0 {
		g.Version = 1
	}
	return nil
}
