package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/seatshare-inc/seatshare/internal/shared/constants"
)

// PoolModel is the database persistence model for shared-subscription pools.
// SeatCount is written only by the seat reservation transaction in the grant
// repository; every other writer must leave it untouched.
type PoolModel struct {
	ID                uint   `gorm:"primarykey"`
	SID               string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: pool_xxx"`
	ServiceID         uint   `gorm:"not null;index:idx_service_pool"`
	CatalogPriceCents int64  `gorm:"not null;comment:official monthly price in cents"`
	SeatCap           int    `gorm:"not null"`
	SeatCount         int    `gorm:"not null;default:0"`
	AccessType        string `gorm:"not null;size:20"`
	AccessEmail       *string `gorm:"size:255"`
	AccessSecret      *string `gorm:"size:255"`
	InviteLink        *string `gorm:"size:500"`
	Active            bool   `gorm:"not null;default:true;index"`
	Version           int    `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (PoolModel) TableName() string {
	return constants.TablePools
}

// BeforeCreate hook for GORM
func (p *PoolModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
