package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/seatshare-inc/seatshare/internal/shared/constants"
)

// ServiceModel is the database persistence model for catalog services.
// This is the anti-corruption layer between domain and database.
type ServiceModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: svc_xxx"`
	Name      string `gorm:"not null;size:100"`
	Slug      string `gorm:"uniqueIndex;not null;size:100"`
	IconURL   string `gorm:"size:500"`
	SortOrder int            `gorm:"not null;default:0"`
	Active    bool           `gorm:"not null;default:true;index"`
	Metadata  datatypes.JSON `gorm:"comment:admin display metadata"`
	Version   int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ServiceModel) TableName() string {
	return constants.TableServices
}
