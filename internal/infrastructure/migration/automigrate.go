package migration

import (
	"github.com/seatshare-inc/seatshare/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ServiceModel{},
		&models.PoolModel{},
		&models.GrantModel{},
		&models.RefundTaskModel{},
	}
}
