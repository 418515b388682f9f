package initializers

import (
	"github.com/Kariqs/mobistore-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Address{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
	)
	if err != nil {
		return err
	}
	zap.S().Info("Database synced successfully.")
	return nil
}
