package database

import (
	"fmt"

	"myStarCompanion/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Character{},
		&domain.LightCone{},
		&domain.Relic{},
		&domain.Currency{},
		&domain.Material{},
		&domain.UserRelic{},
		&domain.UserCharacter{},
		&domain.UserLightCone{},
		&domain.InventoryItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
