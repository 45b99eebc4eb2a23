package database

import (
	"gorm.io/gorm"

	"github.com/pageza/platewise/backend/internal/models"
)

// AutoMigrate creates or updates the schema for every model. Tests run
// it against sqlite; cmd/migrate applies the equivalent SQL files to
// postgres.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Step{},
	)
}
