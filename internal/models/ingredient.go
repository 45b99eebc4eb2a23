package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/platewise/backend/internal/nutrition"
)

// Ingredient is a user-owned nutrient profile. Macros are stored per
// 100 grams; Macros.Calories, when set, is an explicit user override
// of the value derived from protein/carbs/fat and is never validated
// against them.
type Ingredient struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Macros    nutrition.Macros `gorm:"embedded" json:"macros_per_serving"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
