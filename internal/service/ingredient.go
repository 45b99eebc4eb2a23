package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/platewise/backend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrInvalid  = errors.New("invalid input")
)

// IngredientService handles owner-scoped ingredient operations.
// Ingredients are immutable once created: the UI only creates and
// deletes them.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// CreateIngredient validates and persists a per-100g profile.
func (s *IngredientService) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) (*models.Ingredient, error) {
	ingredient.Name = strings.TrimSpace(ingredient.Name)
	if ingredient.Name == "" {
		return nil, ErrInvalid
	}
	m := ingredient.Macros
	if m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 || m.Fiber < 0 || m.Sugar < 0 {
		return nil, ErrInvalid
	}
	if m.Calories != nil && *m.Calories < 0 {
		return nil, ErrInvalid
	}

	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// ListIngredients returns the user's ingredients, newest first.
func (s *IngredientService) ListIngredients(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// DeleteIngredient removes an ingredient the user owns, together with
// any recipe usages referencing it. The two deletes run in one
// transaction so a recipe never keeps a dangling reference.
func (s *IngredientService) DeleteIngredient(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&ingredient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("ingredient_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ingredient).Error
	})
}
