package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/platewise/backend/internal/models"
	"github.com/pageza/platewise/backend/internal/nutrition"
)

var ErrNotPublic = errors.New("recipe is not public")

// RecipeService handles recipe operations and bridges stored recipes
// to the nutrition aggregation engine.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe validates and persists a recipe together with its
// ingredient usages and steps in one transaction. Step instructions
// are trimmed and must be non-empty; steps are renumbered so that
// step numbers are contiguous from 1 in the submitted order.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	recipe.Name = strings.TrimSpace(recipe.Name)
	if recipe.Name == "" || recipe.Servings < 1 {
		return nil, ErrInvalid
	}
	for _, ri := range recipe.Ingredients {
		if ri.IngredientID == uuid.Nil || ri.Quantity <= 0 {
			return nil, ErrInvalid
		}
	}

	sort.SliceStable(recipe.Steps, func(i, j int) bool {
		return recipe.Steps[i].StepNumber < recipe.Steps[j].StepNumber
	})
	for i := range recipe.Steps {
		recipe.Steps[i].Instruction = strings.TrimSpace(recipe.Steps[i].Instruction)
		if recipe.Steps[i].Instruction == "" {
			return nil, ErrInvalid
		}
		if d := recipe.Steps[i].Duration; d != nil && *d < 0 {
			return nil, ErrInvalid
		}
		recipe.Steps[i].StepNumber = i + 1
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return s.getByID(ctx, recipe.ID)
}

// GetRecipe returns a recipe the requester may read: their own, or
// anyone's public recipe.
func (s *RecipeService) GetRecipe(ctx context.Context, id, requesterID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != requesterID && !recipe.IsPublic {
		return nil, ErrNotFound
	}
	return recipe, nil
}

// ListRecipes returns the user's recipes, newest first, with
// ingredients and ordered steps preloaded.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.preloaded(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListPublicRecipes returns every public recipe, newest first. No
// authentication is required to read them.
func (s *RecipeService) ListPublicRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.preloaded(ctx).
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// DeleteRecipe removes a recipe the user owns together with its
// usages and steps.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Step{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// SetVisibility toggles the public flag on a recipe the user owns.
// Visibility changes independently of content edits.
func (s *RecipeService) SetVisibility(ctx context.Context, userID, id uuid.UUID, isPublic bool) error {
	result := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_public", isPublic)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter of a public recipe and
// returns the new count. Private recipes are never counted.
func (s *RecipeService) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if !recipe.IsPublic {
		return 0, ErrNotPublic
	}

	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return 0, err
	}

	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return 0, err
	}
	return recipe.Views, nil
}

// PerServingMacros computes the per-serving nutrient profile of a
// recipe from its preloaded ingredient usages.
func (s *RecipeService) PerServingMacros(recipe *models.Recipe) nutrition.Macros {
	usages := make([]nutrition.Usage, 0, len(recipe.Ingredients))
	byID := make(map[uuid.UUID]nutrition.Macros, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		usages = append(usages, nutrition.Usage{
			IngredientID: ri.IngredientID,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		})
		if ri.Ingredient != nil {
			byID[ri.IngredientID] = ri.Ingredient.Macros
		}
	}
	return nutrition.Aggregate(usages, byID, recipe.Servings)
}

func (s *RecipeService) getByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.preloaded(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) preloaded(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Ingredients.Ingredient").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		})
}
