package types

import (
	"github.com/google/uuid"

	"github.com/pageza/platewise/backend/internal/nutrition"
)

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateIngredientRequest is the payload for POST /ingredients.
type CreateIngredientRequest struct {
	Name   string           `json:"name" binding:"required"`
	Macros nutrition.Macros `json:"macros_per_serving"`
}

// RecipeIngredientInput is one line item of a recipe create request.
type RecipeIngredientInput struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}

// StepInput is one instruction of a recipe create request.
type StepInput struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
	Duration    *int   `json:"duration,omitempty"`
}

// CreateRecipeRequest is the payload for POST /recipes. The recipe and
// its children are persisted atomically.
type CreateRecipeRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	Servings    int                     `json:"servings" binding:"required,min=1"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
	Steps       []StepInput             `json:"steps"`
}

// SetVisibilityRequest is the payload for PATCH /recipes/:id/visibility.
type SetVisibilityRequest struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

// MacroPreviewRequest is the payload for POST /nutrition/macros, the
// live-preview aggregation used while a recipe form is being edited.
// Rows may be incomplete; invalid rows contribute nothing.
type MacroPreviewRequest struct {
	Servings    int                     `json:"servings"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// CaloriePreviewRequest is the payload for POST /nutrition/calories.
type CaloriePreviewRequest struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}
