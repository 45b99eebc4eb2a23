package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/platewise/backend/internal/middleware"
	"github.com/pageza/platewise/backend/internal/nutrition"
	"github.com/pageza/platewise/backend/internal/service"
	"github.com/pageza/platewise/backend/internal/types"
)

// NutritionHandler exposes the aggregation engine to the recipe and
// ingredient forms: the macros endpoint powers the live nutrition
// preview while a recipe is being edited, and the calories endpoint
// previews a single ingredient's implied calorie count before it is
// saved. Both tolerate incomplete form rows.
type NutritionHandler struct {
	ingredientService *service.IngredientService
	authService       *service.AuthService
}

func NewNutritionHandler(ingredientService *service.IngredientService, authService *service.AuthService) *NutritionHandler {
	return &NutritionHandler{
		ingredientService: ingredientService,
		authService:       authService,
	}
}

func (h *NutritionHandler) RegisterRoutes(router *gin.RouterGroup) {
	nutritionGroup := router.Group("/nutrition")
	nutritionGroup.Use(middleware.AuthMiddleware(h.authService))
	{
		nutritionGroup.POST("/macros", h.PreviewMacros)
		nutritionGroup.POST("/calories", h.PreviewCalories)
	}
}

func (h *NutritionHandler) PreviewMacros(c *gin.Context) {
	var req types.MacroPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	ingredients, err := h.ingredientService.ListIngredients(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}

	byID := make(map[uuid.UUID]nutrition.Macros, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing.Macros
	}

	usages := make([]nutrition.Usage, 0, len(req.Ingredients))
	for _, ri := range req.Ingredients {
		usages = append(usages, nutrition.Usage{
			IngredientID: ri.IngredientID,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"macros_per_serving": nutrition.Aggregate(usages, byID, req.Servings),
	})
}

func (h *NutritionHandler) PreviewCalories(c *gin.Context) {
	var req types.CaloriePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"calories": nutrition.DeriveCalories(req.Protein, req.Carbs, req.Fat),
	})
}
