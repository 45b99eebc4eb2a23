package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/platewise/backend/internal/middleware"
	"github.com/pageza/platewise/backend/internal/models"
	"github.com/pageza/platewise/backend/internal/nutrition"
	"github.com/pageza/platewise/backend/internal/service"
	"github.com/pageza/platewise/backend/internal/types"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	authService   *service.AuthService
	createLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService, createLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		createLimiter: createLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		// Public discovery and view counting need no token.
		recipes.GET("/public", h.ListPublicRecipes)
		recipes.POST("/:id/views", h.IncrementViews)

		authed := recipes.Group("")
		authed.Use(middleware.AuthMiddleware(h.authService))
		{
			authed.GET("", h.ListRecipes)
			authed.GET("/:id", h.GetRecipe)
			authed.POST("", h.createLimiter.Middleware(), h.CreateRecipe)
			authed.DELETE("/:id", h.DeleteRecipe)
			authed.PATCH("/:id/visibility", h.SetVisibility)
		}
	}
}

// recipeResponse decorates a stored recipe with its computed
// per-serving macros so list and detail views render nutrition
// without a second round trip.
type recipeResponse struct {
	models.Recipe
	MacrosPerServing nutrition.Macros `json:"macros_per_serving"`
}

func (h *RecipeHandler) respond(recipe *models.Recipe) recipeResponse {
	return recipeResponse{
		Recipe:           *recipe,
		MacrosPerServing: h.recipeService.PerServingMacros(recipe),
	}
}

func (h *RecipeHandler) respondAll(recipes []models.Recipe) []recipeResponse {
	out := make([]recipeResponse, len(recipes))
	for i := range recipes {
		out[i] = h.respond(&recipes[i])
	}
	return out
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": h.respondAll(recipes)})
}

func (h *RecipeHandler) ListPublicRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListPublicRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch public recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": h.respondAll(recipes)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": h.respond(recipe)})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	recipe := &models.Recipe{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Servings:    req.Servings,
	}
	for _, ri := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: ri.IngredientID,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		})
	}
	for _, s := range req.Steps {
		recipe.Steps = append(recipe.Steps, models.Step{
			StepNumber:  s.StepNumber,
			Instruction: s.Instruction,
			Duration:    s.Duration,
		})
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		if errors.Is(err, service.ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": h.respond(created)})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted successfully", "id": id})
}

func (h *RecipeHandler) SetVisibility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing is_public"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.recipeService.SetVisibility(c.Request.Context(), userID, id, *req.IsPublic); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "visibility updated", "id": id, "is_public": *req.IsPublic})
}

func (h *RecipeHandler) IncrementViews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	views, err := h.recipeService.IncrementViews(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		case errors.Is(err, service.ErrNotPublic):
			c.JSON(http.StatusForbidden, gin.H{"error": "recipe is not public"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to increment views"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"views": views})
}
