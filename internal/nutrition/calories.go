package nutrition

import "math"

// Calories per gram of each macro-nutrient (Atwater factors).
const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

// DeriveCalories computes the calorie content implied by a macro
// breakdown, rounded to the nearest integer (half away from zero,
// which is "round half up" on the non-negative macro domain).
func DeriveCalories(protein, carbs, fat float64) float64 {
	return math.Round(protein*caloriesPerGramProtein + carbs*caloriesPerGramCarbs + fat*caloriesPerGramFat)
}
