package nutrition

import (
	"math"

	"github.com/google/uuid"
)

// Usage is one recipe line item: an ingredient reference plus how much
// of it the recipe uses.
type Usage struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}

// contribution resolves the per-100g profile a usage contributes, or
// ok=false when the row must be skipped: a missing ingredient
// reference, a non-positive quantity, or an id absent from the lookup.
// Draft form rows hit all three mid-edit, so skipping is the defined
// behaviour rather than an error.
func contribution(u Usage, byID map[uuid.UUID]Macros) (Macros, bool) {
	if u.IngredientID == uuid.Nil || u.Quantity <= 0 {
		return Macros{}, false
	}
	per100, ok := byID[u.IngredientID]
	return per100, ok
}

// Aggregate sums the macro contributions of the given usages and
// returns the per-serving profile. Ingredient profiles are per 100
// grams, so each usage is normalised to grams and scaled by grams/100.
// An ingredient's explicit calorie override takes precedence over the
// value derived from its macros.
//
// The calorie field of the result stays nil until the first usage
// contributes; from then on it is always reported, even when zero.
// If servings is not positive the undivided totals are returned;
// callers are expected to enforce servings >= 1 upstream, and the
// guard keeps the function total (no NaN, no Inf, no panic).
//
// Aggregate is a pure function of its inputs and is safe for
// concurrent use.
func Aggregate(usages []Usage, byID map[uuid.UUID]Macros, servings int) Macros {
	var total Macros

	for _, u := range usages {
		per100, ok := contribution(u, byID)
		if !ok {
			continue
		}

		multiplier := GramsOf(u.Quantity, u.Unit) / 100

		caloriesPer100 := DeriveCalories(per100.Protein, per100.Carbs, per100.Fat)
		if per100.Calories != nil {
			caloriesPer100 = *per100.Calories
		}

		if total.Calories == nil {
			total.Calories = new(float64)
		}
		*total.Calories += caloriesPer100 * multiplier
		total.Protein += per100.Protein * multiplier
		total.Carbs += per100.Carbs * multiplier
		total.Fat += per100.Fat * multiplier
		total.Fiber += per100.Fiber * multiplier
		total.Sugar += per100.Sugar * multiplier
	}

	if servings <= 0 {
		return total
	}

	n := float64(servings)
	if total.Calories != nil {
		*total.Calories = math.Round(*total.Calories / n)
	}
	total.Protein = roundTenth(total.Protein / n)
	total.Carbs = roundTenth(total.Carbs / n)
	total.Fat = roundTenth(total.Fat / n)
	total.Fiber = roundTenth(total.Fiber / n)
	total.Sugar = roundTenth(total.Sugar / n)

	return total
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
