package nutrition

import "strings"

// gramsPerUnit maps recognised unit aliases to grams per one unit.
// Volume units assume water-equivalent density (1 ml = 1 g); no
// ingredient-specific densities are modelled anywhere in the system,
// so this approximation is intentional.
var gramsPerUnit = map[string]float64{
	"g":           1,
	"gram":        1,
	"grams":       1,
	"kg":          1000,
	"kilogram":    1000,
	"kilograms":   1000,
	"oz":          28.35,
	"ounce":       28.35,
	"ounces":      28.35,
	"lb":          453.592,
	"pound":       453.592,
	"pounds":      453.592,
	"ml":          1,
	"milliliter":  1,
	"milliliters": 1,
	"l":           1000,
	"liter":       1000,
	"liters":      1000,
	"cup":         240,
	"cups":        240,
	"tbsp":        15,
	"tablespoon":  15,
	"tablespoons": 15,
	"tsp":         5,
	"teaspoon":    5,
	"teaspoons":   5,
}

// GramsOf converts a quantity in the given unit to grams. The unit is
// matched case-insensitively with surrounding whitespace ignored.
// Unrecognised units ("piece", "slice", ...) fall through as a 1:1
// identity rather than an error, so informal recipe units still
// produce a usable number.
func GramsOf(quantity float64, unit string) float64 {
	if factor, ok := gramsPerUnit[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return quantity * factor
	}
	return quantity
}
