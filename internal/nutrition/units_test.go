package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGramsOfAliasTable(t *testing.T) {
	tests := []struct {
		unit   string
		factor float64
	}{
		{"g", 1}, {"gram", 1}, {"grams", 1},
		{"kg", 1000}, {"kilogram", 1000}, {"kilograms", 1000},
		{"oz", 28.35}, {"ounce", 28.35}, {"ounces", 28.35},
		{"lb", 453.592}, {"pound", 453.592}, {"pounds", 453.592},
		{"ml", 1}, {"milliliter", 1}, {"milliliters", 1},
		{"l", 1000}, {"liter", 1000}, {"liters", 1000},
		{"cup", 240}, {"cups", 240},
		{"tbsp", 15}, {"tablespoon", 15}, {"tablespoons", 15},
		{"tsp", 5}, {"teaspoon", 5}, {"teaspoons", 5},
	}
	for _, tc := range tests {
		t.Run(tc.unit, func(t *testing.T) {
			assert.Equal(t, tc.factor, GramsOf(1, tc.unit))
		})
	}
}

func TestGramsOfNormalizesCaseAndWhitespace(t *testing.T) {
	assert.Equal(t, 30.0, GramsOf(2, " Tbsp "))
	assert.Equal(t, 1000.0, GramsOf(1, "KG"))
	assert.Equal(t, 240.0, GramsOf(1, "  Cup"))
}

func TestGramsOfUnknownUnitIsIdentity(t *testing.T) {
	assert.Equal(t, 5.0, GramsOf(5, "piece"))
	assert.Equal(t, 2.0, GramsOf(2, "slice"))
	assert.Equal(t, 3.0, GramsOf(3, ""))
}

func TestGramsOfScalesQuantity(t *testing.T) {
	assert.Equal(t, 500.0, GramsOf(0.5, "kg"))
	assert.Equal(t, 56.7, GramsOf(2, "oz"))
	assert.InDelta(t, 907.184, GramsOf(2, "lb"), 1e-9)
}
