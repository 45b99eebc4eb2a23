// Package nutrition implements the pure macro-aggregation engine: unit
// normalization, calorie derivation, and per-serving aggregation of
// recipe ingredient usages. Nothing in this package performs I/O.
package nutrition

// Macros is a nutrient profile. On a stored ingredient the values are
// per 100 grams; on an aggregated result they are per serving.
//
// Calories is nil until it is known to be tracked: user-entered
// ingredients may carry an explicit calorie override, and an aggregate
// only reports calories once at least one usage has contributed. A
// non-nil zero means "tracked, and zero", which is distinct from nil.
type Macros struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    float64  `json:"fiber"`
	Sugar    float64  `json:"sugar"`
}

// Float64 returns a pointer to v, for building calorie overrides.
func Float64(v float64) *float64 {
	return &v
}
