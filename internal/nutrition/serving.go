package nutrition

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
)

// BaselineLabel is the label of the implicit 100g serving
const BaselineLabel = "100g"

var (
	// BaselineGrams is the basis every NutrientProfile is expressed in
	BaselineGrams = decimal.NewFromInt(100)

	// defaultServingTolerance is how close requested grams must be to the
	// default serving to reuse its description
	defaultServingTolerance = decimal.NewFromFloat(0.1)
)

// GramsLabel renders a generic "{grams}g" label.
func GramsLabel(grams decimal.Decimal) string {
	return grams.String() + "g"
}

// ServingLabel picks the human-readable label for a serving of the given size.
// The default serving's description is reused when grams is within 0.1g of it.
func ServingLabel(defaultServing *domain.ServingSize, grams decimal.Decimal) string {
	if defaultServing != nil &&
		defaultServing.Description != "" &&
		grams.Sub(defaultServing.Grams).Abs().LessThan(defaultServingTolerance) {
		return defaultServing.Description
	}
	return GramsLabel(grams)
}

// DefaultServingGrams returns the food's default serving size, or 100g if none is set
func DefaultServingGrams(food *domain.Food) decimal.Decimal {
	if def := food.DefaultServing(); def != nil {
		return def.Grams
	}
	return BaselineGrams
}

// Recommended serving multipliers per user profile
var profileMultipliers = map[string]decimal.Decimal{
	"weight_loss": decimal.RequireFromString("0.8"),
	"muscle_gain": decimal.RequireFromString("1.2"),
	"maintenance": decimal.NewFromInt(1),
	"athlete":     decimal.RequireFromString("1.5"),
	"elderly":     decimal.RequireFromString("0.9"),
}

// ProfileMultiplier returns the serving multiplier for a user profile tag.
// Unknown tags get 1.0.
func ProfileMultiplier(profileTag string) decimal.Decimal {
	if m, ok := profileMultipliers[strings.ToLower(strings.TrimSpace(profileTag))]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// RecommendedServingGrams applies the profile multiplier to the food's default serving
func RecommendedServingGrams(food *domain.Food, profileTag string) decimal.Decimal {
	return DefaultServingGrams(food).Mul(ProfileMultiplier(profileTag))
}
