package nutrition

import (
	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
)

// Multiplier converts a serving size to its factor relative to the 100g basis.
// Shifting the exponent keeps the division exact.
func Multiplier(grams decimal.Decimal) decimal.Decimal {
	return grams.Shift(-2)
}

// Scale rescales a per-100g profile to the given serving size.
// Absent amounts stay absent. The source profile is not modified.
// A nil profile yields nil.
func Scale(profile *domain.NutrientProfile, grams decimal.Decimal) *domain.NutrientProfile {
	if profile == nil {
		return nil
	}

	multiplier := Multiplier(grams)
	scaled := *profile
	for _, field := range scaled.Fields() {
		if field.Value.Valid {
			field.Value.Decimal = field.Value.Decimal.Mul(multiplier)
		}
	}
	return &scaled
}

// ServingFor scales a food's profile and wraps it with serving metadata.
// Returns nil when the food has no nutrient data.
func ServingFor(food *domain.Food, grams decimal.Decimal) *domain.ServingNutrition {
	if food == nil || food.Nutrition == nil {
		return nil
	}

	return &domain.ServingNutrition{
		FoodID:             food.ID,
		FoodName:           food.Name,
		ServingGrams:       grams,
		ServingDescription: ServingLabel(food.DefaultServing(), grams),
		Multiplier:         Multiplier(grams),
		Nutrients:          *Scale(food.Nutrition, grams),
	}
}

// AlternativeServings lists the 100g baseline, then the default serving if set,
// then every stored alternative serving, each scaled from the food's profile.
func AlternativeServings(food *domain.Food) []domain.ServingNutrition {
	if food == nil || food.Nutrition == nil {
		return []domain.ServingNutrition{}
	}

	servings := make([]domain.ServingNutrition, 0, 2+len(food.AlternativeServings))

	base := ServingFor(food, BaselineGrams)
	base.ServingDescription = BaselineLabel
	servings = append(servings, *base)

	if def := food.DefaultServing(); def != nil {
		serving := ServingFor(food, def.Grams)
		if def.Description != "" {
			serving.ServingDescription = def.Description
		}
		servings = append(servings, *serving)
	}

	for _, alt := range food.AlternativeServings {
		if !alt.Grams.IsPositive() {
			continue
		}
		serving := ServingFor(food, alt.Grams)
		if alt.Description != "" {
			serving.ServingDescription = alt.Description
		}
		servings = append(servings, *serving)
	}

	return servings
}
