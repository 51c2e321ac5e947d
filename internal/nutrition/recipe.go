package nutrition

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
)

// Recipe totals labels
const (
	RecipeFoodName           = "Recipe Total"
	RecipeServingDescription = "Toàn bộ công thức"
)

// ResolvedIngredient is a recipe line with the ingredient's per-100g profile.
// Profile is nil when the food could not be resolved.
type ResolvedIngredient struct {
	FoodID        uuid.UUID
	QuantityGrams decimal.Decimal
	Profile       *domain.NutrientProfile
}

// AggregateRecipe sums each ingredient's scaled contribution into one total.
//
// Unresolved ingredients contribute nothing but still count towards the total
// weight. Absent amounts are summed as zero and the nutrient is reported in
// IncompleteNutrients; either case marks the result as partial.
func AggregateRecipe(ingredients []ResolvedIngredient) *domain.RecipeNutrition {
	var totals domain.NutrientProfile
	totalFields := totals.Fields()
	for _, field := range totalFields {
		*field.Value = decimal.NewNullDecimal(decimal.Zero)
	}

	totalGrams := decimal.Zero
	incomplete := make(map[string]bool)
	var unresolved []uuid.UUID

	for _, ingredient := range ingredients {
		totalGrams = totalGrams.Add(ingredient.QuantityGrams)

		scaled := Scale(ingredient.Profile, ingredient.QuantityGrams)
		if scaled == nil {
			unresolved = append(unresolved, ingredient.FoodID)
			continue
		}

		for i, field := range scaled.Fields() {
			if !field.Value.Valid {
				incomplete[field.Name] = true
				continue
			}
			total := totalFields[i].Value
			total.Decimal = total.Decimal.Add(field.Value.Decimal)
		}
	}

	result := &domain.RecipeNutrition{
		ServingNutrition: domain.ServingNutrition{
			FoodName:           RecipeFoodName,
			ServingGrams:       totalGrams,
			ServingDescription: RecipeServingDescription,
			Multiplier:         Multiplier(totalGrams),
			Nutrients:          totals,
		},
		UnresolvedFoodIDs: unresolved,
	}

	// keep field order stable in the report
	for _, field := range totalFields {
		if incomplete[field.Name] {
			result.IncompleteNutrients = append(result.IncompleteNutrients, field.Name)
		}
	}
	result.Partial = len(result.IncompleteNutrients) > 0 || len(result.UnresolvedFoodIDs) > 0

	return result
}
