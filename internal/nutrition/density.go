package nutrition

import (
	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
)

// densityWeight scales a nutrient's per-calorie amount into score points.
// The weights are a heuristic index, not a standardized nutritional score.
type densityWeight struct {
	amount func(*domain.NutrientProfile) decimal.NullDecimal
	weight decimal.Decimal
}

var (
	densityRewards = []densityWeight{
		{func(p *domain.NutrientProfile) decimal.NullDecimal { return p.ProteinG }, decimal.NewFromInt(100)},
		{func(p *domain.NutrientProfile) decimal.NullDecimal { return p.FiberG }, decimal.NewFromInt(100)},
		{func(p *domain.NutrientProfile) decimal.NullDecimal { return p.VitaminCMg }, decimal.NewFromInt(10)},
		{func(p *domain.NutrientProfile) decimal.NullDecimal { return p.VitaminAMcg }, decimal.NewFromInt(1)},
		{func(p *domain.NutrientProfile) decimal.NullDecimal { return p.CalciumMg }, decimal.NewFromInt(10)},
		{func(p *domain.NutrientProfile) decimal.NullDecimal { return p.IronMg }, decimal.NewFromInt(100)},
	}

	densityPenalties = []densityWeight{
		{func(p *domain.NutrientProfile) decimal.NullDecimal { return p.SodiumMg }, decimal.NewFromInt(1)},
		{func(p *domain.NutrientProfile) decimal.NullDecimal { return p.SaturatedFatG }, decimal.NewFromInt(50)},
	}

	densityMax = decimal.NewFromInt(100)
)

// DensityScore rates nutrient value per calorie on a 0-100 scale for a
// profile expressed per 100g. Zero or unknown calories score 0.
func DensityScore(profile *domain.NutrientProfile) decimal.Decimal {
	if profile == nil || !profile.CaloriesKcal.Valid || !profile.CaloriesKcal.Decimal.IsPositive() {
		return decimal.Zero
	}
	calories := profile.CaloriesKcal.Decimal

	score := decimal.Zero
	for _, w := range densityRewards {
		if v := w.amount(profile); v.Valid {
			score = score.Add(v.Decimal.Div(calories).Mul(w.weight))
		}
	}
	for _, w := range densityPenalties {
		if v := w.amount(profile); v.Valid {
			score = score.Sub(v.Decimal.Div(calories).Mul(w.weight))
		}
	}

	return decimal.Max(decimal.Zero, decimal.Min(densityMax, score))
}
