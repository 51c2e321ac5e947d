package nutrition

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
)

// Insight thresholds
var (
	highCalorieFactor     = decimal.RequireFromString("1.5")
	lowCalorieFactor      = decimal.RequireFromString("0.5")
	goodProteinThresholdG = decimal.NewFromInt(10)
)

// ComparisonItemFor scales a food to its own default serving (100g if unset).
// The second return is false when the food has no nutrient data.
func ComparisonItemFor(food *domain.Food) (domain.ComparisonItem, bool) {
	if food == nil || food.Nutrition == nil {
		return domain.ComparisonItem{}, false
	}

	grams := DefaultServingGrams(food)
	scaled := Scale(food.Nutrition, grams)

	return domain.ComparisonItem{
		FoodID:             food.ID,
		FoodName:           food.Name,
		FoodNameVi:         food.NameVi,
		CategoryName:       food.CategoryName,
		ServingGrams:       grams,
		ServingDescription: ServingLabel(food.DefaultServing(), grams),
		CaloriesKcal:       scaled.CaloriesKcal,
		ProteinG:           scaled.ProteinG,
		CarbsG:             scaled.CarbohydrateG,
		FatG:               scaled.FatG,
		FiberG:             scaled.FiberG,
		SugarG:             scaled.SugarG,
		SodiumMg:           scaled.SodiumMg,
		CalciumMg:          scaled.CalciumMg,
		IronMg:             scaled.IronMg,
		VitaminCMg:         scaled.VitaminCMg,
		VitaminAMcg:        scaled.VitaminAMcg,
	}, true
}

// Compare builds comparison items for the given foods, in order, and summarizes them.
// Foods without nutrient data are left out entirely.
func Compare(foods []*domain.Food) *domain.ComparisonResult {
	items := make([]domain.ComparisonItem, 0, len(foods))
	for _, food := range foods {
		if item, ok := ComparisonItemFor(food); ok {
			items = append(items, item)
		}
	}

	return &domain.ComparisonResult{
		Foods:   items,
		Summary: Summarize(items),
	}
}

// valueOrZero treats an absent amount as zero for ranking purposes
func valueOrZero(v decimal.NullDecimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return decimal.Zero
}

// pick returns the index of the item that wins under better. Ties keep the
// earliest item.
func pick(items []domain.ComparisonItem, value func(domain.ComparisonItem) decimal.Decimal, better func(a, b decimal.Decimal) bool) int {
	best := 0
	for i := 1; i < len(items); i++ {
		if better(value(items[i]), value(items[best])) {
			best = i
		}
	}
	return best
}

func leader(item domain.ComparisonItem) *domain.ComparisonLeader {
	return &domain.ComparisonLeader{FoodID: item.FoodID, FoodName: item.DisplayName()}
}

func calories(i domain.ComparisonItem) decimal.Decimal { return valueOrZero(i.CaloriesKcal) }
func protein(i domain.ComparisonItem) decimal.Decimal  { return valueOrZero(i.ProteinG) }
func fat(i domain.ComparisonItem) decimal.Decimal      { return valueOrZero(i.FatG) }

func greater(a, b decimal.Decimal) bool { return a.GreaterThan(b) }
func less(a, b decimal.Decimal) bool    { return a.LessThan(b) }

// Summarize extracts superlatives, averages and insights from comparison items.
// An empty item list yields a zeroed summary.
func Summarize(items []domain.ComparisonItem) domain.ComparisonSummary {
	summary := domain.ComparisonSummary{
		AverageCalories: decimal.Zero,
		AverageProtein:  decimal.Zero,
		Insights:        []domain.ComparisonInsight{},
	}
	if len(items) == 0 {
		return summary
	}

	summary.HighestCaloriesFood = leader(items[pick(items, calories, greater)])
	summary.LowestCaloriesFood = leader(items[pick(items, calories, less)])
	summary.HighestProteinFood = leader(items[pick(items, protein, greater)])
	summary.LowestFatFood = leader(items[pick(items, fat, less)])

	summary.AverageCalories = average(items, calories)
	summary.AverageProtein = average(items, protein)
	summary.Insights = insights(items, summary.AverageCalories)

	return summary
}

func average(items []domain.ComparisonItem, value func(domain.ComparisonItem) decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(value(item))
	}
	return sum.Div(decimal.NewFromInt(int64(len(items))))
}

// insights needs at least two foods to say anything comparative
func insights(items []domain.ComparisonItem, avgCalories decimal.Decimal) []domain.ComparisonInsight {
	result := []domain.ComparisonInsight{}
	if len(items) < 2 {
		return result
	}

	highCut := avgCalories.Mul(highCalorieFactor)
	lowCut := avgCalories.Mul(lowCalorieFactor)

	var high, low, richProtein []string
	for _, item := range items {
		cal := calories(item)
		if cal.GreaterThan(highCut) {
			high = append(high, item.DisplayName())
		}
		if cal.LessThan(lowCut) {
			low = append(low, item.DisplayName())
		}
		if protein(item).GreaterThan(goodProteinThresholdG) {
			richProtein = append(richProtein, item.DisplayName())
		}
	}

	if len(high) > 0 {
		result = append(result, newInsight(domain.InsightHighCalorie,
			"Highest-calorie foods", "Thực phẩm có calories cao nhất", high))
	}
	if len(low) > 0 {
		result = append(result, newInsight(domain.InsightLowCalorie,
			"Lowest-calorie foods", "Thực phẩm có calories thấp nhất", low))
	}
	if len(richProtein) > 0 {
		result = append(result, newInsight(domain.InsightGoodProteinSource,
			"Good protein sources", "Nguồn protein tốt", richProtein))
	}

	return result
}

func newInsight(kind domain.InsightKind, prefix, prefixVi string, foods []string) domain.ComparisonInsight {
	joined := strings.Join(foods, ", ")
	return domain.ComparisonInsight{
		Kind:      kind,
		Message:   fmt.Sprintf("%s: %s", prefix, joined),
		MessageVi: fmt.Sprintf("%s: %s", prefixVi, joined),
		Foods:     foods,
	}
}
