package nutrition

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
)

// Percentage bands
const (
	BandLow      = "low"
	BandMedium   = "medium"
	BandHigh     = "high"
	BandVeryHigh = "very_high"
)

type dailyReference struct {
	amount decimal.Decimal
	unit   string
	nameVi string
}

func ref(amount, unit, nameVi string) dailyReference {
	return dailyReference{amount: decimal.RequireFromString(amount), unit: unit, nameVi: nameVi}
}

// dailyReferences holds reference intakes for a 2000 kcal diet. Read-only.
var dailyReferences = map[domain.NutrientKind]dailyReference{
	// Macronutrients
	domain.NutrientProtein:      ref("50", "g", "Protein"),
	domain.NutrientCarbs:        ref("300", "g", "Carbohydrate"),
	domain.NutrientFat:          ref("65", "g", "Chất béo"),
	domain.NutrientFiber:        ref("25", "g", "Chất xơ"),
	domain.NutrientSugar:        ref("50", "g", "Đường"),
	domain.NutrientSodium:       ref("2300", "mg", "Natri"),
	domain.NutrientCholesterol:  ref("300", "mg", "Cholesterol"),
	domain.NutrientSaturatedFat: ref("20", "g", "Chất béo bão hòa"),

	// Vitamins
	domain.NutrientVitaminA:        ref("900", "mcg", "Vitamin A"),
	domain.NutrientVitaminC:        ref("90", "mg", "Vitamin C"),
	domain.NutrientVitaminD:        ref("20", "mcg", "Vitamin D"),
	domain.NutrientVitaminE:        ref("15", "mg", "Vitamin E"),
	domain.NutrientVitaminK:        ref("120", "mcg", "Vitamin K"),
	domain.NutrientVitaminB1:       ref("1.2", "mg", "Vitamin B1"),
	domain.NutrientVitaminB2:       ref("1.3", "mg", "Vitamin B2"),
	domain.NutrientVitaminB3:       ref("16", "mg", "Vitamin B3"),
	domain.NutrientVitaminB6:       ref("1.7", "mg", "Vitamin B6"),
	domain.NutrientVitaminB12:      ref("2.4", "mcg", "Vitamin B12"),
	domain.NutrientFolate:          ref("400", "mcg", "Folate"),
	domain.NutrientBiotin:          ref("30", "mcg", "Biotin"),
	domain.NutrientPantothenicAcid: ref("5", "mg", "Acid Pantothenic"),
	domain.NutrientCholine:         ref("550", "mg", "Choline"),

	// Minerals
	domain.NutrientCalcium:    ref("1000", "mg", "Canxi"),
	domain.NutrientIron:       ref("18", "mg", "Sắt"),
	domain.NutrientMagnesium:  ref("400", "mg", "Magiê"),
	domain.NutrientPhosphorus: ref("700", "mg", "Phốt pho"),
	domain.NutrientPotassium:  ref("3500", "mg", "Kali"),
	domain.NutrientZinc:       ref("11", "mg", "Kẽm"),
	domain.NutrientCopper:     ref("0.9", "mg", "Đồng"),
	domain.NutrientManganese:  ref("2.3", "mg", "Mangan"),
	domain.NutrientSelenium:   ref("55", "mcg", "Selen"),
}

type recommendation struct {
	kind      domain.NutrientKind
	threshold decimal.Decimal
	text      string
	textVi    string
}

// Recommendations apply when the percentage is strictly above the threshold.
var recommendations = []recommendation{
	{domain.NutrientSodium, decimal.NewFromInt(20), "High sodium content. Consider limiting intake.", "Hàm lượng natri cao. Nên hạn chế sử dụng."},
	{domain.NutrientSaturatedFat, decimal.NewFromInt(15), "High saturated fat. Consider moderation.", "Chất béo bão hòa cao. Nên ăn vừa phải."},
	{domain.NutrientFiber, decimal.NewFromInt(20), "Good source of fiber!", "Nguồn chất xơ tốt!"},
	{domain.NutrientProtein, decimal.NewFromInt(20), "High protein content!", "Hàm lượng protein cao!"},
	{domain.NutrientVitaminC, decimal.NewFromInt(20), "Good source of Vitamin C!", "Nguồn Vitamin C tốt!"},
	{domain.NutrientCalcium, decimal.NewFromInt(20), "Good source of calcium!", "Nguồn canxi tốt!"},
	{domain.NutrientIron, decimal.NewFromInt(20), "Good source of iron!", "Nguồn sắt tốt!"},
}

var (
	percent = decimal.NewFromInt(100)

	bandMediumFloor   = decimal.NewFromInt(5)
	bandHighFloor     = decimal.NewFromInt(15)
	bandVeryHighFloor = decimal.NewFromInt(25)
)

// Band classifies a daily value percentage. Lower bounds are inclusive.
func Band(percentage decimal.Decimal) (band, bandVi string) {
	switch {
	case percentage.LessThan(bandMediumFloor):
		return BandLow, "thấp"
	case percentage.LessThan(bandHighFloor):
		return BandMedium, "trung bình"
	case percentage.LessThan(bandVeryHighFloor):
		return BandHigh, "cao"
	default:
		return BandVeryHigh, "rất cao"
	}
}

// DailyValuePercentage expresses amount as a percentage of the nutrient's daily
// reference intake. The second return is false for nutrients with no reference.
func DailyValuePercentage(amount decimal.Decimal, kind domain.NutrientKind) (*domain.DailyValuePercentage, bool) {
	reference, ok := dailyReferences[kind]
	if !ok {
		return nil, false
	}

	percentage := amount.Div(reference.amount).Mul(percent)
	band, bandVi := Band(percentage)

	result := &domain.DailyValuePercentage{
		NutrientName:        kind,
		NutrientNameVi:      reference.nameVi,
		NutrientValue:       amount,
		Unit:                reference.unit,
		DailyValueReference: reference.amount,
		Percentage:          percentage.RoundBank(1),
		Category:            band,
		CategoryVi:          bandVi,
	}

	for _, rec := range recommendations {
		if rec.kind == kind && percentage.GreaterThan(rec.threshold) {
			result.HealthRecommendation = rec.text
			result.HealthRecommendationVi = rec.textVi
			break
		}
	}

	return result, true
}

// ServingDailyValues classifies the headline nutrients of a scaled profile.
// Absent nutrients are skipped.
func ServingDailyValues(profile *domain.NutrientProfile) []domain.DailyValuePercentage {
	results := []domain.DailyValuePercentage{}
	if profile == nil {
		return results
	}

	headline := []struct {
		kind   domain.NutrientKind
		amount decimal.NullDecimal
	}{
		{domain.NutrientProtein, profile.ProteinG},
		{domain.NutrientCarbs, profile.CarbohydrateG},
		{domain.NutrientFat, profile.FatG},
		{domain.NutrientFiber, profile.FiberG},
		{domain.NutrientSodium, profile.SodiumMg},
		{domain.NutrientCalcium, profile.CalciumMg},
		{domain.NutrientIron, profile.IronMg},
		{domain.NutrientVitaminC, profile.VitaminCMg},
		{domain.NutrientVitaminA, profile.VitaminAMcg},
	}

	for _, n := range headline {
		if !n.amount.Valid {
			continue
		}
		if dv, ok := DailyValuePercentage(n.amount.Decimal, n.kind); ok {
			results = append(results, *dv)
		}
	}
	return results
}

// SupportedNutrients lists every nutrient kind with a daily reference, sorted by name
func SupportedNutrients() []domain.NutrientKind {
	kinds := make([]domain.NutrientKind, 0, len(dailyReferences))
	for k := range dailyReferences {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
