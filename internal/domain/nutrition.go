package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NutrientProfile holds nutrient amounts per 100 grams of a food.
// An invalid (absent) amount means "not measured", which is distinct from zero.
type NutrientProfile struct {
	// Macronutrients
	CaloriesKcal  decimal.NullDecimal `json:"caloriesKcal"`
	ProteinG      decimal.NullDecimal `json:"proteinG"`
	FatG          decimal.NullDecimal `json:"fatG"`
	CarbohydrateG decimal.NullDecimal `json:"carbohydrateG"`
	FiberG        decimal.NullDecimal `json:"fiberG"`
	SugarG        decimal.NullDecimal `json:"sugarG"`

	// Fat breakdown
	SaturatedFatG       decimal.NullDecimal `json:"saturatedFatG"`
	MonounsaturatedFatG decimal.NullDecimal `json:"monounsaturatedFatG"`
	PolyunsaturatedFatG decimal.NullDecimal `json:"polyunsaturatedFatG"`
	TransFatG           decimal.NullDecimal `json:"transFatG"`
	CholesterolMg       decimal.NullDecimal `json:"cholesterolMg"`

	// Minerals
	SodiumMg     decimal.NullDecimal `json:"sodiumMg"`
	PotassiumMg  decimal.NullDecimal `json:"potassiumMg"`
	CalciumMg    decimal.NullDecimal `json:"calciumMg"`
	IronMg       decimal.NullDecimal `json:"ironMg"`
	MagnesiumMg  decimal.NullDecimal `json:"magnesiumMg"`
	PhosphorusMg decimal.NullDecimal `json:"phosphorusMg"`
	ZincMg       decimal.NullDecimal `json:"zincMg"`
	CopperMg     decimal.NullDecimal `json:"copperMg"`
	ManganeseMg  decimal.NullDecimal `json:"manganeseMg"`
	SeleniumMcg  decimal.NullDecimal `json:"seleniumMcg"`

	// Vitamins
	VitaminAMcg       decimal.NullDecimal `json:"vitaminAMcg"`
	VitaminCMg        decimal.NullDecimal `json:"vitaminCMg"`
	VitaminDMcg       decimal.NullDecimal `json:"vitaminDMcg"`
	VitaminEMg        decimal.NullDecimal `json:"vitaminEMg"`
	VitaminKMcg       decimal.NullDecimal `json:"vitaminKMcg"`
	ThiamineMg        decimal.NullDecimal `json:"thiamineMg"`
	RiboflavinMg      decimal.NullDecimal `json:"riboflavinMg"`
	NiacinMg          decimal.NullDecimal `json:"niacinMg"`
	VitaminB6Mg       decimal.NullDecimal `json:"vitaminB6Mg"`
	FolateMcg         decimal.NullDecimal `json:"folateMcg"`
	VitaminB12Mcg     decimal.NullDecimal `json:"vitaminB12Mcg"`
	BiotinMcg         decimal.NullDecimal `json:"biotinMcg"`
	PantothenicAcidMg decimal.NullDecimal `json:"pantothenicAcidMg"`
	CholineMg         decimal.NullDecimal `json:"cholineMg"`
}

// NutrientField is a named, addressable amount inside a NutrientProfile.
type NutrientField struct {
	Name  string
	Value *decimal.NullDecimal
}

// Fields lists every amount of the profile in a fixed order.
// The returned pointers alias p.
func (p *NutrientProfile) Fields() []NutrientField {
	return []NutrientField{
		{"caloriesKcal", &p.CaloriesKcal},
		{"proteinG", &p.ProteinG},
		{"fatG", &p.FatG},
		{"carbohydrateG", &p.CarbohydrateG},
		{"fiberG", &p.FiberG},
		{"sugarG", &p.SugarG},
		{"saturatedFatG", &p.SaturatedFatG},
		{"monounsaturatedFatG", &p.MonounsaturatedFatG},
		{"polyunsaturatedFatG", &p.PolyunsaturatedFatG},
		{"transFatG", &p.TransFatG},
		{"cholesterolMg", &p.CholesterolMg},
		{"sodiumMg", &p.SodiumMg},
		{"potassiumMg", &p.PotassiumMg},
		{"calciumMg", &p.CalciumMg},
		{"ironMg", &p.IronMg},
		{"magnesiumMg", &p.MagnesiumMg},
		{"phosphorusMg", &p.PhosphorusMg},
		{"zincMg", &p.ZincMg},
		{"copperMg", &p.CopperMg},
		{"manganeseMg", &p.ManganeseMg},
		{"seleniumMcg", &p.SeleniumMcg},
		{"vitaminAMcg", &p.VitaminAMcg},
		{"vitaminCMg", &p.VitaminCMg},
		{"vitaminDMcg", &p.VitaminDMcg},
		{"vitaminEMg", &p.VitaminEMg},
		{"vitaminKMcg", &p.VitaminKMcg},
		{"thiamineMg", &p.ThiamineMg},
		{"riboflavinMg", &p.RiboflavinMg},
		{"niacinMg", &p.NiacinMg},
		{"vitaminB6Mg", &p.VitaminB6Mg},
		{"folateMcg", &p.FolateMcg},
		{"vitaminB12Mcg", &p.VitaminB12Mcg},
		{"biotinMcg", &p.BiotinMcg},
		{"pantothenicAcidMg", &p.PantothenicAcidMg},
		{"cholineMg", &p.CholineMg},
	}
}

// Amount returns a present amount.
func Amount(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

// NutrientKind names a nutrient with a daily reference intake.
type NutrientKind string

const (
	NutrientProtein         NutrientKind = "Protein"
	NutrientCarbs           NutrientKind = "Carbs"
	NutrientFat             NutrientKind = "Fat"
	NutrientFiber           NutrientKind = "Fiber"
	NutrientSugar           NutrientKind = "Sugar"
	NutrientSodium          NutrientKind = "Sodium"
	NutrientCholesterol     NutrientKind = "Cholesterol"
	NutrientSaturatedFat    NutrientKind = "SaturatedFat"
	NutrientVitaminA        NutrientKind = "VitaminA"
	NutrientVitaminC        NutrientKind = "VitaminC"
	NutrientVitaminD        NutrientKind = "VitaminD"
	NutrientVitaminE        NutrientKind = "VitaminE"
	NutrientVitaminK        NutrientKind = "VitaminK"
	NutrientVitaminB1       NutrientKind = "VitaminB1"
	NutrientVitaminB2       NutrientKind = "VitaminB2"
	NutrientVitaminB3       NutrientKind = "VitaminB3"
	NutrientVitaminB6       NutrientKind = "VitaminB6"
	NutrientVitaminB12      NutrientKind = "VitaminB12"
	NutrientFolate          NutrientKind = "Folate"
	NutrientBiotin          NutrientKind = "Biotin"
	NutrientPantothenicAcid NutrientKind = "PantothenicAcid"
	NutrientCholine         NutrientKind = "Choline"
	NutrientCalcium         NutrientKind = "Calcium"
	NutrientIron            NutrientKind = "Iron"
	NutrientMagnesium       NutrientKind = "Magnesium"
	NutrientPhosphorus      NutrientKind = "Phosphorus"
	NutrientPotassium       NutrientKind = "Potassium"
	NutrientZinc            NutrientKind = "Zinc"
	NutrientCopper          NutrientKind = "Copper"
	NutrientManganese       NutrientKind = "Manganese"
	NutrientSelenium        NutrientKind = "Selenium"
)

// ServingNutrition is a nutrient profile scaled to a specific serving
type ServingNutrition struct {
	FoodID             uuid.UUID       `json:"foodId"`
	FoodName           string          `json:"foodName"`
	ServingGrams       decimal.Decimal `json:"servingGrams"`
	ServingDescription string          `json:"servingDescription"`
	Multiplier         decimal.Decimal `json:"multiplier"`
	Nutrients          NutrientProfile `json:"nutrients"`
}

// RecipeNutrition is the combined nutrition of a multi-ingredient recipe.
// Partial is set when an ingredient was skipped or lacked some nutrient data,
// in which case the affected totals understate the real amounts.
type RecipeNutrition struct {
	ServingNutrition
	Partial             bool        `json:"partial"`
	IncompleteNutrients []string    `json:"incompleteNutrients,omitempty"`
	UnresolvedFoodIDs   []uuid.UUID `json:"unresolvedFoodIds,omitempty"`
}

// RecipeIngredient is a single recipe line. It is never persisted.
type RecipeIngredient struct {
	FoodID         uuid.UUID       `json:"foodId" binding:"required"`
	QuantityGrams  decimal.Decimal `json:"quantityGrams"`
	IngredientName string          `json:"ingredientName,omitempty" binding:"max=255"`
	Order          int             `json:"order,omitempty" binding:"omitempty,min=1,max=100"`
}

// DailyValuePercentage is a nutrient amount expressed against its daily reference intake
type DailyValuePercentage struct {
	NutrientName           NutrientKind    `json:"nutrientName"`
	NutrientNameVi         string          `json:"nutrientNameVi"`
	NutrientValue          decimal.Decimal `json:"nutrientValue"`
	Unit                   string          `json:"unit"`
	DailyValueReference    decimal.Decimal `json:"dailyValueReference"`
	Percentage             decimal.Decimal `json:"percentage"`
	Category               string          `json:"category"`
	CategoryVi             string          `json:"categoryVi"`
	HealthRecommendation   string          `json:"healthRecommendation,omitempty"`
	HealthRecommendationVi string          `json:"healthRecommendationVi,omitempty"`
}

// ComparisonItem is one food in a comparison, scaled to its own default serving
type ComparisonItem struct {
	FoodID             uuid.UUID           `json:"foodId"`
	FoodName           string              `json:"foodName"`
	FoodNameVi         string              `json:"foodNameVi"`
	CategoryName       string              `json:"categoryName,omitempty"`
	ServingGrams       decimal.Decimal     `json:"servingGrams"`
	ServingDescription string              `json:"servingDescription"`
	CaloriesKcal       decimal.NullDecimal `json:"caloriesKcal"`
	ProteinG           decimal.NullDecimal `json:"proteinG"`
	CarbsG             decimal.NullDecimal `json:"carbsG"`
	FatG               decimal.NullDecimal `json:"fatG"`
	FiberG             decimal.NullDecimal `json:"fiberG"`
	SugarG             decimal.NullDecimal `json:"sugarG"`
	SodiumMg           decimal.NullDecimal `json:"sodiumMg"`
	CalciumMg          decimal.NullDecimal `json:"calciumMg"`
	IronMg             decimal.NullDecimal `json:"ironMg"`
	VitaminCMg         decimal.NullDecimal `json:"vitaminCMg"`
	VitaminAMcg        decimal.NullDecimal `json:"vitaminAMcg"`
}

// DisplayName prefers the Vietnamese name and falls back to the primary name
func (i ComparisonItem) DisplayName() string {
	if i.FoodNameVi != "" {
		return i.FoodNameVi
	}
	return i.FoodName
}

// ComparisonLeader identifies the food that won a summary category
type ComparisonLeader struct {
	FoodID   uuid.UUID `json:"foodId"`
	FoodName string    `json:"foodName"`
}

// InsightKind classifies a comparison insight
type InsightKind string

const (
	InsightHighCalorie       InsightKind = "high_calorie"
	InsightLowCalorie        InsightKind = "low_calorie"
	InsightGoodProteinSource InsightKind = "good_protein_source"
)

// ComparisonInsight is a human-readable observation about compared foods
type ComparisonInsight struct {
	Kind      InsightKind `json:"kind"`
	Message   string      `json:"message"`
	MessageVi string      `json:"messageVi"`
	Foods     []string    `json:"foods"`
}

// ComparisonSummary holds superlatives and averages across compared foods
type ComparisonSummary struct {
	HighestCaloriesFood *ComparisonLeader   `json:"highestCaloriesFood,omitempty"`
	LowestCaloriesFood  *ComparisonLeader   `json:"lowestCaloriesFood,omitempty"`
	HighestProteinFood  *ComparisonLeader   `json:"highestProteinFood,omitempty"`
	LowestFatFood       *ComparisonLeader   `json:"lowestFatFood,omitempty"`
	AverageCalories     decimal.Decimal     `json:"averageCalories"`
	AverageProtein      decimal.Decimal     `json:"averageProtein"`
	Insights            []ComparisonInsight `json:"insights"`
}

// ComparisonResult is the outcome of comparing several foods
type ComparisonResult struct {
	Foods   []ComparisonItem  `json:"foods"`
	Summary ComparisonSummary `json:"summary"`
}
