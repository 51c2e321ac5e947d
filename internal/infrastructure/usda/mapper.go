package usda

import (
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
)

// DataSource tags foods imported from FoodData Central
const DataSource = "USDA"

// USDA nutrient IDs. Amounts are reported per 100g.
const (
	NutrientIDEnergy        = 1008 // Energy (kcal)
	NutrientIDEnergyAtwater = 2047 // Energy, Atwater general factors (kcal), Foundation foods
	NutrientIDProtein       = 1003 // Protein (g)
	NutrientIDTotalFat      = 1004 // Total lipid (g)
	NutrientIDCarbohydrate  = 1005 // Carbohydrate, by difference (g)
	NutrientIDFiber         = 1079 // Fiber, total dietary (g)
	NutrientIDSugars        = 2000 // Sugars, total (g)
	NutrientIDSodium        = 1093 // Sodium (mg)
)

// nutrientFields maps USDA nutrient IDs to NutrientProfile field names
var nutrientFields = map[int]string{
	NutrientIDEnergy:       "caloriesKcal",
	NutrientIDProtein:      "proteinG",
	NutrientIDTotalFat:     "fatG",
	NutrientIDCarbohydrate: "carbohydrateG",
	NutrientIDFiber:        "fiberG",
	NutrientIDSugars:       "sugarG",
	1258:                   "saturatedFatG",
	1292:                   "monounsaturatedFatG",
	1293:                   "polyunsaturatedFatG",
	1257:                   "transFatG",
	1253:                   "cholesterolMg",
	NutrientIDSodium:       "sodiumMg",
	1092:                   "potassiumMg",
	1087:                   "calciumMg",
	1089:                   "ironMg",
	1090:                   "magnesiumMg",
	1091:                   "phosphorusMg",
	1095:                   "zincMg",
	1098:                   "copperMg",
	1101:                   "manganeseMg",
	1103:                   "seleniumMcg",
	1106:                   "vitaminAMcg", // RAE
	1162:                   "vitaminCMg",
	1114:                   "vitaminDMcg", // D2 + D3
	1109:                   "vitaminEMg",  // alpha-tocopherol
	1185:                   "vitaminKMcg", // phylloquinone
	1165:                   "thiamineMg",
	1166:                   "riboflavinMg",
	1167:                   "niacinMg",
	1175:                   "vitaminB6Mg",
	1177:                   "folateMcg",
	1178:                   "vitaminB12Mcg",
	1176:                   "biotinMcg",
	1170:                   "pantothenicAcidMg",
	1180:                   "cholineMg",
}

// MapToFood converts a USDA food into a food record with its per-100g profile.
// Nothing is persisted; the caller assigns IDs and category.
func MapToFood(usdaFood *domain.USDAFood) *domain.Food {
	name := strings.TrimSpace(usdaFood.Description)

	return &domain.Food{
		Name:         name,
		NameEn:       name,
		FoodCode:     usdaFood.FoodCode,
		DataSource:   DataSource,
		ExternalID:   strconv.Itoa(usdaFood.FdcID),
		CategoryName: usdaFood.Category,
		Nutrition:    MapNutrients(usdaFood.Nutrients),
		IsActive:     true,
	}
}

// MapNutrients builds a NutrientProfile from USDA nutrient rows.
// Nutrients USDA does not report stay absent. Negative amounts are dropped.
func MapNutrients(usdaNutrients []domain.USDANutrient) *domain.NutrientProfile {
	profile := &domain.NutrientProfile{}
	fields := make(map[string]*decimal.NullDecimal)
	for _, f := range profile.Fields() {
		fields[f.Name] = f.Value
	}

	var atwaterEnergy *domain.USDANutrient
	for i, nutrient := range usdaNutrients {
		if nutrient.NutrientID == NutrientIDEnergyAtwater {
			atwaterEnergy = &usdaNutrients[i]
			continue
		}
		name, ok := nutrientFields[nutrient.NutrientID]
		if !ok {
			continue
		}
		if nutrient.Value < 0 {
			log.Printf("[USDA] Dropping negative %s amount %v", name, nutrient.Value)
			continue
		}
		*fields[name] = decimal.NewNullDecimal(decimal.NewFromFloat(nutrient.Value))
	}

	// Foundation foods often only carry Atwater energy
	if !profile.CaloriesKcal.Valid && atwaterEnergy != nil && atwaterEnergy.Value >= 0 {
		profile.CaloriesKcal = decimal.NewNullDecimal(decimal.NewFromFloat(atwaterEnergy.Value))
	}

	return profile
}
