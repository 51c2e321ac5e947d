package nutrition

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutribase/backend/internal/domain"
)

func TestDailyValuePercentage(t *testing.T) {
	t.Run("sodium above reference", func(t *testing.T) {
		dv, ok := DailyValuePercentage(d("2760"), domain.NutrientSodium)
		require.True(t, ok)

		assert.True(t, dv.Percentage.Equal(d("120.0")), "percentage = %s", dv.Percentage)
		assert.Equal(t, BandVeryHigh, dv.Category)
		assert.Equal(t, "rất cao", dv.CategoryVi)
		assert.Equal(t, "mg", dv.Unit)
		assert.Equal(t, "Natri", dv.NutrientNameVi)
		assert.True(t, dv.DailyValueReference.Equal(d("2300")))
		assert.Equal(t, "High sodium content. Consider limiting intake.", dv.HealthRecommendation)
		assert.NotEmpty(t, dv.HealthRecommendationVi)
	})

	t.Run("rounds to one decimal place", func(t *testing.T) {
		dv, ok := DailyValuePercentage(d("10"), domain.NutrientVitaminC)
		require.True(t, ok)
		// 10/90 = 11.11..%
		assert.Equal(t, "11.1", dv.Percentage.StringFixed(1))
		assert.Equal(t, BandMedium, dv.Category)
		assert.Empty(t, dv.HealthRecommendation)
	})

	t.Run("recommendation requires strictly greater than threshold", func(t *testing.T) {
		// exactly 20% fiber
		dv, _ := DailyValuePercentage(d("5"), domain.NutrientFiber)
		assert.Empty(t, dv.HealthRecommendation)

		dv, _ = DailyValuePercentage(d("5.5"), domain.NutrientFiber)
		assert.Equal(t, "Good source of fiber!", dv.HealthRecommendation)
	})

	t.Run("saturated fat uses its own threshold", func(t *testing.T) {
		dv, _ := DailyValuePercentage(d("3.2"), domain.NutrientSaturatedFat)
		assert.Equal(t, "High saturated fat. Consider moderation.", dv.HealthRecommendation)
	})

	t.Run("nutrients without recommendations", func(t *testing.T) {
		dv, ok := DailyValuePercentage(d("500"), domain.NutrientPotassium)
		require.True(t, ok)
		assert.Empty(t, dv.HealthRecommendation)
	})

	t.Run("unknown nutrient is unsupported", func(t *testing.T) {
		dv, ok := DailyValuePercentage(d("10"), domain.NutrientKind("Unobtainium"))
		assert.False(t, ok)
		assert.Nil(t, dv)
	})

	t.Run("is monotonic in amount", func(t *testing.T) {
		prev := d("-1")
		for _, amount := range []string{"0", "0.5", "1", "7", "12.5", "40", "99.9", "300"} {
			dv, ok := DailyValuePercentage(d(amount), domain.NutrientProtein)
			require.True(t, ok)
			assert.True(t, dv.Percentage.GreaterThanOrEqual(prev), "amount %s", amount)
			prev = dv.Percentage
		}
	})
}

func TestBand(t *testing.T) {
	tests := []struct {
		percentage string
		want       string
	}{
		{"0", BandLow},
		{"4.99", BandLow},
		{"5", BandMedium},
		{"14.99", BandMedium},
		{"15", BandHigh},
		{"24.99", BandHigh},
		{"25", BandVeryHigh},
		{"500", BandVeryHigh},
	}

	for _, tt := range tests {
		t.Run(tt.percentage, func(t *testing.T) {
			band, bandVi := Band(d(tt.percentage))
			assert.Equal(t, tt.want, band)
			assert.NotEmpty(t, bandVi)
		})
	}
}

func TestServingDailyValues(t *testing.T) {
	profile := &domain.NutrientProfile{
		ProteinG:  domain.Amount(12),
		FatG:      domain.Amount(6.5),
		SodiumMg:  domain.Amount(460),
		IronMg:    domain.Amount(1.8),
		CholineMg: domain.Amount(100),
	}

	values := ServingDailyValues(profile)
	require.Len(t, values, 4)

	names := make([]domain.NutrientKind, 0, len(values))
	for _, v := range values {
		names = append(names, v.NutrientName)
	}
	assert.Equal(t, []domain.NutrientKind{
		domain.NutrientProtein, domain.NutrientFat, domain.NutrientSodium, domain.NutrientIron,
	}, names)

	assert.Empty(t, ServingDailyValues(nil))
}

func TestSupportedNutrients(t *testing.T) {
	kinds := SupportedNutrients()
	assert.Len(t, kinds, 31)
	assert.Contains(t, kinds, domain.NutrientSelenium)
	assert.True(t, sort.SliceIsSorted(kinds, func(i, j int) bool { return kinds[i] < kinds[j] }))
}
