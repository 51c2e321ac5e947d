package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutribase/backend/config"
	"github.com/nutribase/backend/internal/domain"
	"github.com/nutribase/backend/internal/infrastructure/memory"
	"github.com/nutribase/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	router *gin.Engine
	store  *memory.Store
	rice   *domain.Food
	egg    *domain.Food
	bare   *domain.Food
	grains *domain.Category
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database:  config.DatabaseConfig{Driver: "memory"},
		RateLimit: config.RateLimitConfig{PerIP: 1000},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Nutrition: config.NutritionConfig{MaxCompareFoods: 3, MaxRecipeIngredients: 5, Parallelism: 2},
	}
}

// setupTestRouter wires the router to an in-memory store holding a small fixture set
func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	grains := &domain.Category{ID: uuid.New(), Name: "Grains", NameVi: "Ngũ cốc", IsActive: true}
	require.NoError(t, store.Categories().Create(ctx, grains))

	rice := &domain.Food{
		ID:                     uuid.New(),
		Name:                   "Cooked rice",
		NameVi:                 "Cơm trắng",
		CategoryID:             &grains.ID,
		ServingSizeGrams:       domain.Amount(150),
		ServingSizeDescription: "1 chén",
		AlternativeServings:    []domain.ServingSize{{Grams: decimal.NewFromInt(250), Description: "1 tô"}},
		Nutrition: &domain.NutrientProfile{
			CaloriesKcal:  domain.Amount(130),
			ProteinG:      domain.Amount(2.7),
			CarbohydrateG: domain.Amount(28),
			FatG:          domain.Amount(0.3),
			FiberG:        domain.Amount(0.4),
			SodiumMg:      domain.Amount(1),
		},
		IsActive: true,
	}
	egg := &domain.Food{
		ID:   uuid.New(),
		Name: "Egg",
		Nutrition: &domain.NutrientProfile{
			CaloriesKcal:  domain.Amount(100),
			ProteinG:      domain.Amount(13),
			CarbohydrateG: domain.Amount(1),
			FatG:          domain.Amount(10),
		},
		IsActive: true,
	}
	bare := &domain.Food{ID: uuid.New(), Name: "Mystery", IsActive: true}
	for _, f := range []*domain.Food{rice, egg, bare} {
		require.NoError(t, store.Foods().Create(ctx, f))
	}

	foods := store.Foods()
	categories := store.Categories()
	handler := NewHandler(
		usecase.NewNutritionService(foods, usecase.NutritionServiceConfig{MaxCompareFoods: 3, MaxRecipeIngredients: 5, Parallelism: 2}),
		usecase.NewFoodService(foods, categories),
		usecase.NewCategoryService(categories),
	)

	return &testEnv{
		router: SetupRouter(testConfig(), handler),
		store:  store,
		rice:   rice,
		egg:    egg,
		bare:   bare,
		grains: grains,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestHealthCheckEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	t.Run("returns healthy status", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[map[string]any](t, w)
		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, "nutribase-backend", response["service"])
		assert.NotEmpty(t, response["version"])
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
			w := env.do(t, method, "/health", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	env.do(t, http.MethodGet, "/health", "")

	w := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nutribase_http_requests_total")
}

func TestFoodEndpoints(t *testing.T) {
	env := setupTestRouter(t)

	t.Run("lists foods sorted by name", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/foods?page=1&pageSize=2", "")
		require.Equal(t, http.StatusOK, w.Code)

		page := decode[domain.FoodPage](t, w)
		assert.Equal(t, int64(3), page.TotalCount)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Cooked rice", page.Items[0].Name)
		assert.Equal(t, "Egg", page.Items[1].Name)
	})

	t.Run("rejects non-numeric page", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/foods?page=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("gets a food with its category name", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/foods/"+env.rice.ID.String(), "")
		require.Equal(t, http.StatusOK, w.Code)

		food := decode[domain.Food](t, w)
		assert.Equal(t, env.rice.ID, food.ID)
		assert.Equal(t, "Grains", food.CategoryName)
		require.NotNil(t, food.Nutrition)
		assertDecimal(t, "130", food.Nutrition.CaloriesKcal.Decimal)
	})

	t.Run("unknown food is 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/foods/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "food not found")
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/foods/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("creates a food", func(t *testing.T) {
		body := `{"name":"Banana","categoryId":"` + env.grains.ID.String() + `","servingSizeGrams":"118","nutrition":{"caloriesKcal":"89","proteinG":"1.1"}}`
		w := env.do(t, http.MethodPost, "/api/v1/foods", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		food := decode[domain.Food](t, w)
		assert.NotEqual(t, uuid.Nil, food.ID)
		assert.True(t, food.IsActive)
		assert.Equal(t, "Grains", food.CategoryName)

		w = env.do(t, http.MethodGet, "/api/v1/foods/"+food.ID.String(), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("create without name is 400", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/foods", `{"nameEn":"Nameless"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create with unknown category is 400", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/foods", `{"name":"Orphan","categoryId":"`+uuid.NewString()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create with negative nutrient is 400", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/foods", `{"name":"Bad","nutrition":{"fatG":"-1"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	env := setupTestRouter(t)

	t.Run("creates a child category", func(t *testing.T) {
		body := `{"name":"Rice","parentId":"` + env.grains.ID.String() + `","sortOrder":1}`
		w := env.do(t, http.MethodPost, "/api/v1/categories", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		category := decode[domain.Category](t, w)
		assert.Equal(t, "Rice", category.Name)
		require.NotNil(t, category.ParentID)
		assert.Equal(t, env.grains.ID, *category.ParentID)
	})

	t.Run("duplicate name is 409", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/categories", `{"name":"grains"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown parent is 400", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/categories", `{"name":"Lost","parentId":"`+uuid.NewString()+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid color is 400", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/categories", `{"name":"Colorful","colorHex":"red"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lists categories with food counts", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/categories", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[struct {
			Categories []domain.Category `json:"categories"`
		}](t, w)
		require.Len(t, body.Categories, 2)

		counts := map[string]int{}
		for _, c := range body.Categories {
			counts[c.Name] = c.FoodCount
		}
		assert.Equal(t, 1, counts["Grains"])
		assert.Equal(t, 0, counts["Rice"])
	})

	t.Run("builds the tree", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/categories/tree", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[struct {
			Categories []domain.CategoryNode `json:"categories"`
		}](t, w)
		require.Len(t, body.Categories, 1)
		root := body.Categories[0]
		assert.Equal(t, "Grains", root.Name)
		require.Len(t, root.Children, 1)
		assert.Equal(t, "Rice", root.Children[0].Name)
		assert.Equal(t, 1, root.TotalFoodCount)
	})
}

func TestServingEndpoints(t *testing.T) {
	env := setupTestRouter(t)
	base := "/api/v1/nutrition/foods/"

	t.Run("scales to grams", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.rice.ID.String()+"/serving?grams=150", "")
		require.Equal(t, http.StatusOK, w.Code)

		serving := decode[domain.ServingNutrition](t, w)
		assertDecimal(t, "1.5", serving.Multiplier)
		assertDecimal(t, "195", serving.Nutrients.CaloriesKcal.Decimal)
		assert.False(t, serving.Nutrients.SugarG.Valid, "absent nutrients stay absent")
	})

	t.Run("missing grams is 400", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.rice.ID.String()+"/serving", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-positive grams is 400", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.rice.ID.String()+"/serving?grams=0", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("food without nutrition is 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.bare.ID.String()+"/serving?grams=100", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown food is 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+uuid.NewString()+"/serving?grams=100", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lists alternative servings", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.rice.ID.String()+"/servings", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[struct {
			Servings []domain.ServingNutrition `json:"servings"`
		}](t, w)
		require.Len(t, body.Servings, 3)
		assertDecimal(t, "100", body.Servings[0].ServingGrams)
		assertDecimal(t, "150", body.Servings[1].ServingGrams)
		assertDecimal(t, "250", body.Servings[2].ServingGrams)
	})

	t.Run("servings of a food without nutrition are empty", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.bare.ID.String()+"/servings", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"servings":[]}`, w.Body.String())
	})

	t.Run("servings of an unknown food are empty", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+uuid.NewString()+"/servings", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"servings":[]}`, w.Body.String())
	})

	t.Run("recommended serving for a profile", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.rice.ID.String()+"/recommended?profile=MAINTENANCE", "")
		require.Equal(t, http.StatusOK, w.Code)

		serving := decode[domain.ServingNutrition](t, w)
		assertDecimal(t, "150", serving.ServingGrams)
	})

	t.Run("density score", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.egg.ID.String()+"/density", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[struct {
			FoodID       uuid.UUID       `json:"foodId"`
			DensityScore decimal.Decimal `json:"densityScore"`
		}](t, w)
		assert.Equal(t, env.egg.ID, body.FoodID)
		assert.True(t, body.DensityScore.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, body.DensityScore.LessThanOrEqual(decimal.NewFromInt(100)))
	})

	t.Run("density of unknown food is 0", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+uuid.NewString()+"/density", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[struct {
			DensityScore decimal.Decimal `json:"densityScore"`
		}](t, w)
		assert.True(t, body.DensityScore.IsZero())
	})

	t.Run("serving daily values in headline order", func(t *testing.T) {
		w := env.do(t, http.MethodGet, base+env.rice.ID.String()+"/daily-values?grams=100", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode[struct {
			DailyValues []domain.DailyValuePercentage `json:"dailyValues"`
		}](t, w)
		names := make([]domain.NutrientKind, 0, len(body.DailyValues))
		for _, dv := range body.DailyValues {
			names = append(names, dv.NutrientName)
		}
		assert.Equal(t, []domain.NutrientKind{
			domain.NutrientProtein, domain.NutrientCarbs, domain.NutrientFat,
			domain.NutrientFiber, domain.NutrientSodium,
		}, names)
	})
}

func TestDailyValueEndpoint(t *testing.T) {
	env := setupTestRouter(t)

	t.Run("classifies sodium", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/nutrition/daily-value?amount=2760&nutrient=Sodium", "")
		require.Equal(t, http.StatusOK, w.Code)

		dv := decode[domain.DailyValuePercentage](t, w)
		assertDecimal(t, "120", dv.Percentage)
		assert.Equal(t, "very_high", dv.Category)
		assert.NotEmpty(t, dv.HealthRecommendation)
	})

	t.Run("unsupported nutrient is 400", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/nutrition/daily-value?amount=10&nutrient=Unobtainium", "")
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decode[struct {
			Error              string                `json:"error"`
			SupportedNutrients []domain.NutrientKind `json:"supportedNutrients"`
		}](t, w)
		assert.Contains(t, body.Error, "Unobtainium")
		assert.Contains(t, body.SupportedNutrients, domain.NutrientSodium)
		assert.Len(t, body.SupportedNutrients, 31)
	})

	t.Run("missing amount is 400", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/nutrition/daily-value?nutrient=Sodium", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecipeEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	path := "/api/v1/nutrition/recipe"

	t.Run("totals ingredients", func(t *testing.T) {
		body := `{"ingredients":[
			{"foodId":"` + env.rice.ID.String() + `","quantityGrams":100,"ingredientName":"rice","order":1},
			{"foodId":"` + env.egg.ID.String() + `","quantityGrams":"50","order":2}
		]}`
		w := env.do(t, http.MethodPost, path, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		recipe := decode[domain.RecipeNutrition](t, w)
		assertDecimal(t, "150", recipe.ServingGrams)
		assertDecimal(t, "180", recipe.Nutrients.CaloriesKcal.Decimal)
		assert.True(t, recipe.Partial, "egg has no fiber or sodium")
		assert.Empty(t, recipe.UnresolvedFoodIDs)
	})

	t.Run("reports unresolved ingredients", func(t *testing.T) {
		missing := uuid.New()
		body := `{"ingredients":[
			{"foodId":"` + env.egg.ID.String() + `","quantityGrams":100},
			{"foodId":"` + missing.String() + `","quantityGrams":100}
		]}`
		w := env.do(t, http.MethodPost, path, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		recipe := decode[domain.RecipeNutrition](t, w)
		assert.True(t, recipe.Partial)
		assert.Equal(t, []uuid.UUID{missing}, recipe.UnresolvedFoodIDs)
		assertDecimal(t, "100", recipe.Nutrients.CaloriesKcal.Decimal)
	})

	t.Run("rejects out of range quantity", func(t *testing.T) {
		body := `{"ingredients":[{"foodId":"` + env.egg.ID.String() + `","quantityGrams":0.01}]}`
		w := env.do(t, http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects out of range order", func(t *testing.T) {
		body := `{"ingredients":[{"foodId":"` + env.egg.ID.String() + `","quantityGrams":10,"order":101}]}`
		w := env.do(t, http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects too many ingredients", func(t *testing.T) {
		lines := make([]string, 6)
		for i := range lines {
			lines[i] = `{"foodId":"` + env.egg.ID.String() + `","quantityGrams":10}`
		}
		w := env.do(t, http.MethodPost, path, `{"ingredients":[`+strings.Join(lines, ",")+`]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path, `{"ingredients":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCompareEndpoint(t *testing.T) {
	env := setupTestRouter(t)
	path := "/api/v1/nutrition/compare"

	t.Run("compares foods at their default servings", func(t *testing.T) {
		body := `{"foodIds":["` + env.rice.ID.String() + `","` + env.egg.ID.String() + `","` + env.bare.ID.String() + `"]}`
		w := env.do(t, http.MethodPost, path, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		result := decode[domain.ComparisonResult](t, w)
		require.Len(t, result.Foods, 2, "food without nutrition is skipped")
		assert.Equal(t, env.rice.ID, result.Foods[0].FoodID)
		assertDecimal(t, "195", result.Foods[0].CaloriesKcal.Decimal)

		require.NotNil(t, result.Summary.HighestProteinFood)
		assert.Equal(t, env.egg.ID, result.Summary.HighestProteinFood.FoodID)
		require.NotNil(t, result.Summary.HighestCaloriesFood)
		assert.Equal(t, env.rice.ID, result.Summary.HighestCaloriesFood.FoodID)
		assert.Equal(t, "Cơm trắng", result.Summary.HighestCaloriesFood.FoodName)
	})

	t.Run("rejects too many foods", func(t *testing.T) {
		ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString()}
		w := env.do(t, http.MethodPost, path, `{"foodIds":["`+strings.Join(ids, `","`)+`"]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing foodIds", func(t *testing.T) {
		w := env.do(t, http.MethodPost, path, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"food not found", domain.ErrFoodNotFound, http.StatusNotFound},
		{"category not found", domain.ErrCategoryNotFound, http.StatusNotFound},
		{"invalid request", domain.ErrInvalidRequest, http.StatusBadRequest},
		{"unsupported nutrient", domain.ErrUnsupportedNutrient, http.StatusBadRequest},
		{"duplicate category", domain.ErrDuplicateCategory, http.StatusConflict},
		{"rate limited", domain.ErrRateLimited, http.StatusTooManyRequests},
		{"missing reference is invalid input", fmt.Errorf("%w: parent: %w", domain.ErrInvalidRequest, domain.ErrCategoryNotFound), http.StatusBadRequest},
		{"unexpected", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.want, w.Code)
			body := decode[map[string]string](t, w)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestFoodLifecycle(t *testing.T) {
	env := setupTestRouter(t)
	ricePath := "/api/v1/foods/" + env.rice.ID.String()

	t.Run("updates a food", func(t *testing.T) {
		body := `{"name":"Jasmine rice","categoryId":"` + env.grains.ID.String() + `","servingSizeGrams":"200","nutrition":{"caloriesKcal":"140"}}`
		w := env.do(t, http.MethodPut, ricePath, body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, http.MethodGet, ricePath, "")
		require.Equal(t, http.StatusOK, w.Code)
		food := decode[domain.Food](t, w)
		assert.Equal(t, "Jasmine rice", food.Name)
		assert.Equal(t, "Grains", food.CategoryName)
		assertDecimal(t, "140", food.Nutrition.CaloriesKcal.Decimal)
		assert.False(t, food.Nutrition.ProteinG.Valid)
		assert.Empty(t, food.AlternativeServings)

		w = env.do(t, http.MethodGet, "/api/v1/nutrition/foods/"+env.rice.ID.String()+"/serving?grams=200", "")
		require.Equal(t, http.StatusOK, w.Code)
		serving := decode[domain.ServingNutrition](t, w)
		assertDecimal(t, "280", serving.Nutrients.CaloriesKcal.Decimal)
	})

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown food", "/api/v1/foods/" + uuid.NewString(), `{"name":"Ghost"}`, http.StatusNotFound},
		{"malformed id", "/api/v1/foods/nope", `{"name":"Ghost"}`, http.StatusBadRequest},
		{"missing name", ricePath, `{"nameVi":"Cơm"}`, http.StatusBadRequest},
		{"unknown category", ricePath, `{"name":"Rice","categoryId":"` + uuid.NewString() + `"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run("update "+tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	t.Run("deletes a food", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, ricePath, "")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(t, http.MethodGet, ricePath, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/foods", "")
		page := decode[domain.FoodPage](t, w)
		assert.Equal(t, int64(2), page.TotalCount)

		w = env.do(t, http.MethodGet, "/api/v1/categories/"+env.grains.ID.String(), "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, decode[domain.Category](t, w).FoodCount)

		w = env.do(t, http.MethodGet, "/api/v1/nutrition/foods/"+env.rice.ID.String()+"/density", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[struct {
			DensityScore decimal.Decimal `json:"densityScore"`
		}](t, w).DensityScore.IsZero(), "deleted foods are absent from calculations")
	})

	t.Run("deleting twice is 404", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, ricePath, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCategoryLifecycle(t *testing.T) {
	env := setupTestRouter(t)
	grainsPath := "/api/v1/categories/" + env.grains.ID.String()

	w := env.do(t, http.MethodPost, "/api/v1/categories", `{"name":"Rice","parentId":"`+env.grains.ID.String()+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	child := decode[domain.Category](t, w)

	t.Run("gets a category with its food count", func(t *testing.T) {
		w := env.do(t, http.MethodGet, grainsPath, "")
		require.Equal(t, http.StatusOK, w.Code)

		category := decode[domain.Category](t, w)
		assert.Equal(t, "Grains", category.Name)
		assert.Equal(t, 1, category.FoodCount)
	})

	t.Run("tree route is not an id", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/categories/tree", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("updates a category", func(t *testing.T) {
		w := env.do(t, http.MethodPut, grainsPath, `{"name":"Cereals","colorHex":"#c8a165","sortOrder":2}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, http.MethodGet, "/api/v1/foods/"+env.rice.ID.String(), "")
		assert.Equal(t, "Cereals", decode[domain.Food](t, w).CategoryName)
	})

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown category", "/api/v1/categories/" + uuid.NewString(), `{"name":"Nuts"}`, http.StatusNotFound},
		{"name taken", grainsPath, `{"name":"Rice"}`, http.StatusConflict},
		{"moved under its child", grainsPath, `{"name":"Cereals","parentId":"` + child.ID.String() + `"}`, http.StatusBadRequest},
		{"invalid color", grainsPath, `{"name":"Cereals","colorHex":"beige"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run("update "+tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	t.Run("deletes a category and promotes its children", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, grainsPath, "")
		require.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(t, http.MethodGet, grainsPath, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/categories/tree", "")
		body := decode[struct {
			Categories []domain.CategoryNode `json:"categories"`
		}](t, w)
		require.Len(t, body.Categories, 1)
		assert.Equal(t, "Rice", body.Categories[0].Name)

		w = env.do(t, http.MethodDelete, grainsPath, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
