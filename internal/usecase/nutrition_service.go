package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/nutribase/backend/internal/domain"
	"github.com/nutribase/backend/internal/nutrition"
)

var (
	minIngredientGrams = decimal.RequireFromString("0.1")
	maxIngredientGrams = decimal.NewFromInt(10000)
)

const maxIngredientOrder = 100

// NutritionServiceConfig holds configuration for the nutrition service
type NutritionServiceConfig struct {
	MaxCompareFoods      int
	MaxRecipeIngredients int
	Parallelism          int
	TracerProvider       trace.TracerProvider // nil uses the global provider
}

// NutritionService resolves foods from the repository and runs the
// calculation engine over their profiles
type NutritionService struct {
	foods                domain.FoodRepository
	maxCompareFoods      int
	maxRecipeIngredients int
	parallelism          int
	tracer               trace.Tracer
}

// NewNutritionService creates a new nutrition service with dependencies
func NewNutritionService(foods domain.FoodRepository, config NutritionServiceConfig) *NutritionService {
	svc := &NutritionService{
		foods:                foods,
		maxCompareFoods:      config.MaxCompareFoods,
		maxRecipeIngredients: config.MaxRecipeIngredients,
		parallelism:          config.Parallelism,
		tracer:               tracerFrom(config.TracerProvider),
	}
	if svc.maxCompareFoods <= 0 {
		svc.maxCompareFoods = 10
	}
	if svc.maxRecipeIngredients <= 0 {
		svc.maxRecipeIngredients = 100
	}
	if svc.parallelism <= 0 {
		svc.parallelism = 4
	}
	return svc
}

// loadFood returns nil without error when the food does not exist
func (s *NutritionService) loadFood(ctx context.Context, id uuid.UUID) (*domain.Food, error) {
	food, err := s.foods.GetByID(ctx, id)
	if errors.Is(err, domain.ErrFoodNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading food %s: %w", id, err)
	}
	return food, nil
}

// resolveFoods loads foods concurrently. The result is index-aligned with ids;
// missing foods are nil.
func (s *NutritionService) resolveFoods(ctx context.Context, ids []uuid.UUID) ([]*domain.Food, error) {
	foods := make([]*domain.Food, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			food, err := s.loadFood(gctx, id)
			if err != nil {
				return err
			}
			foods[i] = food
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return foods, nil
}

// CalculateServingNutrition scales a food's profile to grams.
// Returns nil when the food does not exist or has no nutrient data.
func (s *NutritionService) CalculateServingNutrition(ctx context.Context, foodID uuid.UUID, grams decimal.Decimal) (result *domain.ServingNutrition, err error) {
	ctx, span := s.startOperation(ctx, "serving",
		attribute.String("food.id", foodID.String()),
		attribute.String("serving.grams", grams.String()))
	defer func() { endOperation(span, err) }()

	if !grams.IsPositive() {
		return nil, fmt.Errorf("%w: grams must be positive", domain.ErrInvalidRequest)
	}

	food, err := s.loadFood(ctx, foodID)
	if err != nil || food == nil {
		return nil, err
	}
	return nutrition.ServingFor(food, grams), nil
}

// ServingDailyValues classifies the headline nutrients of a serving against
// daily references. Returns nil when there is no serving to classify.
func (s *NutritionService) ServingDailyValues(ctx context.Context, foodID uuid.UUID, grams decimal.Decimal) ([]domain.DailyValuePercentage, error) {
	serving, err := s.CalculateServingNutrition(ctx, foodID, grams)
	if err != nil || serving == nil {
		return nil, err
	}
	return nutrition.ServingDailyValues(&serving.Nutrients), nil
}

// DailyValuePercentage classifies an amount of a nutrient. The second return
// is false when the nutrient has no daily reference.
func (s *NutritionService) DailyValuePercentage(ctx context.Context, amount decimal.Decimal, kind domain.NutrientKind) (*domain.DailyValuePercentage, bool) {
	_, span := s.startOperation(ctx, "daily_value", attribute.String("nutrient.kind", string(kind)))
	defer span.End()

	return nutrition.DailyValuePercentage(amount, kind)
}

// SupportedNutrients lists the nutrient kinds DailyValuePercentage accepts
func (s *NutritionService) SupportedNutrients() []domain.NutrientKind {
	return nutrition.SupportedNutrients()
}

// RecommendedServing scales a food to its default serving adjusted for a
// user profile. Returns nil when the food does not exist or has no nutrient data.
func (s *NutritionService) RecommendedServing(ctx context.Context, foodID uuid.UUID, profileTag string) (result *domain.ServingNutrition, err error) {
	ctx, span := s.startOperation(ctx, "recommended",
		attribute.String("food.id", foodID.String()),
		attribute.String("profile", profileTag))
	defer func() { endOperation(span, err) }()

	food, err := s.loadFood(ctx, foodID)
	if err != nil || food == nil {
		return nil, err
	}
	return nutrition.ServingFor(food, nutrition.RecommendedServingGrams(food, profileTag)), nil
}

func (s *NutritionService) validateIngredients(ingredients []domain.RecipeIngredient) error {
	if len(ingredients) > s.maxRecipeIngredients {
		return fmt.Errorf("%w: at most %d ingredients allowed", domain.ErrInvalidRequest, s.maxRecipeIngredients)
	}
	for i, ing := range ingredients {
		if ing.FoodID == uuid.Nil {
			return fmt.Errorf("%w: ingredient %d: foodId is required", domain.ErrInvalidRequest, i+1)
		}
		if ing.QuantityGrams.LessThan(minIngredientGrams) || ing.QuantityGrams.GreaterThan(maxIngredientGrams) {
			return fmt.Errorf("%w: ingredient %d: quantityGrams must be between %s and %s",
				domain.ErrInvalidRequest, i+1, minIngredientGrams, maxIngredientGrams)
		}
		if ing.Order < 0 || ing.Order > maxIngredientOrder {
			return fmt.Errorf("%w: ingredient %d: order must be between 1 and %d",
				domain.ErrInvalidRequest, i+1, maxIngredientOrder)
		}
	}
	return nil
}

// CalculateRecipeNutrition totals the nutrients of every ingredient at its
// quantity. Ingredients that cannot be resolved are skipped and reported.
func (s *NutritionService) CalculateRecipeNutrition(ctx context.Context, ingredients []domain.RecipeIngredient) (result *domain.RecipeNutrition, err error) {
	ctx, span := s.startOperation(ctx, "recipe", attribute.Int("recipe.ingredients", len(ingredients)))
	defer func() { endOperation(span, err) }()

	if err := s.validateIngredients(ingredients); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(ingredients))
	for i, ing := range ingredients {
		ids[i] = ing.FoodID
	}
	foods, err := s.resolveFoods(ctx, ids)
	if err != nil {
		return nil, err
	}

	resolved := make([]nutrition.ResolvedIngredient, len(ingredients))
	for i, ing := range ingredients {
		resolved[i] = nutrition.ResolvedIngredient{FoodID: ing.FoodID, QuantityGrams: ing.QuantityGrams}
		if foods[i] != nil {
			resolved[i].Profile = foods[i].Nutrition
		}
	}

	result = nutrition.AggregateRecipe(resolved)
	if result.Partial {
		recipePartialTotal.Inc()
		log.Printf("[Nutrition] Partial recipe total: %d unresolved ingredients, %d incomplete nutrients",
			len(result.UnresolvedFoodIDs), len(result.IncompleteNutrients))
	}
	span.SetAttributes(attribute.Bool("recipe.partial", result.Partial))
	return result, nil
}

// CompareFoods compares foods serving-to-serving, in request order. Foods that
// do not exist or have no nutrient data are left out.
func (s *NutritionService) CompareFoods(ctx context.Context, foodIDs []uuid.UUID) (result *domain.ComparisonResult, err error) {
	ctx, span := s.startOperation(ctx, "compare", attribute.Int("compare.foods", len(foodIDs)))
	defer func() { endOperation(span, err) }()

	if len(foodIDs) > s.maxCompareFoods {
		return nil, fmt.Errorf("%w: at most %d foods can be compared", domain.ErrInvalidRequest, s.maxCompareFoods)
	}

	foods, err := s.resolveFoods(ctx, foodIDs)
	if err != nil {
		return nil, err
	}

	result = nutrition.Compare(foods)
	if skipped := len(foodIDs) - len(result.Foods); skipped > 0 {
		comparisonSkippedFoods.Add(float64(skipped))
		log.Printf("[Nutrition] Comparison skipped %d of %d foods without nutrient data", skipped, len(foodIDs))
	}
	return result, nil
}

// NutrientDensityScore scores a food's per-100g profile. Unknown foods and
// foods without nutrient data score 0.
func (s *NutritionService) NutrientDensityScore(ctx context.Context, foodID uuid.UUID) (score decimal.Decimal, err error) {
	ctx, span := s.startOperation(ctx, "density", attribute.String("food.id", foodID.String()))
	defer func() { endOperation(span, err) }()

	food, err := s.loadFood(ctx, foodID)
	if err != nil {
		return decimal.Zero, err
	}
	if food == nil {
		return decimal.Zero, nil
	}
	return nutrition.DensityScore(food.Nutrition), nil
}

// AlternativeServings scales a food to the 100g baseline, its default serving
// and each stored alternative serving. Empty when the food is unknown or has
// no nutrient data.
func (s *NutritionService) AlternativeServings(ctx context.Context, foodID uuid.UUID) (servings []domain.ServingNutrition, err error) {
	ctx, span := s.startOperation(ctx, "servings", attribute.String("food.id", foodID.String()))
	defer func() { endOperation(span, err) }()

	food, err := s.loadFood(ctx, foodID)
	if err != nil {
		return nil, err
	}
	if food == nil {
		return []domain.ServingNutrition{}, nil
	}
	return nutrition.AlternativeServings(food), nil
}
