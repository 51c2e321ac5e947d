package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutribase/backend/internal/domain"
)

// Pagination bounds for food listings
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// FoodService manages food records
type FoodService struct {
	foods      domain.FoodRepository
	categories domain.CategoryRepository
}

// NewFoodService creates a new food service
func NewFoodService(foods domain.FoodRepository, categories domain.CategoryRepository) *FoodService {
	return &FoodService{foods: foods, categories: categories}
}

// Get returns an active food
func (s *FoodService) Get(ctx context.Context, id uuid.UUID) (*domain.Food, error) {
	return s.foods.GetByID(ctx, id)
}

// List returns one page of active foods. Out of range paging values are clamped.
func (s *FoodService) List(ctx context.Context, page, pageSize int) (*domain.FoodPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return s.foods.List(ctx, page, pageSize)
}

// Create validates and stores a new food
func (s *FoodService) Create(ctx context.Context, food *domain.Food) error {
	if food == nil {
		return domain.ErrInvalidRequest
	}
	if err := validateFood(food); err != nil {
		return err
	}

	if food.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *food.CategoryID)
		if err != nil {
			return referenceError("food category", err)
		}
		food.CategoryName = category.Name
	}

	now := time.Now().UTC()
	if food.ID == uuid.Nil {
		food.ID = uuid.New()
	}
	food.IsActive = true
	food.CreatedAt = now
	food.UpdatedAt = now

	return s.foods.Create(ctx, food)
}

// Update validates and replaces an active food. The stored id, active flag
// and creation time are kept.
func (s *FoodService) Update(ctx context.Context, id uuid.UUID, food *domain.Food) error {
	if food == nil {
		return domain.ErrInvalidRequest
	}
	if err := validateFood(food); err != nil {
		return err
	}

	existing, err := s.foods.GetByID(ctx, id)
	if err != nil {
		return err
	}

	food.CategoryName = ""
	if food.CategoryID != nil {
		category, err := s.categories.GetByID(ctx, *food.CategoryID)
		if err != nil {
			return referenceError("food category", err)
		}
		food.CategoryName = category.Name
	}

	food.ID = id
	food.IsActive = true
	food.CreatedAt = existing.CreatedAt
	food.UpdatedAt = time.Now().UTC()

	return s.foods.Update(ctx, food)
}

// Delete soft-deletes a food. It disappears from listings and calculations.
func (s *FoodService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.foods.Deactivate(ctx, id)
}

func validateFood(food *domain.Food) error {
	food.Name = strings.TrimSpace(food.Name)
	if food.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidRequest)
	}

	if food.ServingSizeGrams.Valid && !food.ServingSizeGrams.Decimal.IsPositive() {
		return fmt.Errorf("%w: servingSizeGrams must be positive", domain.ErrInvalidRequest)
	}
	for i, alt := range food.AlternativeServings {
		if !alt.Grams.IsPositive() {
			return fmt.Errorf("%w: alternative serving %d: grams must be positive", domain.ErrInvalidRequest, i+1)
		}
	}

	if food.Nutrition != nil {
		for _, field := range food.Nutrition.Fields() {
			if field.Value.Valid && field.Value.Decimal.IsNegative() {
				return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidRequest, field.Name)
			}
		}
	}
	return nil
}
