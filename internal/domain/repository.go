package domain

import (
	"context"

	"github.com/google/uuid"
)

// FoodRepository defines persistence operations for foods.
// GetByID, Update and Deactivate return ErrFoodNotFound for missing or
// inactive foods.
type FoodRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Food, error)
	List(ctx context.Context, page, pageSize int) (*FoodPage, error)
	Create(ctx context.Context, food *Food) error
	// Update replaces a food's fields and its nutrient profile
	Update(ctx context.Context, food *Food) error
	// Deactivate soft-deletes a food
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines persistence operations for food categories.
// GetByID, Update and Deactivate only see active categories; FindByName sees
// all of them since names stay reserved.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	SearchFoods(ctx context.Context, query string) (*USDASearchResponse, error)
	GetFoodDetails(ctx context.Context, fdcID string) (*USDAFood, error)
}
