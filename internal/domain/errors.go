package domain

import "errors"

var (
	// ErrFoodNotFound is returned when a food does not exist or is inactive
	ErrFoodNotFound = errors.New("food not found")

	// ErrCategoryNotFound is returned when a category does not exist
	ErrCategoryNotFound = errors.New("category not found")

	// ErrDuplicateCategory is returned when a category name is already taken
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrNoNutritionData is returned when a food has no recorded nutrient profile
	ErrNoNutritionData = errors.New("no nutrition data for food")

	// ErrUnsupportedNutrient is returned when a nutrient has no daily reference value
	ErrUnsupportedNutrient = errors.New("unsupported nutrient")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrProductNotFound is returned when a product cannot be found in USDA database
	ErrProductNotFound = errors.New("product not found in USDA database")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")
)
