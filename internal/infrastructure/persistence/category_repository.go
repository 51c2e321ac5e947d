package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutribase/backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository with gorm
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new gorm-backed category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryFoodCount struct {
	CategoryID uuid.UUID
	FoodCount  int
}

// List returns active categories ordered by sort order then name, each with
// the number of active foods directly in it
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var recs []categoryRecord
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	var counts []categoryFoodCount
	if err := r.db.WithContext(ctx).Model(&foodRecord{}).
		Select("category_id, COUNT(*) AS food_count").
		Where("is_active = ? AND category_id IS NOT NULL", true).
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("counting foods per category: %w", err)
	}
	byCategory := make(map[uuid.UUID]int, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.FoodCount
	}

	categories := make([]domain.Category, 0, len(recs))
	for i := range recs {
		category := recs[i].toDomain()
		category.FoodCount = byCategory[category.ID]
		categories = append(categories, category)
	}
	return categories, nil
}

// GetByID returns an active category
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var rec categoryRecord
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading category %s: %w", id, err)
	}
	category := rec.toDomain()
	return &category, nil
}

// FindByName returns the category with the given name, ignoring case
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	var rec categoryRecord
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding category %q: %w", name, err)
	}
	category := rec.toDomain()
	return &category, nil
}

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	rec := toCategoryRecord(category)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("creating category %q: %w", category.Name, err)
	}
	return nil
}

// Update replaces an active category's columns. CreatedAt is kept from the
// stored record.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing categoryRecord
		err := tx.Where("id = ? AND is_active = ?", category.ID, true).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		if err != nil {
			return fmt.Errorf("loading category %s: %w", category.ID, err)
		}

		rec := toCategoryRecord(category)
		if err := tx.Model(&existing).
			Select("*").
			Omit("ID", "CreatedAt").
			Updates(&rec).Error; err != nil {
			return fmt.Errorf("updating category %q: %w", category.Name, err)
		}
		return nil
	})
}

// Deactivate soft-deletes an active category. Its children and foods keep
// their references.
func (r *CategoryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return deactivate(ctx, r.db, &categoryRecord{}, id, domain.ErrCategoryNotFound)
}
