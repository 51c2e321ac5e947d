package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutribase/backend/internal/domain"
)

// FoodRepository implements domain.FoodRepository with gorm
type FoodRepository struct {
	db *gorm.DB
}

// NewFoodRepository creates a new gorm-backed food repository
func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

func (r *FoodRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Nutrition").Preload("Category")
}

// GetByID returns an active food with its nutrient profile and category name
func (r *FoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Food, error) {
	var rec foodRecord
	err := r.withRelations(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading food %s: %w", id, err)
	}

	food := rec.toDomain()
	return &food, nil
}

// List returns one page of active foods ordered by name
func (r *FoodRepository) List(ctx context.Context, page, pageSize int) (*domain.FoodPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page %d, page size %d", domain.ErrInvalidRequest, page, pageSize)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&foodRecord{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting foods: %w", err)
	}

	var recs []foodRecord
	if err := r.withRelations(ctx).
		Where("is_active = ?", true).
		Order("name, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing foods: %w", err)
	}

	result := &domain.FoodPage{
		Items:      make([]domain.Food, 0, len(recs)),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
	for i := range recs {
		result.Items = append(result.Items, recs[i].toDomain())
	}
	return result, nil
}

// Create inserts a food and its nutrient profile in one transaction
func (r *FoodRepository) Create(ctx context.Context, food *domain.Food) error {
	rec := toFoodRecord(food)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("creating food %q: %w", food.Name, err)
	}
	return nil
}

// Update replaces an active food's columns and its nutrient profile in one
// transaction. CreatedAt is kept from the stored record.
func (r *FoodRepository) Update(ctx context.Context, food *domain.Food) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing foodRecord
		err := tx.Where("id = ? AND is_active = ?", food.ID, true).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodNotFound
		}
		if err != nil {
			return fmt.Errorf("loading food %s: %w", food.ID, err)
		}

		rec := toFoodRecord(food)
		nutrition := rec.Nutrition
		rec.Nutrition = nil
		if err := tx.Model(&existing).
			Select("*").
			Omit("ID", "CreatedAt", "Nutrition", "Category").
			Updates(&rec).Error; err != nil {
			return fmt.Errorf("updating food %s: %w", food.ID, err)
		}

		if err := tx.Where("food_id = ?", food.ID).Delete(&nutritionFactsRecord{}).Error; err != nil {
			return fmt.Errorf("replacing nutrition facts of %s: %w", food.ID, err)
		}
		if nutrition != nil {
			if err := tx.Create(nutrition).Error; err != nil {
				return fmt.Errorf("replacing nutrition facts of %s: %w", food.ID, err)
			}
		}
		return nil
	})
}

// Deactivate soft-deletes an active food
func (r *FoodRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return deactivate(ctx, r.db, &foodRecord{}, id, domain.ErrFoodNotFound)
}

// deactivate flips is_active on one active row of model's table
func deactivate(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, notFound error) error {
	result := db.WithContext(ctx).Model(model).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("deactivating %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
