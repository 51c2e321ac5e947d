package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutribase/backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository on a Store
type CategoryRepository struct {
	store *Store
}

// List returns active categories ordered by sort order then name, each with
// the number of active foods directly in it
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	counts := make(map[uuid.UUID]int)
	for _, food := range r.store.foods {
		if food.IsActive && food.CategoryID != nil {
			counts[*food.CategoryID]++
		}
	}

	categories := make([]domain.Category, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		if !category.IsActive {
			continue
		}
		category.FoodCount = counts[category.ID]
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].SortOrder != categories[j].SortOrder {
			return categories[i].SortOrder < categories[j].SortOrder
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// GetByID returns an active category
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	category, exists := r.store.categories[id]
	if !exists || !category.IsActive {
		return nil, domain.ErrCategoryNotFound
	}
	return copyCategory(category), nil
}

// FindByName returns the category with the given name, ignoring case
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	for _, category := range r.store.categories {
		if strings.EqualFold(category.Name, name) {
			return &category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// Create stores a category. IDs must be unique.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	if _, exists := r.store.categories[category.ID]; exists {
		return fmt.Errorf("category %s already exists", category.ID)
	}
	r.store.categories[category.ID] = *copyCategory(*category)
	return nil
}

// Update replaces an active category. CreatedAt is kept from the stored record.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	existing, exists := r.store.categories[category.ID]
	if !exists || !existing.IsActive {
		return domain.ErrCategoryNotFound
	}
	stored := copyCategory(*category)
	stored.CreatedAt = existing.CreatedAt
	stored.FoodCount = 0
	r.store.categories[category.ID] = *stored
	return nil
}

// Deactivate marks an active category inactive. Its children and foods keep
// their references.
func (r *CategoryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	category, exists := r.store.categories[id]
	if !exists || !category.IsActive {
		return domain.ErrCategoryNotFound
	}
	category.IsActive = false
	category.UpdatedAt = time.Now().UTC()
	r.store.categories[id] = category
	return nil
}

func copyCategory(category domain.Category) *domain.Category {
	if category.ParentID != nil {
		parent := *category.ParentID
		category.ParentID = &parent
	}
	return &category
}
