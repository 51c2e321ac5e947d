package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nutribase/backend/internal/domain"
)

// FoodRepository implements domain.FoodRepository on a Store
type FoodRepository struct {
	store *Store
}

// GetByID returns an active food with its category name resolved
func (r *FoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Food, error) {
	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	food, exists := r.store.foods[id]
	if !exists || !food.IsActive {
		return nil, domain.ErrFoodNotFound
	}

	out, err := r.present(food)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns one page of active foods ordered by name
func (r *FoodRepository) List(ctx context.Context, page, pageSize int) (*domain.FoodPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page %d, page size %d", domain.ErrInvalidRequest, page, pageSize)
	}

	r.store.mutex.RLock()
	defer r.store.mutex.RUnlock()

	active := make([]domain.Food, 0, len(r.store.foods))
	for _, food := range r.store.foods {
		if food.IsActive {
			active = append(active, food)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].Name != active[j].Name {
			return active[i].Name < active[j].Name
		}
		return active[i].ID.String() < active[j].ID.String()
	})

	result := &domain.FoodPage{
		Items:      []domain.Food{},
		TotalCount: int64(len(active)),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (len(active) + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= len(active) {
		return result, nil
	}
	end := min(start+pageSize, len(active))

	for _, food := range active[start:end] {
		out, err := r.present(food)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, out)
	}
	return result, nil
}

// Create stores a copy of food. IDs must be unique.
func (r *FoodRepository) Create(ctx context.Context, food *domain.Food) error {
	stored, err := clone(*food)
	if err != nil {
		return fmt.Errorf("copying food: %w", err)
	}

	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	if _, exists := r.store.foods[food.ID]; exists {
		return fmt.Errorf("food %s already exists", food.ID)
	}
	r.store.foods[food.ID] = stored
	return nil
}

// Update replaces an active food. CreatedAt is kept from the stored record.
func (r *FoodRepository) Update(ctx context.Context, food *domain.Food) error {
	stored, err := clone(*food)
	if err != nil {
		return fmt.Errorf("copying food: %w", err)
	}

	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	existing, exists := r.store.foods[food.ID]
	if !exists || !existing.IsActive {
		return domain.ErrFoodNotFound
	}
	stored.CreatedAt = existing.CreatedAt
	r.store.foods[food.ID] = stored
	return nil
}

// Deactivate marks an active food inactive
func (r *FoodRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.store.mutex.Lock()
	defer r.store.mutex.Unlock()

	food, exists := r.store.foods[id]
	if !exists || !food.IsActive {
		return domain.ErrFoodNotFound
	}
	food.IsActive = false
	food.UpdatedAt = time.Now().UTC()
	r.store.foods[id] = food
	return nil
}

// present copies a stored food and resolves its category name.
// Callers must hold the read lock.
func (r *FoodRepository) present(food domain.Food) (domain.Food, error) {
	out, err := clone(food)
	if err != nil {
		return domain.Food{}, fmt.Errorf("copying food: %w", err)
	}
	out.CategoryName = ""
	if out.CategoryID != nil {
		if category, ok := r.store.categories[*out.CategoryID]; ok {
			out.CategoryName = category.Name
		}
	}
	return out, nil
}
