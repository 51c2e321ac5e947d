package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutribase/backend/internal/domain"
)

// CategoryService manages food categories
type CategoryService struct {
	categories domain.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categories domain.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns every active category with its direct food count
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Get returns an active category with its direct food count
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Counts come from the listing query
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			category.FoodCount = c.FoodCount
			break
		}
	}
	return category, nil
}

// Tree returns the category hierarchy
func (s *CategoryService) Tree(ctx context.Context) ([]domain.CategoryNode, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(categories), nil
}

// Create validates and stores a new category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return domain.ErrInvalidRequest
	}
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidRequest)
	}

	existing, err := s.categories.FindByName(ctx, category.Name)
	if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateCategory, category.Name)
	}

	if err := s.checkParent(ctx, uuid.Nil, category.ParentID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.IsActive = true
	category.FoodCount = 0
	category.CreatedAt = now
	category.UpdatedAt = now

	return s.categories.Create(ctx, category)
}

// Update validates and replaces an active category. Names stay unique and a
// category cannot be moved under itself or one of its descendants.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, category *domain.Category) error {
	if category == nil {
		return domain.ErrInvalidRequest
	}
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidRequest)
	}

	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	named, err := s.categories.FindByName(ctx, category.Name)
	if err != nil && !errors.Is(err, domain.ErrCategoryNotFound) {
		return err
	}
	if named != nil && named.ID != id {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateCategory, category.Name)
	}

	if err := s.checkParent(ctx, id, category.ParentID); err != nil {
		return err
	}

	category.ID = id
	category.IsActive = true
	category.FoodCount = 0
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now().UTC()

	return s.categories.Update(ctx, category)
}

// Delete soft-deletes a category. Its children are shown as roots of the tree.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.categories.Deactivate(ctx, id)
}

// checkParent verifies parentID names an active category that is not id or
// one of id's descendants
func (s *CategoryService) checkParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}

	seen := make(map[uuid.UUID]bool)
	for next := parentID; next != nil; {
		if id != uuid.Nil && *next == id {
			return fmt.Errorf("%w: a category cannot be its own ancestor", domain.ErrInvalidRequest)
		}
		if seen[*next] {
			break
		}
		seen[*next] = true

		ancestor, err := s.categories.GetByID(ctx, *next)
		if errors.Is(err, domain.ErrCategoryNotFound) && *next != *parentID {
			break
		}
		if err != nil {
			return referenceError("parent category", err)
		}
		next = ancestor.ParentID
	}
	return nil
}

// referenceError reports a missing referenced category as invalid input
// while keeping ErrCategoryNotFound in the chain
func referenceError(what string, err error) error {
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidRequest, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
