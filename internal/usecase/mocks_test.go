package usecase

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nutribase/backend/internal/domain"
)

// MockFoodRepository is a mock implementation of domain.FoodRepository
type MockFoodRepository struct {
	mu        sync.Mutex
	foods     map[uuid.UUID]*domain.Food
	getError  error
	getCalls  int
	created   []*domain.Food
	updated   []*domain.Food
	createErr error
}

func NewMockFoodRepository(foods ...*domain.Food) *MockFoodRepository {
	m := &MockFoodRepository{foods: make(map[uuid.UUID]*domain.Food)}
	for _, f := range foods {
		m.foods[f.ID] = f
	}
	return m
}

func (m *MockFoodRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Food, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getError != nil {
		return nil, m.getError
	}
	if f, ok := m.foods[id]; ok {
		return f, nil
	}
	return nil, domain.ErrFoodNotFound
}

func (m *MockFoodRepository) List(ctx context.Context, page, pageSize int) (*domain.FoodPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]domain.Food, 0, len(m.foods))
	for _, f := range m.foods {
		items = append(items, *f)
	}
	return &domain.FoodPage{Items: items, TotalCount: int64(len(items)), Page: page, PageSize: pageSize, TotalPages: 1}, nil
}

func (m *MockFoodRepository) Create(ctx context.Context, food *domain.Food) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.foods[food.ID] = food
	m.created = append(m.created, food)
	return nil
}

func (m *MockFoodRepository) Update(ctx context.Context, food *domain.Food) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.foods[food.ID]; !ok {
		return domain.ErrFoodNotFound
	}
	m.foods[food.ID] = food
	m.updated = append(m.updated, food)
	return nil
}

func (m *MockFoodRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.foods[id]; !ok {
		return domain.ErrFoodNotFound
	}
	delete(m.foods, id)
	return nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	categories []domain.Category
	listError  error
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return append([]domain.Category(nil), m.categories...), nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == id {
			c := m.categories[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	for i := range m.categories {
		if m.categories[i].Name == name {
			c := m.categories[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.categories = append(m.categories, *category)
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	for i := range m.categories {
		if m.categories[i].ID == category.ID {
			m.categories[i] = *category
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

// MockUSDAClient is a mock implementation of domain.USDAClient
type MockUSDAClient struct {
	searchResult *domain.USDASearchResponse
	searchError  error
	queries      []string
}

func (m *MockUSDAClient) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	m.queries = append(m.queries, query)
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func (m *MockUSDAClient) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFood, error) {
	return nil, domain.ErrProductNotFound
}
