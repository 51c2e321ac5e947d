package memory

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/nutribase/backend/internal/domain"
)

// Store is a thread-safe in-memory food and category database
type Store struct {
	foods      map[uuid.UUID]domain.Food
	categories map[uuid.UUID]domain.Category
	mutex      sync.RWMutex
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		foods:      make(map[uuid.UUID]domain.Food),
		categories: make(map[uuid.UUID]domain.Category),
	}
}

// Foods returns a food repository backed by the store
func (s *Store) Foods() *FoodRepository {
	return &FoodRepository{store: s}
}

// Categories returns a category repository backed by the store
func (s *Store) Categories() *CategoryRepository {
	return &CategoryRepository{store: s}
}

// Size returns the number of stored foods and categories (for debugging/monitoring)
func (s *Store) Size() (foods, categories int) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.foods), len(s.categories)
}

// Clear removes all foods and categories
func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.foods = make(map[uuid.UUID]domain.Food)
	s.categories = make(map[uuid.UUID]domain.Category)
}

// clone deep-copies v through JSON so stored records never share memory
// with callers, the way a real database would behave
func clone[T any](v T) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}
