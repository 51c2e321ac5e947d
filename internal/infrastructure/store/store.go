// Package store picks the repository implementation named by configuration.
package store

import (
	"fmt"
	"log"

	"github.com/nutribase/backend/config"
	"github.com/nutribase/backend/internal/domain"
	"github.com/nutribase/backend/internal/infrastructure/memory"
	"github.com/nutribase/backend/internal/infrastructure/persistence"
)

// Repositories bundles the food and category repositories of one backend
type Repositories struct {
	Foods      domain.FoodRepository
	Categories domain.CategoryRepository
	Driver     string

	close func() error
}

// Open builds repositories for the configured driver
func Open(cfg config.DatabaseConfig) (*Repositories, error) {
	switch cfg.Driver {
	case "memory":
		s := memory.NewStore()
		log.Printf("[DB] Using in-memory store")
		return &Repositories{
			Foods:      s.Foods(),
			Categories: s.Categories(),
			Driver:     cfg.Driver,
			close:      func() error { s.Clear(); return nil },
		}, nil

	case "sqlite", "postgres":
		db, err := persistence.Open(persistence.Options{
			Driver:     cfg.Driver,
			DSN:        cfg.DSN,
			LogQueries: cfg.LogQueries,
		})
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := persistence.Migrate(db); err != nil {
				_ = persistence.Close(db)
				return nil, err
			}
		}
		return &Repositories{
			Foods:      persistence.NewFoodRepository(db),
			Categories: persistence.NewCategoryRepository(db),
			Driver:     cfg.Driver,
			close:      func() error { return persistence.Close(db) },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Close releases the backend
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}
