package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a flat, parent-referencing food category record
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name" binding:"required,max=255"`
	NameEn      string     `json:"nameEn,omitempty" binding:"max=255"`
	NameVi      string     `json:"nameVi,omitempty" binding:"max=255"`
	Description string     `json:"description,omitempty"`
	IconURL     string     `json:"iconUrl,omitempty"`
	ColorHex    string     `json:"colorHex,omitempty" binding:"omitempty,hexcolor"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	SortOrder   int        `json:"sortOrder"`
	IsActive    bool       `json:"isActive"`
	FoodCount   int        `json:"foodCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CategoryNode is a category placed in the reconstructed hierarchy.
// TotalFoodCount is FoodCount plus the FoodCount of every descendant.
type CategoryNode struct {
	Category
	Children       []CategoryNode `json:"children"`
	TotalFoodCount int            `json:"totalFoodCount"`
}
