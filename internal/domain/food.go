package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServingSize is a named, gram-denominated portion of a food
type ServingSize struct {
	Grams         decimal.Decimal `json:"grams"`
	Description   string          `json:"description"`
	DescriptionEn string          `json:"descriptionEn"`
	IsDefault     bool            `json:"isDefault,omitempty"`
}

// Food is a reference food record together with its per-100g nutrient profile.
// Nutrition is nil when no nutrient data has been recorded.
type Food struct {
	ID                       uuid.UUID           `json:"id"`
	Name                     string              `json:"name" binding:"required,max=255"`
	NameEn                   string              `json:"nameEn,omitempty" binding:"max=255"`
	NameVi                   string              `json:"nameVi,omitempty" binding:"max=255"`
	Description              string              `json:"description,omitempty"`
	FoodCode                 string              `json:"foodCode,omitempty" binding:"max=100"`
	Barcode                  string              `json:"barcode,omitempty" binding:"max=50"`
	CategoryID               *uuid.UUID          `json:"categoryId,omitempty"`
	CategoryName             string              `json:"categoryName,omitempty"`
	DataSource               string              `json:"dataSource"`
	ExternalID               string              `json:"externalId,omitempty"`
	ServingSizeGrams         decimal.NullDecimal `json:"servingSizeGrams"`
	ServingSizeDescription   string              `json:"servingSizeDescription,omitempty"`
	ServingSizeDescriptionEn string              `json:"servingSizeDescriptionEn,omitempty"`
	AlternativeServings      []ServingSize       `json:"alternativeServings,omitempty"`
	Nutrition                *NutrientProfile    `json:"nutrition,omitempty"`
	IsActive                 bool                `json:"isActive"`
	CreatedAt                time.Time           `json:"createdAt"`
	UpdatedAt                time.Time           `json:"updatedAt"`
}

// DefaultServing returns the food's stored default serving, or nil if none is set
func (f *Food) DefaultServing() *ServingSize {
	if !f.ServingSizeGrams.Valid || !f.ServingSizeGrams.Decimal.IsPositive() {
		return nil
	}
	return &ServingSize{
		Grams:         f.ServingSizeGrams.Decimal,
		Description:   f.ServingSizeDescription,
		DescriptionEn: f.ServingSizeDescriptionEn,
		IsDefault:     true,
	}
}

// FoodPage is one page of a food listing
type FoodPage struct {
	Items      []Food `json:"items"`
	TotalCount int64  `json:"totalCount"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}
