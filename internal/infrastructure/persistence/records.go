package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
)

type categoryRecord struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Name        string     `gorm:"size:255;not null;uniqueIndex"`
	NameEn      string     `gorm:"size:255"`
	NameVi      string     `gorm:"size:255"`
	Description string     `gorm:"type:text"`
	IconURL     string     `gorm:"size:500"`
	ColorHex    string     `gorm:"size:7"`
	ParentID    *uuid.UUID `gorm:"type:char(36);index"`
	SortOrder   int        `gorm:"not null"`
	IsActive    bool       `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (categoryRecord) TableName() string { return "categories" }

type foodRecord struct {
	ID                       uuid.UUID             `gorm:"type:char(36);primaryKey"`
	Name                     string                `gorm:"size:255;not null;index"`
	NameEn                   string                `gorm:"size:255"`
	NameVi                   string                `gorm:"size:255"`
	Description              string                `gorm:"type:text"`
	FoodCode                 string                `gorm:"size:100;index"`
	Barcode                  string                `gorm:"size:50;index"`
	CategoryID               *uuid.UUID            `gorm:"type:char(36);index"`
	Category                 *categoryRecord       `gorm:"foreignKey:CategoryID"`
	DataSource               string                `gorm:"size:50"`
	ExternalID               string                `gorm:"size:100;index"`
	ServingSizeGrams         decimal.NullDecimal   `gorm:"type:decimal(10,2)"`
	ServingSizeDescription   string                `gorm:"size:255"`
	ServingSizeDescriptionEn string                `gorm:"size:255"`
	AlternativeServings      servingSizeList       `gorm:"type:text"`
	Nutrition                *nutritionFactsRecord `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE"`
	IsActive                 bool                  `gorm:"not null;index"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (foodRecord) TableName() string { return "foods" }

// nutritionFactsRecord holds a food's per-100g amounts. NULL means not measured.
type nutritionFactsRecord struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	FoodID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex"`

	CaloriesKcal  decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	ProteinG      decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	FatG          decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	CarbohydrateG decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	FiberG        decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	SugarG        decimal.NullDecimal `gorm:"type:decimal(10,3)"`

	SaturatedFatG       decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	MonounsaturatedFatG decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	PolyunsaturatedFatG decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	TransFatG           decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	CholesterolMg       decimal.NullDecimal `gorm:"type:decimal(10,3)"`

	SodiumMg     decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	PotassiumMg  decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	CalciumMg    decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	IronMg       decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	MagnesiumMg  decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	PhosphorusMg decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	ZincMg       decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	CopperMg     decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	ManganeseMg  decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	SeleniumMcg  decimal.NullDecimal `gorm:"type:decimal(10,3)"`

	VitaminAMcg       decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	VitaminCMg        decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	VitaminDMcg       decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	VitaminEMg        decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	VitaminKMcg       decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	ThiamineMg        decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	RiboflavinMg      decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	NiacinMg          decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	VitaminB6Mg       decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	FolateMcg         decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	VitaminB12Mcg     decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	BiotinMcg         decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	PantothenicAcidMg decimal.NullDecimal `gorm:"type:decimal(10,3)"`
	CholineMg         decimal.NullDecimal `gorm:"type:decimal(10,3)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (nutritionFactsRecord) TableName() string { return "nutrition_facts" }

func toCategoryRecord(c *domain.Category) categoryRecord {
	return categoryRecord{
		ID:          c.ID,
		Name:        c.Name,
		NameEn:      c.NameEn,
		NameVi:      c.NameVi,
		Description: c.Description,
		IconURL:     c.IconURL,
		ColorHex:    c.ColorHex,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *categoryRecord) toDomain() domain.Category {
	return domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		NameEn:      r.NameEn,
		NameVi:      r.NameVi,
		Description: r.Description,
		IconURL:     r.IconURL,
		ColorHex:    r.ColorHex,
		ParentID:    r.ParentID,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toFoodRecord(f *domain.Food) foodRecord {
	rec := foodRecord{
		ID:                       f.ID,
		Name:                     f.Name,
		NameEn:                   f.NameEn,
		NameVi:                   f.NameVi,
		Description:              f.Description,
		FoodCode:                 f.FoodCode,
		Barcode:                  f.Barcode,
		CategoryID:               f.CategoryID,
		DataSource:               f.DataSource,
		ExternalID:               f.ExternalID,
		ServingSizeGrams:         f.ServingSizeGrams,
		ServingSizeDescription:   f.ServingSizeDescription,
		ServingSizeDescriptionEn: f.ServingSizeDescriptionEn,
		AlternativeServings:      servingSizeList(f.AlternativeServings),
		IsActive:                 f.IsActive,
		CreatedAt:                f.CreatedAt,
		UpdatedAt:                f.UpdatedAt,
	}
	if f.Nutrition != nil {
		facts := toNutritionRecord(f.ID, f.Nutrition)
		rec.Nutrition = &facts
	}
	return rec
}

func (r *foodRecord) toDomain() domain.Food {
	food := domain.Food{
		ID:                       r.ID,
		Name:                     r.Name,
		NameEn:                   r.NameEn,
		NameVi:                   r.NameVi,
		Description:              r.Description,
		FoodCode:                 r.FoodCode,
		Barcode:                  r.Barcode,
		CategoryID:               r.CategoryID,
		DataSource:               r.DataSource,
		ExternalID:               r.ExternalID,
		ServingSizeGrams:         r.ServingSizeGrams,
		ServingSizeDescription:   r.ServingSizeDescription,
		ServingSizeDescriptionEn: r.ServingSizeDescriptionEn,
		AlternativeServings:      []domain.ServingSize(r.AlternativeServings),
		IsActive:                 r.IsActive,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
	if r.Category != nil {
		food.CategoryName = r.Category.Name
	}
	if r.Nutrition != nil {
		profile := r.Nutrition.toDomain()
		food.Nutrition = &profile
	}
	return food
}

func toNutritionRecord(foodID uuid.UUID, p *domain.NutrientProfile) nutritionFactsRecord {
	return nutritionFactsRecord{
		ID:     uuid.New(),
		FoodID: foodID,

		CaloriesKcal:  p.CaloriesKcal,
		ProteinG:      p.ProteinG,
		FatG:          p.FatG,
		CarbohydrateG: p.CarbohydrateG,
		FiberG:        p.FiberG,
		SugarG:        p.SugarG,

		SaturatedFatG:       p.SaturatedFatG,
		MonounsaturatedFatG: p.MonounsaturatedFatG,
		PolyunsaturatedFatG: p.PolyunsaturatedFatG,
		TransFatG:           p.TransFatG,
		CholesterolMg:       p.CholesterolMg,

		SodiumMg:     p.SodiumMg,
		PotassiumMg:  p.PotassiumMg,
		CalciumMg:    p.CalciumMg,
		IronMg:       p.IronMg,
		MagnesiumMg:  p.MagnesiumMg,
		PhosphorusMg: p.PhosphorusMg,
		ZincMg:       p.ZincMg,
		CopperMg:     p.CopperMg,
		ManganeseMg:  p.ManganeseMg,
		SeleniumMcg:  p.SeleniumMcg,

		VitaminAMcg:       p.VitaminAMcg,
		VitaminCMg:        p.VitaminCMg,
		VitaminDMcg:       p.VitaminDMcg,
		VitaminEMg:        p.VitaminEMg,
		VitaminKMcg:       p.VitaminKMcg,
		ThiamineMg:        p.ThiamineMg,
		RiboflavinMg:      p.RiboflavinMg,
		NiacinMg:          p.NiacinMg,
		VitaminB6Mg:       p.VitaminB6Mg,
		FolateMcg:         p.FolateMcg,
		VitaminB12Mcg:     p.VitaminB12Mcg,
		BiotinMcg:         p.BiotinMcg,
		PantothenicAcidMg: p.PantothenicAcidMg,
		CholineMg:         p.CholineMg,
	}
}

func (r *nutritionFactsRecord) toDomain() domain.NutrientProfile {
	return domain.NutrientProfile{
		CaloriesKcal:  r.CaloriesKcal,
		ProteinG:      r.ProteinG,
		FatG:          r.FatG,
		CarbohydrateG: r.CarbohydrateG,
		FiberG:        r.FiberG,
		SugarG:        r.SugarG,

		SaturatedFatG:       r.SaturatedFatG,
		MonounsaturatedFatG: r.MonounsaturatedFatG,
		PolyunsaturatedFatG: r.PolyunsaturatedFatG,
		TransFatG:           r.TransFatG,
		CholesterolMg:       r.CholesterolMg,

		SodiumMg:     r.SodiumMg,
		PotassiumMg:  r.PotassiumMg,
		CalciumMg:    r.CalciumMg,
		IronMg:       r.IronMg,
		MagnesiumMg:  r.MagnesiumMg,
		PhosphorusMg: r.PhosphorusMg,
		ZincMg:       r.ZincMg,
		CopperMg:     r.CopperMg,
		ManganeseMg:  r.ManganeseMg,
		SeleniumMcg:  r.SeleniumMcg,

		VitaminAMcg:       r.VitaminAMcg,
		VitaminCMg:        r.VitaminCMg,
		VitaminDMcg:       r.VitaminDMcg,
		VitaminEMg:        r.VitaminEMg,
		VitaminKMcg:       r.VitaminKMcg,
		ThiamineMg:        r.ThiamineMg,
		RiboflavinMg:      r.RiboflavinMg,
		NiacinMg:          r.NiacinMg,
		VitaminB6Mg:       r.VitaminB6Mg,
		FolateMcg:         r.FolateMcg,
		VitaminB12Mcg:     r.VitaminB12Mcg,
		BiotinMcg:         r.BiotinMcg,
		PantothenicAcidMg: r.PantothenicAcidMg,
		CholineMg:         r.CholineMg,
	}
}
