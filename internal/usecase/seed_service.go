package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/nutribase/backend/internal/domain"
	"github.com/nutribase/backend/internal/infrastructure/usda"
)

// SeedAmount is a decimal read from a YAML scalar without a float round trip
type SeedAmount struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler
func (a *SeedAmount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %q is not a number", value.Line, value.Value)
	}
	a.Decimal = d
	return nil
}

// SeedServing is a serving size entry of a seed file
type SeedServing struct {
	Grams         SeedAmount `yaml:"grams"`
	Description   string     `yaml:"description"`
	DescriptionEn string     `yaml:"descriptionEn"`
}

// SeedCategory is a category entry of a seed file. Parent refers to another
// category by name, either earlier in the file or already stored.
type SeedCategory struct {
	Name        string `yaml:"name"`
	NameEn      string `yaml:"nameEn"`
	NameVi      string `yaml:"nameVi"`
	Description string `yaml:"description"`
	ColorHex    string `yaml:"colorHex"`
	Parent      string `yaml:"parent"`
	SortOrder   int    `yaml:"sortOrder"`
}

// SeedFood is a food entry of a seed file. Nutrition keys are NutrientProfile
// field names (caloriesKcal, proteinG, ...) with amounts per 100g.
type SeedFood struct {
	Name                string                `yaml:"name"`
	NameEn              string                `yaml:"nameEn"`
	NameVi              string                `yaml:"nameVi"`
	Description         string                `yaml:"description"`
	FoodCode            string                `yaml:"foodCode"`
	Barcode             string                `yaml:"barcode"`
	Category            string                `yaml:"category"`
	Serving             *SeedServing          `yaml:"serving"`
	AlternativeServings []SeedServing         `yaml:"alternativeServings"`
	Nutrition           map[string]SeedAmount `yaml:"nutrition"`
}

// SeedFile is the document loaded by the seed command
type SeedFile struct {
	Categories []SeedCategory `yaml:"categories"`
	Foods      []SeedFood     `yaml:"foods"`
}

// SeedReport summarizes a seeding run
type SeedReport struct {
	CategoriesCreated int
	CategoriesSkipped int
	FoodsCreated      int
	FoodsSkipped      int
}

// ParseSeedFile decodes a YAML seed document. Unknown keys are rejected.
func ParseSeedFile(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file SeedFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &file, nil
}

// SeedService populates the reference database from seed files and USDA
type SeedService struct {
	foods      *FoodService
	categories *CategoryService
	catalog    domain.CategoryRepository
	usda       domain.USDAClient
}

// NewSeedService creates a seed service. usdaClient may be nil when only
// seed files are loaded.
func NewSeedService(foods domain.FoodRepository, categories domain.CategoryRepository, usdaClient domain.USDAClient) *SeedService {
	return &SeedService{
		foods:      NewFoodService(foods, categories),
		categories: NewCategoryService(categories),
		catalog:    categories,
		usda:       usdaClient,
	}
}

// Load stores the categories and then the foods of a seed file. Categories
// that already exist by name are reused.
func (s *SeedService) Load(ctx context.Context, file *SeedFile) (*SeedReport, error) {
	report := &SeedReport{}

	for _, sc := range file.Categories {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		created, err := s.ensureCategory(ctx, sc)
		if err != nil {
			return report, fmt.Errorf("category %q: %w", sc.Name, err)
		}
		if created {
			report.CategoriesCreated++
		} else {
			report.CategoriesSkipped++
		}
	}

	for _, sf := range file.Foods {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		food, err := s.foodFromSeed(ctx, sf)
		if err != nil {
			return report, fmt.Errorf("food %q: %w", sf.Name, err)
		}
		if err := s.foods.Create(ctx, food); err != nil {
			return report, fmt.Errorf("food %q: %w", sf.Name, err)
		}
		report.FoodsCreated++
	}

	log.Printf("[Seed] Loaded %d categories (%d existing), %d foods",
		report.CategoriesCreated, report.CategoriesSkipped, report.FoodsCreated)
	return report, nil
}

func (s *SeedService) ensureCategory(ctx context.Context, sc SeedCategory) (bool, error) {
	existing, err := s.findCategory(ctx, sc.Name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	category := &domain.Category{
		Name:        sc.Name,
		NameEn:      sc.NameEn,
		NameVi:      sc.NameVi,
		Description: sc.Description,
		ColorHex:    sc.ColorHex,
		SortOrder:   sc.SortOrder,
	}
	if sc.Parent != "" {
		parent, err := s.findCategory(ctx, sc.Parent)
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, fmt.Errorf("parent %q: %w", sc.Parent, domain.ErrCategoryNotFound)
		}
		category.ParentID = &parent.ID
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return false, err
	}
	return true, nil
}

// findCategory returns nil without error when no category has the name
func (s *SeedService) findCategory(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.catalog.FindByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, nil
	}
	return category, err
}

func (s *SeedService) foodFromSeed(ctx context.Context, sf SeedFood) (*domain.Food, error) {
	food := &domain.Food{
		Name:        sf.Name,
		NameEn:      sf.NameEn,
		NameVi:      sf.NameVi,
		Description: sf.Description,
		FoodCode:    sf.FoodCode,
		Barcode:     sf.Barcode,
		DataSource:  "seed",
	}

	if sf.Category != "" {
		category, err := s.findCategory(ctx, sf.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("category %q: %w", sf.Category, domain.ErrCategoryNotFound)
		}
		food.CategoryID = &category.ID
	}

	if sf.Serving != nil {
		food.ServingSizeGrams = decimal.NewNullDecimal(sf.Serving.Grams.Decimal)
		food.ServingSizeDescription = sf.Serving.Description
		food.ServingSizeDescriptionEn = sf.Serving.DescriptionEn
	}
	for _, alt := range sf.AlternativeServings {
		food.AlternativeServings = append(food.AlternativeServings, domain.ServingSize{
			Grams:         alt.Grams.Decimal,
			Description:   alt.Description,
			DescriptionEn: alt.DescriptionEn,
		})
	}

	if len(sf.Nutrition) > 0 {
		profile, err := profileFromSeed(sf.Nutrition)
		if err != nil {
			return nil, err
		}
		food.Nutrition = profile
	}

	return food, nil
}

func profileFromSeed(amounts map[string]SeedAmount) (*domain.NutrientProfile, error) {
	profile := &domain.NutrientProfile{}
	fields := make(map[string]*decimal.NullDecimal)
	for _, f := range profile.Fields() {
		fields[f.Name] = f.Value
	}

	for name, amount := range amounts {
		field, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown nutrient %q", domain.ErrInvalidRequest, name)
		}
		*field = decimal.NewNullDecimal(amount.Decimal)
	}
	return profile, nil
}

// ImportUSDA searches FoodData Central and stores up to limit results under
// categoryName, which is created if missing. Foods already imported (same FDC
// ID in this run) are skipped.
func (s *SeedService) ImportUSDA(ctx context.Context, query string, limit int, categoryName string) (*SeedReport, error) {
	if s.usda == nil {
		return nil, errors.New("USDA client not configured")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}

	report := &SeedReport{}

	var category *domain.Category
	if categoryName != "" {
		created, err := s.ensureCategory(ctx, SeedCategory{Name: categoryName})
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", categoryName, err)
		}
		if created {
			report.CategoriesCreated++
		}
		if category, err = s.findCategory(ctx, categoryName); err != nil {
			return nil, err
		}
	}

	results, err := s.usda.SearchFoods(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching USDA for %q: %w", query, err)
	}

	seen := make(map[int]bool)
	for _, usdaFood := range results.Foods {
		if limit > 0 && report.FoodsCreated >= limit {
			break
		}
		if seen[usdaFood.FdcID] {
			report.FoodsSkipped++
			continue
		}
		seen[usdaFood.FdcID] = true

		food := usda.MapToFood(&usdaFood)
		if category != nil {
			food.CategoryID = &category.ID
		}
		if err := s.foods.Create(ctx, food); err != nil {
			log.Printf("[Seed] Skipping USDA food %d (%s): %v", usdaFood.FdcID, usdaFood.Description, err)
			report.FoodsSkipped++
			continue
		}
		report.FoodsCreated++
	}

	log.Printf("[Seed] Imported %d USDA foods for %q (%d skipped)", report.FoodsCreated, query, report.FoodsSkipped)
	return report, nil
}
