package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nutribase/backend/internal/domain"
	"github.com/nutribase/backend/internal/usecase"
)

const (
	serviceName    = "nutribase-backend"
	serviceVersion = "1.0.0"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	nutrition  *usecase.NutritionService
	foods      *usecase.FoodService
	categories *usecase.CategoryService
}

// NewHandler creates a new HTTP handler
func NewHandler(nutrition *usecase.NutritionService, foods *usecase.FoodService, categories *usecase.CategoryService) *Handler {
	return &Handler{
		nutrition:  nutrition,
		foods:      foods,
		categories: categories,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrUnsupportedNutrient):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrFoodNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrNoNutritionData),
		errors.Is(err, domain.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateCategory):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed (request %s): %v", c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest reports malformed input
func badRequest(c *gin.Context, format string, args ...any) {
	respondError(c, fmt.Errorf("%w: %s", domain.ErrInvalidRequest, fmt.Sprintf(format, args...)))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id %q", c.Param("id"))
		return uuid.Nil, false
	}
	return id, true
}

func parseDecimalQuery(c *gin.Context, name string) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		badRequest(c, "%s is required", name)
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		badRequest(c, "%s must be a number", name)
		return decimal.Zero, false
	}
	return value, true
}

func parseIntQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, "%s must be an integer", name)
		return 0, false
	}
	return value, true
}

// ListFoods returns one page of active foods
func (h *Handler) ListFoods(c *gin.Context) {
	page, ok := parseIntQuery(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := parseIntQuery(c, "pageSize", usecase.DefaultPageSize)
	if !ok {
		return
	}

	result, err := h.foods.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetFood returns a single food with its nutrient profile
func (h *Handler) GetFood(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	food, err := h.foods.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// CreateFood stores a new food
func (h *Handler) CreateFood(c *gin.Context) {
	var food domain.Food
	if err := c.ShouldBindJSON(&food); err != nil {
		badRequest(c, "%v", err)
		return
	}

	if err := h.foods.Create(c.Request.Context(), &food); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

// UpdateFood replaces a food's fields and nutrient profile
func (h *Handler) UpdateFood(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var food domain.Food
	if err := c.ShouldBindJSON(&food); err != nil {
		badRequest(c, "%v", err)
		return
	}

	if err := h.foods.Update(c.Request.Context(), id, &food); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// DeleteFood soft-deletes a food
func (h *Handler) DeleteFood(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.foods.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories returns every active category with its direct food count
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CategoryTree returns the category hierarchy
func (h *Handler) CategoryTree(c *gin.Context) {
	tree, err := h.categories.Tree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": tree})
}

// CreateCategory stores a new category
func (h *Handler) CreateCategory(c *gin.Context) {
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		badRequest(c, "%v", err)
		return
	}

	if err := h.categories.Create(c.Request.Context(), &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// GetCategory returns a single active category
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// UpdateCategory replaces a category's fields
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		badRequest(c, "%v", err)
		return
	}

	if err := h.categories.Update(c.Request.Context(), id, &category); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory soft-deletes a category
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
