package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutribase/backend/internal/domain"
)

// RecipeRequest is the body of POST /nutrition/recipe
type RecipeRequest struct {
	Ingredients []domain.RecipeIngredient `json:"ingredients" binding:"required,dive"`
}

// CompareRequest is the body of POST /nutrition/compare
type CompareRequest struct {
	FoodIDs []uuid.UUID `json:"foodIds" binding:"required"`
}

// respondNoNutrition reports a lookup that produced no result
func respondNoNutrition(c *gin.Context) {
	respondError(c, domain.ErrNoNutritionData)
}

// ServingNutrition scales a food to ?grams=
func (h *Handler) ServingNutrition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	grams, ok := parseDecimalQuery(c, "grams")
	if !ok {
		return
	}

	serving, err := h.nutrition.CalculateServingNutrition(c.Request.Context(), id, grams)
	if err != nil {
		respondError(c, err)
		return
	}
	if serving == nil {
		respondNoNutrition(c)
		return
	}
	c.JSON(http.StatusOK, serving)
}

// ServingDailyValues classifies the headline nutrients of a serving
func (h *Handler) ServingDailyValues(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	grams, ok := parseDecimalQuery(c, "grams")
	if !ok {
		return
	}

	values, err := h.nutrition.ServingDailyValues(c.Request.Context(), id, grams)
	if err != nil {
		respondError(c, err)
		return
	}
	if values == nil {
		respondNoNutrition(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dailyValues": values})
}

// AlternativeServings lists the food's baseline, default and alternative servings
func (h *Handler) AlternativeServings(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	servings, err := h.nutrition.AlternativeServings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if servings == nil {
		servings = []domain.ServingNutrition{}
	}
	c.JSON(http.StatusOK, gin.H{"servings": servings})
}

// RecommendedServing scales a food to its serving for ?profile=
func (h *Handler) RecommendedServing(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	serving, err := h.nutrition.RecommendedServing(c.Request.Context(), id, c.Query("profile"))
	if err != nil {
		respondError(c, err)
		return
	}
	if serving == nil {
		respondNoNutrition(c)
		return
	}
	c.JSON(http.StatusOK, serving)
}

// DensityScore returns the food's nutrient density score
func (h *Handler) DensityScore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	score, err := h.nutrition.NutrientDensityScore(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foodId": id, "densityScore": score})
}

// DailyValue classifies ?amount= of ?nutrient= against its daily reference
func (h *Handler) DailyValue(c *gin.Context) {
	amount, ok := parseDecimalQuery(c, "amount")
	if !ok {
		return
	}
	kind := domain.NutrientKind(c.Query("nutrient"))

	result, ok := h.nutrition.DailyValuePercentage(c.Request.Context(), amount, kind)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":              fmt.Sprintf("%v: %q", domain.ErrUnsupportedNutrient, kind),
			"supportedNutrients": h.nutrition.SupportedNutrients(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecipeNutrition totals the nutrients of a recipe
func (h *Handler) RecipeNutrition(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "%v", err)
		return
	}

	result, err := h.nutrition.CalculateRecipeNutrition(c.Request.Context(), req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CompareFoods compares foods serving-to-serving
func (h *Handler) CompareFoods(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "%v", err)
		return
	}

	result, err := h.nutrition.CompareFoods(c.Request.Context(), req.FoodIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
