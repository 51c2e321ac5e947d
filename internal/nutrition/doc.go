// Package nutrition implements the stateless nutrition calculation engine.
//
// Every function in this package is pure: inputs are never mutated and a
// fresh value is returned for each call. Stored nutrient profiles are
// expressed per 100 grams; the engine rescales them to servings, classifies
// amounts against daily reference intakes, aggregates recipes, compares foods
// and derives a heuristic nutrient density score.
//
// Absent amounts (an invalid decimal.NullDecimal) mean "not measured" and are
// carried through scaling unchanged. Only recipe aggregation degrades absence
// to zero, and it reports which nutrients were affected.
package nutrition
