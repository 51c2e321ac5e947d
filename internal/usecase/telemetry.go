package usecase

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/nutribase/backend/internal/usecase"

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutribase_nutrition_calculations_total",
			Help: "Total number of nutrition calculations by operation",
		},
		[]string{"operation"},
	)

	recipePartialTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutribase_recipe_partial_total",
			Help: "Total number of recipe aggregations with missing nutrient data",
		},
	)

	comparisonSkippedFoods = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutribase_comparison_skipped_foods_total",
			Help: "Total number of foods left out of comparisons for lack of nutrient data",
		},
	)
)

// tracerFrom falls back to the global provider, which is a no-op until the
// server installs one
func tracerFrom(provider trace.TracerProvider) trace.Tracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return provider.Tracer(tracerName)
}

// startOperation counts a calculation and opens its span
func (s *NutritionService) startOperation(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	calculationsTotal.WithLabelValues(operation).Inc()
	attrs = append(attrs, attribute.String("nutrition.operation", operation))
	return s.tracer.Start(ctx, "nutrition."+operation, trace.WithAttributes(attrs...))
}

// endOperation records err on the span, if any, and ends it
func endOperation(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
