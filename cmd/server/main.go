package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/nutribase/backend/config"
	httpDelivery "github.com/nutribase/backend/internal/delivery/http"
	"github.com/nutribase/backend/internal/infrastructure/store"
	"github.com/nutribase/backend/internal/infrastructure/tracing"
	"github.com/nutribase/backend/internal/usecase"
)

const (
	serviceName     = "nutribase-backend"
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NutriBase Backend v%s", serviceVersion)
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Database: %s", cfg.Database.Driver)

	repos, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	var tracerProvider trace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err := tracing.NewProvider(cfg.Tracing, serviceName, serviceVersion, os.Stdout)
		if err != nil {
			log.Fatalf("Failed to set up tracing: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Printf("Failed to flush traces: %v", err)
			}
		}()
		otel.SetTracerProvider(tp)
		tracerProvider = tp
		log.Printf("Tracing: %s exporter, sample ratio %g", cfg.Tracing.Exporter, cfg.Tracing.SampleRatio)
	}

	nutritionService := usecase.NewNutritionService(repos.Foods, usecase.NutritionServiceConfig{
		MaxCompareFoods:      cfg.Nutrition.MaxCompareFoods,
		MaxRecipeIngredients: cfg.Nutrition.MaxRecipeIngredients,
		Parallelism:          cfg.Nutrition.Parallelism,
		TracerProvider:       tracerProvider,
	})
	foodService := usecase.NewFoodService(repos.Foods, repos.Categories)
	categoryService := usecase.NewCategoryService(repos.Categories)

	log.Printf("Nutrition: compare<=%d, recipe<=%d, parallelism=%d",
		cfg.Nutrition.MaxCompareFoods,
		cfg.Nutrition.MaxRecipeIngredients,
		cfg.Nutrition.Parallelism)

	handler := httpDelivery.NewHandler(nutritionService, foodService, categoryService)
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Server failed: %v", err)
		}
	case sig := <-sigCh:
		log.Printf("Received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
		}
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
