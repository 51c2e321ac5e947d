package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nutribase/backend/config"
	"github.com/nutribase/backend/internal/infrastructure/store"
	"github.com/nutribase/backend/internal/infrastructure/usda"
	"github.com/nutribase/backend/internal/usecase"
)

// openRepositories is swapped in tests
var openRepositories = store.Open

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "nutribase-seed",
		Usage: "Populate the NutriBase reference database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Override the configured database driver (sqlite, postgres, memory)",
			},
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "Override the configured database DSN",
			},
		},
		Commands: []*cli.Command{
			loadCmd(),
			usdaCmd(),
		},
	}
}

func loadCmd() *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: "Load categories and foods from a YAML seed file",
		Description: `Categories are created before foods. A category whose name already
exists is reused, so a seed file can be loaded more than once.

Example:
  nutribase-seed load --file seeds/vietnamese.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Path to the YAML seed file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			repos, err := openRepositories(cfg.Database)
			if err != nil {
				return err
			}
			defer repos.Close()

			report, err := loadSeedFile(ctx, usecase.NewSeedService(repos.Foods, repos.Categories, nil), cmd.String("file"))
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
}

func usdaCmd() *cli.Command {
	return &cli.Command{
		Name:  "usda",
		Usage: "Import foods from USDA FoodData Central",
		Description: `Searches FoodData Central and stores every match as a food with its
nutrient profile. Requires NUTRIBASE_USDA_API_KEY.

Example:
  nutribase-seed usda --query "brown rice" --limit 10 --category Grains`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "query",
				Aliases:  []string{"q"},
				Required: true,
				Usage:    "Search terms",
			},
			&cli.IntFlag{
				Name:  "limit",
				Value: 10,
				Usage: "Maximum number of foods to import",
			},
			&cli.StringFlag{
				Name:  "category",
				Usage: "Assign imported foods to this existing category",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log USDA requests and responses",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.USDA.APIKey == "" {
				return fmt.Errorf("USDA API key is required (set NUTRIBASE_USDA_API_KEY)")
			}

			repos, err := openRepositories(cfg.Database)
			if err != nil {
				return err
			}
			defer repos.Close()

			client := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL)
			client.SetDebug(cmd.Bool("debug"))

			service := usecase.NewSeedService(repos.Foods, repos.Categories, client)
			report, err := service.ImportUSDA(ctx, cmd.String("query"), int(cmd.Int("limit")), cmd.String("category"))
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if driver := cmd.String("driver"); driver != "" {
		cfg.Database.Driver = driver
	}
	if dsn := cmd.String("dsn"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	return cfg, nil
}

func loadSeedFile(ctx context.Context, service *usecase.SeedService, path string) (*usecase.SeedReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	file, err := usecase.ParseSeedFile(f)
	if err != nil {
		return nil, err
	}
	log.Printf("[Seed] Loading %d categories and %d foods from %s", len(file.Categories), len(file.Foods), path)
	return service.Load(ctx, file)
}

func printReport(r *usecase.SeedReport) {
	log.Printf("[Seed] Categories: %d created, %d skipped", r.CategoriesCreated, r.CategoriesSkipped)
	log.Printf("[Seed] Foods: %d created, %d skipped", r.FoodsCreated, r.FoodsSkipped)
}
