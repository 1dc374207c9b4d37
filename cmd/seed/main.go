package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/robertocantu/ironclub-backend/internal/inventory"
	"github.com/robertocantu/ironclub-backend/pkg/config"
	"github.com/robertocantu/ironclub-backend/pkg/db"
	"github.com/robertocantu/ironclub-backend/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := inventory.NewRepository(dbClient.DB())
	if err := inventory.Seed(ctx, repo, logg, cfg.Inventory.DefaultMinStockLevel); err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}
}
