package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"admin-datagrid/config"
	_ "admin-datagrid/docs" // Swagger docs
	"admin-datagrid/internal/fixture/repository/memory"
	"admin-datagrid/internal/fixture/usecase"
	"admin-datagrid/internal/httpserver"
	"admin-datagrid/internal/model"
	"admin-datagrid/pkg/log"
)

// @title       Admin Data Grid Fixture API
// @description In-memory admin collections for exercising the data grid client.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting fixture API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Fixture domain
	descs := model.Descriptors()
	repo := memory.New(logger)
	uc, err := usecase.New(logger, repo, descs)
	if err != nil {
		logger.Error(ctx, "Failed to initialize fixture use case: ", err)
		return
	}
	if cfg.Fixture.Seed > 0 {
		if err := uc.Seed(ctx, cfg.Fixture.Seed); err != nil {
			logger.Error(ctx, "Failed to seed fixture data: ", err)
			return
		}
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.Fixture.Port,
		Mode:            cfg.Fixture.Mode,
		Environment:     cfg.Environment.Name,
		RateLimitPerMin: cfg.Fixture.RateLimitPerMin,
		FixtureUseCase:  uc,
		Descriptors:     descs,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
