package main

import (
	"fmt"
	"log"

	"activitymagic/internal/config"
	"activitymagic/internal/extract/openai"
	"activitymagic/internal/handler"
	"activitymagic/internal/repository/postgres"
	"activitymagic/internal/router"
	"activitymagic/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	auditRepo := postgres.NewExtractionAuditRepo(db)

	// Initialize services
	completionClient := openai.NewClient(&cfg.OpenAI)
	authSvc := service.NewAuthService(&cfg.Auth)
	extractSvc := service.NewExtractionService(completionClient, &cfg.OpenAI, auditRepo)
	pageSvc := service.NewPageService(&cfg.Fetch)

	// Initialize handlers
	extractH := handler.NewExtractHandler(extractSvc)
	pageH := handler.NewPageHandler(pageSvc)
	auditH := handler.NewAuditHandler(auditRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, extractH, pageH, auditH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
