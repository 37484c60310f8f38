package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sovbridge/internal/agent"
	_ "sovbridge/internal/agent/claude"
	_ "sovbridge/internal/agent/gemini"
	_ "sovbridge/internal/agent/openai"
	"sovbridge/internal/config"
	"sovbridge/internal/domain"
	"sovbridge/internal/handler"
	"sovbridge/internal/port"
	"sovbridge/internal/repository/postgres"
	"sovbridge/internal/router"
	"sovbridge/internal/service"
	s3storage "sovbridge/internal/storage/s3"
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
	fileRepo := postgres.NewSOVFileRepo(db)
	recordRepo := postgres.NewRecordRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	agentExtractor, err := buildAgentExtractor(&cfg.Agent)
	if err != nil {
		return err
	}

	// Initialize services
	extractSvc := service.NewExtractionService(agentExtractor, cfg.Extract.IncludeHidden, cfg.Extract.SheetConcurrency)
	fileSvc := service.NewFileService(fileRepo, recordRepo, s3Client, extractSvc, &cfg.S3, domain.ExtractionMode(cfg.Extract.Mode))

	// Initialize handlers
	sovH := handler.NewSOVHandler(fileSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, sovH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Queue worker picks up files left in queued status, e.g. after a crash
	// mid-extraction or rows seeded by external tooling.
	worker := service.NewExtractQueueWorker(fileRepo, fileSvc, service.ExtractQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone
	log.Println("Shutdown complete")

	return nil
}

// buildAgentExtractor wires the configured agent providers. With no primary
// API key the service runs heuristic-only; with a secondary configured the
// two providers run in consensus.
func buildAgentExtractor(cfg *config.AgentConfig) (port.SheetExtractor, error) {
	if cfg.Primary.APIKey == "" {
		log.Println("no agent API key configured, running heuristic-only")
		return nil, nil
	}

	primary, err := agent.NewExtractor(&cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("building primary extractor: %w", err)
	}

	sec := cfg.SecondaryConfig()
	if sec == nil || sec.APIKey == "" {
		log.Printf("single-agent extraction via %s", cfg.Primary.Provider)
		return primary, nil
	}

	secondary, err := agent.NewExtractor(sec)
	if err != nil {
		return nil, fmt.Errorf("building secondary extractor: %w", err)
	}

	log.Printf("dual-agent consensus extraction via %s + %s", cfg.Primary.Provider, sec.Provider)
	return agent.NewMergeExtractor(primary, secondary), nil
}
