package main

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"medscribe/internal/config"
	"medscribe/internal/handler"
	"medscribe/internal/llm"
	"medscribe/internal/llm/ollama"
	"medscribe/internal/pdfrender"
	"medscribe/internal/port"
	"medscribe/internal/repository/postgres"
	"medscribe/internal/repository/sqlite"
	"medscribe/internal/router"
	"medscribe/internal/service"
	localstorage "medscribe/internal/storage/local"
	s3storage "medscribe/internal/storage/s3"
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

	db, recordRepo, err := openHistoryStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	storage, err := openStorage(cfg)
	if err != nil {
		return err
	}

	// Text generation: one router over all providers, plus the fixed OCR
	// client (Ollama vision model, not caller-selectable).
	generator := llm.NewRouter(&cfg.LLM)
	ocrClient := ollama.NewClient(&cfg.LLM)
	renderer := pdfrender.New()

	// Services
	extractionSvc := service.NewExtractionService(renderer, ocrClient, generator)
	reasoningSvc := service.NewReasoningService(generator)
	analysisSvc := service.NewAnalysisService(extractionSvc, reasoningSvc, recordRepo)
	recordSvc := service.NewRecordService(recordRepo)

	// Handlers
	analyzeH := handler.NewAnalyzeHandler(analysisSvc, storage, cfg.LLM, cfg.Storage.MaxFileSizeMB)
	insuranceH := handler.NewInsuranceHandler(reasoningSvc, cfg.LLM)
	recordH := handler.NewRecordHandler(recordSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, analyzeH, insuranceH, recordH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func openHistoryStore(cfg *config.Config) (*sqlx.DB, port.RecordRepository, error) {
	switch cfg.DB.Driver {
	case "sqlite":
		db, err := sqlite.NewDB(cfg.DB.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return db, sqlite.NewRecordRepo(db), nil
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return db, postgres.NewRecordRepo(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown db driver: %s", cfg.DB.Driver)
	}
}

func openStorage(cfg *config.Config) (port.ObjectStorage, error) {
	switch cfg.Storage.Backend {
	case "s3":
		storage, err := s3storage.NewS3Client(&cfg.Storage.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		return storage, nil
	case "local":
		storage, err := localstorage.NewStorage(cfg.Storage.LocalDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
