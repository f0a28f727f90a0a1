package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"flotta/internal/acquire"
	"flotta/internal/config"
	"flotta/internal/extractor/gemini"
	"flotta/internal/handler"
	"flotta/internal/keystore"
	"flotta/internal/port"
	"flotta/internal/preprocess"
	"flotta/internal/router"
	"flotta/internal/service"
	s3storage "flotta/internal/storage/s3"
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

	// Credential store: Postgres when a database is configured, otherwise
	// the key comes from config.
	var db *sqlx.DB
	var creds port.CredentialStore
	if cfg.DB.Host != "" {
		db, err = keystore.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		creds = keystore.NewPostgresStore(db)
	} else {
		creds = keystore.NewStaticStore(cfg.Parser.APIKey)
	}

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	acquirer := acquire.NewAcquirer(&http.Client{Timeout: 60 * time.Second}, s3Client)
	prep := preprocess.New(preprocess.Options{
		MaxWidth:       cfg.Preprocess.MaxWidth,
		BottomFraction: cfg.Preprocess.BottomFraction,
		Contrast:       cfg.Preprocess.Contrast,
		JPEGQuality:    cfg.Preprocess.JPEGQuality,
	})
	visionExtractor := gemini.NewExtractor(&cfg.Parser, creds)

	extractionSvc := service.NewExtractionService(acquirer, prep, visionExtractor)

	extractH := handler.NewExtractHandler(extractionSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(extractH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
