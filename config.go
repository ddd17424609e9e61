package main

import (
	"log"
	"os"

	"cvanalyzer/internal/database"
)

type config struct {
	Port         string
	DBURL        string
	R2           r2Config
	GoogleAPIKey string
	RabbitMQURL  string
}

func loadConfig() config {
	cfg := config{
		Port:         os.Getenv("PORT"),
		DBURL:        os.Getenv("DB_URL"),
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		RabbitMQURL:  os.Getenv("RABBITMQ_URL"),
		R2: r2Config{
			AccountID: os.Getenv("R2_ACCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBURL == "" {
		log.Fatal("empty DB_URL in environment")
	}
	if cfg.GoogleAPIKey == "" {
		log.Fatal("empty GOOGLE_API_KEY in environment")
	}
	if cfg.R2.AccountID == "" {
		log.Fatal("empty R2_ACCOUNT_ID in environment")
	}
	if cfg.R2.Bucket == "" {
		log.Fatal("empty R2_BUCKET in environment")
	}
	if cfg.R2.AccessKey == "" {
		log.Fatal("empty R2_ACCESS_KEY in environment")
	}
	if cfg.R2.SecretKey == "" {
		log.Fatal("empty R2_SECRET_KEY in environment")
	}

	return cfg
}

// app holds every constructed dependency; nothing in the service reaches
// for process-wide state.
type app struct {
	db        *database.Queries
	storage   *objectStore
	locator   documentLocator
	extractor *textExtractor
	reader    *Agent
	analyzer  *analyzer
	events    *eventPublisher
}
