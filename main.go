package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"cvanalyzer/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DBURL)
	if err != nil {
		log.Fatal("error opening db. err: ", err)
	}
	dbQueries := database.New(db)

	storage, err := newObjectStore(ctx, cfg.R2)
	if err != nil {
		log.Fatal("error creating object store: ", err)
	}

	analyzerAgent, err := newAgent(ctx, cfg.GoogleAPIKey, "cv-analyzer", "Score candidate CVs against job descriptions", analyzerInstruction)
	if err != nil {
		log.Fatalf("failed to create analyzer agent: %v", err)
	}
	readerAgent, err := newAgent(ctx, cfg.GoogleAPIKey, "cv-reader", "Extract verbatim text and keywords from CVs", readerInstruction)
	if err != nil {
		log.Fatalf("failed to create reader agent: %v", err)
	}

	events, err := newEventPublisher(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("error connecting to RabbitMQ: %v", err)
	}

	locator := &resumeLocator{db: dbQueries, store: storage}
	extractor := &textExtractor{ocr: readerAgent}

	a := &app{
		db:        dbQueries,
		storage:   storage,
		locator:   locator,
		extractor: extractor,
		reader:    readerAgent,
		events:    events,
		analyzer: &analyzer{
			store:     dbQueries,
			docs:      locator,
			extractor: extractor,
			gen:       analyzerAgent,
			events:    events,
			descRetry: descriptionRetry,
		},
	}

	log.Println("Server starting on port " + cfg.Port)
	if err := a.routes().Run(":" + cfg.Port); err != nil {
		log.Fatal("server failed to start: ", err)
	}
}
