package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvanalyzer/internal/database"
)

// retry retries a function up to `attempts` times with growing backoff.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		wait := time.Duration(500*(i+1)) * time.Millisecond
		time.Sleep(wait)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// retryPolicy is a bounded fixed-delay poll. Tests inject a zero delay.
type retryPolicy struct {
	attempts int
	delay    time.Duration
}

var descriptionRetry = retryPolicy{attempts: 5, delay: time.Second}

// poll calls fn until it reports done or attempts run out, sleeping between
// attempts. The last observed value is returned either way.
func (p retryPolicy) poll(fn func() (string, bool)) string {
	var last string
	for i := 0; i < p.attempts; i++ {
		value, done := fn()
		last = value
		if done {
			return value
		}
		if i < p.attempts-1 {
			time.Sleep(p.delay)
		}
	}
	return last
}

// outcome tags how a background analysis run ended. Abandonment leaves the
// record pending forever with no write; that silence is deliberate and
// callers of the HTTP API only ever see it as an analysis that never
// finishes.
type outcome int

const (
	outcomeAbandoned outcome = iota
	outcomeCompleted
	outcomeDegraded
)

func (o outcome) String() string {
	switch o {
	case outcomeCompleted:
		return "completed"
	case outcomeDegraded:
		return "degraded"
	default:
		return "abandoned"
	}
}

// analysisStore is the slice of the persistence layer the orchestrator
// touches. *database.Queries satisfies it.
type analysisStore interface {
	GetAnalysis(ctx context.Context, id uuid.UUID) (database.Analysis, error)
	GetJob(ctx context.Context, id uuid.UUID) (database.Job, error)
	UpdateAnalysisResult(ctx context.Context, arg database.UpdateAnalysisResultParams) error
}

// analyzer drives one analysis from its pending record to a terminal write:
// resolve job text and document, extract, prompt, score, persist.
type analyzer struct {
	store     analysisStore
	docs      documentLocator
	extractor *textExtractor
	gen       textGenerator
	events    *eventPublisher
	descRetry retryPolicy
}

// run executes the background pipeline for one analysis id. The returned
// error is non-nil only for the final persistence write; every earlier
// failure resolves to an outcome instead.
func (a *analyzer) run(ctx context.Context, analysisID uuid.UUID) (outcome, error) {
	record, err := a.store.GetAnalysis(ctx, analysisID)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("analysis %s: reading record: %v", analysisID, err)
		}
		return outcomeAbandoned, nil
	}

	a.events.publish(analysisID, "processing", "analysis started")

	// The job row may exist before its description does, so poll briefly.
	// Whatever was last read is used, even if still empty.
	jobDescription := a.descRetry.poll(func() (string, bool) {
		job, err := a.store.GetJob(ctx, record.JobID)
		if err != nil {
			return "", false
		}
		return job.Description, strings.TrimSpace(job.Description) != ""
	})

	document, err := a.docs.Locate(ctx, record.UserID)
	if err != nil {
		if err != errNoDocument {
			log.Printf("analysis %s: locating document: %v", analysisID, err)
		}
		return outcomeAbandoned, nil
	}

	cvText, err := a.extractor.extract(ctx, document.Extension, document.Data)
	if err != nil {
		log.Printf("analysis %s: extracting text: %v", analysisID, err)
		return outcomeAbandoned, nil
	}
	if strings.TrimSpace(cvText) == "" {
		return outcomeAbandoned, nil
	}

	prompt := buildAnalysisPrompt(jobDescription, cvText)

	result := outcomeCompleted
	narrative, err := a.gen.Generate(ctx, record.UserID.String(), textPart(prompt))
	if err != nil {
		// Model failure still terminates the record, with the error as
		// the narrative and the score left at its default.
		log.Printf("analysis %s: model call failed: %v", analysisID, err)
		narrative = degradedAnalysis(err)
		result = outcomeDegraded
	}

	score := scanScore(narrative)

	err = a.store.UpdateAnalysisResult(ctx, database.UpdateAnalysisResultParams{
		Analysis: sql.NullString{String: narrative, Valid: true},
		Score:    sql.NullFloat64{Float64: score, Valid: true},
		ID:       analysisID,
	})
	if err != nil {
		return result, fmt.Errorf("persisting analysis %s: %w", analysisID, err)
	}

	a.events.publish(analysisID, "completed", "analysis "+result.String())
	return result, nil
}
