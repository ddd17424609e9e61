package main

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"cvanalyzer/internal/database"
)

func testJob(title, description string) database.Job {
	return database.Job{ID: uuid.New(), Title: title, Description: description}
}

func jobTitles(jobs []database.Job) []string {
	titles := make([]string, 0, len(jobs))
	for _, job := range jobs {
		titles = append(titles, job.Title)
	}
	return titles
}

func TestRankJobsOrdersByMatchCount(t *testing.T) {
	jobs := []database.Job{
		testJob("Chef", "food preparation"),
		testJob("Dev", "python sql"),
	}

	ranked := rankJobs(jobs, []string{"python"})

	want := []string{"Dev", "Chef"}
	if got := jobTitles(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked titles = %v, want %v", got, want)
	}
}

func TestRankJobsStableOnTies(t *testing.T) {
	jobs := []database.Job{
		testJob("First", "nothing relevant"),
		testJob("Second", "nothing relevant"),
		testJob("Third", "nothing relevant"),
	}

	ranked := rankJobs(jobs, nil)

	want := []string{"First", "Second", "Third"}
	if got := jobTitles(ranked); !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked titles = %v, want %v", got, want)
	}
}

func TestRankJobsCaseInsensitiveSubstring(t *testing.T) {
	jobs := []database.Job{
		testJob("Backend Developer", "We use PostgreSQL and Docker"),
		testJob("Designer", "Figma"),
	}

	ranked := rankJobs(jobs, []string{"postgresql", "DOCKER"})

	if ranked[0].Title != "Backend Developer" {
		t.Fatalf("expected backend job first, got %q", ranked[0].Title)
	}
}

func TestRankJobsTruncatesToTen(t *testing.T) {
	var jobs []database.Job
	for i := 0; i < 15; i++ {
		jobs = append(jobs, testJob(fmt.Sprintf("Job %d", i), "go"))
	}

	ranked := rankJobs(jobs, []string{"go"})

	if len(ranked) != maxMatchedJobs {
		t.Fatalf("expected %d jobs, got %d", maxMatchedJobs, len(ranked))
	}
}

func TestRankJobsDoesNotMutateCatalog(t *testing.T) {
	jobs := []database.Job{
		testJob("Chef", "food"),
		testJob("Dev", "python"),
	}

	rankJobs(jobs, []string{"python"})

	if jobs[0].Title != "Chef" {
		t.Fatalf("catalog order mutated: %v", jobTitles(jobs))
	}
}

func TestParseSignalsStrictObject(t *testing.T) {
	raw := `{"keywords": ["node.js", "react"], "category": "frontend"}`

	signals := parseSignals(raw)

	if !reflect.DeepEqual(signals.Keywords, []string{"node.js", "react"}) {
		t.Fatalf("unexpected keywords: %v", signals.Keywords)
	}
	if signals.Category != "frontend" {
		t.Fatalf("unexpected category: %q", signals.Category)
	}
}

func TestParseSignalsFencedObject(t *testing.T) {
	raw := "```json\n{\"keywords\": [\"go\", \"sql\"], \"category\": \"backend\"}\n```"

	signals := parseSignals(raw)

	if !reflect.DeepEqual(signals.Keywords, []string{"go", "sql"}) {
		t.Fatalf("unexpected keywords: %v", signals.Keywords)
	}
}

func TestParseSignalsBareArray(t *testing.T) {
	signals := parseSignals(`["python", "fastapi"]`)

	if !reflect.DeepEqual(signals.Keywords, []string{"python", "fastapi"}) {
		t.Fatalf("unexpected keywords: %v", signals.Keywords)
	}
	if signals.Category != "" {
		t.Fatalf("bare array should carry no category, got %q", signals.Category)
	}
}

func TestParseSignalsTokenizerFallback(t *testing.T) {
	signals := parseSignals("Evo ključnih riječi: Python i SQL")

	want := []string{"evo", "ključnih", "riječi", "python", "i", "sql"}
	if !reflect.DeepEqual(signals.Keywords, want) {
		t.Fatalf("tokenized keywords = %v, want %v", signals.Keywords, want)
	}
	if signals.Category != "" {
		t.Fatalf("fallback should carry no category, got %q", signals.Category)
	}
}

func TestCleanJSONStripsFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2]\n```", `[1,2]`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tc := range cases {
		if got := cleanJSON(tc.in); got != tc.want {
			t.Fatalf("cleanJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
