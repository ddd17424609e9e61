package main

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"cvanalyzer/internal/database"
)

const maxMatchedJobs = 10

// resumeSignals is what the reader agent is asked to return for a résumé.
type resumeSignals struct {
	Keywords []string `json:"keywords"`
	Category string   `json:"category"`
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// parseSignals recovers keywords and category from raw model output. Strict
// parse first: a JSON object, then a bare JSON array of keywords. If neither
// parses, the output is tokenized into lowercase words so that a chatty
// model still yields something usable. The fallbacks carry no category.
func parseSignals(raw string) resumeSignals {
	cleaned := cleanJSON(raw)

	var signals resumeSignals
	if err := json.Unmarshal([]byte(cleaned), &signals); err == nil {
		return signals
	}

	var keywords []string
	if err := json.Unmarshal([]byte(cleaned), &keywords); err == nil {
		return resumeSignals{Keywords: keywords}
	}

	for _, word := range wordPattern.FindAllString(raw, -1) {
		signals.Keywords = append(signals.Keywords, strings.ToLower(word))
	}
	return signals
}

// rankJobs orders the catalog by how many keywords appear in each job's
// title and description, case-insensitively. The sort is stable so jobs
// with equal counts keep their catalog order. At most maxMatchedJobs are
// returned.
func rankJobs(jobs []database.Job, keywords []string) []database.Job {
	ranked := make([]database.Job, len(jobs))
	copy(ranked, jobs)

	counts := make(map[uuid.UUID]int, len(ranked))
	for _, job := range ranked {
		counts[job.ID] = matchCount(job, keywords)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i].ID] > counts[ranked[j].ID]
	})

	if len(ranked) > maxMatchedJobs {
		ranked = ranked[:maxMatchedJobs]
	}
	return ranked
}

func matchCount(job database.Job, keywords []string) int {
	haystack := strings.ToLower(job.Title + " " + job.Description)
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			count++
		}
	}
	return count
}
