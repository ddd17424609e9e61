package main

import (
	"regexp"
	"strconv"
)

// The prompt instructs the model to put the suitability score on the first
// line as a decimal with one fractional digit. Models do not always comply,
// so the whole response is scanned and the first match wins. No match means
// the default score. No upper bound is applied.
var scorePattern = regexp.MustCompile(`\d{1,2}\.\d`)

const defaultScore = 0.0

func scanScore(text string) float64 {
	match := scorePattern.FindString(text)
	if match == "" {
		return defaultScore
	}
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return defaultScore
	}
	return score
}
