package main

import (
	"strings"
	"testing"
)

func TestBuildAnalysisPromptContract(t *testing.T) {
	prompt := buildAnalysisPrompt("Tražimo backend developera.", "Radio sam sa Go i PostgreSQL.")

	for _, fragment := range []string{
		"Tražimo backend developera.",
		"Radio sam sa Go i PostgreSQL.",
		"Na prvoj liniji **OBAVEZNO** napiši samo brojčanu ocjenu prikladnosti kandidata (npr. `7.5`).",
		"1. Kompetencije",
		"2. Iskustvo",
		"3. Edukacija",
		"4. Kompatibilnost",
		"5. Prednosti kandidata (navedi najmanje 3)",
		"6. Nedostaci kandidata (navedi najmanje 3)",
		"7. Preporuke",
		"bosanskom jeziku",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q", fragment)
		}
	}
}

func TestBuildAnalysisPromptDeterministic(t *testing.T) {
	first := buildAnalysisPrompt("opis", "cv")
	second := buildAnalysisPrompt("opis", "cv")
	if first != second {
		t.Fatal("prompt is not deterministic")
	}
}

// A model complying with the prompt's format contract must produce a
// response the score scanner can read back.
func TestPromptScoreRoundTrip(t *testing.T) {
	stub := &stubGenerator{response: "8.3\n1. Kompetencije:\nKandidat poznaje Go.\n2. Iskustvo:\n..."}

	prompt := buildAnalysisPrompt("Opis posla", "CV kandidata")
	raw, err := stub.Generate(t.Context(), "user", textPart(prompt))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := scanScore(raw); got != 8.3 {
		t.Fatalf("scanScore = %v, want 8.3", got)
	}
}

func TestBuildKeywordPromptMentionsJSON(t *testing.T) {
	prompt := buildKeywordPrompt("Radio sam sa React i Node.js.")

	if !strings.Contains(prompt, "Radio sam sa React i Node.js.") {
		t.Fatal("prompt missing cv text")
	}
	if !strings.Contains(prompt, "JSON objekat") {
		t.Fatal("prompt missing JSON format instruction")
	}
}
