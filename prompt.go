package main

import (
	"fmt"
	"strings"
)

// Agent instructions. The scoring agent answers in Bosnian; the numeric
// first line is the contract scanScore depends on.
const (
	analyzerInstruction = "Ti si AI asistent koji ocjenjuje CV na osnovu opisa posla."
	readerInstruction   = "Ti si asistent za izdvajanje teksta. Vraćaš isključivo traženi sadržaj, bez dodatnih komentara ili objašnjenja."
)

// buildAnalysisPrompt composes the scoring prompt for one candidate. The
// output format it demands (score line followed by seven numbered sections)
// must stay exactly as is.
func buildAnalysisPrompt(jobDescription, cvText string) string {
	return "📄 Opis posla:\n" + jobDescription + "\n\n" +
		"📄 CV kandidata:\n" + cvText + "\n\n" +
		"🔍 Sada slijedi analiza životopisa kandidata u odnosu na opis posla.\n\n" +
		"📌 Upute za analizu:\n" +
		"🔹 Na prvoj liniji **OBAVEZNO** napiši samo brojčanu ocjenu prikladnosti kandidata (npr. `7.5`).\n" +
		"🔹 Koristi decimalnu vrijednost sa jednom decimalom (obavezno).\n" +
		"🔹 Odgovor mora biti **100% zasnovan isključivo** na podacima iz CV-a i opisa posla. Nemoj izmišljati informacije koje nisu navedene.\n\n" +
		"🔹 Nakon toga napiši **DETALJNU i STRUKTURIRANU** analizu kandidata.\n" +
		"🔹 Tvoj odgovor treba biti organizovan u sljedeće sekcije (podnaslove):\n" +
		"1. Kompetencije\n" +
		"2. Iskustvo\n" +
		"3. Edukacija\n" +
		"4. Kompatibilnost\n" +
		"5. Prednosti kandidata (navedi najmanje 3)\n" +
		"6. Nedostaci kandidata (navedi najmanje 3)\n" +
		"7. Preporuke\n\n" +
		"🔹 Piši isključivo na **bosanskom jeziku**.\n" +
		"🔹 Format odgovora:\n" +
		"```\n" +
		"8.3\n" +
		"1. Kompetencije:\n...\n" +
		"2. Iskustvo:\n...\n" +
		"...\n" +
		"```"
}

// buildKeywordPrompt asks for the keyword/category signals of a résumé as a
// strict JSON object. parseSignals handles the non-compliant outputs.
func buildKeywordPrompt(cvText string) string {
	return "📄 Tekst CV-a:\n" + cvText + "\n\n" +
		"Izdvoji samo one ključne riječi koje se eksplicitno pojavljuju u tekstu CV-a — nemoj izmišljati dodatne podatke.\n\n" +
		"Vrati samo one izraze, tehnologije, alate ili pozicije koje su *tačno spomenute* u tekstu. Bez pretpostavki.\n" +
		"Odredi i kategoriju posla kojoj kandidat najviše odgovara (npr. \"backend\", \"frontend\", \"devops\").\n\n" +
		"Vrati rezultat isključivo kao JSON objekat, npr:\n" +
		"{\"keywords\": [\"node.js\", \"react\", \"html\", \"css\", \"postgresql\", \"fastapi\", \"git\"], \"category\": \"backend\"}"
}

const ocrPrompt = "Pročitaj sav tekst sa ove slike i vrati ga doslovno, bez ikakvih dodatnih komentara."

// degradedAnalysis is the narrative written when the model call fails. The
// record still reaches a terminal state, with the error visible to whoever
// polls it.
func degradedAnalysis(err error) string {
	return fmt.Sprintf("❌ Greška pri AI analizi: %v", err)
}

// cleanJSON strips the markdown code fences models like to wrap JSON in.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
