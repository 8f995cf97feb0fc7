package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		keepUmlauts bool
		expected    string
	}{
		{"Empty input", "", true, ""},
		{"Collapses whitespace", "zu   viel \t Abstand", true, "zu viel Abstand"},
		{"Keeps umlauts", "schöne Qualität", true, "schöne Qualität"},
		{"Transliterates umlauts", "schöne Qualität, größer", false, "schoene Qualitaet, groesser"},
		{"Transliterates sharp s", "Straße", false, "Strasse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input, tt.keepUmlauts))
		})
	}
}

func TestCleanReview(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Strips HTML", "<b>Super</b> Produkt", "Super Produkt"},
		{"Strips URLs", "Siehe https://example.de/produkt hier", "Siehe hier"},
		{"Strips emails", "Kontakt info@shop.de bitte", "Kontakt bitte"},
		{"Collapses ellipsis", "Naja.... geht so", "Naja... geht so"},
		{"Keeps German punctuation", "Toll! Wirklich? Ja, sehr.", "Toll! Wirklich? Ja, sehr."},
		{"Drops emoji", "Super 🎉 Produkt", "Super Produkt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanReview(tt.input))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := SplitSentences("Erster Satz. Zweiter Satz! Dritter Satz? Und noch einer...")
	assert.Equal(t, []string{"Erster Satz", "Zweiter Satz", "Dritter Satz", "Und noch einer"}, sentences)

	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences("..."))
}

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("Die Lieferung war schnell und die Lieferung war pünktlich", 10)
	assert.Equal(t, []string{"lieferung", "schnell", "pünktlich"}, keywords)
}

func TestExtractKeywordsRespectsLimit(t *testing.T) {
	keywords := ExtractKeywords("Versand Qualität Preis Service Material", 3)
	assert.Len(t, keywords, 3)
	assert.Equal(t, []string{"versand", "qualität", "preis"}, keywords)
}

func TestDetectSentimentWords(t *testing.T) {
	result := DetectSentimentWords("Super schnell geliefert, aber leider kaputt angekommen")

	assert.Contains(t, result.Positive, "super")
	assert.Contains(t, result.Positive, "schnell")
	assert.Contains(t, result.Negative, "kaputt")
	assert.Equal(t, "positive", result.Hint)
}

func TestDetectSentimentWordsNeutral(t *testing.T) {
	result := DetectSentimentWords("Das Produkt wurde gestern bestellt")

	assert.Empty(t, result.Positive)
	assert.Empty(t, result.Negative)
	assert.Equal(t, "neutral", result.Hint)
}

func TestCountIndicators(t *testing.T) {
	text := "ich finde das produkt ist wirklich gut und praktisch"

	// "ich", "das", "ist", "und" occur standalone
	assert.Equal(t, 4, CountIndicators(text, []string{"ich", "und", "der", "die", "das", "ist", "für", "mit"}))

	// substrings inside words do not count
	assert.Equal(t, 0, CountIndicators("dieser istanbul fürst", []string{"die", "ist", "für"}))
}
