// Package textutil provides German text normalization and light
// tokenization used by the scoring engines. It is a preprocessing
// boundary: the engines consume its output and never touch raw input.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/marktpuls/marktpuls/internal/lexicon"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+\.\S+`)
	disallowedPattern = regexp.MustCompile(`[^\w\s.,!?äöüÄÖÜß\-'"()]`)
	ellipsisPattern   = regexp.MustCompile(`\.{2,}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	sentencePattern   = regexp.MustCompile(`[.!?]+`)
	wordPattern       = regexp.MustCompile(`\b[a-zA-ZäöüÄÖÜß]{3,}\b`)
)

// Normalize applies NFC normalization and collapses whitespace. With
// keepUmlauts false, umlauts are transliterated to their ASCII digraphs
// for matching against transliterated content.
func Normalize(text string, keepUmlauts bool) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	if !keepUmlauts {
		for umlaut, replacement := range lexicon.UmlautReplacements {
			text = strings.ReplaceAll(text, umlaut, replacement)
		}
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// CleanReview strips HTML, URLs and email addresses from a raw review
// and keeps only German letters and basic punctuation.
func CleanReview(text string) string {
	if text == "" {
		return ""
	}

	text = htmlTagPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = ellipsisPattern.ReplaceAllString(text, "...")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// SplitSentences splits text on runs of sentence punctuation and drops
// empty segments.
func SplitSentences(text string) []string {
	parts := sentencePattern.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// ExtractKeywords tokenizes text, removes stopwords and returns up to
// maxKeywords lowercased tokens, deduplicated in order of appearance.
func ExtractKeywords(text string, maxKeywords int) []string {
	tokens := wordPattern.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(tokens))
	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		lower := strings.ToLower(token)
		if _, stop := lexicon.GermanStopwords[lower]; stop {
			continue
		}
		if len(lower) < 2 {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, lower)
		if len(keywords) >= maxKeywords {
			break
		}
	}
	return keywords
}

// SentimentWords is the result of a quick lexical sentiment scan.
type SentimentWords struct {
	Positive []string
	Negative []string
	Hint     string // "positive", "negative" or "neutral"
}

// DetectSentimentWords scans for common e-commerce sentiment markers.
func DetectSentimentWords(text string) SentimentWords {
	lower := strings.ToLower(text)

	var result SentimentWords
	for _, word := range lexicon.PositiveWords {
		if strings.Contains(lower, word) {
			result.Positive = append(result.Positive, word)
		}
	}
	for _, word := range lexicon.NegativeWords {
		if strings.Contains(lower, word) {
			result.Negative = append(result.Negative, word)
		}
	}

	switch {
	case len(result.Positive) > len(result.Negative):
		result.Hint = "positive"
	case len(result.Negative) > len(result.Positive):
		result.Hint = "negative"
	default:
		result.Hint = "neutral"
	}
	return result
}

// CountIndicators counts how many of the given words occur as standalone
// tokens in text. Used for language detection on lowercased content.
func CountIndicators(text string, indicators []string) int {
	padded := " " + text + " "
	count := 0
	for _, word := range indicators {
		if strings.Contains(padded, " "+word+" ") {
			count++
		}
	}
	return count
}
