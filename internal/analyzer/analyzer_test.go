package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marktpuls/marktpuls/internal/sentiment"
	"github.com/marktpuls/marktpuls/internal/translator"
)

func testScorer() sentiment.Scorer {
	return &sentiment.WordListScorer{
		Positive: []string{"super", "toll", "schnell"},
		Negative: []string{"schlecht", "kaputt", "enttäuscht"},
	}
}

// staticTranslator returns a fixed translation for every input.
type staticTranslator struct{ text string }

func (t staticTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return t.text, nil
}

// failingTranslator errors on every call.
type failingTranslator struct{}

func (failingTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return "", fmt.Errorf("translation service unreachable")
}

func TestAnalyzer_AnalyzeSingle(t *testing.T) {
	a := New(testScorer(), staticTranslator{text: "The delivery was great"}, "EN")

	insight := a.AnalyzeSingle(context.Background(), "Die Lieferung war super")

	assert.Equal(t, "positive", insight.Sentiment)
	assert.Equal(t, 1.0, insight.SentimentScore)
	assert.Equal(t, "The delivery was great", insight.TranslatedText)
	assert.Equal(t, map[string]float64{"Lieferung": 1.0}, insight.Aspects)
	assert.Contains(t, insight.Keywords, "lieferung")
	assert.Contains(t, insight.PositiveWords, "super")
}

func TestAnalyzer_AnalyzeSingleTranslationFailureIsRecoverable(t *testing.T) {
	a := New(testScorer(), failingTranslator{}, "EN")

	insight := a.AnalyzeSingle(context.Background(), "Die Lieferung war super")

	assert.Equal(t, translator.Unavailable, insight.TranslatedText)
	// the rest of the analysis is unaffected
	assert.Equal(t, "positive", insight.Sentiment)
}

func TestAnalyzer_AnalyzeSingleWithoutTranslator(t *testing.T) {
	a := New(testScorer(), nil, "")

	insight := a.AnalyzeSingle(context.Background(), "Die Lieferung war super")

	assert.Empty(t, insight.TranslatedText)
}

func TestAnalyzer_AnalyzeBatch(t *testing.T) {
	a := New(testScorer(), nil, "EN")

	report, err := a.AnalyzeBatch(context.Background(), []string{
		"Die Lieferung war super",
		"Lieferung super schnell",
		"Die Lieferung war toll",
		"Der Preis ist schlecht",
	})
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalReviews)
	assert.Equal(t, map[string]int{"positive": 3, "negative": 1}, report.SentimentDistribution)
	assert.Equal(t, 0.75, report.AverageScore)

	require.NotEmpty(t, report.AspectStats)
	assert.Equal(t, "Lieferung", report.AspectStats[0].Label)
	assert.Equal(t, 3, report.AspectStats[0].Count)

	assert.Contains(t, report.TopPositiveKeywords, "super")
	assert.Contains(t, report.TopNegativeKeywords, "schlecht")
	assert.Len(t, report.Reviews, 4)
}

func TestAnalyzer_AnalyzeBatchEmpty(t *testing.T) {
	a := New(testScorer(), nil, "EN")

	_, err := a.AnalyzeBatch(context.Background(), nil)
	assert.Error(t, err)
}

func TestGenerateInsights(t *testing.T) {
	a := New(testScorer(), nil, "EN")

	t.Run("Positive majority and selling point", func(t *testing.T) {
		report, err := a.AnalyzeBatch(context.Background(), []string{
			"Die Lieferung war super",
			"Lieferung super schnell",
			"Die Lieferung war toll",
			"Der Preis ist schlecht",
		})
		require.NoError(t, err)

		require.Len(t, report.KeyInsights, 2)
		assert.Contains(t, report.KeyInsights[0], "positives Feedback")
		assert.Contains(t, report.KeyInsights[1], "Verkaufsargument")
	})

	t.Run("Negative majority and pain point", func(t *testing.T) {
		report, err := a.AnalyzeBatch(context.Background(), []string{
			"Die Lieferung war schlecht",
			"Lieferung kaputt angekommen, schlecht",
			"Die Lieferung hat mich enttäuscht",
		})
		require.NoError(t, err)

		require.Len(t, report.KeyInsights, 2)
		assert.Contains(t, report.KeyInsights[0], "Handlungsbedarf")
		assert.Contains(t, report.KeyInsights[1], "Schmerzpunkt")
	})

	t.Run("Thin aspects produce no aspect insight", func(t *testing.T) {
		report, err := a.AnalyzeBatch(context.Background(), []string{
			"Die Lieferung war super",
			"Der Preis ist super",
		})
		require.NoError(t, err)

		// both aspects mentioned only once, only the sentiment insight fires
		require.Len(t, report.KeyInsights, 1)
		assert.Contains(t, report.KeyInsights[0], "positives Feedback")
	})

	t.Run("Two mentions stay below the aspect threshold", func(t *testing.T) {
		report, err := a.AnalyzeBatch(context.Background(), []string{
			"Die Lieferung war super",
			"Lieferung war wirklich super",
		})
		require.NoError(t, err)

		// mean score 1.0, but two mentions are not enough for an
		// aspect insight
		require.Len(t, report.KeyInsights, 1)
		assert.NotContains(t, report.KeyInsights[0], "Lieferung")
	})
}
