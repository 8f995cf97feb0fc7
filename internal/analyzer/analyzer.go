// Package analyzer composes the sentiment scorer, the aspect engine and
// the translator into a full review-analysis pipeline, and rolls batches
// up into reports with generated insights.
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/marktpuls/marktpuls/internal/absa"
	"github.com/marktpuls/marktpuls/internal/sentiment"
	"github.com/marktpuls/marktpuls/internal/textutil"
	"github.com/marktpuls/marktpuls/internal/translator"
)

const maxKeywords = 20

// Insight is the full analysis of a single review text.
type Insight struct {
	OriginalText   string             `json:"original_text"`
	TranslatedText string             `json:"translated_text,omitempty"`
	Sentiment      string             `json:"sentiment"`
	SentimentScore float64            `json:"sentiment_score"`
	Aspects        map[string]float64 `json:"aspects"`
	Keywords       []string           `json:"keywords"`
	PositiveWords  []string           `json:"positive_words,omitempty"`
	NegativeWords  []string           `json:"negative_words,omitempty"`
}

// Report aggregates a batch of analyzed reviews.
type Report struct {
	TotalReviews int       `json:"total_reviews"`
	AnalyzedAt   time.Time `json:"analyzed_at"`

	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	AverageScore          float64        `json:"average_score"`

	AspectStats []absa.AspectStats `json:"aspect_stats"`

	TopPositiveKeywords []string `json:"top_positive_keywords"`
	TopNegativeKeywords []string `json:"top_negative_keywords"`
	KeyInsights         []string `json:"key_insights"`

	Reviews []Insight `json:"reviews"`
}

// Analyzer is the composed review-analysis pipeline. Collaborators are
// injected; a nil translator disables translation.
type Analyzer struct {
	scorer     sentiment.Scorer
	extractor  *absa.Extractor
	translator translator.Translator
	targetLang string
}

// New builds an analyzer. A nil scorer falls back to the VADER default;
// translator may be nil.
func New(scorer sentiment.Scorer, trans translator.Translator, targetLang string) *Analyzer {
	if scorer == nil {
		scorer = sentiment.NewVADERScorer()
	}
	if targetLang == "" {
		targetLang = "EN"
	}
	return &Analyzer{
		scorer:     scorer,
		extractor:  absa.NewExtractor(scorer),
		translator: trans,
		targetLang: targetLang,
	}
}

// AnalyzeSingle runs the full pipeline on one review text. Translation
// failure is recoverable: the insight carries the sentinel instead.
func (a *Analyzer) AnalyzeSingle(ctx context.Context, text string) Insight {
	insight, _ := a.analyze(ctx, text)
	return insight
}

func (a *Analyzer) analyze(ctx context.Context, text string) (Insight, absa.Result) {
	sentimentResult, err := a.scorer.Score(text)
	if err != nil {
		logrus.Warnf("Sentiment scoring failed, marking uncertain: %v", err)
		sentimentResult = sentiment.Result{Label: sentiment.LabelUncertain, Score: 0.5}
	}

	absaResult := a.extractor.Extract(text)
	words := textutil.DetectSentimentWords(text)

	translated := ""
	if a.translator != nil {
		translated, err = a.translator.Translate(ctx, text, a.targetLang)
		if err != nil {
			logrus.Warnf("Translation failed: %v", err)
			translated = translator.Unavailable
		}
	}

	return Insight{
		OriginalText:   text,
		TranslatedText: translated,
		Sentiment:      string(sentimentResult.Label),
		SentimentScore: sentimentResult.Score,
		Aspects:        absaResult.Summary(),
		Keywords:       textutil.ExtractKeywords(text, maxKeywords),
		PositiveWords:  words.Positive,
		NegativeWords:  words.Negative,
	}, absaResult
}

// AnalyzeBatch analyzes every text independently and assembles the
// report only once the full batch is done, so callers never observe a
// partial aggregate.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string) (*Report, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to analyze")
	}

	insights := make([]Insight, 0, len(texts))
	absaResults := make([]absa.Result, 0, len(texts))
	positiveCounts := make(map[string]int)
	negativeCounts := make(map[string]int)

	for _, text := range texts {
		insight, absaResult := a.analyze(ctx, text)
		insights = append(insights, insight)
		absaResults = append(absaResults, absaResult)

		for _, word := range insight.PositiveWords {
			positiveCounts[word]++
		}
		for _, word := range insight.NegativeWords {
			negativeCounts[word]++
		}
	}

	distribution := make(map[string]int)
	scoreSum := 0.0
	for _, insight := range insights {
		distribution[insight.Sentiment]++
		scoreSum += insight.SentimentScore
	}

	aspectStats := a.extractor.Aggregate(absaResults)

	return &Report{
		TotalReviews:          len(texts),
		AnalyzedAt:            time.Now(),
		SentimentDistribution: distribution,
		AverageScore:          round3(scoreSum / float64(len(insights))),
		AspectStats:           aspectStats,
		TopPositiveKeywords:   topWords(positiveCounts, 10),
		TopNegativeKeywords:   topWords(negativeCounts, 10),
		KeyInsights:           generateInsights(distribution, aspectStats, len(texts)),
		Reviews:               insights,
	}, nil
}

// generateInsights derives human-readable findings from the aggregates.
// Rules fire deterministically and in a fixed order.
func generateInsights(distribution map[string]int, aspectStats []absa.AspectStats, total int) []string {
	var insights []string

	positiveRate := float64(distribution[string(sentiment.LabelPositive)]) / float64(total) * 100
	negativeRate := float64(distribution[string(sentiment.LabelNegative)]) / float64(total) * 100

	if positiveRate > 60 {
		insights = append(insights, fmt.Sprintf("Insgesamt positives Feedback, %.1f%% positive Bewertungen", positiveRate))
	} else if negativeRate > 40 {
		insights = append(insights, fmt.Sprintf("Hoher Anteil negativer Bewertungen (%.1f%%), Handlungsbedarf", negativeRate))
	}

	// Aspects mentioned fewer than three times are too thin to call.
	for _, stats := range aspectStats {
		if stats.Count < 3 {
			continue
		}
		if stats.AvgScore < 0.4 {
			insights = append(insights, fmt.Sprintf("%s schneidet schlecht ab (%.2f), zentraler Schmerzpunkt", stats.Label, stats.AvgScore))
		} else if stats.AvgScore > 0.7 {
			insights = append(insights, fmt.Sprintf("%s überzeugt (%.2f), klares Verkaufsargument", stats.Label, stats.AvgScore))
		}
	}

	return insights
}

func topWords(counts map[string]int, n int) []string {
	type wordCount struct {
		word  string
		count int
	}
	ranked := make([]wordCount, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, wordCount{word, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	words := make([]string, 0, n)
	for i, entry := range ranked {
		if i >= n {
			break
		}
		words = append(words, entry.word)
	}
	return words
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
