// Package absa implements aspect-based sentiment analysis for German
// e-commerce reviews: a review is split into sentences, sentences are
// matched against the aspect lexicon and each detected aspect gets its
// own sentiment score from the injected scorer.
package absa

import (
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/marktpuls/marktpuls/internal/lexicon"
	"github.com/marktpuls/marktpuls/internal/sentiment"
	"github.com/marktpuls/marktpuls/internal/textutil"
)

// AspectSentiment is the sentiment of one detected aspect. Absence of an
// aspect in a text means no AspectSentiment is produced, not a zero score.
type AspectSentiment struct {
	Aspect        lexicon.Aspect `json:"aspect"`
	Label         string         `json:"label"`
	Score         float64        `json:"score"`      // 0-1
	Confidence    float64        `json:"confidence"` // 0-1
	Evidence      []string       `json:"evidence"`
	KeywordsFound []string       `json:"keywords_found"`
}

// Result is the full extraction output for one text.
type Result struct {
	Text         string            `json:"text"`
	Aspects      []AspectSentiment `json:"aspects"`
	OverallScore float64           `json:"overall_score"`
}

// Summary returns display label -> score for all detected aspects.
func (r *Result) Summary() map[string]float64 {
	summary := make(map[string]float64, len(r.Aspects))
	for _, aspect := range r.Aspects {
		summary[aspect.Label] = aspect.Score
	}
	return summary
}

// AspectStats aggregates one aspect over a batch of texts.
type AspectStats struct {
	Label        string  `json:"label"`
	AvgScore     float64 `json:"avg_score"`
	Count        int     `json:"count"`
	PositiveRate float64 `json:"positive_rate"` // % of mentions with score > 0.6
}

// Extractor maps free text to per-aspect sentiment. It is stateless and
// safe for concurrent use.
type Extractor struct {
	scorer          sentiment.Scorer
	keywordToAspect map[string]lexicon.Aspect
}

// NewExtractor builds an extractor around the given scorer; a nil scorer
// falls back to the VADER lexicon default.
func NewExtractor(scorer sentiment.Scorer) *Extractor {
	if scorer == nil {
		scorer = sentiment.NewVADERScorer()
	}

	index := make(map[string]lexicon.Aspect)
	for aspect, entry := range lexicon.Aspects {
		for _, keyword := range entry.Keywords {
			index[strings.ToLower(keyword)] = aspect
		}
	}

	return &Extractor{scorer: scorer, keywordToAspect: index}
}

type aspectGroup struct {
	sentences []string
	keywords  map[string]struct{}
}

// Extract performs aspect-based sentiment analysis on a single text.
// OverallScore is the unweighted mean over detected aspects; when no
// aspect keyword matches it falls back to the whole-text sentiment so
// every input yields a score.
func (e *Extractor) Extract(text string) Result {
	normalized := textutil.Normalize(text, true)
	sentences := textutil.SplitSentences(normalized)

	groups := make(map[lexicon.Aspect]*aspectGroup)
	for _, sentence := range sentences {
		for keyword, aspect := range e.findAspects(sentence) {
			group, ok := groups[aspect]
			if !ok {
				group = &aspectGroup{keywords: make(map[string]struct{})}
				groups[aspect] = group
			}
			// A sentence may match several keywords of the same aspect;
			// record it once per aspect.
			if len(group.sentences) == 0 || group.sentences[len(group.sentences)-1] != sentence {
				group.sentences = append(group.sentences, sentence)
			}
			group.keywords[keyword] = struct{}{}
		}
	}

	aspects := make([]AspectSentiment, 0, len(groups))
	for aspect, group := range groups {
		entry := lexicon.Aspects[aspect]

		var scoreSum, confSum float64
		scored := 0
		for _, sentence := range group.sentences {
			result, err := e.scorer.Score(sentence)
			if err != nil {
				// A single failed sentence must not sink the aspect;
				// drop its contribution and keep going.
				logrus.Warnf("Sentiment scoring failed for sentence, skipping: %v", err)
				continue
			}
			scoreSum += result.Score
			confSum += result.Confidence
			scored++
		}

		avgScore, avgConf := 0.5, 0.0
		if scored > 0 {
			avgScore = scoreSum / float64(scored)
			avgConf = confSum / float64(scored)
		}

		evidence := group.sentences
		if len(evidence) > 2 {
			evidence = evidence[:2]
		}

		keywords := make([]string, 0, len(group.keywords))
		for keyword := range group.keywords {
			keywords = append(keywords, keyword)
		}
		sort.Strings(keywords)

		aspects = append(aspects, AspectSentiment{
			Aspect:        aspect,
			Label:         entry.Label,
			Score:         avgScore,
			Confidence:    avgConf,
			Evidence:      evidence,
			KeywordsFound: keywords,
		})
	}

	sort.Slice(aspects, func(i, j int) bool { return aspects[i].Aspect < aspects[j].Aspect })

	overall := 0.5
	if len(aspects) > 0 {
		sum := 0.0
		for _, aspect := range aspects {
			sum += aspect.Score
		}
		overall = sum / float64(len(aspects))
	} else if result, err := e.scorer.Score(normalized); err == nil {
		overall = result.Score
	} else {
		logrus.Warnf("Whole-text sentiment fallback failed: %v", err)
	}

	return Result{Text: normalized, Aspects: aspects, OverallScore: overall}
}

// ExtractBatch analyzes many texts independently.
func (e *Extractor) ExtractBatch(texts []string) []Result {
	results := make([]Result, 0, len(texts))
	for _, text := range texts {
		results = append(results, e.Extract(text))
	}
	return results
}

// findAspects returns keyword -> aspect for every lexicon keyword
// contained in the sentence (case-insensitive substring match).
func (e *Extractor) findAspects(sentence string) map[string]lexicon.Aspect {
	lower := strings.ToLower(sentence)

	found := make(map[string]lexicon.Aspect)
	for keyword, aspect := range e.keywordToAspect {
		if strings.Contains(lower, keyword) {
			found[keyword] = aspect
		}
	}
	return found
}

// Aggregate rolls up per-text extractions into per-aspect statistics,
// sorted by mention count descending.
func (e *Extractor) Aggregate(results []Result) []AspectStats {
	scores := make(map[string][]float64)
	for _, result := range results {
		for _, aspect := range result.Aspects {
			scores[aspect.Label] = append(scores[aspect.Label], aspect.Score)
		}
	}

	stats := make([]AspectStats, 0, len(scores))
	for label, values := range scores {
		sum, positive := 0.0, 0
		for _, value := range values {
			sum += value
			if value > 0.6 {
				positive++
			}
		}
		stats = append(stats, AspectStats{
			Label:        label,
			AvgScore:     round3(sum / float64(len(values))),
			Count:        len(values),
			PositiveRate: round1(float64(positive) / float64(len(values)) * 100),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Label < stats[j].Label
	})
	return stats
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
