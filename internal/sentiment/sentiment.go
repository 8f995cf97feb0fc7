// Package sentiment defines the sentiment-scoring collaborator contract
// and a lexicon-based default implementation. The engines depend on the
// Scorer interface only; anything that maps text to a score can be
// injected, including remote model inference.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/marktpuls/marktpuls/internal/textutil"
)

// Label classifies the overall polarity of a text.
type Label string

const (
	LabelPositive  Label = "positive"
	LabelNegative  Label = "negative"
	LabelNeutral   Label = "neutral"
	LabelUncertain Label = "uncertain"
)

// Result is one scored text. Score is normalized to [0,1] where higher
// means more positive; Confidence is in [0,1].
type Result struct {
	Label      Label
	Score      float64
	Confidence float64
}

// Scorer maps a text to a sentiment result. Implementations must be safe
// for concurrent use.
type Scorer interface {
	Score(text string) (Result, error)
}

const (
	thresholdPositive = 0.6
	thresholdNegative = 0.4
)

// VADERScorer scores text with the VADER sentiment lexicon. It is the
// default collaborator when no model-backed scorer is injected.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADERScorer builds a ready-to-use lexicon scorer.
func NewVADERScorer() *VADERScorer {
	return &VADERScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements Scorer. Empty or unscorable input yields an uncertain
// neutral midpoint rather than an error.
func (s *VADERScorer) Score(text string) (Result, error) {
	cleaned := textutil.Normalize(textutil.CleanReview(text), true)
	if cleaned == "" {
		return Result{Label: LabelUncertain, Score: 0.5, Confidence: 0}, nil
	}

	polarity := s.analyzer.PolarityScores(cleaned)

	// Compound is in [-1,1]; rescale so 0.5 is neutral.
	score := (polarity.Compound + 1) / 2
	confidence := polarity.Compound
	if confidence < 0 {
		confidence = -confidence
	}

	return Result{
		Label:      labelFor(score),
		Score:      score,
		Confidence: confidence,
	}, nil
}

func labelFor(score float64) Label {
	switch {
	case score >= thresholdPositive:
		return LabelPositive
	case score <= thresholdNegative:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// WordListScorer scores text against fixed positive/negative word lists.
// It exists for environments where even the VADER lexicon is too heavy
// and as a deterministic baseline in tests.
type WordListScorer struct {
	Positive []string
	Negative []string
}

// Score implements Scorer by counting word-list hits.
func (s *WordListScorer) Score(text string) (Result, error) {
	lower := strings.ToLower(text)

	pos, neg := 0, 0
	for _, word := range s.Positive {
		if strings.Contains(lower, word) {
			pos++
		}
	}
	for _, word := range s.Negative {
		if strings.Contains(lower, word) {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return Result{Label: LabelNeutral, Score: 0.5, Confidence: 0}, nil
	}

	score := float64(pos) / float64(total)
	result := Result{Score: score, Confidence: float64(total) / (float64(total) + 1)}
	switch {
	case score >= thresholdPositive:
		result.Label = LabelPositive
	case score <= thresholdNegative:
		result.Label = LabelNegative
	default:
		result.Label = LabelNeutral
	}
	return result, nil
}
