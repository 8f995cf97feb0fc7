package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVADERScorer_EmptyInput(t *testing.T) {
	scorer := NewVADERScorer()

	tests := []string{"", "   ", "<p></p>"}
	for _, input := range tests {
		result, err := scorer.Score(input)
		require.NoError(t, err)
		assert.Equal(t, LabelUncertain, result.Label)
		assert.Equal(t, 0.5, result.Score)
		assert.Equal(t, 0.0, result.Confidence)
	}
}

func TestVADERScorer_ScoreRange(t *testing.T) {
	scorer := NewVADERScorer()

	for _, text := range []string{
		"This product is absolutely amazing, I love it!",
		"Terrible quality, broken on arrival, awful.",
		"The package arrived on Tuesday.",
	} {
		result, err := scorer.Score(text)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0.0)
		assert.LessOrEqual(t, result.Score, 1.0)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

func TestVADERScorer_Polarity(t *testing.T) {
	scorer := NewVADERScorer()

	positive, err := scorer.Score("This product is absolutely amazing, I love it!")
	require.NoError(t, err)
	negative, err := scorer.Score("Terrible quality, broken on arrival, awful.")
	require.NoError(t, err)

	assert.Greater(t, positive.Score, negative.Score)
	assert.Equal(t, LabelPositive, positive.Label)
	assert.Equal(t, LabelNegative, negative.Label)
}

func TestWordListScorer(t *testing.T) {
	scorer := &WordListScorer{
		Positive: []string{"super", "toll"},
		Negative: []string{"schlecht", "kaputt"},
	}

	tests := []struct {
		name          string
		text          string
		expectedLabel Label
		expectedScore float64
	}{
		{"All positive", "super und toll", LabelPositive, 1.0},
		{"All negative", "schlecht und kaputt", LabelNegative, 0.0},
		{"Mixed", "super aber kaputt", LabelNeutral, 0.5},
		{"No hits", "einfach unauffällig", LabelNeutral, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedLabel, result.Label)
			assert.Equal(t, tt.expectedScore, result.Score)
		})
	}
}

func TestWordListScorer_ConfidenceGrowsWithHits(t *testing.T) {
	scorer := &WordListScorer{Positive: []string{"super", "toll", "schnell"}}

	one, err := scorer.Score("super")
	require.NoError(t, err)
	three, err := scorer.Score("super toll schnell")
	require.NoError(t, err)

	assert.Greater(t, three.Confidence, one.Confidence)
}
