package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewRecord(t *testing.T) {
	record, err := NewReviewRecord("  Tolles Produkt  ", 4)
	require.NoError(t, err)

	assert.Equal(t, "Tolles Produkt", record.Content)
	assert.Equal(t, 4, record.Rating)
	assert.Equal(t, SourceManual, record.Source)
	assert.Equal(t, "de", record.Language)
	assert.NotEmpty(t, record.ReviewID)
	require.NotNil(t, record.CreatedAt)

	// analysis fields start unset
	assert.Nil(t, record.SentimentScore)
	assert.Nil(t, record.RiskLevel)
}

func TestNewReviewRecord_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rating  int
	}{
		{"Empty content", "", 3},
		{"Whitespace only content", "   ", 3},
		{"Rating too low", "Ok", 0},
		{"Rating too high", "Ok", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReviewRecord(tt.content, tt.rating)
			assert.Error(t, err)
		})
	}
}

func TestNewReviewRecord_UniqueIDs(t *testing.T) {
	first, err := NewReviewRecord("Eins", 3)
	require.NoError(t, err)
	second, err := NewReviewRecord("Zwei", 3)
	require.NoError(t, err)

	assert.NotEqual(t, first.ReviewID, second.ReviewID)
}

func TestReviewRecord_ClearAnalysis(t *testing.T) {
	record, err := NewReviewRecord("Test", 3)
	require.NoError(t, err)

	score := 0.8
	level := "high"
	record.SentimentScore = &score
	record.RiskLevel = &level
	record.RiskFlags = []string{"refund:1"}
	record.Aspects = map[string]float64{"Preis": 0.3}

	record.ClearAnalysis()

	assert.Nil(t, record.SentimentScore)
	assert.Nil(t, record.RiskLevel)
	assert.Nil(t, record.RiskFlags)
	assert.Nil(t, record.Aspects)
}
