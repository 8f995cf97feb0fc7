package risk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marktpuls/marktpuls/internal/models"
)

func TestDetector_BuildReport(t *testing.T) {
	detector, err := NewDetector(nil)
	require.NoError(t, err)

	records := detector.BatchDetect([]*models.ReviewRecord{
		{ReviewID: "r1", Content: "Ich schalte meinen Anwalt ein", Rating: 1},
		{ReviewID: "r2", Content: "Geld zurück, sofort!", Rating: 2},
		{ReviewID: "r3", Content: "Leider minderwertig", Rating: 3},
		{ReviewID: "r4", Content: "Bin rundum glücklich", Rating: 5},
	})

	report := detector.BuildReport(records)

	assert.Equal(t, 4, report.TotalReviews)
	assert.Equal(t, 1, report.CriticalCount)
	assert.Equal(t, 2, report.HighRiskCount)
	assert.Equal(t, map[string]int{
		"critical": 1,
		"high":     1,
		"medium":   1,
		"low":      1,
	}, report.RiskDistribution)

	require.Len(t, report.ActionItems, 2)
	assert.Equal(t, "sofort", report.ActionItems[0].Priority)
	assert.Equal(t, []string{"r1"}, report.ActionItems[0].Reviews)
	assert.Equal(t, "hoch", report.ActionItems[1].Priority)
	assert.Equal(t, []string{"r2"}, report.ActionItems[1].Reviews)
}

func TestDetector_BuildReportCapsHighRiskList(t *testing.T) {
	detector, err := NewDetector(nil)
	require.NoError(t, err)

	var records []*models.ReviewRecord
	for i := 0; i < 15; i++ {
		records = append(records, &models.ReviewRecord{
			ReviewID: fmt.Sprintf("r%d", i),
			Content:  "Ich fordere eine Rückerstattung",
			Rating:   3,
		})
	}
	records = detector.BatchDetect(records)

	report := detector.BuildReport(records)

	assert.Equal(t, 15, report.HighRiskCount)
	assert.Len(t, report.HighRiskReviews, 10)
}

func TestDetector_BuildReportEmptyBatch(t *testing.T) {
	detector, err := NewDetector(nil)
	require.NoError(t, err)

	report := detector.BuildReport(nil)

	assert.Equal(t, 0, report.TotalReviews)
	assert.Empty(t, report.ActionItems)
	assert.Equal(t, 0, report.RiskDistribution["critical"])
}
