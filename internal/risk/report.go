package risk

import (
	"fmt"
	"time"

	"github.com/marktpuls/marktpuls/internal/models"
)

const maxHighRiskInReport = 10

// BuildReport summarizes the risk posture of an already-detected batch:
// tier distribution, the critical and high-risk records and an ordered
// action list.
func (d *Detector) BuildReport(records []*models.ReviewRecord) *models.RiskReport {
	distribution := map[string]int{
		string(LevelCritical): 0,
		string(LevelHigh):     0,
		string(LevelMedium):   0,
		string(LevelLow):      0,
	}
	for _, record := range records {
		if record.RiskLevel != nil {
			distribution[*record.RiskLevel]++
		}
	}

	critical := d.CriticalReviews(records)
	highRisk := d.HighRiskReviews(records)

	var actionItems []models.ActionItem
	if len(critical) > 0 {
		actionItems = append(actionItems, models.ActionItem{
			Priority: "sofort",
			Action:   fmt.Sprintf("%d Bewertungen mit Rechts- oder Sicherheitsrisiko sofort bearbeiten", len(critical)),
			Reviews:  reviewIDs(critical),
		})
	}
	if len(highRisk) > len(critical) {
		criticalIDs := make(map[string]struct{}, len(critical))
		for _, record := range critical {
			criticalIDs[record.ReviewID] = struct{}{}
		}

		var remaining []string
		for _, record := range highRisk {
			if _, ok := criticalIDs[record.ReviewID]; !ok {
				remaining = append(remaining, record.ReviewID)
			}
		}
		actionItems = append(actionItems, models.ActionItem{
			Priority: "hoch",
			Action:   fmt.Sprintf("%d risikobehaftete Bewertungen innerhalb von 24 Stunden beantworten", len(remaining)),
			Reviews:  remaining,
		})
	}

	limited := highRisk
	if len(limited) > maxHighRiskInReport {
		limited = limited[:maxHighRiskInReport]
	}

	return &models.RiskReport{
		GeneratedAt:      time.Now(),
		TotalReviews:     len(records),
		RiskDistribution: distribution,
		CriticalCount:    len(critical),
		HighRiskCount:    len(highRisk),
		CriticalReviews:  critical,
		HighRiskReviews:  limited,
		ActionItems:      actionItems,
	}
}

func reviewIDs(records []*models.ReviewRecord) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ReviewID)
	}
	return ids
}
