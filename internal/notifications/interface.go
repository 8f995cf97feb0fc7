package notifications

import "github.com/marktpuls/marktpuls/internal/models"

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendRiskReport(report *models.RiskReport) error
	SendAlert(alert *models.Alert) error
}
