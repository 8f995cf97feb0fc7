package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/marktpuls/marktpuls/internal/config"
	"github.com/marktpuls/marktpuls/internal/models"
)

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// WebhookMessage is the JSON payload posted to the configured webhook.
type WebhookMessage struct {
	Title    string           `json:"title"`
	Text     string           `json:"text"`
	Sections []WebhookSection `json:"sections,omitempty"`
}

type WebhookSection struct {
	Title string        `json:"title,omitempty"`
	Text  string        `json:"text,omitempty"`
	Facts []WebhookFact `json:"facts,omitempty"`
}

type WebhookFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendRiskReport sends a risk report via configured notification channels
func (s *Service) SendRiskReport(report *models.RiskReport) error {
	var errors []string

	// Send to webhook if configured
	if s.config.WebhookURL != "" {
		if err := s.sendToWebhook(s.buildWebhookMessage(report)); err != nil {
			logrus.Errorf("Failed to send webhook notification: %v", err)
			errors = append(errors, fmt.Sprintf("Webhook: %v", err))
		} else {
			logrus.Info("Successfully sent risk report to webhook")
		}
	}

	// Send via email if configured
	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent risk report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToWebhook(message *WebhookMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.WebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send webhook message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildWebhookMessage(report *models.RiskReport) *WebhookMessage {
	message := &WebhookMessage{
		Title: "Bewertungs-Risikobericht",
		Text: fmt.Sprintf("%d Bewertungen analysiert, davon %d kritisch und %d mit hohem Risiko",
			report.TotalReviews, report.CriticalCount, report.HighRiskCount),
	}

	facts := []WebhookFact{
		{Name: "Bewertungen gesamt", Value: fmt.Sprintf("%d", report.TotalReviews)},
		{Name: "Erstellt", Value: report.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	for level, count := range report.RiskDistribution {
		facts = append(facts, WebhookFact{
			Name:  fmt.Sprintf("Risikostufe %s", strings.ToUpper(level)),
			Value: fmt.Sprintf("%d", count),
		})
	}
	message.Sections = append(message.Sections, WebhookSection{
		Title: "Zusammenfassung",
		Facts: facts,
	})

	if len(report.CriticalReviews) > 0 {
		var lines []string
		limit := 5
		if len(report.CriticalReviews) < limit {
			limit = len(report.CriticalReviews)
		}

		for i := 0; i < limit; i++ {
			review := report.CriticalReviews[i]
			lines = append(lines, fmt.Sprintf("**%s** (%d Sterne): %s",
				review.ReviewID, review.Rating, truncate(review.Content, 120)))
		}

		message.Sections = append(message.Sections, WebhookSection{
			Title: "Kritische Bewertungen",
			Text:  strings.Join(lines, "\n\n"),
		})
	}

	if len(report.ActionItems) > 0 {
		var lines []string
		for _, item := range report.ActionItems {
			lines = append(lines, fmt.Sprintf("[%s] %s (%d Bewertungen)",
				item.Priority, item.Action, len(item.Reviews)))
		}
		message.Sections = append(message.Sections, WebhookSection{
			Title: "Maßnahmen",
			Text:  strings.Join(lines, "\n"),
		})
	}

	return message
}

func (s *Service) sendEmail(report *models.RiskReport) error {
	subject := fmt.Sprintf("Bewertungs-Risikobericht (%d kritisch, %d hoch)",
		report.CriticalCount, report.HighRiskCount)

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	textBody := s.buildEmailText(report)

	// Create message
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	// Send email
	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailHTML(report *models.RiskReport) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Bewertungs-Risikobericht</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #1a3c5e; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .review { border-left: 4px solid #605e5c; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .review-meta { color: #666; font-size: 0.9em; }
        .critical { border-left-color: #d13438; }
        .high { border-left-color: #e8a317; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Bewertungs-Risikobericht</h1>
        <p>Erstellt am {{.GeneratedAt.Format "02.01.2006 um 15:04"}}</p>
    </div>

    <div class="summary">
        <h2>Zusammenfassung</h2>
        <p><strong>Bewertungen gesamt:</strong> {{.TotalReviews}}</p>
        <p><strong>Kritisch:</strong> {{.CriticalCount}}</p>
        <p><strong>Hohes Risiko:</strong> {{.HighRiskCount}}</p>
    </div>

    {{if .CriticalReviews}}
    <h2>Kritische Bewertungen</h2>
    {{range $index, $review := .CriticalReviews}}
        {{if lt $index 10}}
        <div class="review critical">
            <div class="review-meta">
                {{$review.ReviewID}} | {{$review.Rating}} Sterne
                {{if $review.ProductName}} | {{$review.ProductName}}{{end}}
            </div>
            <p>{{$review.Content | truncate 200}}</p>
        </div>
        {{end}}
    {{end}}
    {{end}}

    {{if .ActionItems}}
    <h2>Empfohlene Maßnahmen</h2>
    <ul>
    {{range .ActionItems}}
        <li><strong>{{.Priority}}:</strong> {{.Action}} ({{len .Reviews}} Bewertungen)</li>
    {{end}}
    </ul>
    {{end}}

    <hr>
    <p><small>Dieser Bericht wurde automatisch von MarktPuls erstellt.</small></p>
</body>
</html>
`

	t := template.New("email").Funcs(template.FuncMap{
		"truncate": truncate,
	})

	t, err := t.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(report *models.RiskReport) string {
	var text strings.Builder

	text.WriteString("Bewertungs-Risikobericht\n")
	text.WriteString(fmt.Sprintf("Erstellt: %s\n\n", report.GeneratedAt.Format("02.01.2006 15:04")))

	text.WriteString("ZUSAMMENFASSUNG\n")
	text.WriteString("===============\n")
	text.WriteString(fmt.Sprintf("Bewertungen gesamt: %d\n", report.TotalReviews))
	text.WriteString(fmt.Sprintf("Kritisch: %d\n", report.CriticalCount))
	text.WriteString(fmt.Sprintf("Hohes Risiko: %d\n", report.HighRiskCount))

	if len(report.CriticalReviews) > 0 {
		text.WriteString("\nKRITISCHE BEWERTUNGEN\n")
		text.WriteString("=====================\n")

		limit := 10
		if len(report.CriticalReviews) < limit {
			limit = len(report.CriticalReviews)
		}

		for i := 0; i < limit; i++ {
			review := report.CriticalReviews[i]
			text.WriteString(fmt.Sprintf("\n%d. %s (%d Sterne)\n", i+1, review.ReviewID, review.Rating))
			if review.ProductName != "" {
				text.WriteString(fmt.Sprintf("   Produkt: %s\n", review.ProductName))
			}
			text.WriteString(fmt.Sprintf("   %s\n", truncate(review.Content, 200)))
			if len(review.RiskFlags) > 0 {
				text.WriteString(fmt.Sprintf("   Markierungen: %s\n", strings.Join(review.RiskFlags, ", ")))
			}
		}
	}

	if len(report.ActionItems) > 0 {
		text.WriteString("\nEMPFOHLENE MASSNAHMEN\n")
		text.WriteString("=====================\n")
		for _, item := range report.ActionItems {
			text.WriteString(fmt.Sprintf("- [%s] %s (%d Bewertungen)\n",
				item.Priority, item.Action, len(item.Reviews)))
		}
	}

	text.WriteString("\n---\nDieser Bericht wurde automatisch von MarktPuls erstellt.\n")

	return text.String()
}

// SendAlert sends an urgent alert notification
func (s *Service) SendAlert(alert *models.Alert) error {
	message := &WebhookMessage{
		Title: fmt.Sprintf("[%s] %s", strings.ToUpper(alert.Type), alert.Title),
		Text:  alert.Message,
	}
	if len(alert.ReviewIDs) > 0 {
		message.Sections = append(message.Sections, WebhookSection{
			Title: "Betroffene Bewertungen",
			Text:  strings.Join(alert.ReviewIDs, ", "),
		})
	}

	if s.config.WebhookURL == "" {
		logrus.Infof("No webhook configured, alert logged only: %s - %s", alert.Type, alert.Title)
		return nil
	}

	if err := s.sendToWebhook(message); err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}

	logrus.Infof("Alert sent: %s - %s", alert.Type, alert.Title)
	return nil
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length] + "..."
}
