package outreach

import (
	"math/rand"
	"strings"
)

// ApologyContext carries the data an apology draft can reference.
type ApologyContext struct {
	CustomerName      string `json:"customer_name"`
	OrderID           string `json:"order_id,omitempty"`
	ProductName       string `json:"product_name,omitempty"`
	IssueSummary      string `json:"issue_summary,omitempty"`
	ReviewContent     string `json:"review_content"`
	ReviewRating      int    `json:"review_rating"`
	CompensationOffer string `json:"compensation_offer,omitempty"`
	CompanyName       string `json:"company_name,omitempty"`
	SenderName        string `json:"sender_name,omitempty"`
	SenderTitle       string `json:"sender_title,omitempty"`
}

// ApologyDraft is a generated apology letter plus operator guidance.
type ApologyDraft struct {
	Subject               string   `json:"subject"`
	Body                  string   `json:"body"`
	UrgencyLevel          string   `json:"urgency_level"` // critical/high/medium
	SuggestedCompensation string   `json:"suggested_compensation"`
	FollowUpActions       []string `json:"follow_up_actions"`
}

type apologyTemplate struct {
	subject string
	opening string
	body    string
	closing string
}

var apologyTemplates = map[string]apologyTemplate{
	"critical": {
		subject: "Dringende Angelegenheit - Bestellung {order_id}",
		opening: "Sehr geehrte/r {name},\n\nwir haben Ihre Bewertung mit großer Besorgnis zur Kenntnis genommen und möchten uns aufrichtig für die entstandenen Unannehmlichkeiten entschuldigen.",
		body:    "\n\nIhr Anliegen hat für uns höchste Priorität. {issue_response}\n\nUm die Situation zu bereinigen, möchten wir Ihnen {compensation} anbieten.",
		closing: "\n\nBitte kontaktieren Sie uns direkt unter {contact}, damit wir Ihr Anliegen persönlich klären können.\n\nMit aufrichtiger Entschuldigung,\n{sender}",
	},
	"high": {
		subject: "Ihre Bewertung - Wir möchten es wiedergutmachen",
		opening: "Sehr geehrte/r {name},\n\nvielen Dank, dass Sie sich die Zeit genommen haben, uns Feedback zu geben. Es tut uns sehr leid zu hören, dass Sie mit {product} nicht zufrieden waren.",
		body:    "\n\n{issue_response}\n\nAls Entschädigung möchten wir Ihnen {compensation} anbieten.",
		closing: "\n\nWir würden uns freuen, wenn Sie uns eine zweite Chance geben.\n\nMit freundlichen Grüßen,\n{sender}",
	},
	"medium": {
		subject: "Danke für Ihr Feedback - {product}",
		opening: "Liebe/r {name},\n\ndanke für Ihre ehrliche Bewertung. Wir bedauern, dass Ihre Erfahrung nicht Ihren Erwartungen entsprochen hat.",
		body:    "\n\n{issue_response}\n\nAls kleines Dankeschön für Ihr Feedback möchten wir Ihnen {compensation} anbieten.",
		closing: "\n\nWir hoffen, Sie bald wieder als zufriedenen Kunden begrüßen zu dürfen!\n\nHerzliche Grüße,\n{sender}",
	},
}

var compensationSuggestions = map[string][]string{
	"critical": {
		"eine vollständige Rückerstattung",
		"einen kostenlosen Ersatz mit Express-Versand",
		"eine Rückerstattung plus 20% Gutschein",
	},
	"high": {
		"einen 30% Rabattgutschein für Ihre nächste Bestellung",
		"einen kostenlosen Ersatz",
		"eine teilweise Rückerstattung (50%)",
	},
	"medium": {
		"einen 15% Rabattgutschein",
		"kostenlosen Versand bei Ihrer nächsten Bestellung",
		"ein kleines Überraschungsgeschenk",
	},
}

var criticalApologyKeywords = []string{
	"anwalt", "rechtsanwalt", "klage", "gericht",
	"gefährlich", "verletzung", "krankenhaus",
	"betrug", "täuschung", "polizei",
}

var highApologyKeywords = []string{
	"rückerstattung", "geld zurück", "defekt",
	"kaputt", "funktioniert nicht", "falsch",
}

// ApologyGenerator drafts apology letters for negative reviews. Like the
// outreach generator it takes an explicit random source for its
// compensation suggestions.
type ApologyGenerator struct {
	companyName    string
	defaultContact string
	rng            *rand.Rand
}

// NewApologyGenerator builds a generator; contact is the address shown
// in critical drafts.
func NewApologyGenerator(companyName, contact string, rng *rand.Rand) *ApologyGenerator {
	if contact == "" {
		contact = "kundenservice@example.de"
	}
	return &ApologyGenerator{companyName: companyName, defaultContact: contact, rng: rng}
}

// DetermineUrgency classifies how urgently a review needs an apology,
// from content keywords and the star rating.
func (g *ApologyGenerator) DetermineUrgency(reviewContent string, rating int) string {
	lower := strings.ToLower(reviewContent)

	for _, keyword := range criticalApologyKeywords {
		if strings.Contains(lower, keyword) {
			return "critical"
		}
	}
	if rating == 1 {
		return "critical"
	}
	for _, keyword := range highApologyKeywords {
		if strings.Contains(lower, keyword) {
			return "high"
		}
	}
	if rating == 2 {
		return "high"
	}
	return "medium"
}

// Generate produces an apology draft for the given context.
func (g *ApologyGenerator) Generate(ctx ApologyContext) ApologyDraft {
	urgency := g.DetermineUrgency(ctx.ReviewContent, ctx.ReviewRating)
	template := apologyTemplates[urgency]

	compensation := ctx.CompensationOffer
	if compensation == "" {
		options := compensationSuggestions[urgency]
		compensation = options[g.rng.Intn(len(options))]
	}

	orderID := ctx.OrderID
	if orderID == "" {
		orderID = "Ihre Bestellung"
	}
	product := ctx.ProductName
	if product == "" {
		product = "unserem Produkt"
	}

	sender := ctx.SenderName
	if sender == "" {
		sender = "Kundenservice"
	}
	if ctx.SenderTitle != "" {
		sender += "\n" + ctx.SenderTitle
	}
	if company := firstNonEmpty(ctx.CompanyName, g.companyName); company != "" {
		sender += "\n" + company
	}

	replacer := strings.NewReplacer(
		"{order_id}", orderID,
		"{product}", product,
		"{name}", ctx.CustomerName,
		"{issue_response}", g.issueResponse(ctx, urgency),
		"{compensation}", compensation,
		"{contact}", g.defaultContact,
		"{sender}", sender,
	)

	body := replacer.Replace(template.opening) +
		replacer.Replace(template.body) +
		replacer.Replace(template.closing) +
		"\n\nDatenschutz: Ihre Daten werden vertraulich behandelt."

	return ApologyDraft{
		Subject:               replacer.Replace(template.subject),
		Body:                  body,
		UrgencyLevel:          urgency,
		SuggestedCompensation: compensation,
		FollowUpActions:       followUpActions(urgency),
	}
}

func (g *ApologyGenerator) issueResponse(ctx ApologyContext, urgency string) string {
	if ctx.IssueSummary != "" {
		return "Bezüglich " + ctx.IssueSummary + ": Wir nehmen Ihr Feedback sehr ernst und werden die Ursache umgehend untersuchen."
	}
	switch urgency {
	case "critical":
		return "Wir nehmen Ihre Beschwerde äußerst ernst und haben bereits eine interne Untersuchung eingeleitet."
	case "high":
		return "Wir verstehen Ihre Frustration und möchten das Problem schnellstmöglich lösen."
	default:
		return "Wir schätzen Ihr ehrliches Feedback und werden es nutzen, um uns zu verbessern."
	}
}

func followUpActions(urgency string) []string {
	switch urgency {
	case "critical":
		return []string{
			"Rechtsabteilung sofort informieren",
			"Kunden innerhalb von 24 Stunden telefonisch kontaktieren",
			"Vorfall dokumentieren",
		}
	case "high":
		return []string{
			"E-Mail innerhalb von 48 Stunden versenden",
			"Erstattungs- oder Umtauschprozess vorbereiten",
			"Qualitätsverfolgung aktualisieren",
		}
	default:
		return []string{
			"E-Mail innerhalb von 3 Tagen versenden",
			"Produktverbesserung prüfen",
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
