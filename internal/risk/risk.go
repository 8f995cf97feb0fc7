// Package risk flags legally and commercially dangerous reviews. A fixed
// set of weighted keyword categories maps review content to a four-level
// risk tier, with low star ratings escalating the result.
package risk

import (
	"fmt"
	"strings"

	"github.com/marktpuls/marktpuls/internal/models"
)

// Level is the ordinal risk tier of a review.
type Level string

const (
	LevelCritical Level = "critical" // legal or safety exposure
	LevelHigh     Level = "high"     // refund demands, complaints
	LevelMedium   Level = "medium"   // dissatisfaction
	LevelLow      Level = "low"      // routine feedback
)

var levelRank = map[Level]int{
	LevelLow:      0,
	LevelMedium:   1,
	LevelHigh:     2,
	LevelCritical: 3,
}

// AtLeast reports whether l is at or above other in the tier ordering.
func (l Level) AtLeast(other Level) bool {
	return levelRank[l] >= levelRank[other]
}

func maxLevel(a, b Level) Level {
	if levelRank[b] > levelRank[a] {
		return b
	}
	return a
}

// category couples a keyword set with the tier it implies and the alert
// shown to operators when it matches.
type category struct {
	keywords []string
	level    Level
	alert    string
}

func defaultCategories() map[string]*category {
	return map[string]*category{
		"legal": {
			keywords: []string{
				"anwalt", "rechtsanwalt", "klage", "gericht", "anzeige",
				"verbraucherschutz", "abmahnung", "schadensersatz", "haftung",
				"betrug", "täuschung", "irreführend", "falsch", "lüge",
			},
			level: LevelCritical,
			alert: "Rechtsrisiko: Bewertung erwähnt rechtliche Schritte oder Betrugsvorwürfe",
		},
		"safety": {
			keywords: []string{
				"gefährlich", "verletzung", "verletzt", "brand", "feuer",
				"explosion", "giftig", "allergie", "allergisch", "krankenhaus",
				"arzt", "notfall", "gesundheit", "schaden", "kaputt",
			},
			level: LevelCritical,
			alert: "Sicherheitsrisiko: Bewertung erwähnt Produktsicherheit oder Personenschaden",
		},
		"refund": {
			keywords: []string{
				"rückerstattung", "geld zurück", "erstattung", "rücksendung",
				"widerruf", "stornierung", "paypal", "kreditkarte", "chargeback",
			},
			level: LevelHigh,
			alert: "Erstattungsrisiko: Kunde fordert Rückzahlung oder erwähnt Zahlungsstreit",
		},
		"complaint": {
			keywords: []string{
				"beschwerde", "reklamation", "kundenservice", "keine antwort",
				"ignoriert", "unverschämt", "frechheit", "niemals wieder",
			},
			level: LevelHigh,
			alert: "Beschwerderisiko: Kunde äußert starke Unzufriedenheit oder Beschwerdeabsicht",
		},
		"quality": {
			keywords: []string{
				"defekt", "kaputt", "funktioniert nicht", "minderwertig",
				"billig", "schrott", "müll", "wegwerfen", "enttäuscht",
			},
			level: LevelMedium,
			alert: "Qualitätsproblem: Kunde meldet unzureichende Produktqualität",
		},
	}
}

// Detection is the outcome of scanning a single review.
type Detection struct {
	Level   Level               `json:"risk_level"`
	Flags   []string            `json:"flags"`  // "<category>:<hit count>", plus "low_rating"
	Alerts  []string            `json:"alerts"` // human-readable, one per matched category
	Matched map[string][]string `json:"matched_keywords"`
}

// Detector scans review content against the risk categories. The
// category set is fixed; construction may extend keyword lists.
type Detector struct {
	categories map[string]*category
	// scan order is fixed so flags and alerts come out deterministic
	order []string
}

// NewDetector builds a detector, optionally appending custom keywords to
// existing categories. Unknown category names are rejected.
func NewDetector(customKeywords map[string][]string) (*Detector, error) {
	categories := defaultCategories()
	for name, keywords := range customKeywords {
		existing, ok := categories[name]
		if !ok {
			return nil, fmt.Errorf("unknown risk category %q", name)
		}
		existing.keywords = append(existing.keywords, keywords...)
	}

	return &Detector{
		categories: categories,
		order:      []string{"legal", "safety", "refund", "complaint", "quality"},
	}, nil
}

// Detect scans text for risk keywords. A rating of 1 or 2 escalates the
// tier by one step (LOW to MEDIUM, MEDIUM to HIGH) and always appends a
// low_rating flag; higher tiers are unaffected by the rating. Pass
// rating 0 when no rating is available.
func (d *Detector) Detect(text string, rating int) Detection {
	lower := strings.ToLower(text)

	detection := Detection{
		Level:   LevelLow,
		Matched: make(map[string][]string),
	}

	for _, name := range d.order {
		cat := d.categories[name]

		var found []string
		for _, keyword := range cat.keywords {
			if strings.Contains(lower, keyword) {
				found = append(found, keyword)
			}
		}
		if len(found) == 0 {
			continue
		}

		detection.Matched[name] = found
		detection.Flags = append(detection.Flags, fmt.Sprintf("%s:%d", name, len(found)))
		detection.Alerts = append(detection.Alerts, cat.alert)
		detection.Level = maxLevel(detection.Level, cat.level)
	}

	if rating >= 1 && rating <= 2 {
		switch detection.Level {
		case LevelLow:
			detection.Level = LevelMedium
		case LevelMedium:
			detection.Level = LevelHigh
		}
		detection.Flags = append(detection.Flags, "low_rating")
	}

	return detection
}

// BatchDetect runs detection over every record, replacing prior risk
// fields in place, and returns the same slice.
func (d *Detector) BatchDetect(records []*models.ReviewRecord) []*models.ReviewRecord {
	for _, record := range records {
		detection := d.Detect(record.Content, record.Rating)
		level := string(detection.Level)
		record.RiskLevel = &level
		record.RiskFlags = detection.Flags
	}
	return records
}

// CriticalReviews returns the records at CRITICAL tier, preserving order.
func (d *Detector) CriticalReviews(records []*models.ReviewRecord) []*models.ReviewRecord {
	var critical []*models.ReviewRecord
	for _, record := range records {
		if record.RiskLevel != nil && Level(*record.RiskLevel) == LevelCritical {
			critical = append(critical, record)
		}
	}
	return critical
}

// HighRiskReviews returns the records at CRITICAL or HIGH tier,
// preserving order.
func (d *Detector) HighRiskReviews(records []*models.ReviewRecord) []*models.ReviewRecord {
	var highRisk []*models.ReviewRecord
	for _, record := range records {
		if record.RiskLevel == nil {
			continue
		}
		if level := Level(*record.RiskLevel); level == LevelCritical || level == LevelHigh {
			highRisk = append(highRisk, record)
		}
	}
	return highRisk
}
