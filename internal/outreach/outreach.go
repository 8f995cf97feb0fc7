// Package outreach drafts German influencer outreach emails and customer
// apology letters from curated phrase libraries. Phrase selection uses an
// explicit random source so callers (and tests) control determinism; the
// engines' scoring itself never depends on randomness.
package outreach

import (
	"fmt"
	"math/rand"
	"strings"
)

// Tone switches between formal business German ("Sie") and casual
// social-media German ("du").
type Tone string

const (
	ToneFormal Tone = "formal"
	ToneCasual Tone = "friendly"
)

// Context carries everything a draft can reference.
type Context struct {
	InfluencerName      string   `json:"influencer_name"`
	Platform            string   `json:"platform"`
	Niche               string   `json:"niche,omitempty"`
	RecentContentTopics []string `json:"recent_content_topics,omitempty"`

	BrandName         string   `json:"brand_name"`
	ProductName       string   `json:"product_name"`
	ProductHighlights []string `json:"product_highlights,omitempty"`
	CollaborationType string   `json:"collaboration_type,omitempty"`

	SenderName  string `json:"sender_name,omitempty"`
	SenderTitle string `json:"sender_title,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// Draft is a generated outreach email.
type Draft struct {
	Subject         string   `json:"subject"`
	Body            string   `json:"body"`
	Tone            Tone     `json:"tone"`
	GDPRCompliant   bool     `json:"gdpr_compliant"`
	ComplianceNotes []string `json:"compliance_notes"`
}

var phrases = map[string]map[Tone][]string{
	"greetings": {
		ToneFormal: {"Sehr geehrte/r {name}", "Guten Tag {name}"},
		ToneCasual: {"Hallo {name}", "Hi {name}", "Liebe/r {name}"},
	},
	"opening_hooks": {
		ToneFormal: {
			"ich bin auf Ihr Profil aufmerksam geworden und war beeindruckt von Ihrer Arbeit im Bereich {niche}.",
			"Ihr Content zum Thema {topic} hat unser Team sehr angesprochen.",
			"als Unternehmen, das Wert auf Qualität und Authentizität legt, schätzen wir Ihre Arbeit sehr.",
		},
		ToneCasual: {
			"ich verfolge deinen Content schon eine Weile und bin total begeistert!",
			"dein letzter Post über {topic} war super inspirierend!",
			"ich liebe, wie du {niche} Themen rüberbringst – echt authentisch!",
		},
	},
	"value_proposition": {
		ToneFormal: {
			"Wir bei {brand} entwickeln {product}, das perfekt zu Ihrer Zielgruppe passt.",
			"Unser Produkt {product} zeichnet sich durch {highlight} aus.",
			"Wir sind überzeugt, dass eine Zusammenarbeit für beide Seiten von großem Wert wäre.",
		},
		ToneCasual: {
			"Wir haben da was, das richtig gut zu deinem Content passen würde!",
			"Unser {product} ist genau das Richtige für deine Community.",
			"Ich glaube, {product} würde deinen Followern richtig gut gefallen!",
		},
	},
	"collaboration_ask": {
		ToneFormal: {
			"Wir würden uns freuen, Ihnen {product} für einen ehrlichen Test zur Verfügung zu stellen.",
			"Hätten Sie Interesse an einer {collab_type}?",
			"Gerne würden wir die Möglichkeiten einer Zusammenarbeit mit Ihnen besprechen.",
		},
		ToneCasual: {
			"Hättest du Lust, {product} mal auszuprobieren?",
			"Was hältst du von einer Kooperation?",
			"Ich würde dir super gerne ein Paket schicken!",
		},
	},
	"closing": {
		ToneFormal: {
			"Über eine Rückmeldung würde ich mich sehr freuen.",
			"Für Rückfragen stehe ich Ihnen jederzeit zur Verfügung.",
			"Ich freue mich auf Ihre Antwort.",
		},
		ToneCasual: {
			"Schreib mir einfach, wenn du Interesse hast!",
			"Lass mich wissen, was du denkst!",
			"Freu mich auf deine Antwort!",
		},
	},
	"sign_off": {
		ToneFormal: {"Mit freundlichen Grüßen", "Mit besten Grüßen", "Herzliche Grüße"},
		ToneCasual: {"Liebe Grüße", "Viele Grüße", "Bis bald"},
	},
}

var subjectTemplates = map[Tone][]string{
	ToneFormal: {
		"Kooperationsanfrage: {brand} x {influencer}",
		"Partnerschaftsmöglichkeit mit {brand}",
		"{brand} - Interesse an einer Zusammenarbeit",
	},
	ToneCasual: {
		"Hey {influencer}! Kooperation mit {brand}?",
		"{brand} x {influencer} - Let's collaborate!",
		"Coole Idee für dich von {brand}!",
	},
}

var gdprNotices = map[string]map[Tone]string{
	"opt_out": {
		ToneFormal: "\n\nHinweis: Falls Sie keine weiteren Nachrichten von uns erhalten möchten, teilen Sie uns dies bitte mit.",
		ToneCasual: "\n\nPS: Falls du keine weiteren Nachrichten möchtest, sag einfach Bescheid!",
	},
	"data_protection": {
		ToneFormal: "\n\nDatenschutz: Ihre Kontaktdaten wurden ausschließlich für diese Anfrage verwendet und werden nicht an Dritte weitergegeben.",
		ToneCasual: "\n\nDatenschutz: Deine Daten sind bei uns sicher und werden nicht weitergegeben.",
	},
}

// Generator builds outreach drafts. The random source is injected so a
// fixed seed reproduces drafts exactly.
type Generator struct {
	tone        Tone
	includeGDPR bool
	rng         *rand.Rand
}

// NewGenerator builds a generator. rng must not be nil.
func NewGenerator(tone Tone, includeGDPR bool, rng *rand.Rand) (*Generator, error) {
	if tone != ToneFormal && tone != ToneCasual {
		return nil, fmt.Errorf("unknown tone %q", tone)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source must not be nil")
	}
	return &Generator{tone: tone, includeGDPR: includeGDPR, rng: rng}, nil
}

func (g *Generator) phrase(category string, replacements map[string]string) string {
	options := phrases[category][g.tone]
	if len(options) == 0 {
		return ""
	}

	selected := options[g.rng.Intn(len(options))]
	for key, value := range replacements {
		selected = strings.ReplaceAll(selected, "{"+key+"}", value)
	}
	return selected
}

// Generate produces one outreach draft for the given context.
func (g *Generator) Generate(ctx Context) Draft {
	templates := subjectTemplates[g.tone]
	subject := templates[g.rng.Intn(len(templates))]
	brand := ctx.BrandName
	if brand == "" {
		brand = "Uns"
	}
	subject = strings.ReplaceAll(subject, "{brand}", brand)
	subject = strings.ReplaceAll(subject, "{influencer}", ctx.InfluencerName)

	topic := ctx.Niche
	if len(ctx.RecentContentTopics) > 0 {
		topic = ctx.RecentContentTopics[0]
	}
	highlight := "höchste Qualität"
	if len(ctx.ProductHighlights) > 0 {
		highlight = ctx.ProductHighlights[0]
	}
	collabType := ctx.CollaborationType
	if collabType == "" {
		collabType = "Zusammenarbeit"
	}

	var body strings.Builder
	body.WriteString(g.phrase("greetings", map[string]string{"name": ctx.InfluencerName}))
	body.WriteString(",\n")
	body.WriteString(g.phrase("opening_hooks", map[string]string{"niche": ctx.Niche, "topic": topic}))
	body.WriteString("\n\n")
	body.WriteString(g.phrase("value_proposition", map[string]string{
		"brand": ctx.BrandName, "product": ctx.ProductName, "highlight": highlight,
	}))
	body.WriteString("\n\n")
	body.WriteString(g.phrase("collaboration_ask", map[string]string{
		"product": ctx.ProductName, "collab_type": collabType,
	}))
	body.WriteString("\n\n")
	body.WriteString(g.phrase("closing", nil))
	body.WriteString("\n\n")
	body.WriteString(g.phrase("sign_off", nil))
	if ctx.SenderName != "" {
		body.WriteString("\n" + ctx.SenderName)
	}
	if ctx.SenderTitle != "" {
		body.WriteString("\n" + ctx.SenderTitle)
	}
	if ctx.CompanyName != "" {
		body.WriteString("\n" + ctx.CompanyName)
	}

	draft := Draft{Subject: subject, Tone: g.tone}

	text := body.String()
	if g.includeGDPR {
		text += gdprNotices["opt_out"][g.tone]
		draft.ComplianceNotes = append(draft.ComplianceNotes, "Abmeldehinweis enthalten (UWG §7)")
		text += gdprNotices["data_protection"][g.tone]
		draft.ComplianceNotes = append(draft.ComplianceNotes, "Datenschutzhinweis enthalten (DSGVO Art. 13)")
		draft.GDPRCompliant = true
	}
	draft.Body = text

	return draft
}
