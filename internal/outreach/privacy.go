package outreach

import (
	"regexp"
	"strings"
)

// PrivacyCheckResult reports whether an email draft satisfies the German
// disclosure requirements (TMG §5 Impressum, UWG §7 opt-out, DSGVO
// Art. 13). This is a keyword-presence heuristic, not legal advice.
type PrivacyCheckResult struct {
	IsCompliant       bool     `json:"is_compliant"`
	MissingElements   []string `json:"missing_elements"`
	Warnings          []string `json:"warnings"`
	ImpressumComplete bool     `json:"impressum_complete"`
	GDPRElements      []string `json:"gdpr_elements_present"`
}

var (
	optOutKeywords = []string{
		"keine weiteren nachrichten", "abmelden", "abbestellen",
		"unsubscribe", "opt-out", "nicht mehr kontaktieren",
	}
	dataProtectionKeywords = []string{
		"datenschutz", "daten", "privacy", "nicht weitergegeben", "vertraulich",
	}
	companyFormIndicators = []string{"gmbh", "ag", "ug", "kg", "ohg", "e.k.", "gbr"}

	postalCodePattern = regexp.MustCompile(`\d{5}\s+[A-Za-zäöüÄÖÜß]+`)
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern      = regexp.MustCompile(`\+?\(?\d{1,3}\)?[-\s.]?\d{1,4}[-\s.]?\d{1,4}[-\s.]?\d{1,9}`)
)

// PrivacyCheck inspects an email body for the legally required
// disclosure elements. ctx may be nil when only the body is available.
func PrivacyCheck(emailBody string, ctx *Context, strict bool) PrivacyCheckResult {
	var result PrivacyCheckResult
	lower := strings.ToLower(emailBody)

	if containsAny(lower, optOutKeywords) {
		result.GDPRElements = append(result.GDPRElements, "Abmeldeoption (UWG §7)")
	} else {
		result.MissingElements = append(result.MissingElements, "Abmeldeoption (UWG §7)")
	}

	if containsAny(lower, dataProtectionKeywords) {
		result.GDPRElements = append(result.GDPRElements, "Datenschutzhinweis (DSGVO Art. 13)")
	} else {
		result.MissingElements = append(result.MissingElements, "Datenschutzhinweis (DSGVO Art. 13)")
	}

	hasCompanyName := containsAny(lower, companyFormIndicators)
	if !hasCompanyName && ctx != nil && ctx.CompanyName != "" {
		hasCompanyName = strings.Contains(lower, strings.ToLower(ctx.CompanyName))
	}

	hasAddress := postalCodePattern.MatchString(emailBody)
	hasContact := emailPattern.MatchString(emailBody) || phonePattern.MatchString(emailBody)
	hasResponsible := ctx != nil && ctx.SenderName != "" &&
		strings.Contains(lower, strings.ToLower(ctx.SenderName))

	result.ImpressumComplete = hasCompanyName && hasAddress && hasContact && hasResponsible

	if !hasCompanyName {
		result.MissingElements = append(result.MissingElements, "Firmenname (TMG §5)")
	}
	if strict && !hasAddress {
		result.Warnings = append(result.Warnings, "Firmenanschrift ergänzen (TMG §5)")
	}
	if strict && !hasContact {
		result.Warnings = append(result.Warnings, "Kontaktmöglichkeit ergänzen (TMG §5)")
	}
	if !hasResponsible {
		result.Warnings = append(result.Warnings, "Verantwortliche Person ergänzen")
	}

	if !strings.Contains(lower, "werbung") && !strings.Contains(lower, "kooperation") {
		result.Warnings = append(result.Warnings, "Kommerzielle Absicht deutlich kennzeichnen")
	}

	result.IsCompliant = len(result.MissingElements) == 0
	return result
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
