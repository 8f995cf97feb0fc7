// Package influencer scores social-media influencer candidates for brand
// partnerships on the German market. Each profile gets three sub-scores
// (activity, follower authenticity, content relevance), a weighted total,
// a letter grade and an explainable recommendation.
//
// The scoring constants are hand-tuned product behavior and are kept as
// named constants rather than re-derived.
package influencer

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/marktpuls/marktpuls/internal/lexicon"
	"github.com/marktpuls/marktpuls/internal/textutil"
)

// Platform identifies the social network a profile lives on.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// Profile is the structured influencer data parsed from platform APIs or
// scrapes. It is an immutable input; evaluation never mutates it.
type Profile struct {
	Platform  Platform `json:"platform"`
	Username  string   `json:"username"`
	Followers int      `json:"followers"`
	Following int      `json:"following"`
	Posts     int      `json:"posts_count"`

	// Rolling averages over the most recent 10-20 posts.
	AvgLikes    float64 `json:"avg_likes"`
	AvgComments float64 `json:"avg_comments"`
	AvgViews    float64 `json:"avg_views"`

	Bio            string   `json:"bio"`
	RecentCaptions []string `json:"recent_captions"`
	Hashtags       []string `json:"hashtags"`

	RecentPostDates []time.Time `json:"recent_post_dates"`
}

// Validate rejects malformed profiles. Counts must be non-negative; the
// platform must be known.
func (p *Profile) Validate() error {
	switch p.Platform {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube:
	default:
		return fmt.Errorf("unknown platform %q", p.Platform)
	}
	if p.Followers < 0 || p.Following < 0 || p.Posts < 0 {
		return fmt.Errorf("profile %q has negative counts", p.Username)
	}
	if p.AvgLikes < 0 || p.AvgComments < 0 || p.AvgViews < 0 {
		return fmt.Errorf("profile %q has negative engagement averages", p.Username)
	}
	return nil
}

// Weights distributes the three sub-scores into the total. The triple
// must sum to 1.0.
type Weights struct {
	Activity     float64 `json:"activity"`
	Authenticity float64 `json:"authenticity"`
	Relevance    float64 `json:"relevance"`
}

// DefaultWeights weighs authenticity highest: fake followers are the
// most expensive mistake in influencer marketing.
func DefaultWeights() Weights {
	return Weights{Activity: 0.25, Authenticity: 0.40, Relevance: 0.35}
}

const weightTolerance = 1e-9

// Validate rejects weight triples that do not sum to 1.0.
func (w Weights) Validate() error {
	sum := w.Activity + w.Authenticity + w.Relevance
	if diff := sum - 1.0; diff > weightTolerance || diff < -weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	if w.Activity < 0 || w.Authenticity < 0 || w.Relevance < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	return nil
}

// MarketFit captures the German-market signal of a profile.
type MarketFit struct {
	KeywordsFound       map[string]CategoryMatch `json:"keywords_found"`
	ValueScore          float64                  `json:"german_value_score"`
	SustainabilityFocus bool                     `json:"sustainability_focus"`
	Note                string                   `json:"note,omitempty"`
}

// CategoryMatch lists the matched keywords of one value category.
type CategoryMatch struct {
	German  []string `json:"de"`
	English []string `json:"en"`
	Weight  float64  `json:"weight"`
}

// EvaluationResult is the owned output of one evaluation. Sub-scores are
// in [0,100]; with weights summing to 1 the total lands in [0,100] too.
type EvaluationResult struct {
	Username string `json:"username"`
	Platform string `json:"platform"`

	ActivityScore     float64 `json:"activity_score"`
	AuthenticityScore float64 `json:"authenticity_score"`
	RelevanceScore    float64 `json:"relevance_score"`
	TotalScore        float64 `json:"total_score"`
	Grade             string  `json:"grade"` // S/A/B/C/D

	ActivityDetails     map[string]any `json:"activity_details"`
	AuthenticityDetails map[string]any `json:"authenticity_details"`
	RelevanceDetails    map[string]any `json:"relevance_details"`

	MarketFit      MarketFit `json:"german_market_fit"`
	Recommendation string    `json:"recommendation"`
	RiskFlags      []string  `json:"risk_flags"`
}

// Evaluator scores influencer profiles. It is stateless after
// construction and safe for concurrent use.
type Evaluator struct {
	targetNiche lexicon.Niche
	hasNiche    bool
	weights     Weights
	now         func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithClock overrides the time source; used by tests to pin "now".
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) { e.now = now }
}

// NewEvaluator builds an evaluator for an optional target niche (empty
// string means none) and a weight triple. Unknown niches and invalid
// weights fail fast.
func NewEvaluator(targetNiche string, weights Weights, opts ...Option) (*Evaluator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	evaluator := &Evaluator{weights: weights, now: time.Now}
	if targetNiche != "" {
		niche := lexicon.Niche(targetNiche)
		if _, ok := lexicon.Niches[niche]; !ok {
			return nil, fmt.Errorf("unknown target niche %q", targetNiche)
		}
		evaluator.targetNiche = niche
		evaluator.hasNiche = true
	}

	for _, opt := range opts {
		opt(evaluator)
	}
	return evaluator, nil
}

// Evaluate runs the full scoring pipeline on one profile. It is
// deterministic: the same profile and configuration always produce the
// same result.
func (e *Evaluator) Evaluate(profile *Profile) (*EvaluationResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	activityScore, activityDetails := e.evaluateActivity(profile)
	authScore, authDetails := e.evaluateAuthenticity(profile)
	relevanceScore, relevanceDetails, marketFit := e.evaluateRelevance(profile)

	total := activityScore*e.weights.Activity +
		authScore*e.weights.Authenticity +
		relevanceScore*e.weights.Relevance

	grade := gradeFor(total)

	return &EvaluationResult{
		Username:            profile.Username,
		Platform:            string(profile.Platform),
		ActivityScore:       activityScore,
		AuthenticityScore:   authScore,
		RelevanceScore:      relevanceScore,
		TotalScore:          total,
		Grade:               grade,
		ActivityDetails:     activityDetails,
		AuthenticityDetails: authDetails,
		RelevanceDetails:    relevanceDetails,
		MarketFit:           marketFit,
		Recommendation:      buildRecommendation(grade, activityDetails, authDetails, relevanceDetails, marketFit),
		RiskFlags:           identifyRisks(profile, authDetails, activityDetails),
	}, nil
}

// EvaluateBatch evaluates profiles independently; one malformed profile
// does not stop the batch. Errors are returned alongside the successes,
// indexed by username.
func (e *Evaluator) EvaluateBatch(profiles []*Profile) ([]*EvaluationResult, map[string]error) {
	results := make([]*EvaluationResult, 0, len(profiles))
	failures := make(map[string]error)

	for _, profile := range profiles {
		result, err := e.Evaluate(profile)
		if err != nil {
			failures[profile.Username] = err
			continue
		}
		results = append(results, result)
	}
	return results, failures
}

// Rank sorts evaluation results by total score descending. The input
// slice is not modified.
func Rank(results []*EvaluationResult) []*EvaluationResult {
	ranked := make([]*EvaluationResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	return ranked
}

// Activity: posting frequency (0-40) + recency (0-30) + lifetime content
// volume (0-30). Without post-date data the dates portion collapses to a
// flat base of 20.
func (e *Evaluator) evaluateActivity(profile *Profile) (float64, map[string]any) {
	details := make(map[string]any)
	score := 0.0

	if len(profile.RecentPostDates) > 0 {
		now := e.now()

		postsLast30d := 0
		for _, date := range profile.RecentPostDates {
			if now.Sub(date) <= 30*24*time.Hour {
				postsLast30d++
			}
		}

		// YouTube output is slower by nature; the ideal band is lower.
		idealMin, idealMax := 8, 15
		if profile.Platform == PlatformYouTube {
			idealMin, idealMax = 4, 8
		}

		var freqScore float64
		switch {
		case postsLast30d >= idealMin && postsLast30d <= idealMax:
			freqScore = 40
		case postsLast30d > idealMax:
			freqScore = 35 // over-posting tends to dilute quality
		case float64(postsLast30d) >= float64(idealMin)*0.5:
			freqScore = 25
		default:
			freqScore = 10
		}
		details["posts_last_30d"] = postsLast30d
		details["frequency_score"] = freqScore
		score += freqScore

		latest := profile.RecentPostDates[0]
		for _, date := range profile.RecentPostDates[1:] {
			if date.After(latest) {
				latest = date
			}
		}
		daysSincePost := int(now.Sub(latest).Hours() / 24)

		var recencyScore float64
		switch {
		case daysSincePost <= 3:
			recencyScore = 30
		case daysSincePost <= 7:
			recencyScore = 25
		case daysSincePost <= 14:
			recencyScore = 15
		default:
			recencyScore = 5
		}
		details["days_since_last_post"] = daysSincePost
		details["recency_score"] = recencyScore
		score += recencyScore
	} else {
		details["warning"] = "keine Posting-Zeitdaten vorhanden"
		score += 20
	}

	if profile.Posts > 0 {
		var contentScore float64
		switch {
		case profile.Posts >= 100:
			contentScore = 30
		case profile.Posts >= 50:
			contentScore = 25
		case profile.Posts >= 20:
			contentScore = 15
		default:
			contentScore = 10
		}
		details["total_posts"] = profile.Posts
		details["content_score"] = contentScore
		score += contentScore
	}

	return score, details
}

// Engagement status values recorded in the authenticity details and read
// back by risk flagging and recommendations.
const (
	engagementNormal  = "normal"
	engagementLow     = "verdächtig niedrig"
	engagementHigh    = "verdächtig hoch"
	engagementSlight  = "leicht erhöht"
	ffRatioExcellent  = "ausgezeichnet"
	ffRatioGood       = "gut"
	ffRatioAverage    = "durchschnittlich"
	ffRatioSuspicious = "verdächtig (Follow-back-Muster)"
)

// Authenticity: engagement-rate plausibility (0-50) + follower/following
// ratio (0-30) + comment/like ratio (0-20). Bands are platform-specific
// and, on Instagram, follower-tier-specific.
func (e *Evaluator) evaluateAuthenticity(profile *Profile) (float64, map[string]any) {
	details := make(map[string]any)
	score := 0.0

	if profile.Followers > 0 && profile.AvgLikes > 0 {
		engagementRate := (profile.AvgLikes + profile.AvgComments) / float64(profile.Followers) * 100
		details["engagement_rate"] = round2(engagementRate)

		var normalMin, normalMax float64
		switch profile.Platform {
		case PlatformTikTok:
			normalMin, normalMax = 3.0, 12.0
		case PlatformYouTube:
			normalMin, normalMax = 2.0, 8.0
		default:
			// Instagram mega-accounts run lower expected rates than
			// mid-size accounts. The breakpoints are intentionally
			// non-monotonic; see the evaluation design notes.
			switch {
			case profile.Followers > 1000000:
				normalMin, normalMax = 0.5, 3.0
			case profile.Followers > 100000:
				normalMin, normalMax = 1.0, 5.0
			default:
				normalMin, normalMax = 2.0, 8.0
			}
		}

		var engScore float64
		switch {
		case engagementRate >= normalMin && engagementRate <= normalMax:
			engScore = 50
			details["engagement_status"] = engagementNormal
		case engagementRate < normalMin:
			engScore = 20
			details["engagement_status"] = engagementLow
		case engagementRate > normalMax*1.5:
			engScore = 15
			details["engagement_status"] = engagementHigh
		default:
			engScore = 35
			details["engagement_status"] = engagementSlight
		}
		details["engagement_score"] = engScore
		score += engScore
	} else {
		details["warning"] = "keine Interaktionsdaten vorhanden"
		score += 25
	}

	if profile.Followers > 0 && profile.Following > 0 {
		ffRatio := float64(profile.Followers) / float64(profile.Following)
		details["follower_following_ratio"] = round2(ffRatio)

		var ffScore float64
		switch {
		case ffRatio >= 10:
			ffScore = 30
			details["ff_status"] = ffRatioExcellent
		case ffRatio >= 5:
			ffScore = 25
			details["ff_status"] = ffRatioGood
		case ffRatio >= 2:
			ffScore = 15
			details["ff_status"] = ffRatioAverage
		default:
			ffScore = 5
			details["ff_status"] = ffRatioSuspicious
		}
		details["ff_score"] = ffScore
		score += ffScore
	} else {
		score += 15
	}

	if profile.AvgLikes > 0 && profile.AvgComments > 0 {
		clRatio := profile.AvgComments / profile.AvgLikes * 100
		details["comment_like_ratio"] = round2(clRatio)

		var clScore float64
		switch {
		case clRatio >= 1 && clRatio <= 5:
			clScore = 20
			details["cl_status"] = "normal"
		case clRatio < 1:
			clScore = 10
			details["cl_status"] = "wenige Kommentare"
		default:
			clScore = 15
			details["cl_status"] = "hohe Kommentaraktivität"
		}
		details["cl_score"] = clScore
		score += clScore
	} else {
		score += 10
	}

	return score, details
}

// Relevance: German value keywords (0-40) + niche match (0-40) +
// language indicators (0-20), over bio + captions + hashtags lowercased.
func (e *Evaluator) evaluateRelevance(profile *Profile) (float64, map[string]any, MarketFit) {
	details := make(map[string]any)
	fit := MarketFit{KeywordsFound: make(map[string]CategoryMatch)}
	score := 0.0

	allText := strings.ToLower(strings.Join([]string{
		profile.Bio,
		strings.Join(profile.RecentCaptions, " "),
		strings.Join(profile.Hashtags, " "),
	}, " "))

	valueScore := 0.0
	for category, entry := range lexicon.MarketValues {
		foundDE := matchKeywords(allText, entry.German)
		foundEN := matchKeywords(allText, entry.English)
		if len(foundDE) == 0 && len(foundEN) == 0 {
			continue
		}

		fit.KeywordsFound[string(category)] = CategoryMatch{
			German:  foundDE,
			English: foundEN,
			Weight:  entry.Weight,
		}
		// German-language hits carry more weight than English ones.
		valueScore += float64(len(foundDE)) * 5 * entry.Weight
		valueScore += float64(len(foundEN)) * 3 * entry.Weight
	}
	if valueScore > 40 {
		valueScore = 40
	}
	fit.ValueScore = round1(valueScore)

	if _, ok := fit.KeywordsFound[string(lexicon.ValueSustainability)]; ok {
		fit.SustainabilityFocus = true
		fit.Note = "Profil betont Nachhaltigkeit und trifft damit den Kern deutscher Konsumentenwerte"
	}
	score += valueScore

	if e.hasNiche {
		entry := lexicon.Niches[e.targetNiche]
		foundDE := matchKeywords(allText, entry.German)
		foundEN := matchKeywords(allText, entry.English)
		matchCount := len(foundDE) + len(foundEN)

		var nicheScore float64
		switch {
		case matchCount >= 5:
			nicheScore = 40
			details["niche_match"] = "hohe Übereinstimmung"
		case matchCount >= 3:
			nicheScore = 30
			details["niche_match"] = "Übereinstimmung"
		case matchCount >= 1:
			nicheScore = 20
			details["niche_match"] = "teilweise Übereinstimmung"
		default:
			nicheScore = 5
			details["niche_match"] = "keine Übereinstimmung"
		}
		details["niche_keywords_found"] = map[string][]string{"de": foundDE, "en": foundEN}
		details["niche_score"] = nicheScore
		score += nicheScore
	} else {
		score += 20
	}

	indicatorCount := textutil.CountIndicators(allText, lexicon.GermanIndicators)
	var langScore float64
	switch {
	case indicatorCount >= 5:
		langScore = 20
		details["language"] = "überwiegend deutschsprachige Inhalte"
	case indicatorCount >= 2:
		langScore = 15
		details["language"] = "enthält deutschsprachige Inhalte"
	default:
		langScore = 10
		details["language"] = "keine deutschsprachigen Inhalte erkannt"
	}
	details["german_word_indicators"] = indicatorCount
	score += langScore

	return score, details, fit
}

func matchKeywords(text string, keywords []string) []string {
	var found []string
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}

func gradeFor(total float64) string {
	switch {
	case total >= 85:
		return "S"
	case total >= 70:
		return "A"
	case total >= 55:
		return "B"
	case total >= 40:
		return "C"
	default:
		return "D"
	}
}

func identifyRisks(profile *Profile, authDetails, activityDetails map[string]any) []string {
	var risks []string

	switch authDetails["engagement_status"] {
	case engagementHigh:
		risks = append(risks, "Interaktionsrate verdächtig hoch, möglicherweise gekaufte Interaktionen")
	case engagementLow:
		risks = append(risks, "Interaktionsrate verdächtig niedrig, möglicherweise inaktive oder gekaufte Follower")
	}

	if authDetails["ff_status"] == ffRatioSuspicious {
		risks = append(risks, "Follower/Following-Verhältnis auffällig, Follow-back-Muster")
	}

	if profile.Followers > 100000 && profile.AvgLikes < 500 {
		risks = append(risks, "Großes Konto mit geringer Interaktion, Followerqualität fraglich")
	}

	if days, ok := activityDetails["days_since_last_post"].(int); ok && days > 30 {
		risks = append(risks, "Seit über 30 Tagen kein neuer Beitrag, Aktivität fraglich")
	}

	return risks
}

func buildRecommendation(grade string, activity, auth, relevance map[string]any, fit MarketFit) string {
	var base string
	switch grade {
	case "S":
		base = "Kooperation dringend empfohlen"
	case "A":
		base = "Kooperation empfohlen"
	case "B":
		base = "Kooperation kann in Betracht gezogen werden"
	case "C":
		base = "Nur mit Vorsicht in Betracht ziehen"
	default:
		base = "Kooperation nicht empfohlen"
	}

	var qualifiers []string
	if fit.SustainabilityFocus {
		qualifiers = append(qualifiers, "geeignet für nachhaltige Produkte")
	}
	if relevance["niche_match"] == "hohe Übereinstimmung" {
		qualifiers = append(qualifiers, "hohe Übereinstimmung mit der Zielnische")
	}
	if auth["engagement_status"] == engagementNormal {
		qualifiers = append(qualifiers, "gesunde Follower-Interaktion")
	}
	if posts, ok := activity["posts_last_30d"].(int); ok && posts >= 8 {
		qualifiers = append(qualifiers, "stabile Posting-Frequenz")
	}

	if len(qualifiers) == 0 {
		return base
	}
	return fmt.Sprintf("%s. %s.", base, strings.Join(qualifiers, "; "))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
