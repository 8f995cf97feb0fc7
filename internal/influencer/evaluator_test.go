package influencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinned so recency and frequency scores are reproducible
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func postDates(daysAgo ...int) []time.Time {
	dates := make([]time.Time, 0, len(daysAgo))
	for _, days := range daysAgo {
		dates = append(dates, testNow.AddDate(0, 0, -days))
	}
	return dates
}

func strongProfile() *Profile {
	return &Profile{
		Platform:        PlatformInstagram,
		Username:        "oeko_lena",
		Followers:       50000,
		Following:       500,
		Posts:           150,
		AvgLikes:        2500,
		AvgComments:     75,
		Bio:             "ich liebe nachhaltig und öko, bio ist für mich mit fair trade",
		RecentPostDates: postDates(1, 3, 5, 8, 11, 14, 17, 20, 24, 28),
	}
}

func weakProfile() *Profile {
	return &Profile{
		Platform:    PlatformTikTok,
		Username:    "ghost_account",
		Followers:   200000,
		Following:   150000,
		Posts:       10,
		AvgLikes:    100,
		AvgComments: 1,
	}
}

func TestEvaluator_EvaluateStrongProfile(t *testing.T) {
	evaluator, err := NewEvaluator("", DefaultWeights(), WithClock(testClock))
	require.NoError(t, err)

	result, err := evaluator.Evaluate(strongProfile())
	require.NoError(t, err)

	// 10 posts in 30 days, last post 1 day ago, 150 posts lifetime.
	assert.Equal(t, 100.0, result.ActivityScore)
	// 5.15% engagement, ff ratio 100, cl ratio 3%.
	assert.Equal(t, 100.0, result.AuthenticityScore)
	// 4 German sustainability hits (30) + no niche (20) + 5 indicators (20).
	assert.Equal(t, 70.0, result.RelevanceScore)
	assert.InDelta(t, 89.5, result.TotalScore, 1e-9)
	assert.Equal(t, "S", result.Grade)

	assert.True(t, result.MarketFit.SustainabilityFocus)
	assert.Contains(t, result.Recommendation, "dringend empfohlen")
	assert.Empty(t, result.RiskFlags)
}

func TestEvaluator_EvaluateWeakProfile(t *testing.T) {
	evaluator, err := NewEvaluator("", DefaultWeights(), WithClock(testClock))
	require.NoError(t, err)

	result, err := evaluator.Evaluate(weakProfile())
	require.NoError(t, err)

	assert.Equal(t, 30.0, result.ActivityScore)
	assert.Equal(t, 45.0, result.AuthenticityScore)
	assert.Equal(t, 30.0, result.RelevanceScore)
	assert.InDelta(t, 36.0, result.TotalScore, 1e-9)
	assert.Equal(t, "D", result.Grade)

	assert.Contains(t, result.Recommendation, "nicht empfohlen")
	assert.Len(t, result.RiskFlags, 3)
}

func TestEvaluator_EvaluateDormantAccount(t *testing.T) {
	evaluator, err := NewEvaluator("", DefaultWeights(), WithClock(testClock))
	require.NoError(t, err)

	// large account, near-dead interaction, last post 45 days ago
	result, err := evaluator.Evaluate(&Profile{
		Platform:        PlatformInstagram,
		Username:        "stale_account",
		Followers:       100000,
		Following:       9500,
		Posts:           30,
		AvgLikes:        150,
		AvgComments:     1,
		RecentPostDates: postDates(45),
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, result.ActivityScore)
	assert.Equal(t, 60.0, result.AuthenticityScore)
	assert.InDelta(t, 42.0, result.TotalScore, 1e-9)
	assert.Less(t, result.TotalScore, 50.0)

	require.Len(t, result.RiskFlags, 2)
	assert.Contains(t, result.RiskFlags[0], "verdächtig niedrig")
	assert.Contains(t, result.RiskFlags[1], "30 Tagen kein neuer Beitrag")
}

func TestEvaluator_TotalScoreStaysInRange(t *testing.T) {
	weightSets := []Weights{
		{Activity: 0.25, Authenticity: 0.40, Relevance: 0.35},
		{Activity: 1.0, Authenticity: 0.0, Relevance: 0.0},
		{Activity: 0.0, Authenticity: 0.0, Relevance: 1.0},
		{Activity: 0.3, Authenticity: 0.3, Relevance: 0.4},
	}
	profiles := []*Profile{strongProfile(), weakProfile()}

	for _, weights := range weightSets {
		evaluator, err := NewEvaluator("", weights, WithClock(testClock))
		require.NoError(t, err)

		for _, profile := range profiles {
			result, err := evaluator.Evaluate(profile)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.TotalScore, 0.0)
			assert.LessOrEqual(t, result.TotalScore, 100.0)
		}
	}
}

func TestEvaluator_EvaluateIsIdempotent(t *testing.T) {
	evaluator, err := NewEvaluator("fitness", DefaultWeights(), WithClock(testClock))
	require.NoError(t, err)

	profile := strongProfile()
	first, err := evaluator.Evaluate(profile)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := evaluator.Evaluate(profile)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEvaluator_NicheMatching(t *testing.T) {
	evaluator, err := NewEvaluator("fitness", DefaultWeights(), WithClock(testClock))
	require.NoError(t, err)

	profile := weakProfile()
	profile.Bio = "fitness sport training workout gym"

	result, err := evaluator.Evaluate(profile)
	require.NoError(t, err)

	assert.Equal(t, "hohe Übereinstimmung", result.RelevanceDetails["niche_match"])
	assert.Equal(t, 40.0, result.RelevanceDetails["niche_score"])
}

func TestEvaluator_NicheNoMatch(t *testing.T) {
	evaluator, err := NewEvaluator("beauty", DefaultWeights(), WithClock(testClock))
	require.NoError(t, err)

	result, err := evaluator.Evaluate(weakProfile())
	require.NoError(t, err)

	assert.Equal(t, "keine Übereinstimmung", result.RelevanceDetails["niche_match"])
	assert.Equal(t, 5.0, result.RelevanceDetails["niche_score"])
}

func TestNewEvaluator_UnknownNiche(t *testing.T) {
	_, err := NewEvaluator("astrology", DefaultWeights())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "astrology")
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"Defaults are valid", DefaultWeights(), false},
		{"Custom valid triple", Weights{Activity: 0.5, Authenticity: 0.3, Relevance: 0.2}, false},
		{"Sum above one", Weights{Activity: 0.5, Authenticity: 0.5, Relevance: 0.5}, true},
		{"Sum below one", Weights{Activity: 0.1, Authenticity: 0.1, Relevance: 0.1}, true},
		{"Negative weight", Weights{Activity: -0.2, Authenticity: 0.7, Relevance: 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfile_Validate(t *testing.T) {
	valid := strongProfile()
	assert.NoError(t, valid.Validate())

	negative := strongProfile()
	negative.Followers = -1
	assert.Error(t, negative.Validate())

	unknown := strongProfile()
	unknown.Platform = "myspace"
	assert.Error(t, unknown.Validate())
}

func TestRoundHelpers(t *testing.T) {
	assert.Equal(t, 3.1, round1(3.06))
	assert.Equal(t, -1.3, round1(-1.26))
	assert.Equal(t, 0.15, round2(0.154))
	assert.Equal(t, 5.16, round2(5.156))
}

func TestGradeBoundaries(t *testing.T) {
	tests := []struct {
		total float64
		grade string
	}{
		{85, "S"},
		{84.999, "A"},
		{70, "A"},
		{69.999, "B"},
		{55, "B"},
		{54.999, "C"},
		{40, "C"},
		{39.999, "D"},
		{0, "D"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.grade, gradeFor(tt.total), "total %v", tt.total)
	}
}

func TestEvaluator_EvaluateBatch(t *testing.T) {
	evaluator, err := NewEvaluator("", DefaultWeights(), WithClock(testClock))
	require.NoError(t, err)

	broken := weakProfile()
	broken.Username = "broken"
	broken.AvgLikes = -5

	results, failures := evaluator.EvaluateBatch([]*Profile{strongProfile(), broken, weakProfile()})

	assert.Len(t, results, 2)
	require.Len(t, failures, 1)
	assert.Error(t, failures["broken"])
}

func TestRank(t *testing.T) {
	results := []*EvaluationResult{
		{Username: "mid", TotalScore: 55},
		{Username: "top", TotalScore: 90},
		{Username: "low", TotalScore: 20},
	}

	ranked := Rank(results)

	assert.Equal(t, "top", ranked[0].Username)
	assert.Equal(t, "mid", ranked[1].Username)
	assert.Equal(t, "low", ranked[2].Username)
	// input order untouched
	assert.Equal(t, "mid", results[0].Username)
}

func TestParseInstagram(t *testing.T) {
	profile := ParseInstagram(InstagramData{
		Username:       "lena",
		FollowersCount: 1000,
		FollowingCount: 100,
		MediaCount:     50,
		AvgLikes:       80,
		AvgComments:    4,
		Biography:      "Mode und Nachhaltigkeit",
	})

	assert.Equal(t, PlatformInstagram, profile.Platform)
	assert.Equal(t, 1000, profile.Followers)
	assert.Equal(t, 50, profile.Posts)
	assert.Equal(t, "Mode und Nachhaltigkeit", profile.Bio)
}

func TestParseTikTok(t *testing.T) {
	profile := ParseTikTok(TikTokData{
		Username:      "tom",
		FollowerCount: 5000,
		VideoCount:    30,
		AvgViews:      20000,
		Signature:     "Tech Reviews auf Deutsch",
	})

	assert.Equal(t, PlatformTikTok, profile.Platform)
	assert.Equal(t, 5000, profile.Followers)
	assert.Equal(t, 30, profile.Posts)
	assert.Equal(t, 20000.0, profile.AvgViews)
	assert.Equal(t, "Tech Reviews auf Deutsch", profile.Bio)
}
