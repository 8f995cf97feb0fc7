package outreach

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() Context {
	return Context{
		InfluencerName: "Lena",
		Platform:       "instagram",
		Niche:          "fashion",
		BrandName:      "GrünMode",
		ProductName:    "Bio-Baumwolltasche",
		SenderName:     "Max Weber",
		CompanyName:    "GrünMode GmbH",
	}
}

func TestNewGenerator_Validation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := NewGenerator("aggressive", true, rng)
	assert.Error(t, err)

	_, err = NewGenerator(ToneFormal, true, nil)
	assert.Error(t, err)

	generator, err := NewGenerator(ToneCasual, false, rng)
	require.NoError(t, err)
	assert.NotNil(t, generator)
}

func TestGenerator_GenerateIsDeterministicPerSeed(t *testing.T) {
	first, err := NewGenerator(ToneFormal, true, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := NewGenerator(ToneFormal, true, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, first.Generate(testContext()), second.Generate(testContext()))
}

func TestGenerator_GenerateFormal(t *testing.T) {
	generator, err := NewGenerator(ToneFormal, true, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	draft := generator.Generate(testContext())

	assert.Equal(t, ToneFormal, draft.Tone)
	assert.Contains(t, draft.Body, "Lena")
	assert.Contains(t, draft.Body, "Max Weber")
	assert.Contains(t, draft.Body, "GrünMode GmbH")
	// formal drafts never use the casual address
	assert.NotContains(t, draft.Body, "Hallo Lena")
}

func TestGenerator_GenerateIncludesClosingAndSignOff(t *testing.T) {
	generator, err := NewGenerator(ToneFormal, false, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	draft := generator.Generate(testContext())

	assert.Contains(t, draft.Body, "Grüß")
	// every section renders; an empty phrase would collapse paragraphs
	assert.NotContains(t, draft.Body, "\n\n\n")
	assert.NotContains(t, draft.Body, "{")
}

func TestGenerator_GenerateGDPRNotices(t *testing.T) {
	generator, err := NewGenerator(ToneFormal, true, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	draft := generator.Generate(testContext())

	assert.True(t, draft.GDPRCompliant)
	require.Len(t, draft.ComplianceNotes, 2)
	assert.Contains(t, draft.Body, "Datenschutz")
	assert.Contains(t, draft.Body, "keine weiteren Nachrichten")
}

func TestGenerator_GenerateWithoutGDPR(t *testing.T) {
	generator, err := NewGenerator(ToneCasual, false, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	draft := generator.Generate(testContext())

	assert.False(t, draft.GDPRCompliant)
	assert.Empty(t, draft.ComplianceNotes)
}

func TestApologyGenerator_DetermineUrgency(t *testing.T) {
	generator := NewApologyGenerator("GrünMode", "", rand.New(rand.NewSource(1)))

	tests := []struct {
		name     string
		content  string
		rating   int
		expected string
	}{
		{"Legal keyword is critical", "Ich hole meinen Anwalt", 3, "critical"},
		{"One star is critical", "Einfach nur schlecht", 1, "critical"},
		{"Defect keyword is high", "Das Gerät ist defekt", 3, "high"},
		{"Two stars are high", "Nicht zufrieden", 2, "high"},
		{"Mild complaint is medium", "Könnte besser sein", 3, "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, generator.DetermineUrgency(tt.content, tt.rating))
		})
	}
}

func TestApologyGenerator_Generate(t *testing.T) {
	generator := NewApologyGenerator("GrünMode", "hilfe@gruenmode.de", rand.New(rand.NewSource(9)))

	draft := generator.Generate(ApologyContext{
		CustomerName:  "Frau Schmidt",
		OrderID:       "B-4711",
		ProductName:   "Wasserkocher",
		ReviewContent: "Das Produkt ist gefährlich, ich war im Krankenhaus!",
		ReviewRating:  1,
	})

	assert.Equal(t, "critical", draft.UrgencyLevel)
	assert.Contains(t, draft.Subject, "B-4711")
	assert.Contains(t, draft.Body, "Frau Schmidt")
	assert.Contains(t, draft.Body, "hilfe@gruenmode.de")
	assert.Contains(t, draft.Body, "GrünMode")
	assert.NotEmpty(t, draft.SuggestedCompensation)
	require.NotEmpty(t, draft.FollowUpActions)
	assert.Contains(t, draft.FollowUpActions[0], "Rechtsabteilung")
}

func TestApologyGenerator_GenerateUsesProvidedCompensation(t *testing.T) {
	generator := NewApologyGenerator("", "", rand.New(rand.NewSource(1)))

	draft := generator.Generate(ApologyContext{
		CustomerName:      "Herr Maier",
		ReviewContent:     "Leider nicht überzeugend",
		ReviewRating:      3,
		CompensationOffer: "einen 10% Gutschein",
	})

	assert.Equal(t, "medium", draft.UrgencyLevel)
	assert.Equal(t, "einen 10% Gutschein", draft.SuggestedCompensation)
	assert.Contains(t, draft.Body, "einen 10% Gutschein")
}

func TestPrivacyCheck(t *testing.T) {
	compliantBody := `Sehr geehrte Frau Schmidt,

wir schreiben Ihnen bezüglich unserer Werbung für die Kooperation.

Falls Sie keine weiteren Nachrichten möchten, teilen Sie uns das mit (abmelden).
Datenschutz: Ihre Daten werden nicht weitergegeben.

Max Weber
GrünMode GmbH, Musterstraße 1, 10115 Berlin
kontakt@gruenmode.de`

	ctx := &Context{CompanyName: "GrünMode GmbH", SenderName: "Max Weber"}

	result := PrivacyCheck(compliantBody, ctx, true)

	assert.True(t, result.IsCompliant)
	assert.True(t, result.ImpressumComplete)
	assert.Empty(t, result.MissingElements)
	assert.Len(t, result.GDPRElements, 2)
}

func TestPrivacyCheck_MissingElements(t *testing.T) {
	result := PrivacyCheck("Hallo, kauf unser Produkt!", nil, true)

	assert.False(t, result.IsCompliant)
	assert.False(t, result.ImpressumComplete)
	assert.Contains(t, result.MissingElements, "Abmeldeoption (UWG §7)")
	assert.Contains(t, result.MissingElements, "Datenschutzhinweis (DSGVO Art. 13)")
	assert.Contains(t, result.MissingElements, "Firmenname (TMG §5)")
	assert.NotEmpty(t, result.Warnings)
}
