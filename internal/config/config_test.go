package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "weekly", cfg.ReportSchedule)
	assert.Equal(t, "Europe/Berlin", cfg.TimeZone)
	assert.Equal(t, "data/marktpuls.db", cfg.DatabasePath)
	assert.Equal(t, "formal", cfg.OutreachTone)
	assert.Equal(t, 500, cfg.BatchLimit)
	assert.InDelta(t, 1.0, cfg.ActivityWeight+cfg.AuthenticityWeight+cfg.RelevanceWeight, 1e-9)
}

func TestLoad_InvalidSchedule(t *testing.T) {
	t.Setenv("REPORT_SCHEDULE", "hourly")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REPORT_SCHEDULE")
}

func TestLoad_WeightsMustSumToOne(t *testing.T) {
	t.Setenv("WEIGHT_ACTIVITY", "0.5")
	t.Setenv("WEIGHT_AUTHENTICITY", "0.5")
	t.Setenv("WEIGHT_RELEVANCE", "0.5")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "weights")
}

func TestLoad_TranslationRequiresKey(t *testing.T) {
	t.Setenv("ENABLE_TRANSLATION", "true")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DEEPL_AUTH_KEY")
}

func TestLoad_EmailRequiresSMTP(t *testing.T) {
	t.Setenv("NOTIFICATION_EMAIL", "ops@example.de")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP")
}

func TestLoad_CustomRiskKeywords(t *testing.T) {
	t.Setenv("CUSTOM_RISK_KEYWORDS", "legal:datenschutzverletzung|dsgvo, quality:fusselt")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"datenschutzverletzung", "dsgvo"}, cfg.CustomRiskKeywords["legal"])
	assert.Equal(t, []string{"fusselt"}, cfg.CustomRiskKeywords["quality"])
}

func TestGetKeywordMapEnv_MalformedEntriesIgnored(t *testing.T) {
	t.Setenv("CUSTOM_RISK_KEYWORDS", "nocolon,:empty,legal:anzeige")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"legal": {"anzeige"}}, cfg.CustomRiskKeywords)
}
