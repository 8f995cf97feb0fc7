package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Schedule configuration
	ReportSchedule string // "daily" or "weekly"
	TimeZone       string

	// Database configuration
	DatabasePath string

	// Notification configuration
	WebhookURL        string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Translation (DeepL)
	DeepLBaseURL string
	DeepLAuthKey string
	TargetLang   string

	// Influencer evaluation
	TargetNiche        string
	ActivityWeight     float64
	AuthenticityWeight float64
	RelevanceWeight    float64

	// Custom risk keywords per category, "category:kw1|kw2,category2:kw3"
	CustomRiskKeywords map[string][]string

	// Outreach configuration
	BrandName      string
	OutreachTone   string // "formal" or "friendly"
	ContactAddress string

	// Feature toggles
	EnableTranslation bool
	BatchLimit        int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          getBoolEnv("DEBUG", false),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "weekly"),
		TimeZone:       getEnv("TIMEZONE", "Europe/Berlin"),

		DatabasePath: getEnv("DATABASE_PATH", "data/marktpuls.db"),

		WebhookURL:        getEnv("WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		DeepLBaseURL: getEnv("DEEPL_BASE_URL", "https://api-free.deepl.com"),
		DeepLAuthKey: getEnv("DEEPL_AUTH_KEY", ""),
		TargetLang:   getEnv("TRANSLATION_TARGET_LANG", "EN"),

		TargetNiche:        getEnv("TARGET_NICHE", ""),
		ActivityWeight:     getFloatEnv("WEIGHT_ACTIVITY", 0.25),
		AuthenticityWeight: getFloatEnv("WEIGHT_AUTHENTICITY", 0.40),
		RelevanceWeight:    getFloatEnv("WEIGHT_RELEVANCE", 0.35),

		CustomRiskKeywords: getKeywordMapEnv("CUSTOM_RISK_KEYWORDS"),

		BrandName:      getEnv("BRAND_NAME", ""),
		OutreachTone:   getEnv("OUTREACH_TONE", "formal"),
		ContactAddress: getEnv("CONTACT_ADDRESS", ""),

		EnableTranslation: getBoolEnv("ENABLE_TRANSLATION", false),
		BatchLimit:        getIntEnv("BATCH_LIMIT", 500),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ReportSchedule != "daily" && c.ReportSchedule != "weekly" {
		return fmt.Errorf("REPORT_SCHEDULE must be 'daily' or 'weekly'")
	}

	sum := c.ActivityWeight + c.AuthenticityWeight + c.RelevanceWeight
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		return fmt.Errorf("evaluation weights must sum to 1.0, got %v", sum)
	}

	if c.OutreachTone != "formal" && c.OutreachTone != "friendly" {
		return fmt.Errorf("OUTREACH_TONE must be 'formal' or 'friendly'")
	}

	if c.EnableTranslation && c.DeepLAuthKey == "" {
		return fmt.Errorf("DEEPL_AUTH_KEY is required when ENABLE_TRANSLATION is set")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getKeywordMapEnv parses "category:kw1|kw2,category2:kw3" into a map.
func getKeywordMapEnv(key string) map[string][]string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	result := make(map[string][]string)
	for _, entry := range strings.Split(value, ",") {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		category := strings.TrimSpace(parts[0])
		if category == "" {
			continue
		}
		for _, keyword := range strings.Split(parts[1], "|") {
			if keyword = strings.TrimSpace(keyword); keyword != "" {
				result[category] = append(result[category], keyword)
			}
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
