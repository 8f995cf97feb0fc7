// Package translator wraps machine translation behind a narrow
// interface. Translation is an external capability; callers treat any
// failure as recoverable and substitute a sentinel.
package translator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Unavailable is the sentinel callers substitute when translation fails.
// It is distinguishable from any real translation output.
const Unavailable = "[Übersetzung nicht verfügbar]"

// Translator turns German text into the requested target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// DeepLTranslator calls the DeepL v2 REST API.
type DeepLTranslator struct {
	client  *resty.Client
	authKey string
}

type deepLResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// NewDeepL builds a translator against the given API base URL (the free
// and pro tiers use different hosts).
func NewDeepL(baseURL, authKey string) *DeepLTranslator {
	return &DeepLTranslator{
		client:  resty.New().SetBaseURL(baseURL).SetTimeout(15 * time.Second),
		authKey: authKey,
	}
}

// Translate implements Translator.
func (t *DeepLTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	var result deepLResponse

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "DeepL-Auth-Key "+t.authKey).
		SetFormData(map[string]string{
			"text":        text,
			"source_lang": "DE",
			"target_lang": targetLang,
		}).
		SetResult(&result).
		Post("/v2/translate")
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("translation API returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Translations) == 0 {
		return "", fmt.Errorf("translation API returned no translations")
	}

	return result.Translations[0].Text, nil
}
