package query

import (
	"context"
	"fmt"

	"cloud.google.com/go/translate"
	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"market-scout/utils"
)

// Normalizer ensures search queries reach the search API in English.
// Detection runs locally; the Translation API is called only when the
// detected language is not English.
type Normalizer struct {
	client *translate.Client
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer backed by the Translation API.
func NewNormalizer(ctx context.Context, apiKey string, logger *utils.Logger) (*Normalizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("translate: missing API key: set GOOGLE_CLOUD_API_KEY")
	}

	client, err := translate.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("translate: create client: %w", err)
	}

	return &Normalizer{client: client, logger: logger}, nil
}

// Close releases the underlying API connection.
func (n *Normalizer) Close() error {
	return n.client.Close()
}

// Normalize returns the query unchanged when it is already English,
// otherwise its English translation.
func (n *Normalizer) Normalize(ctx context.Context, query string) (string, error) {
	info := whatlanggo.Detect(query)
	if info.Lang == whatlanggo.Eng {
		return query, nil
	}

	n.logger.Info("Detected %s query — translating to English", whatlanggo.Langs[info.Lang])

	translations, err := n.client.Translate(ctx, []string{query}, language.English, nil)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("translate: empty response for %q", query)
	}

	translated := translations[0].Text
	n.logger.Info("Translated query: %s", translated)
	return translated, nil
}
