package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"market-scout/models"
)

// Ranker asks Gemini to pick the single most relevant candidate by title.
type Ranker struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewRanker creates a Gemini-backed Ranker for the given model name.
func NewRanker(ctx context.Context, apiKey, modelName string) (*Ranker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing API key: set GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Ranker{client: client, model: client.GenerativeModel(modelName)}, nil
}

// Close releases the underlying API connection.
func (r *Ranker) Close() error {
	return r.client.Close()
}

// Rank sends the enumerated candidate list to the model and returns its
// free-text analysis. The caller parses the "Best video:" line out of it.
func (r *Ranker) Rank(ctx context.Context, query string, candidates []models.VideoCandidate) (string, error) {
	lines := make([]string, 0, len(candidates))
	for i, c := range candidates {
		lines = append(lines, fmt.Sprintf("%d. %s (by %s)", i+1, c.Title, c.ChannelTitle))
	}

	prompt := fmt.Sprintf(`Analyze these video titles for their relevance to the query: %q

Videos:
%s

Based solely on the titles, which ONE video appears most relevant and high-quality for this query?
Consider factors like: specificity to the query, informativeness, professional phrasing,
lack of clickbait, and content quality signals.

Return only the number of the best video with a brief explanation why it's the best match.
Format: "Best video: [number] - [brief explanation]"`, query, strings.Join(lines, "\n"))

	resp, err := r.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	return flatten(resp), nil
}

// flatten concatenates the text parts of every candidate in the response.
func flatten(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
