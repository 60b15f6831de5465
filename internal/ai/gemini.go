// README: Gemini provider (alternate backend behind the same Provider contract).
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultGeminiChatModel  = "gemini-2.0-flash"
	defaultGeminiEmbedModel = "text-embedding-004"
)

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
	embed  *genai.EmbeddingModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey, chatModel, embedModel string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	if chatModel == "" {
		chatModel = defaultGeminiChatModel
	}
	if embedModel == "" {
		embedModel = defaultGeminiEmbedModel
	}

	model := client.GenerativeModel(chatModel)
	// Force JSON response for structured parsing; temperature 0 keeps plan
	// variance down across identical inputs.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0)

	return &GeminiProvider{
		client: client,
		model:  model,
		embed:  client.EmbeddingModel(embedModel),
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// Embed returns one fixed-dimension vector for the input string.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := p.embed.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini: embed content: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini: API returned empty embedding")
	}
	return res.Embedding.Values, nil
}

// GenerateTrip issues a single JSON-mode generation request.
// Gemini has no separate system/user message sequence here; the fixed
// instructions and the user content are combined into one prompt.
func (p *GeminiProvider) GenerateTrip(ctx context.Context, cities []string, pointsJSON []byte, days int) (string, error) {
	user, err := tripUserPrompt(cities, pointsJSON, days)
	if err != nil {
		return "", err
	}
	fullPrompt := fmt.Sprintf("%s\n\n%s\n\n%s", tripSystemPrompt, tripSchemaPrompt, user)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	if responseText.Len() == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}

	// JSON mode should prevent markdown fences, but strip them if present.
	return cleanJSONString(responseText.String()), nil
}
