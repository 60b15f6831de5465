// README: AI provider contract for embeddings and itinerary generation.
package ai

import (
	"context"
)

// Provider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (OpenAI, Gemini, etc.).
type Provider interface {
	// Embed turns free text into a fixed-length vector using the provider's
	// embedding model. Each call is independent and synchronous.
	Embed(ctx context.Context, text string) ([]float32, error)

	// GenerateTrip asks the chat model for a multi-day trip plan over the given
	// cities and candidate points of interest (pre-marshaled JSON). It returns
	// the raw text of the model's single response; parsing and validation are
	// the caller's responsibility.
	GenerateTrip(ctx context.Context, cities []string, pointsJSON []byte, days int) (string, error)
}
