// README: POI service: city listing, top-rated lookups and semantic search.
package poi

import (
	"context"
	"errors"
	"fmt"
)

const (
	// TopLimit bounds the per-city top-rated listing.
	TopLimit = 10
	// searchCandidates is how many nearest neighbours the index examines
	// before the result breadth is applied.
	searchCandidates = 20
	searchLimit      = 5
)

var ErrBadRequest = errors.New("bad request")

// Embedder turns query text into a vector comparable with stored embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Finder is the store surface the service depends on.
type Finder interface {
	DistinctCities(ctx context.Context) ([]string, error)
	TopByCity(ctx context.Context, city string, limit int) ([]PointOfInterest, error)
	TopByCities(ctx context.Context, cities []string, limit int) ([]PointOfInterest, error)
	SimilaritySearch(ctx context.Context, queryEmbedding []float32, candidateCount, limit int) ([]ScoredPointOfInterest, error)
}

type Service struct {
	store    Finder
	embedder Embedder
}

func NewService(store Finder, embedder Embedder) *Service {
	return &Service{store: store, embedder: embedder}
}

// Cities returns every distinct city with at least one POI record.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	return s.store.DistinctCities(ctx)
}

// TopByCity returns the top-rated POIs for one city. An empty city is a
// caller error; an empty result is not.
func (s *Service) TopByCity(ctx context.Context, city string) ([]PointOfInterest, error) {
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", ErrBadRequest)
	}
	return s.store.TopByCity(ctx, city, TopLimit)
}

// Search embeds the query text and runs an approximate nearest-neighbour
// search over the stored POI embeddings.
func (s *Service) Search(ctx context.Context, query string) ([]ScoredPointOfInterest, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrBadRequest)
	}
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return s.store.SimilaritySearch(ctx, embedding, searchCandidates, searchLimit)
}
