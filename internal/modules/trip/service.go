// README: Trip planning orchestrator: candidates -> generation -> validation -> flight resolution.
package trip

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"wayfare/internal/modules/airroute"
	"wayfare/internal/modules/poi"
)

const (
	// candidateLimit bounds how many POIs are handed to the generator.
	candidateLimit = 60
	// routeLookupWorkers bounds the flight-resolution fan-out.
	routeLookupWorkers = 4
)

// POIFinder supplies rating-ranked candidate POIs for a set of cities.
type POIFinder interface {
	TopByCities(ctx context.Context, cities []string, limit int) ([]poi.PointOfInterest, error)
}

// RouteFinder resolves one airport pair to its route records.
type RouteFinder interface {
	FindRoute(ctx context.Context, srcCode, dstCode string) ([]airroute.AirRoute, error)
}

// Generator produces the raw itinerary text for a set of cities and candidates.
type Generator interface {
	GenerateTrip(ctx context.Context, cities []string, pointsJSON []byte, days int) (string, error)
}

type Service struct {
	pois   POIFinder
	routes RouteFinder
	gen    Generator
}

func NewService(pois POIFinder, routes RouteFinder, gen Generator) *Service {
	return &Service{pois: pois, routes: routes, gen: gen}
}

// Plan runs the trip-planning pipeline to completion: validate the request,
// fetch candidate POIs, generate and validate a plan, resolve referenced
// flights, and assemble the response. The pipeline is all-or-nothing; no
// partial result is ever returned.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if len(req.Cities) == 0 {
		return nil, fmt.Errorf("%w: cities is required", ErrBadRequest)
	}
	if req.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be a positive integer", ErrBadRequest)
	}

	candidates, err := s.pois.TopByCities(ctx, req.Cities, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	pointsJSON, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}
	raw, err := s.gen.GenerateTrip(ctx, req.Cities, pointsJSON, req.Days)
	if err != nil {
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}

	suggestion, err := ParsePlan(raw)
	if err != nil {
		return nil, err
	}

	flights, err := s.resolveFlights(ctx, suggestion.TripPlan.Flights)
	if err != nil {
		return nil, err
	}

	return &PlanResult{
		Context:    candidates,
		Suggestion: suggestion,
		Flights:    flights,
	}, nil
}

// resolveFlights looks up every flight leg and concatenates all matches in
// plan order. Duplicate legs yield duplicate routes; a leg with no matching
// route contributes nothing. Lookups fan out with bounded concurrency, but
// the indexed result slice keeps the accumulation order deterministic.
func (s *Service) resolveFlights(ctx context.Context, flights []Flight) ([]airroute.AirRoute, error) {
	if len(flights) == 0 {
		return nil, nil
	}

	results := make([][]airroute.AirRoute, len(flights))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(routeLookupWorkers)
	for i, f := range flights {
		g.Go(func() error {
			routes, err := s.routes.FindRoute(gctx, f.SrcAirportCode, f.DestAirportCode)
			if err != nil {
				return fmt.Errorf("resolve flight %s-%s: %w", f.SrcAirportCode, f.DestAirportCode, err)
			}
			results[i] = routes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var resolved []airroute.AirRoute
	for _, routes := range results {
		resolved = append(resolved, routes...)
	}
	return resolved, nil
}
