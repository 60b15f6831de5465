// README: Orchestrator pipeline tests with stubbed collaborators.
package trip

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"wayfare/internal/modules/airroute"
	"wayfare/internal/modules/poi"
)

type stubPOIFinder struct {
	points []poi.PointOfInterest
	err    error
	calls  int
}

func (s *stubPOIFinder) TopByCities(_ context.Context, cities []string, limit int) ([]poi.PointOfInterest, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.points) > limit {
		return s.points[:limit], nil
	}
	return s.points, nil
}

// stubRouteFinder is called concurrently by the flight fan-out, so the call
// counter is atomic.
type stubRouteFinder struct {
	routes map[string][]airroute.AirRoute
	err    error
	calls  atomic.Int64
}

func (s *stubRouteFinder) FindRoute(_ context.Context, src, dst string) ([]airroute.AirRoute, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.routes[src+"-"+dst], nil
}

type stubGenerator struct {
	raw       string
	err       error
	calls     int
	gotCities []string
	gotDays   int
}

func (s *stubGenerator) GenerateTrip(_ context.Context, cities []string, _ []byte, days int) (string, error) {
	s.calls++
	s.gotCities = cities
	s.gotDays = days
	if s.err != nil {
		return "", s.err
	}
	return s.raw, nil
}

func parisPOIs(n int) []poi.PointOfInterest {
	points := make([]poi.PointOfInterest, n)
	for i := range points {
		points[i] = poi.PointOfInterest{
			Name:     "poi",
			Rating:   5,
			Location: poi.Location{City: "Paris"},
		}
	}
	return points
}

const validPlan = `{"tripPlan":{"destination":[{"city":"Paris","country":"France"}],` +
	`"flights":[{"src_airport_code":"JFK","dest_airport_code":"LAX"}],` +
	`"itinerary":[{"day":1,"destination":"Paris","activities":[]}]}}`

func TestPlan_EmptyCitiesRejectedBeforeAnyCall(t *testing.T) {
	pois := &stubPOIFinder{}
	routes := &stubRouteFinder{}
	gen := &stubGenerator{}
	svc := NewService(pois, routes, gen)

	_, err := svc.Plan(context.Background(), PlanRequest{Days: 3})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
	if pois.calls != 0 || gen.calls != 0 || routes.calls.Load() != 0 {
		t.Errorf("expected no collaborator calls, got pois=%d gen=%d routes=%d",
			pois.calls, gen.calls, routes.calls.Load())
	}
}

func TestPlan_NonPositiveDaysRejected(t *testing.T) {
	pois := &stubPOIFinder{points: parisPOIs(1)}
	svc := NewService(pois, &stubRouteFinder{}, &stubGenerator{raw: validPlan})

	for _, days := range []int{0, -2} {
		if _, err := svc.Plan(context.Background(), PlanRequest{Cities: []string{"Paris"}, Days: days}); !errors.Is(err, ErrBadRequest) {
			t.Errorf("days=%d: expected ErrBadRequest, got %v", days, err)
		}
	}
	if pois.calls != 0 {
		t.Errorf("expected no repository calls, got %d", pois.calls)
	}
}

func TestPlan_NoCandidatesSkipsGeneration(t *testing.T) {
	gen := &stubGenerator{raw: validPlan}
	svc := NewService(&stubPOIFinder{}, &stubRouteFinder{}, gen)

	_, err := svc.Plan(context.Background(), PlanRequest{Cities: []string{"Atlantis"}, Days: 3})
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator must not be invoked without candidates, got %d calls", gen.calls)
	}
}

func TestPlan_MalformedOutputSkipsRouteLookups(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "certainly! here is your trip"},
		{"missing tripPlan key", `{"plan":{}}`},
		{"invalid airport code", `{"tripPlan":{"flights":[{"src_airport_code":"jfk","dest_airport_code":"LAX"}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			routes := &stubRouteFinder{}
			svc := NewService(&stubPOIFinder{points: parisPOIs(2)}, routes, &stubGenerator{raw: tc.raw})

			_, err := svc.Plan(context.Background(), PlanRequest{Cities: []string{"Paris"}, Days: 3})
			if !errors.Is(err, ErrMalformedPlan) {
				t.Fatalf("expected ErrMalformedPlan, got %v", err)
			}
			if routes.calls.Load() != 0 {
				t.Errorf("expected zero route lookups, got %d", routes.calls.Load())
			}
		})
	}
}

func TestPlan_DuplicateFlightLegsPreserved(t *testing.T) {
	raw := `{"tripPlan":{"flights":[` +
		`{"src_airport_code":"JFK","dest_airport_code":"LAX"},` +
		`{"src_airport_code":"JFK","dest_airport_code":"LAX"}]}}`
	routes := &stubRouteFinder{routes: map[string][]airroute.AirRoute{
		"JFK-LAX": {{SrcAirport: "JFK", DstAirport: "LAX", Airline: airroute.Airline{Name: "AA"}}},
	}}
	svc := NewService(&stubPOIFinder{points: parisPOIs(2)}, routes, &stubGenerator{raw: raw})

	result, err := svc.Plan(context.Background(), PlanRequest{Cities: []string{"Paris"}, Days: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Flights) != 2 {
		t.Fatalf("expected the matched route twice, got %d routes", len(result.Flights))
	}
	if routes.calls.Load() != 2 {
		t.Errorf("expected one lookup per leg, got %d", routes.calls.Load())
	}
}

func TestPlan_MissingRoutesSilentlySkipped(t *testing.T) {
	raw := `{"tripPlan":{"flights":[{"src_airport_code":"AAA","dest_airport_code":"BBB"}]}}`
	svc := NewService(&stubPOIFinder{points: parisPOIs(2)}, &stubRouteFinder{}, &stubGenerator{raw: raw})

	result, err := svc.Plan(context.Background(), PlanRequest{Cities: []string{"Paris"}, Days: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Flights) != 0 {
		t.Errorf("expected no flights, got %d", len(result.Flights))
	}
}

func TestPlan_ContextBoundedAndScopedToRequestedCities(t *testing.T) {
	pois := &stubPOIFinder{points: parisPOIs(80)}
	gen := &stubGenerator{raw: validPlan}
	routes := &stubRouteFinder{}
	svc := NewService(pois, routes, gen)

	result, err := svc.Plan(context.Background(), PlanRequest{Cities: []string{"Paris"}, Days: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Context) > 60 {
		t.Errorf("context must hold at most 60 candidates, got %d", len(result.Context))
	}
	for _, p := range result.Context {
		if p.Location.City != "Paris" {
			t.Errorf("candidate city %q outside requested set", p.Location.City)
		}
	}
	if result.Suggestion == nil || result.Suggestion.TripPlan == nil {
		t.Fatal("expected a validated suggestion")
	}
	if gen.gotDays != 3 || len(gen.gotCities) != 1 {
		t.Errorf("generator got cities=%v days=%d", gen.gotCities, gen.gotDays)
	}
}

func TestPlan_UpstreamFailuresWrapped(t *testing.T) {
	boom := errors.New("model overloaded")
	svc := NewService(&stubPOIFinder{points: parisPOIs(2)}, &stubRouteFinder{}, &stubGenerator{err: boom})

	_, err := svc.Plan(context.Background(), PlanRequest{Cities: []string{"Paris"}, Days: 3})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the upstream error to be wrapped, got %v", err)
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrNoCandidates) {
		t.Errorf("upstream failure must not map to a caller error: %v", err)
	}
	if !strings.Contains(err.Error(), "generate itinerary") {
		t.Errorf("expected stage context in error, got %q", err.Error())
	}
}

func TestPlan_RouteLookupFailureAborts(t *testing.T) {
	raw := `{"tripPlan":{"flights":[{"src_airport_code":"JFK","dest_airport_code":"LAX"}]}}`
	routes := &stubRouteFinder{err: errors.New("db down")}
	svc := NewService(&stubPOIFinder{points: parisPOIs(2)}, routes, &stubGenerator{raw: raw})

	if _, err := svc.Plan(context.Background(), PlanRequest{Cities: []string{"Paris"}, Days: 3}); err == nil {
		t.Fatal("expected error when route lookup fails")
	}
}
