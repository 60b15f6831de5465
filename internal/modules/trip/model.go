// README: Trip plan request/response types and generator-output validation.
package trip

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"wayfare/internal/modules/airroute"
	"wayfare/internal/modules/poi"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNoCandidates  = errors.New("no points of interest found for the specified cities")
	ErrMalformedPlan = errors.New("malformed trip plan")
)

// PlanRequest is the caller's input: at least one city and a positive day count.
type PlanRequest struct {
	Cities []string `json:"cities"`
	Days   int      `json:"days"`
}

// PlanResult is the assembled response: the candidate POIs handed to the
// generator, the generator's validated suggestion, and every resolved route.
type PlanResult struct {
	Context    []poi.PointOfInterest `json:"context"`
	Suggestion *Suggestion           `json:"suggestion"`
	Flights    []airroute.AirRoute   `json:"flights"`
}

// Suggestion is the generator's decoded top-level object. The tripPlan key is
// mandatory; its absence marks the response as malformed.
type Suggestion struct {
	TripPlan *Plan `json:"tripPlan"`
}

type Plan struct {
	Destination      []Destination  `json:"destination"`
	PointsOfInterest []PlanPOI      `json:"pointsOfInterest"`
	Flights          []Flight       `json:"flights"`
	Itinerary        []ItineraryDay `json:"itinerary"`
}

type Destination struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type PlanPOI struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Location    struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"location"`
}

type Flight struct {
	SrcAirportCode  string `json:"src_airport_code"`
	DestAirportCode string `json:"dest_airport_code"`
}

type ItineraryDay struct {
	Day         int        `json:"day"`
	Destination string     `json:"destination"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	Time            string `json:"time"`
	Activity        string `json:"activity"`
	Duration        string `json:"duration"`
	SrcAirportCode  string `json:"src_airport_code,omitempty"`
	DestAirportCode string `json:"dest_airport_code,omitempty"`
}

// airportCodePattern accepts IATA-style codes (3-4 uppercase alphanumerics).
var airportCodePattern = regexp.MustCompile(`^[A-Z0-9]{3,4}$`)

// ParsePlan decodes and validates the generator's raw output. The generator is
// a non-deterministic external service, so its output is untrusted: the
// tripPlan shape must be present and every flight entry must carry codes that
// are safe to use as route lookup keys.
func ParsePlan(raw string) (*Suggestion, error) {
	var s Suggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	if s.TripPlan == nil {
		return nil, fmt.Errorf("%w: missing tripPlan object", ErrMalformedPlan)
	}
	for i, f := range s.TripPlan.Flights {
		if !airportCodePattern.MatchString(f.SrcAirportCode) {
			return nil, fmt.Errorf("%w: flight %d has invalid src airport code %q", ErrMalformedPlan, i, f.SrcAirportCode)
		}
		if !airportCodePattern.MatchString(f.DestAirportCode) {
			return nil, fmt.Errorf("%w: flight %d has invalid dest airport code %q", ErrMalformedPlan, i, f.DestAirportCode)
		}
	}
	return &s, nil
}
