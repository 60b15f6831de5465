// README: Generator-output validation tests.
package trip

import (
	"errors"
	"testing"
)

func TestParsePlan_Valid(t *testing.T) {
	raw := `{
		"tripPlan": {
			"destination": [{"city": "Paris", "country": "France"}],
			"pointsOfInterest": [{"name": "Louvre", "description": "museum", "rating": 4.8,
				"location": {"coordinates": [2.3364, 48.8606]}}],
			"flights": [{"src_airport_code": "JFK", "dest_airport_code": "CDG"}],
			"itinerary": [{"day": 1, "destination": "Paris", "activities": [
				{"time": "09:00", "activity": "Louvre", "duration": "3h"}]}]
		}
	}`
	s, err := ParsePlan(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.TripPlan.Flights) != 1 || s.TripPlan.Flights[0].SrcAirportCode != "JFK" {
		t.Errorf("flights not decoded: %+v", s.TripPlan.Flights)
	}
	if len(s.TripPlan.Itinerary) != 1 || s.TripPlan.Itinerary[0].Day != 1 {
		t.Errorf("itinerary not decoded: %+v", s.TripPlan.Itinerary)
	}
}

func TestParsePlan_NoFlightsIsValid(t *testing.T) {
	if _, err := ParsePlan(`{"tripPlan":{"destination":[{"city":"Rome"}]}}`); err != nil {
		t.Fatalf("flights are optional, got %v", err)
	}
}

func TestParsePlan_Malformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "I'd be happy to plan your trip!"},
		{"empty", ""},
		{"json without tripPlan", `{"suggestion":{}}`},
		{"tripPlan null", `{"tripPlan":null}`},
		{"lowercase src code", `{"tripPlan":{"flights":[{"src_airport_code":"jfk","dest_airport_code":"CDG"}]}}`},
		{"short dest code", `{"tripPlan":{"flights":[{"src_airport_code":"JFK","dest_airport_code":"CD"}]}}`},
		{"empty codes", `{"tripPlan":{"flights":[{}]}}`},
		{"injection in code", `{"tripPlan":{"flights":[{"src_airport_code":"JFK'--","dest_airport_code":"CDG"}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParsePlan(tc.raw); !errors.Is(err, ErrMalformedPlan) {
				t.Errorf("expected ErrMalformedPlan, got %v", err)
			}
		})
	}
}

func TestParsePlan_FourLetterCodesAccepted(t *testing.T) {
	// ICAO-style 4-char codes appear in some route datasets.
	raw := `{"tripPlan":{"flights":[{"src_airport_code":"KJFK","dest_airport_code":"LFPG"}]}}`
	if _, err := ParsePlan(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
