// README: Fixed prompts for the trip generation request.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// tripSystemPrompt sets the persona and the graceful-degradation rule: when the
// requested day count cannot cover the requested cities, the model must fall
// back to a one-day plan that states the problem.
const tripSystemPrompt = `You are a travel agent helping a customer plan a trip to a city. ` +
	`If it will be hard to visit that in the number of days have a one day plan stating the problem. ` +
	`The customer will provide you with points of interest to visit in json.`

// tripSchemaPrompt pins the response shape. The top-level key must be
// "tripPlan"; flight entries carry src_airport_code and dest_airport_code so
// they can be resolved against the air-route collection.
const tripSchemaPrompt = `take this schema, for flights add src_airport_code and dest_airport_code:
{
  "tripPlan": {
    "destination": [{"city": "string", "country": "string"}],
    "pointsOfInterest": [
      {
        "name": "string",
        "description": "string",
        "location": {"coordinates": [number, number]},
        "rating": number
      }
    ],
    "flights": [
      {"src_airport_code": "string", "dest_airport_code": "string"}
    ],
    "itinerary": [
      {
        "day": number,
        "destination": "string",
        "activities": [
          {
            "time": "string",
            "activity": "string",
            "duration": "string",
            "src_airport_code": "string",
            "dest_airport_code": "string"
          }
        ]
      }
    ]
  }
}
Include flights only in the relevant direction. Include airport codes on an activity only when it is a flight.`

// tripUserPrompt interpolates the requested cities, the candidate POI list and
// the requested day count into the user message.
func tripUserPrompt(cities []string, pointsJSON []byte, days int) (string, error) {
	citiesJSON, err := json.Marshal(cities)
	if err != nil {
		return "", fmt.Errorf("marshal cities: %w", err)
	}
	return fmt.Sprintf("For cities: %s | Take this POIs: %s and build a plan for a trip of %d days.",
		citiesJSON, pointsJSON, days), nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
