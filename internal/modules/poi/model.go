// README: Point-of-interest record and projection definitions.
package poi

// Location is the nested place descriptor stored with every POI.
// Coordinates are [longitude, latitude].
type Location struct {
	City        string     `json:"city"`
	Country     string     `json:"country,omitempty"`
	Coordinates [2]float64 `json:"coordinates"`
}

type PointOfInterest struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type,omitempty"`
	Rating      float64  `json:"rating"`
	Location    Location `json:"location"`

	// Embedding, when present, has a fixed dimensionality matching the
	// embedding model in use. It is populated at seed time and never
	// serialized in API responses.
	Embedding []float32 `json:"-"`
}

// ScoredPointOfInterest is a similarity-search hit with its score projected
// alongside the reduced POI fields.
type ScoredPointOfInterest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	Location    Location `json:"location"`
	Score       float64  `json:"score"`
}
