// README: Air route reference record (carrier and schedule fields).
package airroute

// Airline identifies the carrier operating a route.
type Airline struct {
	ID    int    `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Alias string `json:"alias,omitempty"`
	IATA  string `json:"iata,omitempty"`
}

// AirRoute is one direct route between two airports. The collection is
// read-only reference data loaded by the seeder; the same airport pair may
// appear once per carrier/schedule.
type AirRoute struct {
	ID         int64   `json:"-"`
	Airline    Airline `json:"airline"`
	SrcAirport string  `json:"src_airport"`
	DstAirport string  `json:"dst_airport"`
	Codeshare  string  `json:"codeshare,omitempty"`
	Stops      int     `json:"stops"`
	Airplane   string  `json:"airplane,omitempty"`
}
