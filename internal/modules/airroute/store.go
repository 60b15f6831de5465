// README: Air route store backed by PostgreSQL.
package airroute

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// FindRoute returns every route record exactly matching the origin and
// destination airport codes. Zero, one or many rows are all valid results.
func (s *Store) FindRoute(ctx context.Context, srcCode, dstCode string) ([]AirRoute, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, airline_id, airline_name, airline_alias, airline_iata,
		       src_airport, dst_airport, codeshare, stops, airplane
		FROM air_routes
		WHERE src_airport = $1 AND dst_airport = $2`,
		srcCode, dstCode,
	)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var routes []AirRoute
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// InsertBatch writes one chunk of route records in a single round trip.
// Used by the seeder.
func (s *Store) InsertBatch(ctx context.Context, routes []AirRoute) error {
	batch := &pgx.Batch{}
	for _, r := range routes {
		batch.Queue(`
			INSERT INTO air_routes
				(airline_id, airline_name, airline_alias, airline_iata,
				 src_airport, dst_airport, codeshare, stops, airplane)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			r.Airline.ID, r.Airline.Name, r.Airline.Alias, r.Airline.IATA,
			r.SrcAirport, r.DstAirport, r.Codeshare, r.Stops, r.Airplane,
		)
	}
	br := s.db.SendBatch(ctx, batch)
	defer br.Close()
	for range routes {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert route: %w", err)
		}
	}
	return nil
}

func scanRoute(rows pgx.Rows) (AirRoute, error) {
	var r AirRoute
	err := rows.Scan(&r.ID,
		&r.Airline.ID, &r.Airline.Name, &r.Airline.Alias, &r.Airline.IATA,
		&r.SrcAirport, &r.DstAirport, &r.Codeshare, &r.Stops, &r.Airplane,
	)
	return r, err
}
