// README: POI store backed by PostgreSQL (pgvector) with a Redis read-through cache.
package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	citiesCacheKey    = "poi:cities"
	topByCityCacheKey = "poi:top:%s:%d"
)

type Store struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	cacheTTL time.Duration
}

func NewStore(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) *Store {
	return &Store{db: db, redis: redisClient, cacheTTL: cacheTTL}
}

// DistinctCities returns every distinct city across all POI records.
// City cardinality is bounded, so the full list is cached as one value.
func (s *Store) DistinctCities(ctx context.Context) ([]string, error) {
	var cities []string
	if s.cacheGet(ctx, citiesCacheKey, &cities) {
		return cities, nil
	}

	rows, err := s.db.Query(ctx, `SELECT DISTINCT city FROM points_of_interest ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("query distinct cities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, citiesCacheKey, cities)
	return cities, nil
}

// TopByCity returns up to limit POIs in the given city, rating descending,
// projected to name, description, rating and location. An empty slice (not an
// error) is returned when no record matches.
func (s *Store) TopByCity(ctx context.Context, city string, limit int) ([]PointOfInterest, error) {
	key := fmt.Sprintf(topByCityCacheKey, city, limit)
	var cached []PointOfInterest
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT name, description, rating, city, country, lon, lat
		FROM points_of_interest
		WHERE city = $1
		ORDER BY rating DESC
		LIMIT $2`, city, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top pois: %w", err)
	}
	defer rows.Close()

	points, err := scanProjected(rows)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, points)
	return points, nil
}

// TopByCities is the multi-city variant used by trip planning; same ordering,
// projection and truncation contract as TopByCity. Not cached: the plan-trip
// pipeline always reads fresh candidates.
func (s *Store) TopByCities(ctx context.Context, cities []string, limit int) ([]PointOfInterest, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, description, rating, city, country, lon, lat
		FROM points_of_interest
		WHERE city = ANY($1)
		ORDER BY rating DESC
		LIMIT $2`, cities, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query candidate pois: %w", err)
	}
	defer rows.Close()

	return scanProjected(rows)
}

// SimilaritySearch ranks POIs by cosine similarity between their embedding and
// the query vector. The inner query bounds how many candidates the index walk
// examines; the outer limit bounds the result breadth. The score is projected
// as 1 - cosine distance.
func (s *Store) SimilaritySearch(ctx context.Context, queryEmbedding []float32, candidateCount, limit int) ([]ScoredPointOfInterest, error) {
	rows, err := s.db.Query(ctx, `
		SELECT name, description, rating, city, country, lon, lat, score
		FROM (
			SELECT name, description, rating, city, country, lon, lat,
			       1 - (embedding <=> $1) AS score
			FROM points_of_interest
			WHERE embedding IS NOT NULL
			ORDER BY embedding <=> $1
			LIMIT $2
		) candidates
		ORDER BY score DESC
		LIMIT $3`,
		pgvector.NewVector(queryEmbedding), candidateCount, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var hits []ScoredPointOfInterest
	for rows.Next() {
		var h ScoredPointOfInterest
		var country *string
		if err := rows.Scan(&h.Name, &h.Description, &h.Rating,
			&h.Location.City, &country,
			&h.Location.Coordinates[0], &h.Location.Coordinates[1],
			&h.Score,
		); err != nil {
			return nil, err
		}
		if country != nil {
			h.Location.Country = *country
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Insert stores one POI record, embedding included. Used by the seeder.
func (s *Store) Insert(ctx context.Context, p *PointOfInterest) error {
	var vec *pgvector.Vector
	if len(p.Embedding) > 0 {
		v := pgvector.NewVector(p.Embedding)
		vec = &v
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO points_of_interest
			(name, description, poi_type, rating, city, country, lon, lat, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		p.Name, p.Description, p.Type, p.Rating,
		p.Location.City, nullIfEmpty(p.Location.Country),
		p.Location.Coordinates[0], p.Location.Coordinates[1],
		vec,
	)
	return row.Scan(&p.ID)
}

// Get fetches one full record by id, embedding included.
func (s *Store) Get(ctx context.Context, id int64) (*PointOfInterest, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, poi_type, rating, city, country, lon, lat, embedding
		FROM points_of_interest
		WHERE id = $1`, id,
	)

	var p PointOfInterest
	var country *string
	var vec *pgvector.Vector
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.Rating,
		&p.Location.City, &country,
		&p.Location.Coordinates[0], &p.Location.Coordinates[1],
		&vec,
	)
	if err != nil {
		return nil, err
	}
	if country != nil {
		p.Location.Country = *country
	}
	if vec != nil {
		p.Embedding = vec.Slice()
	}
	return &p, nil
}

func scanProjected(rows pgx.Rows) ([]PointOfInterest, error) {
	var points []PointOfInterest
	for rows.Next() {
		var p PointOfInterest
		var country *string
		if err := rows.Scan(&p.Name, &p.Description, &p.Rating,
			&p.Location.City, &country,
			&p.Location.Coordinates[0], &p.Location.Coordinates[1],
		); err != nil {
			return nil, err
		}
		if country != nil {
			p.Location.Country = *country
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// cacheGet reports whether key was present and decoded into v. Cache errors
// degrade to a miss; the database remains the source of truth.
func (s *Store) cacheGet(ctx context.Context, key string, v any) bool {
	if s.redis == nil {
		return false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (s *Store) cacheSet(ctx context.Context, key string, v any) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
