// README: Seeder; creates the schema and bulk-loads POI and air-route reference data.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"googlemaps.github.io/maps"

	"wayfare/internal/ai"
	"wayfare/internal/config"
	"wayfare/internal/infra"
	"wayfare/internal/modules/airroute"
	"wayfare/internal/modules/poi"
)

const (
	routeChunkSize = 1000
	// embedThrottle spaces out embedding calls to stay under provider rate limits.
	embedThrottle = 100 * time.Millisecond
)

func main() {
	var (
		poiFile    = flag.String("pois", "", "JSON file with point-of-interest records")
		routeFiles = flag.String("routes", "", "comma-separated JSON files with air-route records")
		geocode    = flag.Bool("geocode", false, "fill in missing POI coordinates via the Maps Geocoding API")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer dbPool.Close()

	if err := ensureSchema(ctx, dbPool, cfg.AI.EmbedDim); err != nil {
		log.Fatal().Err(err).Msg("create schema")
	}

	if *poiFile != "" {
		provider, err := newEmbedProvider(ctx, cfg.AI)
		if err != nil {
			log.Fatal().Err(err).Msg("init ai provider")
		}
		var geocoder *maps.Client
		if *geocode {
			if cfg.Maps.APIKey == "" {
				log.Fatal().Msg("MAPS_API_KEY is required with -geocode")
			}
			geocoder, err = maps.NewClient(maps.WithAPIKey(cfg.Maps.APIKey))
			if err != nil {
				log.Fatal().Err(err).Msg("init maps client")
			}
		}
		store := poi.NewStore(dbPool, nil, 0)
		if err := seedPOIs(ctx, store, provider, geocoder, *poiFile); err != nil {
			log.Fatal().Err(err).Msg("seed pois")
		}
	}

	if *routeFiles != "" {
		store := airroute.NewStore(dbPool)
		for _, file := range strings.Split(*routeFiles, ",") {
			if err := seedRoutes(ctx, store, strings.TrimSpace(file)); err != nil {
				// Keep going; a bad file should not abort the whole load.
				log.Error().Err(err).Str("file", file).Msg("seed routes failed")
			}
		}
	}
}

func ensureSchema(ctx context.Context, db *pgxpool.Pool, embedDim int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS points_of_interest (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			poi_type    TEXT NOT NULL DEFAULT '',
			rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
			city        TEXT NOT NULL,
			country     TEXT,
			lon         DOUBLE PRECISION NOT NULL DEFAULT 0,
			lat         DOUBLE PRECISION NOT NULL DEFAULT 0,
			embedding   vector(%d)
		)`, embedDim),
		`CREATE INDEX IF NOT EXISTS idx_poi_city_rating ON points_of_interest (city, rating DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_poi_embedding ON points_of_interest
			USING ivfflat (embedding vector_cosine_ops)`,
		`CREATE TABLE IF NOT EXISTS air_routes (
			id            BIGSERIAL PRIMARY KEY,
			airline_id    INT NOT NULL DEFAULT 0,
			airline_name  TEXT NOT NULL DEFAULT '',
			airline_alias TEXT NOT NULL DEFAULT '',
			airline_iata  TEXT NOT NULL DEFAULT '',
			src_airport   TEXT NOT NULL,
			dst_airport   TEXT NOT NULL,
			codeshare     TEXT NOT NULL DEFAULT '',
			stops         INT NOT NULL DEFAULT 0,
			airplane      TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_air_routes_pair ON air_routes (src_airport, dst_airport)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedPOIs loads one JSON file of POI records, computing each record's
// embedding before insert. Provider calls are throttled.
func seedPOIs(ctx context.Context, store *poi.Store, provider ai.Provider, geocoder *maps.Client, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var points []poi.PointOfInterest
	if err := json.Unmarshal(data, &points); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	log.Info().Int("count", len(points)).Str("file", path).Msg("loading pois")

	for i := range points {
		p := &points[i]

		embeddingText := " " + p.Location.City + " " + p.Name + " " + p.Description
		embedding, err := provider.Embed(ctx, embeddingText)
		if err != nil {
			return fmt.Errorf("embed %q: %w", p.Name, err)
		}
		p.Embedding = embedding
		time.Sleep(embedThrottle)

		if geocoder != nil && p.Location.Coordinates == [2]float64{} {
			if err := fillCoordinates(ctx, geocoder, p); err != nil {
				log.Warn().Err(err).Str("name", p.Name).Msg("geocode failed")
			}
		}

		if err := store.Insert(ctx, p); err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
	}
	log.Info().Int("count", len(points)).Msg("pois loaded")
	return nil
}

func fillCoordinates(ctx context.Context, geocoder *maps.Client, p *poi.PointOfInterest) error {
	results, err := geocoder.Geocode(ctx, &maps.GeocodingRequest{
		Address: p.Name + ", " + p.Location.City,
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no geocode result")
	}
	loc := results[0].Geometry.Location
	p.Location.Coordinates = [2]float64{loc.Lng, loc.Lat}
	return nil
}

// seedRoutes bulk-loads one JSON file of route records in fixed-size chunks.
func seedRoutes(ctx context.Context, store *airroute.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var routes []airroute.AirRoute
	if err := json.Unmarshal(data, &routes); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	inserted := 0
	for start := 0; start < len(routes); start += routeChunkSize {
		end := start + routeChunkSize
		if end > len(routes) {
			end = len(routes)
		}
		if err := store.InsertBatch(ctx, routes[start:end]); err != nil {
			return err
		}
		inserted += end - start
		log.Info().Int("inserted", end-start).Str("file", path).Msg("chunk loaded")
	}
	log.Info().Int("total", inserted).Str("file", path).Msg("routes loaded")
	return nil
}

func newEmbedProvider(ctx context.Context, cfg config.AIConfig) (ai.Provider, error) {
	if cfg.Provider == "gemini" {
		return ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.ChatModel, cfg.EmbedModel)
	}
	return ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.ChatModel, cfg.EmbedModel)
}
