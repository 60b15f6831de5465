// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"wayfare/internal/ai"
	"wayfare/internal/config"
	httptransport "wayfare/internal/http"
	"wayfare/internal/infra"
	"wayfare/internal/modules/airroute"
	"wayfare/internal/modules/poi"
	"wayfare/internal/modules/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	provider, closeProvider, err := newProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("init ai provider")
	}
	defer closeProvider()

	poiStore := poi.NewStore(dbPool, redisClient, cfg.Redis.CacheTTL)
	poiSvc := poi.NewService(poiStore, provider)

	routeStore := airroute.NewStore(dbPool)
	tripSvc := trip.NewService(poiStore, routeStore, provider)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(poiSvc, tripSvc),
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("ai_provider", cfg.AI.Provider).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// newProvider selects the AI backend from config. The returned close func is
// a no-op for providers without client resources to release.
func newProvider(ctx context.Context, cfg config.AIConfig) (ai.Provider, func(), error) {
	switch cfg.Provider {
	case "gemini":
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.ChatModel, cfg.EmbedModel)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	case "openai":
		p, err := ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.ChatModel, cfg.EmbedModel)
		if err != nil {
			return nil, nil, err
		}
		return p, func() {}, nil
	default:
		return nil, nil, errors.New("unknown ai provider: " + cfg.Provider)
	}
}
