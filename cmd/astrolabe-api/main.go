// Command astrolabe-api runs the astrolabe HTTP API
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"astrolabe/internal/core/version"
	"astrolabe/internal/ephem"
	"astrolabe/internal/platform/config"
	"astrolabe/internal/platform/logger"
	phttp "astrolabe/internal/platform/net/http"
	"astrolabe/internal/services/api"

	"github.com/joho/godotenv"
)

func main() {
	// best effort; real deployments use the environment directly
	_ = godotenv.Load()

	logger.Init(logger.FromEnv())
	log := logger.Named("main")

	bi := version.Info()
	log.Info().Str("service", bi.Service).Str("version", bi.Version).Str("commit", bi.Commit).Msg("starting")

	cfg := config.New()
	apiCfg := cfg.Prefix("CORE_API_")

	engine := ephem.New(ephem.SwissEph{}, ephem.FromConfig(cfg.Prefix("EPHEMERIS_")))
	defer engine.Close()

	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Config:        cfg,
		Logger:        *logger.Get(),
		Engine:        engine,
		ServiceName:   bi.Service,
		EnableSwagger: apiCfg.MayBool("SWAGGER", true),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("stopped")
}
