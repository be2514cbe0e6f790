package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"rakta/internal/adapter/repo"
	"rakta/internal/broadcast"
	"rakta/internal/http/handlers"
	"rakta/internal/http/httpapi"
	"rakta/internal/infra"
	"rakta/internal/metrics"
	"rakta/internal/providers/twilio"
)

func main() {
	// .env is optional.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	donors := repo.NewDonorRepository(dbpool)
	donations := repo.NewDonationRepository(dbpool)
	orgProfile := repo.NewOrgProfileRepository(dbpool)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// The broadcast pipeline only comes up with a full set of gateway
	// credentials; the API otherwise runs with SMS sending disabled.
	var broadcastSvc *broadcast.Service
	gateway, err := twilio.NewClient(twilio.Options{
		AccountSID:     cfg.TwilioAccountSID,
		AuthToken:      cfg.TwilioAuthToken,
		FromPhone:      cfg.TwilioFromPhone,
		BaseURL:        cfg.TwilioBaseURL,
		Logger:         &logger,
		RequestTimeout: cfg.BroadcastSendTimeout,
	})
	switch {
	case err == nil:
		dispatcher := broadcast.NewDispatcher(gateway, broadcast.DispatcherOptions{
			Concurrency: cfg.BroadcastConcurrency,
			SendTimeout: cfg.BroadcastSendTimeout,
			RatePerSec:  cfg.BroadcastRatePerSec,
			Logger:      &logger,
		})
		broadcastSvc = broadcast.NewService(donors, dispatcher, broadcast.ServiceOptions{
			Deadline: cfg.BroadcastDeadline,
			Metrics:  m,
			Logger:   &logger,
		})
	case errors.Is(err, twilio.ErrMissingCredentials):
		logger.Warn().Msg("twilio credentials missing; sms broadcast disabled")
	default:
		logger.Fatal().Err(err).Msg("failed to build sms gateway")
	}

	app := &handlers.App{
		Donors:        donors,
		Donations:     donations,
		OrgProfile:    orgProfile,
		Broadcast:     broadcastSvc,
		Logger:        &logger,
		JWTSecret:     cfg.JWTSecret,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.AllowedOrigins,
		Registry:        registry,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
