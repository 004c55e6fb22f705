// Command server runs the senior-citizen affairs portal backend.
//
// main wires dependencies and owns the process lifecycle; business logic
// lives in the internal services packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"oscahub/internal/admin"
	"oscahub/internal/application"
	apphandler "oscahub/internal/application/handler"
	appmetrics "oscahub/internal/application/metrics"
	appservice "oscahub/internal/application/service"
	"oscahub/internal/auth"
	"oscahub/internal/complaint"
	"oscahub/internal/insight"
	"oscahub/internal/notification"
	"oscahub/internal/platform/config"
	"oscahub/internal/platform/httpserver"
	"oscahub/internal/platform/logger"
	platformmetrics "oscahub/internal/platform/metrics"
	"oscahub/internal/platform/redis"
	"oscahub/internal/registry"
	registryhandler "oscahub/internal/registry/handler"
	transporthttp "oscahub/internal/transport/http"
	"oscahub/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional redis; without it sessions stay in memory.
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, sessions stay in memory", zap.Error(err))
		redisClient = nil
	}

	// Stores and seeds. The in-memory stores are the system of record;
	// every restart returns to the seeded state.
	registryStore := registry.NewInMemory(registry.Seed())
	userStore := user.NewInMemory()
	if err := user.Seed(ctx, userStore, time.Now()); err != nil {
		log.Fatal("failed to seed users", zap.Error(err))
	}
	appStore := application.NewInMemory()
	complaintStore := complaint.NewInMemory()

	pm := platformmetrics.New()
	am := appmetrics.New()

	// Outbox and dispatcher: transitions commit locally, side effects
	// drain in the background.
	outbox := notification.NewOutbox(cfg.Notifications.QueueSize)
	smsClient := notification.NewSMSClient(cfg.Notifications.SMS)
	emailClient := notification.NewEmailClient(cfg.Notifications.Email)
	remoteAuth := auth.NewRemoteClient(cfg.Auth.Remote, log)
	dispatcher := notification.NewDispatcher(outbox, smsClient, emailClient, remoteAuth, log, pm)

	registryService := registry.NewService(registryStore)
	appService := appservice.New(appStore, userStore, outbox, log,
		appservice.WithRegistryMarker(registryStore),
		appservice.WithMetrics(am, pm),
	)
	complaintService := complaint.NewService(complaintStore, log)

	tokens := auth.NewTokenService(cfg.Auth.JWTSigningKey, cfg.App.Name, cfg.Auth.TokenTTL)
	var sessions auth.SessionStore = auth.NewInMemorySessionStore()
	if redisClient != nil {
		sessions = auth.NewRedisSessionStore(redisClient)
	}
	authService := auth.NewService(userStore, sessions, tokens, remoteAuth, log, pm)

	insightClient := insight.New(cfg.Insight, log)

	var health transporthttp.HealthChecker
	if redisClient != nil {
		health = redisClient
	}
	router := transporthttp.NewRouter(log, health,
		auth.NewHandler(authService, log),
		registryhandler.New(registryService, log),
		apphandler.New(appService, log),
		complaint.NewHandler(complaintService, log),
		admin.NewHandler(userStore, appService, insightClient, log),
	)

	srv := httpserver.New(cfg.Server.Addr, router)

	var wg sync.WaitGroup
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	wg.Add(1)
	go func() {
		defer wg.Done()
		dispatcher.Run(dispatchCtx)
	}()

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown incomplete", zap.Error(err))
	}

	// Stop the dispatcher after the server: in-flight requests may still
	// be enqueueing events, and Run drains the outbox on cancel.
	stopDispatch()
	wg.Wait()

	if redisClient != nil {
		redisClient.Close()
	}
	log.Info("stopped")
}
