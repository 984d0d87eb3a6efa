package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cimillas/gatherhub/internal/app"
	"github.com/cimillas/gatherhub/internal/clock"
	"github.com/cimillas/gatherhub/internal/config"
	"github.com/cimillas/gatherhub/internal/lib/logger/sl"
	"github.com/cimillas/gatherhub/internal/lib/token"
	"github.com/cimillas/gatherhub/internal/metrics"
	"github.com/cimillas/gatherhub/internal/storage/postgres"
	transporthttp "github.com/cimillas/gatherhub/internal/transport/http"
	"github.com/cimillas/gatherhub/internal/upload"
	"github.com/cimillas/gatherhub/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	startupTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", sl.Err(err))
		os.Exit(1)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Error("connect to db", sl.Err(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Error("db ping", sl.Err(err))
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Error("apply migrations", sl.Err(err))
		os.Exit(1)
	}

	images, err := upload.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Error("init upload store", sl.Err(err))
		os.Exit(1)
	}

	m := metrics.New()
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	sysClock := clock.NewSystem()

	authSvc := app.NewAuthService(postgres.NewUserRepository(pool), tokens, sysClock, log)
	eventSvc := app.NewEventService(postgres.NewEventRepository(pool), sysClock, log,
		app.WithImageRemover(images))
	rosterSvc := app.NewRosterService(postgres.NewRosterRepository(pool),
		app.WithMetrics(m))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/metrics", m.Handler())
	mux.Handle("/auth/register", transporthttp.HandleRegister(authSvc))
	mux.Handle("/auth/login", transporthttp.HandleLogin(authSvc))
	mux.Handle("/events", transporthttp.Auth(tokens, transporthttp.HandleEvents(eventSvc, images)))
	mux.Handle("/events/", transporthttp.Auth(tokens, transporthttp.HandleEventTree(eventSvc, rosterSvc, images)))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(images.Dir()))))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), log)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Info("api listening", slog.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", sl.Err(err))
		}
	case <-stopCtx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server shutdown error", sl.Err(err))
	}
	log.Info("server stopped")
}
