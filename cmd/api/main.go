// Package main is the entry point for the travel log API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	_ "github.com/joho/godotenv/autoload"
	"github.com/pressly/goose/v3"

	"github.com/mboehm/travellog/internal/auth"
	"github.com/mboehm/travellog/internal/config"
	"github.com/mboehm/travellog/internal/domain"
	"github.com/mboehm/travellog/internal/geo"
	"github.com/mboehm/travellog/internal/handler"
	"github.com/mboehm/travellog/internal/localstore"
	"github.com/mboehm/travellog/internal/middleware"
	"github.com/mboehm/travellog/internal/repo"
	"github.com/mboehm/travellog/internal/service"
	"github.com/mboehm/travellog/internal/stats"
	"github.com/mboehm/travellog/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger; the JSON handler writes
	// machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// Applied on boot from the embedded FS so the schema and the running
	// code can never drift apart.
	if err := migrate(cfg.DatabaseURL); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// --- Demo-mode store --------------------------------------------------
	store, err := localstore.New(cfg.StateDir)
	if err != nil {
		slog.Error("failed to open local store", "error", err)
		os.Exit(1)
	}

	// --- Wiring -----------------------------------------------------------
	authenticator := auth.NewStaticAuthenticator(auth.DefaultAccounts())
	resolver := auth.NewResolver(authenticator, store, cfg.AuthTimeout, logger)

	destSvc := service.NewDestinationService(
		repo.NewDestinationRepo(pool),
		repo.NewDemoDestinationRepo(store),
		service.Config{MaxPhotos: cfg.MaxPhotos},
		logger,
	)
	opener := handler.SessionOpenerFunc(func(ctx context.Context, identity domain.Identity) handler.StoreSession {
		return destSvc.Open(ctx, identity)
	})

	server := handler.NewServer(
		resolver,
		opener,
		stats.NewAggregator(stats.Continents()),
		geo.NewClient(cfg.NominatimURL, "travellog/1.0"),
		logger,
	)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body cap. Recoverer catches panics and returns HTTP 500 instead of
	// crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies all pending migrations using the goose programmatic API.
// goose needs database/sql, not a pgx pool, so it gets its own connection.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(context.Background())
	return err
}
