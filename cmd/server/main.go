package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lodgewise/homestay-backend/internal/auth"
	"github.com/lodgewise/homestay-backend/internal/cache"
	"github.com/lodgewise/homestay-backend/internal/config"
	"github.com/lodgewise/homestay-backend/internal/engine"
	"github.com/lodgewise/homestay-backend/internal/handler"
	"github.com/lodgewise/homestay-backend/internal/repository"
	"github.com/lodgewise/homestay-backend/internal/router"
	"github.com/lodgewise/homestay-backend/internal/service"
	"github.com/lodgewise/homestay-backend/seeds"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate down")
		}
		log.Info().Msg("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate up")
	}
	log.Info().Msg("migrations applied")

	// ------------ Setup Seed Data ---------------
	if cfg.SeedOnEmpty {
		if err := checkSeed(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	recCache := cache.NewCache(redisClient, cfg.CacheTTL)
	if err := recCache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	log.Info().Msg("connected to Redis")

	// ------------ Uploads ---------------
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to create upload dir")
	}

	// ------------ Wiring ---------------
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token issuer")
	}

	repo := repository.New(pool)
	eng := engine.New(repo, repo, repo)

	authSvc := service.NewAuthService(repo, tokens, log)
	recSvc := service.NewRecommendationService(repo, eng, recCache, log)
	propertySvc := service.NewPropertyService(repo, log)
	orderSvc := service.NewOrderService(repo, recCache, log)
	adminSvc := service.NewAdminService(repo, log)

	h := handler.NewHandler(authSvc, recSvc, propertySvc, orderSvc, adminSvc, cfg.UploadDir, log)

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(h, tokens, cfg.UploadDir, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	var w = os.Stderr
	if cfg.LogPretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database...")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("check users count: %w", err)
	}
	if count > 0 {
		log.Info().Int("users", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool)
}
