// @title           Job Board API
// @version         1.0
// @description     Job postings, search and JWT authentication.
// @BasePath        /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobboard/job-portal/internal/api"
	"github.com/jobboard/job-portal/internal/api/handler"
	"github.com/jobboard/job-portal/internal/core/service"
	mongodb "github.com/jobboard/job-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/jobboard/job-portal/internal/infrastructure/db/redis"
	"github.com/jobboard/job-portal/internal/pkg/config"
	"github.com/jobboard/job-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Output: os.Stderr})
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "job-board-api",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	// --- Services ---
	users := mongodb.NewUserRepository(db)
	jobs := mongodb.NewJobRepository(db)
	denylist := redisdb.NewTokenDenylist(rdb)

	authService := service.NewAuthService(users, denylist, service.AuthOptions{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.JWTExpire,
		ResetTokenTTL: cfg.Auth.ResetTokenTTL,
	}, logger.Component("auth"))
	jobService := service.NewJobService(jobs, users, logger.Component("jobs"))

	e := api.NewRouter(api.Options{
		AuthService:      authService,
		JobService:       jobService,
		Denylist:         denylist,
		Readiness:        handler.NewHealthDependenciesHandler(db, rdb),
		JWTSecret:        cfg.Auth.JWTSecret,
		ExposeResetToken: cfg.Auth.ExposeResetToken,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Logger:           logger.Component("http"),
	})

	// --- Serve ---
	srvErr := make(chan error, 1)
	go func() {
		addr := net.JoinHostPort("", cfg.Port)
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(sctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
