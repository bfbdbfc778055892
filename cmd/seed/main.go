package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/jobboard/job-portal/internal/core/service"
	mongodb "github.com/jobboard/job-portal/internal/infrastructure/db/mongo"
	"github.com/jobboard/job-portal/internal/pkg/config"
	"github.com/jobboard/job-portal/internal/seed"
	"github.com/jobboard/job-portal/pkg/logger"
)

type CLI struct {
	Verbose bool `help:"Enable debug logging."`

	Load    LoadCmd    `cmd:"" help:"Register fixture users and create their jobs."`
	Indexes IndexesCmd `cmd:"" help:"Create MongoDB indexes only."`
}

// runContext is passed to every command's Run method.
type runContext struct {
	ctx    context.Context
	cfg    *config.Config
	logger zerolog.Logger
}

type LoadCmd struct {
	File string `help:"Fixture file." type:"existingfile" default:"fixtures/seed.yaml"`
}

func (c *LoadCmd) Run(rc *runContext) error {
	fixture, err := seed.LoadFile(c.File)
	if err != nil {
		return err
	}

	client, db, err := mongodb.Connect(rc.ctx, mongodb.Config{URI: rc.cfg.Mongo.URI, Database: rc.cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if err := mongodb.EnsureIndexes(rc.ctx, db); err != nil {
		return err
	}

	users := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(users, nil, service.AuthOptions{JWTSecret: rc.cfg.Auth.JWTSecret}, rc.logger)
	jobService := service.NewJobService(mongodb.NewJobRepository(db), users, rc.logger)

	res, err := seed.NewSeeder(authService, jobService, rc.logger).Run(rc.ctx, fixture)
	if err != nil {
		return err
	}

	rc.logger.Info().
		Int("users_created", res.UsersCreated).
		Int("users_skipped", res.UsersSkipped).
		Int("jobs_created", res.JobsCreated).
		Msg("seed complete")
	return nil
}

type IndexesCmd struct{}

func (c *IndexesCmd) Run(rc *runContext) error {
	client, db, err := mongodb.Connect(rc.ctx, mongodb.Config{URI: rc.cfg.Mongo.URI, Database: rc.cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if err := mongodb.EnsureIndexes(rc.ctx, db); err != nil {
		return err
	}
	rc.logger.Info().Str("database", rc.cfg.Mongo.Database).Msg("indexes ensured")
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("seed"),
		kong.Description("Seed the job board database."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if cli.Verbose {
		level = "debug"
	}
	log := logger.Init(logger.Options{Level: level, Pretty: true, Output: os.Stderr, Service: "job-board-seed"})

	if err := kctx.Run(&runContext{ctx: ctx, cfg: cfg, logger: log}); err != nil {
		log.Error().Err(err).Msg("seed failed")
		stop()
		os.Exit(1)
	}
}
