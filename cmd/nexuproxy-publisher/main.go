package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"nexuproxy/internal/core/version"
	"nexuproxy/internal/modkit"
	"nexuproxy/internal/modkit/module"
	"nexuproxy/internal/platform/config"
	"nexuproxy/internal/platform/logger"

	pubmod "nexuproxy/internal/services/publisher/module"
)

func main() {
	opts := logger.FromEnv()
	if opts.Service == "" {
		opts.Service = version.Info().Service
	}
	logger.Init(opts)
	l := logger.Get()

	bi := version.Info()
	l.Info().
		Str("version", bi.Version).
		Str("commit", bi.Commit).
		Str("date", bi.Date).
		Msg("starting publisher")

	root := config.New()

	// Fail fast before any network work
	root.Prefix("PUBLISHER_TELEGRAM_").Require("BOT_TOKEN", "CHANNEL_ID")

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
	}

	pm := pubmod.New(deps)
	module.Register(pm.Name(), pm.Ports())
	defer func() {
		if err := pm.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close publisher module")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithRun(ctx, uuid.NewString())

	ports := pm.Ports().(pubmod.Ports)
	stats, err := ports.Runner.Run(ctx)
	if err != nil {
		l.Fatal().Err(err).
			Int("posted", stats.Posted).
			Int("archived", stats.Archived).
			Msg("publisher run failed")
	}
	l.Info().
		Int("fetched", stats.Fetched).
		Int("parsed", stats.Parsed).
		Int("skipped", stats.Skipped).
		Int("duplicates", stats.Duplicates).
		Int("enqueued", stats.Enqueued).
		Int("batches", stats.Batches).
		Int("posted", stats.Posted).
		Int("archived", stats.Archived).
		Bool("budget_aborted", stats.BudgetAborted).
		Msg("publisher run complete")
}
