package main

import (
	"context"
	"os"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/utils"
	"github.com/apex/log"
)

func setup() context.Context {
	cli.Parse()
	logger = cli.Logger

	// A --seed run is usually scripted, so it logs logfmt to stderr whatever
	// handler the terminal would get.
	if cli.Flags.Seed {
		logger = utils.NewLogger(cli.Logger.Level, cli.Debug, os.Stderr, log.Fields{"run": "seed"})
	}

	ctx := log.NewContext(context.Background(), logger)
	cfg = utils.Setup(ctx, cli.Flags.Mode)

	db = database.New(ctx, &cfg.Database)
	ctx = database.NewContext(ctx, db)

	database.Migrate(ctx)

	// --seed runs the pipeline itself, so only seed here when serving.
	if cfg.Misc.SeedOnStartup && !cli.Flags.Seed {
		report, err := utils.Seed(ctx, cfg)
		switch {
		case err != nil:
			logger.WithError(err).Error("startup seeding failed")
		case report.Failed():
			logger.WithField("phases", report.Aborted).Warn("startup seeding finished with aborted phases")
		}
	}

	return ctx
}
