package main

import (
	"os"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/FlagBrew/local-dex/internal/utils"
	"github.com/apex/log"
	"github.com/lrstanley/chix"
	"github.com/lrstanley/clix"
)

var (
	cli    = &clix.CLI[models.Flags]{}
	logger log.Interface
	db     *database.Client
	cfg    *models.Config
)

func main() {
	ctx := setup()
	defer db.Close()

	if cli.Flags.Seed {
		report, err := utils.Seed(ctx, cfg)
		if err != nil {
			logger.WithError(err).Error("seeding failed")
			db.Close()
			os.Exit(1)
		}
		if report.Failed() {
			logger.WithField("phases", report.Aborted).Error("seeding finished with aborted phases")
			db.Close()
			os.Exit(1)
		}
		return
	}

	logger.Infof("starting HTTP server on %s:%d", cfg.HTTP.ListeningAddr, cfg.HTTP.Port)
	if err := chix.RunContext(ctx, httpServer(ctx)); err != nil {
		logger.WithError(err).Error("http server stopped")
	}
}
