package utils

import (
	"context"
	"errors"

	"github.com/FlagBrew/local-dex/internal/cache"
	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/ingest"
	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/apex/log"
)

// Seed runs the ingestion pipeline against the database in ctx. The redis
// payload cache is used when configured; if it cannot be reached the run
// continues without it.
func Seed(ctx context.Context, cfg *models.Config) (*ingest.Report, error) {
	logger := log.FromContext(ctx)
	db := database.FromContext(ctx)
	if db == nil {
		return nil, errors.New("database client missing from context")
	}

	var opts []ingest.FetcherOption
	if cfg.Cache.Enabled() {
		rc, err := cache.Open(ctx, cfg.Cache)
		if err != nil {
			logger.WithError(err).WithField("addr", cfg.Cache.RedisAddr).Warn("payload cache unavailable, continuing without it")
		} else {
			defer rc.Close()
			opts = append(opts, ingest.WithCache(rc))
		}
	}

	fetcher := ingest.NewFetcher(cfg.Ingest, opts...)
	logger.WithFields(log.Fields{
		"source":      cfg.Ingest.BaseURL,
		"concurrency": cfg.Ingest.MaxConcurrency,
		"chunk_size":  cfg.Ingest.ChunkSize,
	}).Info("seeding dataset")

	return ingest.NewPipeline(db, fetcher, cfg.Ingest.ChunkSize).Run(ctx)
}
