package ingest

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/FlagBrew/local-dex/internal/database"
	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// ErrSkip is returned by a ProcessFunc for an item that is deliberately not
// written. It is not counted as a failure.
var ErrSkip = errors.New("item skipped")

func skipf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSkip, fmt.Sprintf(format, args...))
}

// Stats counts what happened to the targets of one step.
type Stats struct {
	Targets      int `json:"targets"`
	Present      int `json:"present"`
	FetchFailed  int `json:"fetch_failed"`
	Written      int `json:"written"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
	Dropped      int `json:"dropped"`
	Chunks       int `json:"chunks"`
	ChunksFailed int `json:"chunks_failed"`
}

func (s *Stats) Add(o Stats) {
	s.Targets += o.Targets
	s.Present += o.Present
	s.FetchFailed += o.FetchFailed
	s.Written += o.Written
	s.Skipped += o.Skipped
	s.Failed += o.Failed
	s.Dropped += o.Dropped
	s.Chunks += o.Chunks
	s.ChunksFailed += o.ChunksFailed
}

// Runner drives targets through fetch and write in fixed size chunks. Chunks
// run one after another; each chunk is written in one transaction.
type Runner struct {
	db        *database.Client
	fetcher   *Fetcher
	resolver  *Resolver
	chunkSize int
}

func NewRunner(db *database.Client, fetcher *Fetcher, resolver *Resolver, chunkSize int) *Runner {
	if chunkSize <= 0 {
		chunkSize = models.DefaultChunkSize
	}
	return &Runner{db: db, fetcher: fetcher, resolver: resolver, chunkSize: chunkSize}
}

// ProcessFunc writes one item through w. Returning an error rolls back every
// write the item made; returning ErrSkip does the same but counts a skip.
type ProcessFunc[T any] func(ctx context.Context, w *ChunkWriter, item T) error

// ChunkWriter is handed to a ProcessFunc for the duration of one chunk.
type ChunkWriter struct {
	tx *database.Tx

	staged  map[database.Kind][]int
	pending map[database.Kind][]int
	dropped int
	drops   int
}

func newChunkWriter(tx *database.Tx) *ChunkWriter {
	return &ChunkWriter{
		tx:      tx,
		staged:  map[database.Kind][]int{},
		pending: map[database.Kind][]int{},
	}
}

func (w *ChunkWriter) Tx() *database.Tx {
	return w.tx
}

// Track records that the current item wrote id of kind. It becomes
// resolvable once the chunk commits.
func (w *ChunkWriter) Track(kind database.Kind, id int) {
	w.pending[kind] = append(w.pending[kind], id)
}

// Drop records a reference the current item omitted because its target is
// not stored.
func (w *ChunkWriter) Drop() {
	w.drops++
}

func (w *ChunkWriter) keep() {
	for kind, ids := range w.pending {
		w.staged[kind] = append(w.staged[kind], ids...)
	}
	w.dropped += w.drops
	w.discard()
}

func (w *ChunkWriter) discard() {
	clear(w.pending)
	w.drops = 0
}

// RunChunks fetches targets chunk by chunk and hands every payload that
// decoded to process, in target order.
func RunChunks[T any](ctx context.Context, r *Runner, kind database.Kind, targets []string, process ProcessFunc[T]) Stats {
	logger := log.FromContext(ctx).WithField("kind", kind)
	stats := Stats{Targets: len(targets)}

	idx := 0
	for chunk := range slices.Chunk(targets, r.chunkSize) {
		if err := ctx.Err(); err != nil {
			logger.WithError(err).WithField("chunk", idx).Warn("stopping before chunk")
			break
		}

		results := make([]Result[T], len(chunk))
		var g errgroup.Group
		for i, url := range chunk {
			g.Go(func() error {
				results[i] = FetchJSON[T](ctx, r.fetcher, url)
				return nil
			})
		}
		_ = g.Wait()

		values := make([]T, 0, len(results))
		for _, res := range results {
			if !res.OK() {
				stats.FetchFailed++
				Items.WithLabelValues(kind.String(), "fetch_failed").Inc()
				logger.WithError(res.Err).WithField("url", res.URL).Warn("failed to fetch item, skipping")
				continue
			}
			values = append(values, res.Value)
		}

		writeChunk(ctx, r, kind, idx, values, process, &stats)
		idx++
	}

	return stats
}

// RunItems is RunChunks for items that are already in memory.
func RunItems[T any](ctx context.Context, r *Runner, kind database.Kind, items []T, process ProcessFunc[T]) Stats {
	stats := Stats{Targets: len(items)}

	idx := 0
	for chunk := range slices.Chunk(items, r.chunkSize) {
		if err := ctx.Err(); err != nil {
			log.FromContext(ctx).WithError(err).WithFields(log.Fields{
				"kind":  kind,
				"chunk": idx,
			}).Warn("stopping before chunk")
			break
		}
		writeChunk(ctx, r, kind, idx, chunk, process, &stats)
		idx++
	}

	return stats
}

func writeChunk[T any](ctx context.Context, r *Runner, kind database.Kind, idx int, values []T, process ProcessFunc[T], stats *Stats) {
	stats.Chunks++
	if len(values) == 0 {
		return
	}

	logger := log.FromContext(ctx).WithFields(log.Fields{
		"kind":  kind,
		"chunk": idx,
	})

	abort := func(tx *database.Tx, err error) {
		if tx != nil {
			_ = tx.Rollback()
		}
		stats.ChunksFailed++
		stats.Failed += len(values)
		ChunkCommits.WithLabelValues(kind.String(), "rolled_back").Inc()
		Items.WithLabelValues(kind.String(), "failed").Add(float64(len(values)))
		logger.WithError(err).WithField("items", len(values)).Error("chunk rolled back")
	}

	tx, err := r.db.Tx(ctx)
	if err != nil {
		abort(nil, err)
		return
	}

	w := newChunkWriter(tx)
	var written, skipped, failed int
	for i, v := range values {
		sp := fmt.Sprintf("item_%d", i)
		if err := tx.Savepoint(ctx, sp); err != nil {
			abort(tx, fmt.Errorf("savepoint: %w", err))
			return
		}

		perr := process(ctx, w, v)
		if perr == nil {
			if err := tx.Release(ctx, sp); err != nil {
				abort(tx, fmt.Errorf("release savepoint: %w", err))
				return
			}
			w.keep()
			written++
			continue
		}

		if errors.Is(perr, ErrSkip) {
			w.dropped += w.drops
		}
		w.discard()
		if err := tx.RollbackTo(ctx, sp); err != nil {
			abort(tx, fmt.Errorf("rollback to savepoint: %w", err))
			return
		}
		if err := tx.Release(ctx, sp); err != nil {
			abort(tx, fmt.Errorf("release savepoint: %w", err))
			return
		}

		if errors.Is(perr, ErrSkip) {
			skipped++
			logger.WithField("item", i).Debug(perr.Error())
			continue
		}
		failed++
		logger.WithError(perr).WithField("item", i).Warn("failed to write item, rolled back")
	}

	if err := ctx.Err(); err != nil {
		abort(tx, err)
		return
	}
	if err := tx.Commit(); err != nil {
		abort(nil, fmt.Errorf("commit: %w", err))
		return
	}

	for k, ids := range w.staged {
		r.resolver.Set(k).Add(ids...)
	}

	stats.Written += written
	stats.Skipped += skipped
	stats.Failed += failed
	stats.Dropped += w.dropped
	ChunkCommits.WithLabelValues(kind.String(), "committed").Inc()
	Items.WithLabelValues(kind.String(), "written").Add(float64(written))
	Items.WithLabelValues(kind.String(), "skipped").Add(float64(skipped))
	Items.WithLabelValues(kind.String(), "failed").Add(float64(failed))
	logger.WithFields(log.Fields{
		"written": written,
		"skipped": skipped,
		"failed":  failed,
	}).Debug("chunk committed")
}
