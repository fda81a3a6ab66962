// Package engine builds a queryable index from a raw document feed.
package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/absearch/absearch/index"
	"github.com/absearch/absearch/internal/feed"
	"github.com/absearch/absearch/internal/identity"
	"github.com/absearch/absearch/model"
)

const recordBuffer = 64

// BuildStats summarizes one index build. Indexed counts distinct documents;
// Records counts every record the feed produced, so Records-Indexed-Skipped
// is the number of duplicate ingestions collapsed by the index.
type BuildStats struct {
	Records int
	Indexed int
	Skipped int
	Elapsed time.Duration
}

// Builder wires a record stream to a fresh inverted index.
type Builder struct {
	deriver identity.Deriver
	logger  *slog.Logger
}

// NewBuilder creates a Builder. A nil deriver falls back to the CRC-64
// deriver; a nil logger falls back to the default logger.
func NewBuilder(deriver identity.Deriver, logger *slog.Logger) *Builder {
	if deriver == nil {
		deriver = identity.NewCRC64Deriver()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{deriver: deriver, logger: logger}
}

// Build consumes every record the streamer produces and returns the fully
// built index. A record whose URL cannot be parsed is skipped with a warning
// and counted, never fatal: one bad record must not cost the rest of the
// corpus. A feed-level decode failure aborts the whole build and is
// returned alongside the stats gathered so far, so callers can report how
// far the build got.
//
// The streamer and the indexer run as a two-stage pipeline; all index
// updates happen in the single indexer stage, so no partially indexed
// document is ever observable.
func (b *Builder) Build(ctx context.Context, streamer feed.Streamer) (*index.InvertedIndex, BuildStats, error) {
	start := time.Now()
	idx := index.New()
	stats := BuildStats{}
	records := make(chan feed.Record, recordBuffer)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return streamer.Stream(ctx, records)
	})
	g.Go(func() error {
		for rec := range records {
			stats.Records++
			canonical, err := identity.Canonicalize(rec.URL)
			if err != nil {
				stats.Skipped++
				b.logger.Warn("skipping record with malformed URL",
					"title", rec.Title, "error", err)
				continue
			}
			idx.Ingest(model.Document{
				ID:       b.deriver.DeriveID(canonical),
				Title:    rec.Title,
				Abstract: rec.Abstract,
				URL:      canonical,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		stats.Indexed = idx.Size()
		stats.Elapsed = time.Since(start)
		return nil, stats, err
	}

	stats.Indexed = idx.Size()
	stats.Elapsed = time.Since(start)
	return idx, stats, nil
}
