package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/absearch/absearch/internal/errors"
	"github.com/absearch/absearch/internal/feed"
	"github.com/absearch/absearch/internal/identity"
)

// stubStreamer replays a fixed record slice and then returns err.
type stubStreamer struct {
	records []feed.Record
	err     error
}

func (s *stubStreamer) Stream(ctx context.Context, out chan<- feed.Record) error {
	defer close(out)
	for _, rec := range s.records {
		select {
		case out <- rec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild(t *testing.T) {
	streamer := &stubStreamer{records: []feed.Record{
		{Title: "Anarchism", URL: "https://en.wikipedia.org/wiki/Anarchism", Abstract: "political philosophy"},
		{Title: "Autism", URL: "https://en.wikipedia.org/wiki/Autism", Abstract: "developmental disorder"},
		{Title: "Albedo", URL: "https://en.wikipedia.org/wiki/Albedo", Abstract: "reflected sunlight"},
	}}

	builder := NewBuilder(nil, quietLogger())
	idx, stats, err := builder.Build(context.Background(), streamer)
	require.NoError(t, err)
	require.NotNil(t, idx)

	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 3, stats.Indexed)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 3, idx.Size())

	// End to end: the built index resolves a query to the derived id.
	wantID := identity.NewCRC64Deriver().DeriveID("https://en.wikipedia.org/wiki/Albedo")
	require.Len(t, idx.Query("sunlight"), 1)
	assert.Equal(t, wantID, idx.Query("sunlight")[0])
}

func TestBuild_SkipsMalformedURL(t *testing.T) {
	streamer := &stubStreamer{records: []feed.Record{
		{Title: "Good", URL: "https://example.com/good", Abstract: "kept"},
		{Title: "Bad", URL: "no scheme here", Abstract: "dropped"},
		{Title: "AlsoGood", URL: "https://example.com/also", Abstract: "kept too"},
	}}

	idx, stats, err := NewBuilder(nil, quietLogger()).Build(context.Background(), streamer)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 2, stats.Indexed)
	assert.Empty(t, idx.Query("dropped"))
}

func TestBuild_CollapsesDuplicateURLs(t *testing.T) {
	streamer := &stubStreamer{records: []feed.Record{
		{Title: "First", URL: "https://example.com/same", Abstract: "walrus"},
		{Title: "Second", URL: "https://example.com/same", Abstract: "penguin"},
	}}

	idx, stats, err := NewBuilder(nil, quietLogger()).Build(context.Background(), streamer)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, 1, stats.Indexed)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 1, idx.Size())
	// The first ingestion wins; the duplicate is a no-op.
	assert.Len(t, idx.Query("walrus"), 1)
	assert.Empty(t, idx.Query("penguin"))
}

func TestBuild_FeedErrorAborts(t *testing.T) {
	streamer := &stubStreamer{
		records: []feed.Record{
			{Title: "Partial", URL: "https://example.com/partial", Abstract: "seen before failure"},
		},
		err: apperrors.NewFeedError("dump.xml.gz", 512, "unexpected EOF"),
	}

	idx, stats, err := NewBuilder(nil, quietLogger()).Build(context.Background(), streamer)
	require.ErrorIs(t, err, apperrors.ErrFeedCorrupt)
	assert.Nil(t, idx)
	assert.Equal(t, 1, stats.Records)
}
