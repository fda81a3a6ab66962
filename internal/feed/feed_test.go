package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/absearch/absearch/internal/errors"
)

const sampleDump = `<feed>
  <doc>
    <title>Wikipedia: Anarchism</title>
    <url>https://en.wikipedia.org/wiki/Anarchism</url>
    <abstract>Anarchism is a political philosophy</abstract>
  </doc>
  <doc>
    <title>Wikipedia: Autism</title>
    <url>https://en.wikipedia.org/wiki/Autism</url>
    <abstract>Autism is a developmental disorder</abstract>
  </doc>
</feed>`

// writeDump writes content as a gzip-compressed file and returns its path.
func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.xml.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(file)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, file.Close())
	return path
}

// collect drains the loader into a slice and returns the stream error.
func collect(t *testing.T, loader *Loader) ([]Record, error) {
	t.Helper()
	out := make(chan Record, 16)
	errCh := make(chan error, 1)
	go func() {
		errCh <- loader.Stream(context.Background(), out)
	}()
	var records []Record
	for rec := range out {
		records = append(records, rec)
	}
	return records, <-errCh
}

func TestStream(t *testing.T) {
	path := writeDump(t, sampleDump)

	records, err := collect(t, NewLoader(path))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Wikipedia: Anarchism", records[0].Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Anarchism", records[0].URL)
	assert.Equal(t, "Anarchism is a political philosophy", records[0].Abstract)
	assert.Equal(t, "Wikipedia: Autism", records[1].Title)
}

func TestStream_EmptyFeed(t *testing.T) {
	path := writeDump(t, "<feed></feed>")

	records, err := collect(t, NewLoader(path))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStream_MissingFile(t *testing.T) {
	_, err := collect(t, NewLoader(filepath.Join(t.TempDir(), "nope.xml.gz")))
	require.Error(t, err)
	// A missing file is an I/O failure, not feed corruption.
	assert.NotErrorIs(t, err, apperrors.ErrFeedCorrupt)
}

func TestStream_NotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.xml.gz")
	require.NoError(t, os.WriteFile(path, []byte(sampleDump), 0o644))

	_, err := collect(t, NewLoader(path))
	require.ErrorIs(t, err, apperrors.ErrFeedCorrupt)
}

func TestStream_TruncatedXML(t *testing.T) {
	path := writeDump(t, "<feed><doc><title>Partial")

	records, err := collect(t, NewLoader(path))
	require.ErrorIs(t, err, apperrors.ErrFeedCorrupt)
	assert.Empty(t, records)
}

func TestStream_ContextCancelled(t *testing.T) {
	path := writeDump(t, sampleDump)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLoader(path).Stream(ctx, make(chan Record))
	require.ErrorIs(t, err, context.Canceled)
}
