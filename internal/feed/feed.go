// Package feed streams raw document records out of a gzip-compressed XML
// abstract dump. It owns decompression and structural parsing; identity
// derivation and indexing happen downstream.
package feed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	apperrors "github.com/absearch/absearch/internal/errors"
)

// Record is one raw document from the dump: decoded text fields only, no
// identity attached yet.
type Record struct {
	Title    string `xml:"title"`
	URL      string `xml:"url"`
	Abstract string `xml:"abstract"`
}

// Streamer produces a finite sequence of records exactly once. The sequence
// is not restartable.
type Streamer interface {
	Stream(ctx context.Context, out chan<- Record) error
}

// Loader reads an abstract dump file. Each <doc> element carries <title>,
// <url>, and <abstract> children; everything else in the stream is skipped.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the dump at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Stream decodes the dump and sends each record on out, closing out when
// the dump is exhausted. The first structural error is terminal and is
// returned as a FeedError with positional context; the loader does not
// attempt recovery mid-stream.
func (l *Loader) Stream(ctx context.Context, out chan<- Record) error {
	defer close(out)

	file, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("failed to open feed %s: %w", l.path, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return apperrors.NewFeedError(l.path, 0, "not a gzip stream: "+err.Error())
	}
	defer gz.Close()

	decoder := xml.NewDecoder(gz)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return apperrors.NewFeedError(l.path, decoder.InputOffset(), err.Error())
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "doc" {
			continue
		}

		var rec Record
		if err := decoder.DecodeElement(&rec, &start); err != nil {
			return apperrors.NewFeedError(l.path, decoder.InputOffset(), err.Error())
		}

		select {
		case out <- rec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
