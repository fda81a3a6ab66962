// Package errors defines the sentinel and typed errors shared across the
// engine.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrDocumentNotFound is returned when a document lookup misses.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrMalformedURL is returned when a record's source URL cannot be parsed.
	ErrMalformedURL = errors.New("malformed source URL")

	// ErrFeedCorrupt is returned when the document feed cannot be decoded.
	ErrFeedCorrupt = errors.New("feed corrupt")
)

// MalformedURLError reports a record whose source URL could not be parsed,
// with enough context to identify the offending input.
type MalformedURLError struct {
	URL    string
	Reason string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("malformed source URL %q: %s", e.URL, e.Reason)
}

func (e *MalformedURLError) Is(target error) bool {
	return target == ErrMalformedURL
}

// NewMalformedURLError creates a new MalformedURLError.
func NewMalformedURLError(url, reason string) *MalformedURLError {
	return &MalformedURLError{URL: url, Reason: reason}
}

// FeedError reports a structural failure while decoding the document feed.
// It is terminal for the whole build: the loader cannot recover mid-stream.
type FeedError struct {
	Path   string
	Offset int64
	Reason string
}

func (e *FeedError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("feed %s corrupt at offset %d: %s", e.Path, e.Offset, e.Reason)
	}
	return fmt.Sprintf("feed %s corrupt: %s", e.Path, e.Reason)
}

func (e *FeedError) Is(target error) bool {
	return target == ErrFeedCorrupt
}

// NewFeedError creates a new FeedError.
func NewFeedError(path string, offset int64, reason string) *FeedError {
	return &FeedError{Path: path, Offset: offset, Reason: reason}
}
