package scraper

import (
	"context"
	"errors"
)

var ErrUnknownFetcher = errors.New("unknown fetcher")

// Fetcher returns the HTML body served at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (string, error)
}

// FetchError reports a failure to retrieve the search page. Its message is
// the underlying error's message, unchanged.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a failure to turn the fetched page into a document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }
