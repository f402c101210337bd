package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/urnscraper/internal/network"
)

const (
	FetcherTLS   = "tls"
	FetcherColly = "colly"
)

func Fetchers() []string {
	return []string{FetcherTLS, FetcherColly}
}

// NewFetcher builds the page fetcher named by backend. An empty backend
// selects the TLS client.
func NewFetcher(backend string, rotator *network.Rotator, timeout time.Duration) (Fetcher, error) {
	switch NormalizeFetcher(backend) {
	case FetcherTLS, "":
		client, err := network.NewClient(rotator, timeout)
		if err != nil {
			return nil, err
		}
		return client, nil
	case FetcherColly:
		return network.NewCollector(rotator, timeout), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFetcher, backend)
	}
}

func NormalizeFetcher(backend string) string {
	backend = strings.ToLower(strings.TrimSpace(backend))
	switch backend {
	case "tls-client", "tlsclient":
		return FetcherTLS
	case "gocolly":
		return FetcherColly
	default:
		return backend
	}
}
