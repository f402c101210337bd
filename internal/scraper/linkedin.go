package scraper

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/urnscraper/internal/models"
	"github.com/rs/zerolog"
)

const (
	linkedInSearchURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"

	// The guest search endpoint answers with a bare list of <li> cards,
	// which an HTML5 parser places directly under the implied <body>.
	linkedInCardSelector = "body > li > div"
	linkedInURNAttr      = "data-entity-urn"
)

// LinkedIn turns a job title and location into the job URNs listed on
// LinkedIn's guest search page.
type LinkedIn struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewLinkedIn(fetcher Fetcher, logger zerolog.Logger) *LinkedIn {
	return &LinkedIn{fetcher: fetcher, logger: logger}
}

func (l *LinkedIn) Process(ctx context.Context, req models.SearchRequest) (models.SearchResult, error) {
	searchURL := BuildSearchURL(req.JobTitle, req.Location)
	l.logger.Debug().Str("url", searchURL).Msg("fetching search page")

	html, err := l.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return models.SearchResult{}, &FetchError{URL: searchURL, Err: err}
	}

	doc, err := parseDocument(html)
	if err != nil {
		return models.SearchResult{}, &ParseError{Err: err}
	}

	urns := ExtractURNs(doc)
	l.logger.Debug().Str("url", searchURL).Int("urns", len(urns)).Msg("search page parsed")
	return models.NewSearchResult(searchURL, urns), nil
}

// BuildSearchURL returns the guest search URL with keywords before location.
func BuildSearchURL(jobTitle string, location string) string {
	return linkedInSearchURL + "?keywords=" + url.QueryEscape(jobTitle) + "&location=" + url.QueryEscape(location)
}

func ExtractURNs(doc *goquery.Document) []string {
	return collectAttr(doc, linkedInCardSelector, linkedInURNAttr)
}
