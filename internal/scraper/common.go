package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func parseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// collectAttr returns the non-empty values of attr on every element
// matching selector, in document order.
func collectAttr(doc *goquery.Document, selector string, attr string) []string {
	values := []string{}
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		value, ok := s.Attr(attr)
		if !ok || value == "" {
			return
		}
		values = append(values, value)
	})
	return values
}
