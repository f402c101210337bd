package models

const StatusSuccess = "success"

// SearchResult is the outcome of one successful search.
type SearchResult struct {
	Status         string   `json:"status"`
	URLRequested   string   `json:"url_requested"`
	TotalURNsFound int      `json:"total_urns_found"`
	URNs           []string `json:"urns"`
}

// NewSearchResult builds a success result for urns fetched from url.
func NewSearchResult(url string, urns []string) SearchResult {
	if urns == nil {
		urns = []string{}
	}
	return SearchResult{
		Status:         StatusSuccess,
		URLRequested:   url,
		TotalURNsFound: len(urns),
		URNs:           urns,
	}
}
