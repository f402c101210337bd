package models

// SearchRequest is the job search input accepted by the processor.
type SearchRequest struct {
	JobTitle string `json:"job_title"`
	Location string `json:"location"`
}
