package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimezsa/urnscraper/internal/models"
	"github.com/rs/zerolog"
)

// scrapeJobsBody requires both keys to be present as strings. Empty
// strings are valid values.
type scrapeJobsBody struct {
	JobTitle *string `json:"job_title" binding:"required"`
	Location *string `json:"location" binding:"required"`
}

func (b scrapeJobsBody) request() models.SearchRequest {
	return models.SearchRequest{JobTitle: *b.JobTitle, Location: *b.Location}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type Handler struct {
	processor Processor
	logger    zerolog.Logger
	version   string
}

func NewHandler(processor Processor, logger zerolog.Logger, version string) *Handler {
	return &Handler{processor: processor, logger: logger, version: version}
}

func (h *Handler) ScrapeJobs(c *gin.Context) {
	var body scrapeJobsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
		return
	}
	req := body.request()

	result, err := h.processor.Process(c.Request.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("job_title", req.JobTitle).
			Str("location", req.Location).
			Msg("scrape failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Version: h.version})
}
