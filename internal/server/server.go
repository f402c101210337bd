package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimezsa/urnscraper/internal/models"
	"github.com/rs/zerolog"
)

const (
	ScrapeJobsPath = "/scrape-jobs/"
	HealthPath     = "/healthz"
)

// Processor runs one job search.
type Processor interface {
	Process(ctx context.Context, req models.SearchRequest) (models.SearchResult, error)
}

type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Version      string
}

type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	logger     zerolog.Logger
}

func New(opts Options, processor Processor, logger zerolog.Logger) (*Server, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	router.Use(gin.Recovery(), requestID(), accessLog(logger))

	handler := NewHandler(processor, logger, opts.Version)
	router.POST(ScrapeJobsPath, handler.ScrapeJobs)
	router.GET(HealthPath, handler.Health)

	idle := opts.IdleTimeout
	if idle <= 0 {
		idle = 60 * time.Second
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           router,
			ReadHeaderTimeout: opts.ReadTimeout,
			ReadTimeout:       opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       idle,
		},
		router: router,
		logger: logger,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info().Msg("http server stopped")
	return nil
}
