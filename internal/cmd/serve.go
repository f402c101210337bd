package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jimezsa/urnscraper/internal/server"
)

const shutdownTimeout = 30 * time.Second

type ServeCmd struct {
	Addr string `help:"Listen address." env:"URNSCRAPER_ADDR"`
	FetchOptions
}

func (s *ServeCmd) Run(ctx *Context) error {
	processor, err := newProcessor(ctx, s.FetchOptions)
	if err != nil {
		return err
	}

	if !ctx.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := ctx.Config
	srv, err := server.New(server.Options{
		Addr:         firstNonEmpty(s.Addr, cfg.Addr),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		Version:      ctx.Version,
	}, processor, ctx.Logger)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	ctx.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
