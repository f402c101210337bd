package cmd

import (
	"strings"

	"github.com/jimezsa/urnscraper/internal/config"
	"github.com/jimezsa/urnscraper/internal/network"
	"github.com/jimezsa/urnscraper/internal/scraper"
	"github.com/jimezsa/urnscraper/internal/server"
)

// FetchOptions are the flags shared by commands that fetch LinkedIn pages.
type FetchOptions struct {
	Fetcher string `help:"Page fetcher: tls or colly." env:"URNSCRAPER_FETCHER"`
	Proxies string `help:"Comma-separated proxy URLs." env:"URNSCRAPER_PROXIES"`
}

func newProcessor(ctx *Context, opts FetchOptions) (server.Processor, error) {
	if ctx.Processor != nil {
		return ctx.Processor, nil
	}

	proxies, err := config.LoadProxies(opts.Proxies)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, ctx.Config.ProxyBanDuration())
		if err != nil {
			return nil, err
		}
		ctx.Logger.Debug().Int("proxies", rotator.Len()).Msg("proxy rotation enabled")
	}

	backend := firstNonEmpty(opts.Fetcher, ctx.Config.Fetcher)
	fetcher, err := scraper.NewFetcher(backend, rotator, ctx.Config.Timeout())
	if err != nil {
		return nil, err
	}
	ctx.Logger.Debug().Str("fetcher", scraper.NormalizeFetcher(backend)).Msg("fetcher ready")

	return scraper.NewLinkedIn(fetcher, ctx.Logger), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
