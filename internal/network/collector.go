package network

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
)

// Collector fetches pages through a colly collector. A fresh collector is
// built for every call, so nothing is shared between requests except the
// proxy rotator.
type Collector struct {
	rotator    *Rotator
	timeout    time.Duration
	userAgents []string
}

func NewCollector(rotator *Rotator, timeout time.Duration) *Collector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Collector{
		rotator:    rotator,
		timeout:    timeout,
		userAgents: append([]string{}, userAgents...),
	}
}

func (c *Collector) Fetch(ctx context.Context, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	collector := colly.NewCollector(
		colly.UserAgent(randomUserAgent(c.userAgents)),
	)
	collector.SetRequestTimeout(c.timeout)

	var proxy *url.URL
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if c.rotator != nil {
		transport.Proxy = func(*http.Request) (*url.URL, error) {
			proxy = c.rotator.pick()
			return proxy, nil
		}
	}
	collector.WithTransport(contextTransport{ctx: ctx, base: transport})

	var body []byte
	collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept", acceptHeader)
		r.Headers.Set("Accept-Language", acceptLanguageHeader)
	})
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
		c.rotator.report(proxy, r.StatusCode)
	})
	collector.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			c.rotator.report(proxy, r.StatusCode)
		}
	})

	err := collector.Visit(target)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// contextTransport binds every outgoing request to ctx, so cancelling the
// fetch also aborts a request that is already in flight.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}
