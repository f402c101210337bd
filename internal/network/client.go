package network

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

const DefaultTimeout = 30 * time.Second

// Client fetches pages with a Chrome TLS fingerprint. One underlying
// tls-client is kept per proxy so concurrent requests never share a
// proxy setting.
type Client struct {
	rotator    *Rotator
	timeout    time.Duration
	userAgents []string

	mu      sync.Mutex
	clients map[string]tls_client.HttpClient
}

func NewClient(rotator *Rotator, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		rotator:    rotator,
		timeout:    timeout,
		userAgents: append([]string{}, userAgents...),
		clients:    map[string]tls_client.HttpClient{},
	}
	if _, err := c.httpClient(nil); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy := c.rotator.pick()
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", randomUserAgent(c.userAgents))
	}

	client, err := c.httpClient(proxy)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

// Fetch GETs target and returns the response body as text.
func (c *Client) Fetch(ctx context.Context, target string) (string, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("accept", acceptHeader)
	req.Header.Set("accept-language", acceptLanguageHeader)

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) httpClient(proxy *url.URL) (tls_client.HttpClient, error) {
	key := ""
	if proxy != nil {
		key = proxy.String()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[key]; ok {
		return client, nil
	}

	jar, _ := fhttpcookiejar.New(nil)
	options := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(timeoutSeconds(c.timeout)),
		tls_client.WithCookieJar(jar),
	}
	if key != "" {
		options = append(options, tls_client.WithProxyUrl(key))
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, err
	}
	c.clients[key] = client
	return client, nil
}

// timeoutSeconds rounds up to whole seconds, the finest unit tls-client takes.
func timeoutSeconds(timeout time.Duration) int {
	seconds := int((timeout + time.Second - 1) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}
