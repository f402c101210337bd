package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/urnscraper/internal/config"
	"github.com/jimezsa/urnscraper/internal/network"
	"github.com/jimezsa/urnscraper/internal/scraper"
)

const (
	proxyStatusError = "error"
	proxyCheckTitle  = "software engineer"
	proxyCheckPlace  = "United States"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Validate proxies against a target URL."`
}

type ProxyCheckCmd struct {
	Target  string `help:"Target URL (default: LinkedIn guest job search)."`
	Timeout int    `help:"Timeout in seconds." default:"15"`
}

// ProxyCheckResult is one proxy's outcome. Status holds the HTTP status code
// or "error".
type ProxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies("")
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	target := p.Target
	if target == "" {
		target = scraper.BuildSearchURL(proxyCheckTitle, proxyCheckPlace)
	}
	timeout := time.Duration(p.Timeout) * time.Second

	results := make([]ProxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		ctx.Logger.Debug().Str("proxy", proxy).Str("target", target).Msg("checking proxy")
		results = append(results, checkProxy(ctx, proxy, target, timeout))
	}
	return writeProxyResults(ctx, results)
}

func checkProxy(ctx *Context, proxy, target string, timeout time.Duration) ProxyCheckResult {
	failed := func(err error) ProxyCheckResult {
		return ProxyCheckResult{Proxy: proxy, Status: proxyStatusError, Error: err.Error()}
	}

	rotator, err := network.NewRotator([]string{proxy}, ctx.Config.ProxyBanDuration())
	if err != nil {
		return failed(err)
	}
	client, err := network.NewClient(rotator, timeout)
	if err != nil {
		return failed(err)
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req, err := fhttp.NewRequestWithContext(reqCtx, fhttp.MethodGet, target, nil)
	if err != nil {
		return failed(err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return failed(err)
	}
	_ = resp.Body.Close()

	return ProxyCheckResult{
		Proxy:     proxy,
		Status:    strconv.Itoa(resp.StatusCode),
		LatencyMS: time.Since(start).Milliseconds(),
	}
}

func writeProxyResults(ctx *Context, results []ProxyCheckResult) error {
	switch {
	case ctx.JSONOutput:
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case ctx.PlainText:
		for _, res := range results {
			fields := []string{res.Proxy, res.Status, strconv.FormatInt(res.LatencyMS, 10), res.Error}
			if _, err := fmt.Fprintln(ctx.Out, strings.Join(fields, "\t")); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PROXY\tSTATUS\tLATENCY\tERROR")
	for _, res := range results {
		latency := "-"
		if res.Status != proxyStatusError {
			latency = fmt.Sprintf("%dms", res.LatencyMS)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Proxy, res.Status, latency, orDash(res.Error))
	}
	return tw.Flush()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
