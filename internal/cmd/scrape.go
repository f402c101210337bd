package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/jimezsa/urnscraper/internal/export"
	"github.com/jimezsa/urnscraper/internal/models"
	"github.com/jimezsa/urnscraper/internal/seen"
	"github.com/muesli/termenv"
)

type ScrapeCmd struct {
	JobTitle   string `arg:"" name:"job-title" help:"Job title to search for."`
	Location   string `help:"Job location." env:"URNSCRAPER_DEFAULT_LOCATION"`
	Format     string `help:"Output format: csv, json, md, tsv, table." enum:",csv,json,md,tsv,table" default:""`
	Links      string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output     string `name:"output" short:"o" help:"Write output to a file."`
	Seen       string `help:"Path to seen URNs JSON file."`
	NewOnly    bool   `help:"Output only unseen URNs (requires --seen)."`
	SeenUpdate bool   `help:"Merge unseen URNs into the --seen file after the scrape (requires --seen)."`
	FetchOptions
}

func (s *ScrapeCmd) Run(ctx *Context) error {
	req, err := s.request(ctx)
	if err != nil {
		return err
	}
	if err := s.validateSeenFlags(); err != nil {
		return err
	}

	processor, err := newProcessor(ctx, s.FetchOptions)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stopIndicator := startSearchIndicator(ctx)
	result, err := processor.Process(runCtx, req)
	if stopIndicator != nil {
		stopIndicator()
	}
	if err != nil {
		return err
	}

	var unseen []string
	if strings.TrimSpace(s.Seen) != "" {
		history, err := seen.ReadURNsAllowMissing(s.Seen)
		if err != nil {
			return fmt.Errorf("read --seen: %w", err)
		}
		var stats seen.DiffStats
		unseen, stats = seen.Diff(result.URNs, history)
		if stats.InvalidSeen > 0 && ctx.UI != nil {
			ctx.UI.Warnf("skipped %d blank entries in %s", stats.InvalidSeen, s.Seen)
		}
	}

	output := result
	if s.NewOnly {
		output = models.NewSearchResult(result.URLRequested, unseen)
	}

	if err := s.write(ctx, output); err != nil {
		return err
	}

	if s.SeenUpdate {
		if err := updateSeenHistory(s.Seen, unseen); err != nil {
			return err
		}
	}

	printScrapeSummary(ctx, result, unseen, strings.TrimSpace(s.Seen) != "")
	return nil
}

func (s *ScrapeCmd) request(ctx *Context) (models.SearchRequest, error) {
	req := models.SearchRequest{
		JobTitle: strings.TrimSpace(s.JobTitle),
		Location: strings.TrimSpace(firstNonEmpty(s.Location, ctx.Config.DefaultLocation)),
	}
	if req.JobTitle == "" {
		return req, fmt.Errorf("job title is required")
	}
	if req.Location == "" {
		return req, fmt.Errorf("--location is required (or set default_location in the config)")
	}
	return req, nil
}

func (s *ScrapeCmd) validateSeenFlags() error {
	hasSeen := strings.TrimSpace(s.Seen) != ""
	if s.NewOnly && !hasSeen {
		return fmt.Errorf("--new-only requires --seen")
	}
	if s.SeenUpdate && !hasSeen {
		return fmt.Errorf("--seen-update requires --seen")
	}
	if hasSeen && pathsEqual(s.Output, s.Seen) {
		return fmt.Errorf("--output path must differ from --seen")
	}
	return nil
}

func (s *ScrapeCmd) write(ctx *Context, result models.SearchResult) error {
	format, err := resolveFormat(ctx, s.Format, s.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	hyperlinks := colorEnabled && isTTY(writer)
	linkStyle := export.LinkStyleShort
	if strings.EqualFold(s.Links, string(export.LinkStyleFull)) {
		linkStyle = export.LinkStyleFull
	}
	return export.WriteResult(writer, result, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   hyperlinks,
		LinkStyle:    linkStyle,
	})
}

func pathsEqual(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil {
		return absA == absB
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

func updateSeenHistory(seenPath string, urns []string) error {
	history, err := seen.ReadURNsAllowMissing(seenPath)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}

	merged, _ := seen.Merge(history, urns)
	if err := seen.WriteURNs(seenPath, merged); err != nil {
		return fmt.Errorf("write --seen: %w", err)
	}
	return nil
}

func printScrapeSummary(ctx *Context, result models.SearchResult, unseen []string, withSeen bool) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatScrapeSummary(result, unseen, withSeen))
}

func formatScrapeSummary(result models.SearchResult, unseen []string, withSeen bool) string {
	if !withSeen {
		return fmt.Sprintf("summary: urns=%d", result.TotalURNsFound)
	}
	return fmt.Sprintf("summary: urns=%d new=%d", result.TotalURNsFound, len(unseen))
}

func resolveFormat(ctx *Context, format string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if format != "" {
		return parseFormat(format)
	}
	if outputPath != "" {
		return export.FormatCSV, nil
	}
	if isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startSearchIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KScraping... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
