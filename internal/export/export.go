package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/urnscraper/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

const jobViewURL = "https://www.linkedin.com/jobs/view/"

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func WriteResult(w io.Writer, result models.SearchResult, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return writeCSV(w, result.URNs, ',')
	case FormatTSV:
		return writeCSV(w, result.URNs, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, result.URNs)
	default:
		return writeTable(w, result.URNs, opts)
	}
}

// JobID returns the trailing numeric id of a job URN, e.g. 123 for
// urn:li:jobPosting:123.
func JobID(urn string) string {
	urn = strings.TrimSpace(urn)
	idx := strings.LastIndex(urn, ":")
	if idx < 0 || idx == len(urn)-1 {
		return ""
	}
	id := urn[idx+1:]
	for _, r := range id {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return id
}

func JobURL(urn string) string {
	id := JobID(urn)
	if id == "" {
		return ""
	}
	return jobViewURL + id
}

func writeJSON(w io.Writer, result models.SearchResult) error {
	if result.URNs == nil {
		result.URNs = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeCSV(w io.Writer, urns []string, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(header()); err != nil {
		return err
	}
	for _, urn := range urns {
		if err := writer.Write(row(urn)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, urns []string, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header(), "\t"))
	output := termenv.NewOutput(w)
	for _, urn := range urns {
		fmt.Fprintln(tw, strings.Join(tableRow(urn, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, urns []string) error {
	if len(urns) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	lines := []string{
		"| urn | job_id | url |",
		"| --- | --- | --- |",
	}
	for _, urn := range urns {
		link := "-"
		if jobURL := JobURL(urn); jobURL != "" {
			link = fmt.Sprintf("[Open listing](<%s>)", jobURL)
		}
		lines = append(lines, fmt.Sprintf("| %s | %s | %s |", escapePipes(urn), orDash(JobID(urn)), link))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func header() []string {
	return []string{"urn", "job_id", "url"}
}

func row(urn string) []string {
	return []string{strings.TrimSpace(urn), JobID(urn), JobURL(urn)}
}

func tableRow(urn string, output *termenv.Output, opts WriteOptions) []string {
	const linkColor = "#87CEEB"

	jobURL := JobURL(urn)
	displayURL := "-"
	if jobURL != "" {
		displayURL = jobURL
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(jobURL)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(jobURL, displayURL)
		}
	}
	return []string{
		strings.TrimSpace(urn),
		orDash(JobID(urn)),
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	label := raw
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	return label
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func escapePipes(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), "|", "\\|")
}
