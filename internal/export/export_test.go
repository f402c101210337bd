package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jimezsa/urnscraper/internal/models"
)

func TestJobID(t *testing.T) {
	cases := []struct {
		urn  string
		want string
	}{
		{"urn:li:jobPosting:4361039203", "4361039203"},
		{"urn:li:job:123", "123"},
		{"urn:li:jobPosting:", ""},
		{"urn:li:company:abc", ""},
		{"plain", ""},
	}
	for _, tc := range cases {
		if got := JobID(tc.urn); got != tc.want {
			t.Fatalf("JobID(%q) = %q, want %q", tc.urn, got, tc.want)
		}
	}
	if got := JobURL("urn:li:jobPosting:42"); got != "https://www.linkedin.com/jobs/view/42" {
		t.Fatalf("unexpected job url: %q", got)
	}
}

func TestWriteResultJSON(t *testing.T) {
	var buf bytes.Buffer
	result := models.SearchResult{Status: models.StatusSuccess, URLRequested: "https://example.com"}
	if err := WriteResult(&buf, result, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	urns, ok := decoded["urns"].([]any)
	if !ok || len(urns) != 0 {
		t.Fatalf("urns must be an empty array, got %#v", decoded["urns"])
	}
	if decoded["total_urns_found"] != float64(0) {
		t.Fatalf("unexpected total: %#v", decoded["total_urns_found"])
	}
}

func TestWriteResultCSV(t *testing.T) {
	var buf bytes.Buffer
	result := models.NewSearchResult("https://example.com", []string{"urn:li:jobPosting:1", "urn:li:other:x"})
	if err := WriteResult(&buf, result, FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}

	want := "urn,job_id,url\n" +
		"urn:li:jobPosting:1,1,https://www.linkedin.com/jobs/view/1\n" +
		"urn:li:other:x,,\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s", buf.String())
	}
}

func TestWriteResultMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, models.NewSearchResult("u", nil), FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No results." {
		t.Fatalf("unexpected markdown: %q", buf.String())
	}

	buf.Reset()
	if err := WriteResult(&buf, models.NewSearchResult("u", []string{"urn:li:jobPosting:9"}), FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	if !strings.Contains(buf.String(), "| urn:li:jobPosting:9 | 9 | [Open listing](<https://www.linkedin.com/jobs/view/9>) |") {
		t.Fatalf("unexpected markdown: %q", buf.String())
	}
}

func TestWriteResultTable(t *testing.T) {
	var buf bytes.Buffer
	result := models.NewSearchResult("u", []string{"urn:li:jobPosting:5"})
	if err := WriteResult(&buf, result, FormatTable, WriteOptions{LinkStyle: LinkStyleFull}); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "urn:li:jobPosting:5") || !strings.Contains(out, "https://www.linkedin.com/jobs/view/5") {
		t.Fatalf("unexpected table: %q", out)
	}
	if strings.Contains(out, "\x1b") {
		t.Fatalf("no escapes expected without color/hyperlinks: %q", out)
	}
}

func TestShortURLLabel(t *testing.T) {
	if got := shortURLLabel("https://www.linkedin.com/jobs/view/5"); got != "linkedin.com/jobs/view/5" {
		t.Fatalf("shortURLLabel() = %q", got)
	}
}
