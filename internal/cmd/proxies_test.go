package cmd

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func sampleProxyResults() []ProxyCheckResult {
	return []ProxyCheckResult{
		{Proxy: "http://10.0.0.1:8080", Status: "200", LatencyMS: 42},
		{Proxy: "http://10.0.0.2:8080", Status: proxyStatusError, Error: "dial tcp: refused"},
	}
}

func TestWriteProxyResultsJSON(t *testing.T) {
	var out bytes.Buffer
	ctx := testContext()
	ctx.Out = &out
	ctx.JSONOutput = true

	if err := writeProxyResults(ctx, sampleProxyResults()); err != nil {
		t.Fatalf("writeProxyResults() error = %v", err)
	}

	var got []ProxyCheckResult
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !reflect.DeepEqual(got, sampleProxyResults()) {
		t.Fatalf("results = %+v", got)
	}
}

func TestWriteProxyResultsPlain(t *testing.T) {
	var out bytes.Buffer
	ctx := testContext()
	ctx.Out = &out
	ctx.PlainText = true

	if err := writeProxyResults(ctx, sampleProxyResults()); err != nil {
		t.Fatalf("writeProxyResults() error = %v", err)
	}

	want := "http://10.0.0.1:8080\t200\t42\t\n" +
		"http://10.0.0.2:8080\terror\t0\tdial tcp: refused\n"
	if out.String() != want {
		t.Fatalf("plain output = %q, want %q", out.String(), want)
	}
}

func TestWriteProxyResultsTable(t *testing.T) {
	var out bytes.Buffer
	ctx := testContext()
	ctx.Out = &out

	if err := writeProxyResults(ctx, sampleProxyResults()); err != nil {
		t.Fatalf("writeProxyResults() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", out.String())
	}
	if fields := strings.Fields(lines[0]); !reflect.DeepEqual(fields, []string{"PROXY", "STATUS", "LATENCY", "ERROR"}) {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); !reflect.DeepEqual(fields, []string{"http://10.0.0.1:8080", "200", "42ms", "-"}) {
		t.Fatalf("unexpected ok row: %q", lines[1])
	}
	if !strings.Contains(lines[2], "error") || !strings.Contains(lines[2], "dial tcp: refused") {
		t.Fatalf("unexpected error row: %q", lines[2])
	}
}

func TestCheckProxyRejectsInvalidProxy(t *testing.T) {
	got := checkProxy(testContext(), "no-scheme", "http://127.0.0.1/", time.Second)
	if got.Status != proxyStatusError || got.Error == "" || got.Proxy != "no-scheme" {
		t.Fatalf("checkProxy() = %+v, want an error result", got)
	}
}
