package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestClientFetch(t *testing.T) {
	var gotUA, gotAccept, gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotLanguage = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<li><div data-entity-urn="urn:li:jobPosting:7"></div></li>`))
	}))
	defer server.Close()

	client, err := NewClient(nil, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	body, err := client.Fetch(context.Background(), server.URL+"/search?keywords=go")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(body, "urn:li:jobPosting:7") {
		t.Fatalf("unexpected body: %q", body)
	}
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Fatalf("expected browser user agent, got %q", gotUA)
	}
	if gotAccept != acceptHeader {
		t.Fatalf("unexpected accept header: %q", gotAccept)
	}
	if gotLanguage != acceptLanguageHeader {
		t.Fatalf("unexpected accept-language header: %q", gotLanguage)
	}
}

func TestClientFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewClient(nil, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatalf("expected error for 429")
	}
	if err.Error() != "http 429" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientKeepsOneClientPerProxy(t *testing.T) {
	client, err := NewClient(nil, time.Second)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	proxy, _ := url.Parse("http://127.0.0.1:3128")
	first, err := client.httpClient(proxy)
	if err != nil {
		t.Fatalf("httpClient() error = %v", err)
	}
	second, err := client.httpClient(proxy)
	if err != nil {
		t.Fatalf("httpClient() error = %v", err)
	}
	if first != second {
		t.Fatalf("expected the cached client for the same proxy")
	}

	direct, err := client.httpClient(nil)
	if err != nil {
		t.Fatalf("httpClient(nil) error = %v", err)
	}
	if direct == first {
		t.Fatalf("direct and proxied clients must differ")
	}
	if len(client.clients) != 2 {
		t.Fatalf("expected 2 cached clients, got %d", len(client.clients))
	}
}

func TestTimeoutSeconds(t *testing.T) {
	cases := map[time.Duration]int{
		0:                       1,
		500 * time.Millisecond:  1,
		time.Second:             1,
		1500 * time.Millisecond: 2,
		30 * time.Second:        30,
	}
	for timeout, want := range cases {
		if got := timeoutSeconds(timeout); got != want {
			t.Fatalf("timeoutSeconds(%s) = %d, want %d", timeout, got, want)
		}
	}
}
