package network

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

const DefaultBanDuration = 10 * time.Minute

// Rotator hands out proxies round-robin and parks the ones that were
// answered with 403 or 429 until their ban expires.
type Rotator struct {
	proxies     []*url.URL
	banDuration time.Duration
	bannedUntil map[string]time.Time
	index       int
	mu          sync.Mutex
	now         func() time.Time
}

func NewRotator(raw []string, banDuration time.Duration) (*Rotator, error) {
	if banDuration <= 0 {
		banDuration = DefaultBanDuration
	}
	rotator := &Rotator{
		banDuration: banDuration,
		bannedUntil: map[string]time.Time{},
		now:         time.Now,
	}

	for _, proxy := range raw {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q: scheme and host are required", proxy)
		}
		rotator.proxies = append(rotator.proxies, u)
	}

	return rotator, nil
}

func (r *Rotator) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.proxies)
}

func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.proxies) == 0 {
		return nil, ErrNoProxies
	}

	start := r.index
	for {
		proxy := r.proxies[r.index]
		r.index = (r.index + 1) % len(r.proxies)

		if !r.isBanned(proxy) {
			return proxy, nil
		}

		if r.index == start {
			return nil, ErrNoProxies
		}
	}
}

func (r *Rotator) Report(proxy *url.URL, status int) {
	if proxy == nil {
		return
	}
	if status != http.StatusForbidden && status != http.StatusTooManyRequests {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bannedUntil[proxy.String()] = r.now().Add(r.banDuration)
}

func (r *Rotator) isBanned(proxy *url.URL) bool {
	until, ok := r.bannedUntil[proxy.String()]
	if !ok {
		return false
	}
	if r.now().After(until) {
		delete(r.bannedUntil, proxy.String())
		return false
	}
	return true
}

// pick returns the next usable proxy, or nil when none is configured or
// every proxy is banned. A nil proxy means a direct connection.
func (r *Rotator) pick() *url.URL {
	if r == nil {
		return nil
	}
	proxy, err := r.Next()
	if err != nil {
		return nil
	}
	return proxy
}

func (r *Rotator) report(proxy *url.URL, status int) {
	if r == nil {
		return
	}
	r.Report(proxy, status)
}
