// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	urlutil "github.com/law-makers/leadgen/internal/utils/url"
)

// Limiter gates outbound fetches per domain.
//
// Acquire blocks until at least the configured minimum delay has elapsed
// since the previous request to the same domain completed, then hands back
// a release func. Only one request per domain may be in flight at a time;
// the release func marks completion and frees the domain.
type Limiter interface {
	Acquire(ctx context.Context, urlStr string) (release func(), err error)
}

// DomainLimiter serializes requests per domain and enforces a minimum gap
// between completions. A global token bucket caps the aggregate request
// rate across all domains.
type DomainLimiter struct {
	minDelay  time.Duration
	delayHint func(domain string) time.Duration
	global    *rate.Limiter

	mu      sync.Mutex
	domains map[string]*domainEntry
}

type domainEntry struct {
	mu       sync.Mutex // held for the whole in-flight request
	lastDone time.Time
}

// NewDomainLimiter creates a limiter with the given per-domain minimum
// delay. globalRPS caps requests per second across all domains; <= 0
// disables the global cap.
func NewDomainLimiter(minDelay time.Duration, globalRPS float64) *DomainLimiter {
	if minDelay <= 0 {
		minDelay = 2 * time.Second
	}
	var global *rate.Limiter
	if globalRPS > 0 {
		global = rate.NewLimiter(rate.Limit(globalRPS), 1)
	}
	return &DomainLimiter{
		minDelay: minDelay,
		global:   global,
		domains:  make(map[string]*domainEntry),
	}
}

// MinDelay returns the configured per-domain minimum delay.
func (dl *DomainLimiter) MinDelay() time.Duration {
	return dl.minDelay
}

// SetDelayHint registers a per-domain delay source, typically a robots.txt
// crawl-delay lookup. The larger of the hint and the configured minimum
// wins. Must be set before the limiter is shared across goroutines.
func (dl *DomainLimiter) SetDelayHint(hint func(domain string) time.Duration) {
	dl.delayHint = hint
}

// delayFor resolves the effective minimum delay for a domain.
func (dl *DomainLimiter) delayFor(domain string) time.Duration {
	delay := dl.minDelay
	if dl.delayHint != nil {
		if d := dl.delayHint(domain); d > delay {
			delay = d
		}
	}
	return delay
}

// Acquire blocks until a request to urlStr's domain may proceed. The
// returned release func must be called when the request completes (success
// or failure). A URL with no parseable host degrades to an unconditional
// flat delay and a no-op release; Acquire never fails except on context
// cancellation.
func (dl *DomainLimiter) Acquire(ctx context.Context, urlStr string) (func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if dl.global != nil {
		if err := dl.global.Wait(ctx); err != nil {
			return nil, err
		}
	}

	domain := urlutil.Domain(urlStr)
	if domain == "" {
		// Malformed URL: flat delay, no lock to hold.
		if err := sleepCtx(ctx, dl.minDelay); err != nil {
			return nil, err
		}
		return func() {}, nil
	}

	entry := dl.getEntry(domain)
	entry.mu.Lock()

	wait := dl.delayFor(domain) - time.Since(entry.lastDone)
	if wait > 0 {
		if err := sleepCtx(ctx, wait); err != nil {
			entry.mu.Unlock()
			return nil, err
		}
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			entry.lastDone = time.Now()
			entry.mu.Unlock()
		})
	}
	return release, nil
}

// getEntry returns or lazily creates the state for a domain.
func (dl *DomainLimiter) getEntry(domain string) *domainEntry {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	entry, ok := dl.domains[domain]
	if !ok {
		entry = &domainEntry{}
		dl.domains[domain] = entry
	}
	return entry
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
