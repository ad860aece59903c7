// Package robots checks site policy before enrichment fetches. Parsed
// robots.txt files are cached per host; a missing or errored robots.txt
// allows everything, so a policy check can never take a source down.
package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/temoto/robotstxt"
)

const (
	robotsPath      = "/robots.txt"
	maxBodyBytes    = 512 * 1024
	defaultCacheTTL = 24 * time.Hour
)

// Checker fetches, parses and caches robots.txt rules per host.
type Checker struct {
	client    *http.Client
	userAgent string
	enabled   bool
	cacheTTL  time.Duration
	log       zerolog.Logger

	mu    sync.RWMutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
	allowAll  bool
}

// NewChecker creates a Checker. When enabled is false every URL is allowed
// without any fetch.
func NewChecker(client *http.Client, userAgent string, enabled bool, logger zerolog.Logger) *Checker {
	return &Checker{
		client:    client,
		userAgent: userAgent,
		enabled:   enabled,
		cacheTTL:  defaultCacheTTL,
		log:       logger,
		cache:     make(map[string]*cacheEntry),
	}
}

// Allowed reports whether the host's robots.txt permits fetching rawURL.
// Any failure along the way fails open: a policy check must never block
// the pipeline on its own errors.
func (c *Checker) Allowed(ctx context.Context, rawURL string) bool {
	if !c.enabled {
		return true
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return true
	}
	host := strings.ToLower(parsed.Host)

	entry := c.entryFor(ctx, host, parsed.Scheme)
	if entry.allowAll {
		return true
	}

	allowed := entry.data.TestAgent(parsed.Path, c.userAgent)
	if !allowed {
		c.log.Info().Str("url", rawURL).Msg("robots.txt disallows fetch, skipping")
	}
	return allowed
}

func (c *Checker) entryFor(ctx context.Context, host, scheme string) *cacheEntry {
	c.mu.RLock()
	entry, ok := c.cache[host]
	c.mu.RUnlock()
	if ok && time.Since(entry.fetchedAt) < c.cacheTTL {
		return entry
	}
	return c.fetchAndCache(ctx, host, scheme)
}

func (c *Checker) fetchAndCache(ctx context.Context, host, scheme string) *cacheEntry {
	if scheme == "" {
		scheme = "https"
	}
	robotsURL := fmt.Sprintf("%s://%s%s", scheme, host, robotsPath)

	entry := &cacheEntry{fetchedAt: time.Now(), allowAll: true}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err == nil {
		req.Header.Set("User-Agent", c.userAgent)
		resp, err := c.client.Do(req)
		if err != nil {
			c.log.Debug().Err(err).Str("host", host).Msg("robots.txt fetch failed, allowing all")
		} else {
			func() {
				defer resp.Body.Close()
				body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
				if readErr != nil {
					return
				}
				data, parseErr := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
				if parseErr != nil {
					c.log.Debug().Err(parseErr).Str("host", host).Msg("robots.txt parse failed, allowing all")
					return
				}
				entry.data = data
				entry.allowAll = false
			}()
		}
	}

	c.mu.Lock()
	c.cache[host] = entry
	c.mu.Unlock()
	return entry
}

// CrawlDelay returns the crawl-delay advertised for our user agent on the
// given host, or 0 when none is cached.
func (c *Checker) CrawlDelay(host string) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.cache[strings.ToLower(host)]
	if !ok || entry.allowAll || entry.data == nil {
		return 0
	}
	group := entry.data.FindGroup(c.userAgent)
	if group == nil {
		return 0
	}
	return group.CrawlDelay
}
