package enrich

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/internal/ratelimit"
	"github.com/law-makers/leadgen/internal/robots"
	urlutil "github.com/law-makers/leadgen/internal/utils/url"
)

// maxBodyBytes caps how much of a page we read. Contact details live in
// the first part of the document; unbounded reads only waste memory.
const maxBodyBytes = 2 << 20

// Fetcher performs polite HTTP GETs for enrichment. Every request passes
// the robots gate and the shared rate limiter before it leaves the
// process, so enrichment traffic obeys the same per-domain pacing as the
// registry crawl.
type Fetcher struct {
	client  *http.Client
	limiter ratelimit.Limiter
	robots  *robots.Checker
	ua      string
	log     zerolog.Logger
}

// NewHTTPClient builds the shared enrichment client with connection reuse
// enabled. Enrichment hits the same handful of hosts repeatedly.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

func NewFetcher(client *http.Client, limiter ratelimit.Limiter, checker *robots.Checker, userAgent string, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		limiter: limiter,
		robots:  checker,
		ua:      userAgent,
		log:     logger.With().Str("component", "fetcher").Logger(),
	}
}

// Get fetches a page and returns its body as a string. A disallowed,
// failed or non-2xx fetch returns "": enrichment treats a missing page
// the same as an empty one. Only context cancellation is propagated.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", nil
	}
	if err := urlutil.ValidateURL(rawURL); err != nil {
		f.log.Debug().Err(err).Str("url", rawURL).Msg("Rejecting unfetchable URL")
		return "", nil
	}
	if !f.robots.Allowed(ctx, rawURL) {
		f.log.Info().Str("url", rawURL).Msg("robots.txt disallows fetch, skipping")
		return "", nil
	}

	release, err := f.limiter.Acquire(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		f.log.Debug().Err(err).Str("url", rawURL).Msg("Bad request URL")
		return "", nil
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		f.log.Debug().Err(err).Str("url", rawURL).Msg("HTTP GET failed")
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.log.Debug().Int("status", resp.StatusCode).Str("url", rawURL).Msg("Non-success response")
		return "", nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		f.log.Debug().Err(err).Str("url", rawURL).Msg("Body read failed")
		return "", nil
	}
	return string(body), nil
}

// GetDoc fetches a page and parses it with goquery. Returns nil when the
// page could not be fetched.
func (f *Fetcher) GetDoc(ctx context.Context, rawURL string) (*goquery.Document, error) {
	html, err := f.Get(ctx, rawURL)
	if err != nil || html == "" {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		f.log.Debug().Err(err).Str("url", rawURL).Msg("HTML parse failed")
		return nil, nil
	}
	return doc, nil
}
