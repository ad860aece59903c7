package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/ratelimit"
	"github.com/law-makers/leadgen/internal/robots"
	"github.com/law-makers/leadgen/internal/selectors"
	"github.com/law-makers/leadgen/pkg/models"
)

// testEnricher wires an Enricher against a test server, with search
// engine templates pointed at the given search endpoint.
func testEnricher(t *testing.T, cfg *config.Config, searchBase string) *Enricher {
	t.Helper()

	table := selectors.Defaults()
	if searchBase != "" {
		table = selectors.Merge(selectors.Table{
			"search_engines": map[string]any{
				"bing": map[string]any{
					"url_template": searchBase + "/bing?q=%s",
					"result_link":  "li.b_algo h2 a",
				},
				"duckduckgo": map[string]any{
					"url_template": searchBase + "/ddg?q=%s",
					"result_link":  "a.result__a",
				},
			},
		}, table)
	}
	res := selectors.NewResolver(table)

	logger := zerolog.Nop()
	client := NewHTTPClient(5 * time.Second)
	limiter := ratelimit.NewDomainLimiter(time.Millisecond, 1000)
	checker := robots.NewChecker(client, "test-agent", false, logger)
	fetcher := NewFetcher(client, limiter, checker, "test-agent", logger)

	return New(cfg, fetcher, res, logger, logger)
}

func TestHarvestFromHTML(t *testing.T) {
	e := testEnricher(t, &config.Config{MaxWorkers: 1}, "")

	html := `
	<p>Call us on 020 7946 0123 or email <a href="mailto:info@acme.co.uk">info@acme.co.uk</a></p>
	<img src="logo.png" alt="hello@2x.png">
	<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
	<a href="https://www.facebook.com/sharer/sharer.php?u=x">Share</a>
	<a href="https://www.facebook.com/acmeltd">Facebook</a>`

	lead := &models.Lead{CompanyName: "Acme Ltd"}
	e.harvestFromHTML(html, lead)

	assert.Equal(t, "+44 20 7946 0123", lead.Phone)
	assert.True(t, lead.PhoneVerified)
	assert.Equal(t, "info@acme.co.uk", lead.Email)
	assert.True(t, lead.EmailVerified)
	assert.Equal(t, "https://www.linkedin.com/company/acme", lead.Socials["linkedin"])
	assert.Equal(t, "https://www.facebook.com/acmeltd", lead.Socials["facebook"])
}

func TestHarvestFromHTMLSkipsFalsePositiveEmails(t *testing.T) {
	e := testEnricher(t, &config.Config{MaxWorkers: 1}, "")

	lead := &models.Lead{}
	e.harvestFromHTML(`<p>user@example.com icon@2x.png real@company.co.uk</p>`, lead)
	assert.Equal(t, "real@company.co.uk", lead.Email)
}

func TestHarvestFromHTMLKeepsExistingFields(t *testing.T) {
	e := testEnricher(t, &config.Config{MaxWorkers: 1}, "")

	lead := &models.Lead{Phone: "+44 20 0000 0000", Email: "kept@acme.co.uk"}
	e.harvestFromHTML(`<p>020 7946 0123 other@acme.co.uk</p>`, lead)
	assert.Equal(t, "+44 20 0000 0000", lead.Phone)
	assert.Equal(t, "kept@acme.co.uk", lead.Email)
}

func TestTryPaths(t *testing.T) {
	urls := tryPaths("https://acme.co.uk/")
	require.NotEmpty(t, urls)
	assert.Equal(t, "https://acme.co.uk", urls[0])
	assert.Contains(t, urls, "https://acme.co.uk/contact")
	assert.Contains(t, urls, "https://acme.co.uk/services")
	assert.Len(t, urls, 6)
}

func TestCleanCandidate(t *testing.T) {
	assert.Equal(t, "https://acme.co.uk", CleanCandidate("https://acme.co.uk/about?x=1"))
	assert.Equal(t, "https://acme.co.uk", CleanCandidate("acme.co.uk"))
	assert.Equal(t, "", CleanCandidate("https://www.linkedin.com/company/acme"))
	assert.Equal(t, "", CleanCandidate("https://www.bing.com/search?q=x"))
	assert.Equal(t, "", CleanCandidate(""))
}

func TestDiscoverWebsite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bing", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<li class="b_algo"><h2><a href="https://www.linkedin.com/company/acme">bad</a></h2></li>
			<li class="b_algo"><h2><a href="https://acme-agency.co.uk/home">good</a></h2></li>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := testEnricher(t, &config.Config{MaxWorkers: 1}, srv.URL)
	got := e.discoverWebsite(context.Background(), "Acme Agency Ltd", "London")
	assert.Equal(t, "https://acme-agency.co.uk", got)
}

func TestDiscoverWebsiteFallsBackToSecondEngine(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/ddg", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a class="result__a" href="https://acme.co.uk">Acme</a>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := testEnricher(t, &config.Config{MaxWorkers: 1}, srv.URL)
	assert.Equal(t, "https://acme.co.uk", e.discoverWebsite(context.Background(), "Acme Ltd", ""))
}

func TestDiscoverWebsiteBlankName(t *testing.T) {
	e := testEnricher(t, &config.Config{MaxWorkers: 1}, "")
	assert.Equal(t, "", e.discoverWebsite(context.Background(), "", ""))
	assert.Equal(t, "", e.discoverWebsite(context.Background(), "   ", "London"))
}

func TestFetcherRejectsNonHTTPURLs(t *testing.T) {
	e := testEnricher(t, &config.Config{MaxWorkers: 1}, "")

	for _, raw := range []string{"ftp://acme.co.uk/file", "javascript:alert(1)", "mailto:x@acme.co.uk"} {
		body, err := e.fetcher.Get(context.Background(), raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "", body, raw)
	}
}

func TestEnrichFiltersNonTargetSIC(t *testing.T) {
	cfg := &config.Config{MaxWorkers: 1, SICCodes: []string{"73110"}, TargetLocation: "London"}
	e := testEnricher(t, cfg, "")

	lead := &models.Lead{CompanyName: "Off Target Ltd", SICCodes: []string{"99999"}}
	out := e.Enrich(context.Background(), lead)

	assert.False(t, out.Kept)
	assert.NotEmpty(t, out.Reason)
	assert.Equal(t, models.FilteredScore, out.Lead.QualityScore)
}

func TestEnrichScoresKeptLead(t *testing.T) {
	cfg := &config.Config{MaxWorkers: 1, SICCodes: []string{"73110"}, TargetLocation: "London"}
	// Point the search engines at a closed server so website discovery
	// degrades quietly instead of leaving the test.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	e := testEnricher(t, cfg, srv.URL)

	lead := &models.Lead{
		CompanyName: "Acme Agency Ltd",
		Location:    "London",
		SICCodes:    []string{"73110"},
		Officers:    []models.Officer{{Name: "Sam Chief", Role: "Director"}},
	}

	out := e.Enrich(context.Background(), lead)
	require.True(t, out.Kept)
	assert.Equal(t, "Sam Chief", out.Lead.CEOName)
	// industry 1.0*0.7 + geo 1.0*0.3 = 1.0, boost capped at 1.0
	assert.InDelta(t, 1.0, out.Lead.ICPMatch, 0.001)
	assert.Equal(t, painPointsBySIC["73110"], out.Lead.PainPoints)
	// CEO present scores 15.
	assert.Equal(t, 15, out.Lead.QualityScore)
}

func TestEnrichAllCoversEveryLead(t *testing.T) {
	cfg := &config.Config{MaxWorkers: 3}
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	e := testEnricher(t, cfg, srv.URL)

	leads := []*models.Lead{
		{CompanyName: "A Ltd"},
		{CompanyName: "B Ltd"},
		{CompanyName: "C Ltd"},
		{CompanyName: "D Ltd"},
	}
	var done atomic.Int32
	outcomes := e.EnrichAll(context.Background(), leads, func() { done.Add(1) })

	require.Len(t, outcomes, len(leads))
	assert.Equal(t, int32(len(leads)), done.Load())
	for i, out := range outcomes {
		require.NotNil(t, out.Lead, "outcome %d", i)
		assert.Equal(t, leads[i].CompanyName, out.Lead.CompanyName)
		assert.True(t, out.Kept)
	}
}

func TestHarvestContacts(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<html><body><h1>Acme</h1><p>We build things.</p></body></html>`)
	})
	mux.HandleFunc("/contact", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<p>Phone: 020 7946 0123</p><p>Email: info@acme.co.uk</p>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	e := testEnricher(t, &config.Config{MaxWorkers: 1}, "")
	lead := &models.Lead{CompanyName: "Acme Ltd", Website: srv.URL}

	require.NoError(t, e.harvestContacts(context.Background(), lead))
	assert.Equal(t, "+44 20 7946 0123", lead.Phone)
	assert.Equal(t, "info@acme.co.uk", lead.Email)
	assert.NotEmpty(t, lead.WebsiteSummary)
	// Stopped after /contact; /about and later paths never fetched.
	assert.Equal(t, int32(2), hits.Load())
}

func TestHarvestContactsRecoversFromInlineScripts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<script>var contactEmail = "hidden" + "@" + "acme.co.uk"; var contactPhone = "020 7946 0123";</script>
			<p>Contact details load dynamically.</p>
		</body></html>`)
	}))
	defer srv.Close()

	e := testEnricher(t, &config.Config{MaxWorkers: 1}, "")
	lead := &models.Lead{CompanyName: "Acme Ltd", Website: srv.URL}

	require.NoError(t, e.harvestContacts(context.Background(), lead))
	assert.Equal(t, "hidden@acme.co.uk", lead.Email)
	assert.Equal(t, "+44 20 7946 0123", lead.Phone)
}
