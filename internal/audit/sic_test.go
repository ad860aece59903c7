package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/leadgen/internal/enrich"
	"github.com/law-makers/leadgen/internal/ratelimit"
	"github.com/law-makers/leadgen/internal/robots"
	"github.com/law-makers/leadgen/internal/selectors"
)

const oldProfile = `<html><body>
<div id="sic-codes"><ul><li>73110 - Advertising agencies</li><li>62012 - Business software</li></ul></div>
</body></html>`

const newProfile = `<html><body>
<span id="sic0">73110 - Advertising agencies</span>
</body></html>`

func testAuditor(t *testing.T, handler http.Handler) (*SelectorAuditor, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := enrich.NewHTTPClient(2 * time.Second)
	limiter := ratelimit.NewDomainLimiter(time.Millisecond, 1000)
	checker := robots.NewChecker(client, "test-agent", false, zerolog.Nop())
	fetcher := enrich.NewFetcher(client, limiter, checker, "test-agent", zerolog.Nop())
	res := selectors.NewResolver(selectors.Defaults())
	return NewSelectorAuditor(fetcher, res, 2, zerolog.Nop()), srv
}

func TestSelectorAuditScoresAndRecommends(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/company/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(oldProfile))
	})
	mux.HandleFunc("/company/2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(newProfile))
	})
	auditor, srv := testAuditor(t, mux)

	report, err := auditor.Run(context.Background(), []string{srv.URL + "/company/1", srv.URL + "/company/2"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Sampled)
	assert.Equal(t, 2, report.Fetched)

	rates := map[string]SelectorStat{}
	for _, s := range report.Stats {
		rates[s.Selector] = s
	}
	assert.Equal(t, 0.5, rates["div#sic-codes ul li"].Rate)
	assert.Equal(t, 2, rates["div#sic-codes ul li"].Codes)
	assert.Equal(t, 0.5, rates["span#sic0, span[id^='sic']"].Rate)
	assert.Equal(t, 1, rates["span#sic0, span[id^='sic']"].Codes)

	// Equal rates fall back to codes extracted, so the list selector leads.
	require.Len(t, report.Recommended, 2)
	assert.Equal(t, "div#sic-codes ul li", report.Recommended[0])
	assert.Equal(t, "span#sic0, span[id^='sic']", report.Recommended[1])
}

func TestSelectorAuditSkipsFailedPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/company/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(oldProfile))
	})
	mux.HandleFunc("/company/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	auditor, srv := testAuditor(t, mux)

	report, err := auditor.Run(context.Background(), []string{srv.URL + "/company/1", srv.URL + "/company/missing"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Sampled)
	assert.Equal(t, 1, report.Fetched)
	// One good page means the matching selector hits 100%.
	for _, s := range report.Stats {
		if s.Selector == "div#sic-codes ul li" {
			assert.Equal(t, 1.0, s.Rate)
		}
	}
}

func TestSelectorAuditKeepsConfiguredWhenNothingScores(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/company/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>No codes here</p></body></html>"))
	})
	auditor, srv := testAuditor(t, mux)

	report, err := auditor.Run(context.Background(), []string{srv.URL + "/company/1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"div#sic-codes ul li", "span#sic0, span[id^='sic']"}, report.Recommended)
}

func TestReportWriters(t *testing.T) {
	dir := t.TempDir()
	report := &Report{
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Sampled:     2,
		Fetched:     2,
		Stats: []SelectorStat{
			{Selector: "div#sic-codes ul li", Pages: 2, Codes: 4, Rate: 1.0},
		},
		Recommended: []string{"div#sic-codes ul li"},
	}

	jsonPath := filepath.Join(dir, "recommended_sic_selectors.json")
	require.NoError(t, report.WriteRecommended(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fragment map[string]any
	require.NoError(t, json.Unmarshal(data, &fragment))
	sources := fragment["sources"].(map[string]any)
	ch := sources["companies_house"].(map[string]any)
	overview := ch["company_overview_page"].(map[string]any)
	assert.Equal(t, []any{"div#sic-codes ul li"}, overview["nature_of_business_sic"])

	mdPath := filepath.Join(dir, "sic_audit_report.md")
	require.NoError(t, report.WriteMarkdown(mdPath))
	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(md), "Sampled 2 company pages, fetched 2."))
	assert.True(t, strings.Contains(string(md), "| `div#sic-codes ul li` | 2 | 4 | 100% |"))
}

func TestURLLoggerWritesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "visited.log")
	logger, closer, err := NewURLLogger(path)
	require.NoError(t, err)
	logger.Info().Str("url", "https://example.com").Str("event", "visit").Msg("visit")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"url":"https://example.com"`))
}
