package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/enrich"
	"github.com/law-makers/leadgen/internal/ratelimit"
	"github.com/law-makers/leadgen/internal/robots"
	"github.com/law-makers/leadgen/internal/selectors"
	"github.com/law-makers/leadgen/pkg/models"
)

type stubSource struct {
	name  string
	leads []*models.Lead
	err   error
}

func (s *stubSource) Name() string { return s.name }
func (s *stubSource) Leads(ctx context.Context) ([]*models.Lead, error) {
	return s.leads, s.err
}

func TestDedup(t *testing.T) {
	leads := []*models.Lead{
		{CompanyName: "Acme Ltd", Source: "first"},
		{CompanyName: "  ACME LTD ", Source: "second"},
		{CompanyName: "Other Ltd"},
		{CompanyName: ""},
	}
	unique := Dedup(leads)
	require.Len(t, unique, 2)
	assert.Equal(t, "first", unique[0].Source)
	assert.Equal(t, "Other Ltd", unique[1].CompanyName)
}

func TestFilterAndRank(t *testing.T) {
	a := &models.Lead{CompanyName: "A", QualityScore: 40}
	b := &models.Lead{CompanyName: "B", QualityScore: 70}
	c := &models.Lead{CompanyName: "C", QualityScore: 40}
	filtered := &models.Lead{CompanyName: "F"}

	outcomes := []models.Outcome{
		models.KeptOutcome(a),
		models.FilteredOutcome(filtered, "sic codes outside target set"),
		models.KeptOutcome(b),
		models.KeptOutcome(c),
	}

	final := FilterAndRank(outcomes)
	require.Len(t, final, 3)
	assert.Equal(t, "B", final[0].CompanyName)
	// Stable: A scored equal to C and came first.
	assert.Equal(t, "A", final[1].CompanyName)
	assert.Equal(t, "C", final[2].CompanyName)
}

func testEnricher(cfg *config.Config) *enrich.Enricher {
	logger := zerolog.Nop()
	client := enrich.NewHTTPClient(2 * time.Second)
	limiter := ratelimit.NewDomainLimiter(time.Millisecond, 1000)
	checker := robots.NewChecker(client, "test-agent", false, logger)
	fetcher := enrich.NewFetcher(client, limiter, checker, "test-agent", logger)

	// Dead search engines keep website discovery off the network.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	table := selectors.Merge(selectors.Table{
		"search_engines": map[string]any{
			"bing":       map[string]any{"url_template": srv.URL + "/bing?q=%s", "result_link": "li.b_algo h2 a"},
			"duckduckgo": map[string]any{"url_template": srv.URL + "/ddg?q=%s", "result_link": "a.result__a"},
		},
	}, selectors.Defaults())

	return enrich.New(cfg, fetcher, selectors.NewResolver(table), logger, logger)
}

func TestOrchestratorRun(t *testing.T) {
	cfg := &config.Config{
		MaxWorkers:     2,
		TargetCount:    10,
		SICCodes:       []string{"73110"},
		TargetLocation: "London",
	}

	registry := &stubSource{name: "registry", leads: []*models.Lead{
		{CompanyName: "Acme Agency Ltd", Location: "London", SICCodes: []string{"73110"},
			Officers: []models.Officer{{Name: "Sam Chief", Role: "Director"}}},
		{CompanyName: "acme agency ltd", Location: "London", SICCodes: []string{"73110"}},
		{CompanyName: "Off Target Ltd", Location: "London", SICCodes: []string{"99999"}},
	}}
	directory := &stubSource{name: "directory", err: errors.New("listing unreachable")}

	o := NewOrchestrator(cfg, testEnricher(cfg), zerolog.Nop(), registry, directory)
	o.showProgress = false

	final, err := o.Run(context.Background())
	require.NoError(t, err)

	// The duplicate collapses, the off-target lead is filtered, the
	// failing source is skipped.
	require.Len(t, final, 1)
	assert.Equal(t, "Acme Agency Ltd", final[0].CompanyName)
	assert.Equal(t, "Sam Chief", final[0].CEOName)
	assert.GreaterOrEqual(t, final[0].QualityScore, 0)
}

func TestOrchestratorRunNoLeads(t *testing.T) {
	cfg := &config.Config{MaxWorkers: 1, TargetCount: 10}
	o := NewOrchestrator(cfg, testEnricher(cfg), zerolog.Nop(), &stubSource{name: "empty"})
	o.showProgress = false

	final, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, final)
}
