package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/law-makers/leadgen/internal/enrich"
	"github.com/law-makers/leadgen/internal/selectors"
)

// sicCode matches a five-digit SIC code inside element text.
var sicCode = regexp.MustCompile(`\b\d{5}\b`)

// DefaultSampleURLs is the fixed panel of company profiles the auditor
// checks the configured selectors against. The mix covers old and new
// profile markup so a selector that only works on one template scores low.
var DefaultSampleURLs = []string{
	"https://find-and-update.company-information.service.gov.uk/company/00000006",
	"https://find-and-update.company-information.service.gov.uk/company/00002065",
	"https://find-and-update.company-information.service.gov.uk/company/00048839",
	"https://find-and-update.company-information.service.gov.uk/company/00102498",
	"https://find-and-update.company-information.service.gov.uk/company/00233462",
	"https://find-and-update.company-information.service.gov.uk/company/01471587",
	"https://find-and-update.company-information.service.gov.uk/company/02050399",
	"https://find-and-update.company-information.service.gov.uk/company/03824658",
	"https://find-and-update.company-information.service.gov.uk/company/05522226",
	"https://find-and-update.company-information.service.gov.uk/company/07101408",
	"https://find-and-update.company-information.service.gov.uk/company/08209948",
	"https://find-and-update.company-information.service.gov.uk/company/10103721",
}

// candidatePool lists selectors the auditor tries in addition to the
// configured ones, covering markup variants the registry has shipped.
var candidatePool = []string{
	"div#sic-codes ul li",
	"span#sic0, span[id^='sic']",
	"ul#sic-list li",
	"dd.govuk-summary-list__value span",
	"div#company-overview span[id^='sic']",
	"p#sic-codes",
}

// SelectorStat records how one selector performed across the sample.
type SelectorStat struct {
	Selector string  `json:"selector"`
	Pages    int     `json:"pages_matched"`
	Codes    int     `json:"codes_extracted"`
	Rate     float64 `json:"extraction_rate"`
}

// Report is the outcome of one audit run.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Sampled     int            `json:"sampled"`
	Fetched     int            `json:"fetched"`
	Stats       []SelectorStat `json:"stats"`
	Recommended []string       `json:"recommended"`
}

// SelectorAuditor probes a sample of company profiles and scores every
// known SIC selector by how often it extracts a valid code. It shares
// the enrichment fetcher so audit traffic obeys the same rate limits.
type SelectorAuditor struct {
	fetcher *enrich.Fetcher
	res     *selectors.Resolver
	workers int
	log     zerolog.Logger
}

func NewSelectorAuditor(fetcher *enrich.Fetcher, res *selectors.Resolver, workers int, logger zerolog.Logger) *SelectorAuditor {
	if workers < 1 {
		workers = 3
	}
	return &SelectorAuditor{
		fetcher: fetcher,
		res:     res,
		workers: workers,
		log:     logger.With().Str("component", "audit").Logger(),
	}
}

// Run fetches every sample URL and scores the candidate selectors.
// Individual fetch failures reduce the sample; only context cancellation
// aborts the run.
func (a *SelectorAuditor) Run(ctx context.Context, urls []string) (*Report, error) {
	if len(urls) == 0 {
		urls = DefaultSampleURLs
	}
	pool := a.selectorPool()

	var (
		mu      sync.Mutex
		fetched int
		pages   = make(map[string]int, len(pool))
		codes   = make(map[string]int, len(pool))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for _, url := range urls {
		g.Go(func() error {
			doc, err := a.fetcher.GetDoc(gctx, url)
			if err != nil {
				return err
			}
			if doc == nil {
				a.log.Warn().Str("url", url).Msg("Sample page unavailable, skipping")
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			fetched++
			for _, sel := range pool {
				n := countCodes(doc, sel)
				if n > 0 {
					pages[sel]++
					codes[sel] += n
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		GeneratedAt: time.Now().UTC(),
		Sampled:     len(urls),
		Fetched:     fetched,
	}
	for _, sel := range pool {
		stat := SelectorStat{Selector: sel, Pages: pages[sel], Codes: codes[sel]}
		if fetched > 0 {
			stat.Rate = float64(stat.Pages) / float64(fetched)
		}
		report.Stats = append(report.Stats, stat)
	}
	sort.SliceStable(report.Stats, func(i, j int) bool {
		if report.Stats[i].Rate != report.Stats[j].Rate {
			return report.Stats[i].Rate > report.Stats[j].Rate
		}
		return report.Stats[i].Codes > report.Stats[j].Codes
	})
	report.Recommended = recommend(report.Stats, a.configured())

	a.log.Info().
		Int("fetched", fetched).
		Int("sampled", len(urls)).
		Strs("recommended", report.Recommended).
		Msg("Selector audit complete")
	return report, nil
}

// countCodes returns how many distinct SIC codes sel extracts from doc.
func countCodes(doc *goquery.Document, sel string) int {
	seen := map[string]struct{}{}
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		for _, code := range sicCode.FindAllString(s.Text(), -1) {
			seen[code] = struct{}{}
		}
	})
	return len(seen)
}

func (a *SelectorAuditor) configured() []string {
	return a.res.Resolve("sources", "companies_house", "company_overview_page", "nature_of_business_sic")
}

// selectorPool merges the configured selectors with the builtin
// candidates, configured first, deduplicated.
func (a *SelectorAuditor) selectorPool() []string {
	seen := map[string]struct{}{}
	var pool []string
	for _, sel := range append(a.configured(), candidatePool...) {
		if _, ok := seen[sel]; ok {
			continue
		}
		seen[sel] = struct{}{}
		pool = append(pool, sel)
	}
	return pool
}

// recommend keeps selectors that extracted codes on at least half the
// fetched pages. When nothing clears the bar the configured selectors
// are kept unchanged rather than recommending a downgrade.
func recommend(stats []SelectorStat, configured []string) []string {
	var out []string
	for _, s := range stats {
		if s.Rate >= 0.5 {
			out = append(out, s.Selector)
		}
	}
	if len(out) == 0 {
		return configured
	}
	return out
}

// WriteRecommended writes a selectors override fragment that can be
// merged into the selectors file as-is.
func (r *Report) WriteRecommended(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	fragment := map[string]any{
		"sources": map[string]any{
			"companies_house": map[string]any{
				"company_overview_page": map[string]any{
					"nature_of_business_sic": r.Recommended,
				},
			},
		},
	}
	data, err := json.MarshalIndent(fragment, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteMarkdown writes the human-readable audit report.
func (r *Report) WriteMarkdown(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# SIC Selector Audit\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Sampled %d company pages, fetched %d.\n\n", r.Sampled, r.Fetched)
	b.WriteString("| Selector | Pages | Codes | Rate |\n")
	b.WriteString("|----------|-------|-------|------|\n")
	for _, s := range r.Stats {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %.0f%% |\n", s.Selector, s.Pages, s.Codes, s.Rate*100)
	}
	b.WriteString("\n## Recommended\n\n")
	for _, sel := range r.Recommended {
		fmt.Fprintf(&b, "- `%s`\n", sel)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
