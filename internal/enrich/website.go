package enrich

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	urlutil "github.com/law-makers/leadgen/internal/utils/url"
)

// badHosts are domains that search engines surface for a company name but
// that are never the company's own website.
var badHosts = []string{
	"find-and-update.company-information.service.gov.uk",
	"companieshouse.gov.uk", "linkedin.com", "facebook.com",
	"twitter.com", "x.com", "instagram.com", "glassdoor.com",
	"yell.com", "maps.google", "crunchbase.com", "companycheck.co.uk",
	"opencorporates.com", "companiesintheuk.co.uk", "bing.com", "duckduckgo.com",
}

// registryHosts identify website fields that point back at the registry
// itself rather than at a real company site.
var registryHosts = []string{
	"find-and-update.company-information.service.gov.uk",
	"companieshouse.gov.uk",
}

// CleanCandidate normalizes a search result URL down to its root
// (scheme://host) and rejects known non-company domains. Returns "" for
// anything unusable.
func CleanCandidate(raw string) string {
	root := urlutil.Root(raw)
	if root == "" {
		return ""
	}
	host := urlutil.Domain(root)
	for _, bad := range badHosts {
		if strings.Contains(host, bad) {
			return ""
		}
	}
	return root
}

// isRegistryWebsite reports whether the lead's website field points at the
// registry rather than a company site.
func isRegistryWebsite(website string) bool {
	host := urlutil.Domain(website)
	if host == "" {
		return false
	}
	for _, h := range registryHosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

type searchEngine struct {
	name       string
	tmpl       string
	resultLink string
}

func (e *Enricher) searchEngines() []searchEngine {
	var engines []searchEngine
	if tmpl := e.res.First("search_engines", "bing", "url_template"); tmpl != "" {
		engines = append(engines, searchEngine{
			name:       "bing",
			tmpl:       tmpl,
			resultLink: e.res.First("search_engines", "bing", "result_link"),
		})
	}
	if tmpl := e.res.First("search_engines", "duckduckgo", "url_template"); tmpl != "" {
		engines = append(engines, searchEngine{
			name:       "ddg",
			tmpl:       tmpl,
			resultLink: e.res.First("search_engines", "duckduckgo", "result_link"),
		})
	}
	return engines
}

// discoverWebsite guesses a company's official website by querying general
// search engines in order. A candidate whose host contains the first token
// of the company name wins outright; otherwise the first clean candidate
// is taken.
func (e *Enricher) discoverWebsite(ctx context.Context, companyName, locationHint string) string {
	fields := strings.Fields(companyName)
	if len(fields) == 0 {
		return ""
	}
	firstToken := strings.ToLower(fields[0])

	queries := []string{fmt.Sprintf("%q official website", companyName)}
	if locationHint != "" && locationHint != "Unknown" {
		queries = append(queries, fmt.Sprintf("%q %s website", companyName, locationHint))
	}
	queries = append(queries, fmt.Sprintf("%q", companyName))

	for _, q := range queries {
		for _, engine := range e.searchEngines() {
			if ctx.Err() != nil {
				return ""
			}
			searchURL := fmt.Sprintf(engine.tmpl, url.QueryEscape(q))
			doc, err := e.fetcher.GetDoc(ctx, searchURL)
			if err != nil || doc == nil {
				continue
			}

			found := ""
			doc.Find(engine.resultLink).EachWithBreak(func(_ int, a *goquery.Selection) bool {
				href, ok := a.Attr("href")
				if !ok {
					return true
				}
				candidate := CleanCandidate(href)
				if candidate == "" {
					return true
				}
				found = candidate
				return false
			})
			if found == "" {
				continue
			}

			if strings.Contains(strings.ToLower(found), firstToken) {
				e.log.Info().
					Str("company", companyName).
					Str("website", found).
					Str("engine", engine.name).
					Msg("Guessed website")
			} else {
				e.log.Debug().
					Str("company", companyName).
					Str("website", found).
					Str("engine", engine.name).
					Msg("Taking first clean search candidate")
			}
			return found
		}
	}
	return ""
}
