// Package navigator drives the browser through the registry's search,
// result, company and officer pages, producing raw leads for the
// pipeline. Navigation is a small state machine: submit a search, walk
// its result pages via the "next" link, and branch into detail visits
// for every active, unvisited company row.
package navigator

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/internal/config"
	"github.com/law-makers/leadgen/internal/extract"
	"github.com/law-makers/leadgen/internal/ratelimit"
	"github.com/law-makers/leadgen/internal/selectors"
	urlutil "github.com/law-makers/leadgen/internal/utils/url"
	"github.com/law-makers/leadgen/pkg/models"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Navigator crawls the company registry. It implements the pipeline's
// Source contract.
type Navigator struct {
	session
	visited *VisitedSet
}

func New(cfg *config.Config, res *selectors.Resolver, limiter ratelimit.Limiter, browser *Browser, logger, urlLogger zerolog.Logger) *Navigator {
	return &Navigator{
		session: session{
			cfg:     cfg,
			res:     res,
			limiter: limiter,
			browser: browser,
			log:     logger.With().Str("component", "navigator").Logger(),
			urlLog:  urlLogger,
		},
		visited: NewVisitedSet(),
	}
}

func (n *Navigator) Name() string {
	return "Companies House"
}

// Leads runs the configured crawl strategy and returns the raw leads. A
// failure to reach the registry at all is fatal; everything below that is
// isolated per page or per detail visit.
func (n *Navigator) Leads(ctx context.Context) ([]*models.Lead, error) {
	start := n.res.First("sources", "companies_house", "start_url")
	if start == "" {
		return nil, fmt.Errorf("no registry start URL configured")
	}

	tab, cancel := n.browser.NewTab()
	defer cancel()

	if err := n.navigate(tab, start); err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}

	if n.cfg.ExhaustiveMode {
		return n.crawlExhaustive(ctx, tab)
	}
	return n.crawlTargeted(ctx, tab, start)
}

// crawlTargeted submits each built query as a search URL and paginates
// its results until exhausted or the global target count is reached.
func (n *Navigator) crawlTargeted(ctx context.Context, tab context.Context, start string) ([]*models.Lead, error) {
	queries := BuildTargetQueries(n.cfg.TargetIndustry, n.cfg.TargetLocation)
	n.log.Info().Strs("queries", queries).Msg("Targeted registry search")

	var leads []*models.Lead
	for _, q := range queries {
		if ctx.Err() != nil {
			return leads, ctx.Err()
		}
		if len(leads) >= n.cfg.TargetCount {
			break
		}

		searchURL := urlutil.ResolveURL(start, "search/companies?q="+url.QueryEscape(q))
		if err := n.navigate(tab, searchURL); err != nil {
			n.log.Warn().Err(err).Str("query", q).Msg("Search navigation failed, moving to next query")
			continue
		}

		leads = n.paginate(ctx, tab, leads, q)
	}

	n.log.Info().Int("leads", len(leads)).Int("visited", n.visited.Len()).Msg("Registry crawl finished")
	return leads, nil
}

// crawlExhaustive sweeps the alphabetical index: each letter is submitted
// through the search form and its result pages are walked fully before
// the next letter.
func (n *Navigator) crawlExhaustive(ctx context.Context, tab context.Context) ([]*models.Lead, error) {
	alphaURL := n.res.First("sources", "companies_house", "alphabetical_search_url")
	if alphaURL == "" {
		return nil, fmt.Errorf("no alphabetical search URL configured")
	}
	n.log.Info().Msg("Exhaustive alphabetical registry sweep")

	if err := n.navigate(tab, alphaURL); err != nil {
		return nil, fmt.Errorf("open alphabetical search: %w", err)
	}

	var leads []*models.Lead
	for _, letter := range alphabet {
		if ctx.Err() != nil {
			return leads, ctx.Err()
		}
		if len(leads) >= n.cfg.TargetCount {
			break
		}

		n.log.Info().Str("letter", string(letter)).Msg("Sweeping letter")
		if err := n.submitSearch(tab, alphaURL, string(letter)); err != nil {
			n.log.Warn().Err(err).Str("letter", string(letter)).Msg("Letter search failed, moving on")
			continue
		}

		leads = n.paginate(ctx, tab, leads, string(letter))
	}

	n.log.Info().Int("leads", len(leads)).Int("visited", n.visited.Len()).Msg("Registry sweep finished")
	return leads, nil
}

// submitSearch types a term into the search form and submits it. When the
// form is not on the current page the tab is returned to the search page
// first.
func (n *Navigator) submitSearch(tab context.Context, formURL, term string) error {
	inputSel := n.res.First("sources", "companies_house", "navigation", "search_input")
	submitSel := n.res.First("sources", "companies_house", "navigation", "search_submit")
	rowsSel := n.res.First("sources", "companies_house", "search_results_page", "result_rows")
	if inputSel == "" || submitSel == "" {
		return fmt.Errorf("search form selectors not configured")
	}

	release, err := n.limiter.Acquire(tab, formURL)
	if err != nil {
		return err
	}
	defer release()

	tctx, cancel := context.WithTimeout(tab, n.cfg.PageTimeout)
	defer cancel()

	submit := []chromedp.Action{
		chromedp.WaitVisible(inputSel, chromedp.ByQuery),
		chromedp.SetValue(inputSel, term, chromedp.ByQuery),
		chromedp.Click(submitSel, chromedp.ByQuery),
		chromedp.WaitVisible(rowsSel, chromedp.ByQuery),
	}
	err = chromedp.Run(tctx, submit...)
	if err != nil {
		// The form may have been left behind by pagination; go back and retry once.
		if navErr := n.navigate(tab, formURL); navErr != nil {
			return navErr
		}
		rctx, rcancel := context.WithTimeout(tab, n.cfg.PageTimeout)
		defer rcancel()
		err = chromedp.Run(rctx, submit...)
	}
	if err == nil {
		if _, loc, derr := n.document(tab); derr == nil {
			n.urlLog.Info().Str("url", loc).Str("term", term).Msg("visit")
		}
	}
	return err
}

// paginate walks result pages from the tab's current position, visiting
// every eligible detail page, until the "next" link runs out or the
// target count is reached. A results-page failure ends pagination for the
// current query only.
func (n *Navigator) paginate(ctx context.Context, tab context.Context, leads []*models.Lead, label string) []*models.Lead {
	page := 1
	for len(leads) < n.cfg.TargetCount {
		if ctx.Err() != nil {
			return leads
		}

		doc, current, err := n.document(tab)
		if err != nil {
			n.log.Warn().Err(err).Str("search", label).Int("page", page).Msg("Could not read results page")
			return leads
		}

		targets := n.detailTargets(doc, current)
		if len(targets) == 0 {
			n.log.Debug().Str("search", label).Int("page", page).Msg("No company links on page")
			return leads
		}

		for _, companyURL := range targets {
			if len(leads) >= n.cfg.TargetCount || ctx.Err() != nil {
				return leads
			}
			if n.visited.Seen(companyURL) {
				continue
			}
			lead, err := n.scrapeCompany(companyURL)
			if err != nil {
				n.log.Debug().Err(err).Str("url", companyURL).Msg("Company visit failed")
				continue
			}
			if lead != nil {
				leads = append(leads, lead)
			}
		}

		next := extract.NextPageURL(doc, n.res, current)
		if next == "" {
			return leads
		}
		if err := n.navigate(tab, next); err != nil {
			n.log.Warn().Err(err).Str("search", label).Msg("Pagination navigation failed")
			return leads
		}
		page++
	}
	return leads
}

// detailTargets picks the detail URLs to visit from a results page. When
// the page exposes structured rows, only rows with an active status
// qualify; otherwise any company link found is taken, leaving the status
// check to the profile page.
func (n *Navigator) detailTargets(doc *goquery.Document, base string) []string {
	activeText := strings.ToLower(n.res.First("sources", "companies_house", "search_results_page", "active_status_text"))

	rows := extract.ResultRows(doc, n.res, base)
	if len(rows) > 0 {
		var targets []string
		for _, row := range rows {
			if activeText != "" && !strings.Contains(strings.ToLower(row.Status), activeText) {
				continue
			}
			targets = append(targets, row.URL)
		}
		return targets
	}
	return extract.CompanyLinks(doc, n.res, base)
}

// scrapeCompany opens a company profile in its own tab and extracts the
// full lead, including the nested officers traversal. Returns (nil, nil)
// for companies skipped by the status check.
func (n *Navigator) scrapeCompany(companyURL string) (*models.Lead, error) {
	tab, cancel := n.browser.NewTab()
	defer cancel()

	n.log.Info().Str("url", companyURL).Msg("Scraping company profile")
	if err := n.navigate(tab, companyURL); err != nil {
		return nil, err
	}
	doc, current, err := n.document(tab)
	if err != nil {
		return nil, err
	}

	status := extract.ScalarByLabel(doc, "Company status")
	activeText := n.res.First("sources", "companies_house", "search_results_page", "active_status_text")
	if activeText != "" && !strings.Contains(strings.ToLower(status), strings.ToLower(activeText)) {
		n.log.Debug().Str("url", companyURL).Str("status", status).Msg("Skipping non-active company")
		return nil, nil
	}

	name := extract.CompanyName(doc, n.res)
	number := extract.CompanyNumber(doc, n.res, current)
	address := extract.ScalarByLabel(doc, "Registered office address")
	incDate := extract.ScalarByLabel(doc, "Incorporated on")
	accountsNext, accountsLast := extract.ParseAccounts(extract.ScalarByLabel(doc, "Accounts"))
	confNext, confLast := extract.ParseConfirmation(extract.ScalarByLabel(doc, "Confirmation statement"))

	lead := &models.Lead{
		CompanyName:       name,
		CompanyNumber:     number,
		Website:           urlutil.ResolveURL(current, "/company/"+number),
		Location:          address,
		Source:            n.Name(),
		ScrapedAt:         time.Now(),
		Status:            status,
		CompanyType:       extract.ScalarByLabel(doc, "Company type"),
		IncorporationDate: incDate,
		FoundedYear:       extract.FoundedYear(incDate),
		SICCodes:          extract.SICFromDoc(doc, n.res),
		AccountsNext:      accountsNext,
		AccountsLast:      accountsLast,
		ConfirmationNext:  confNext,
		ConfirmationLast:  confLast,
	}

	lead.Officers = n.scrapeOfficers(tab, doc, current)

	n.log.Info().
		Str("company", lead.CompanyName).
		Strs("sic_codes", lead.SICCodes).
		Int("officers", len(lead.Officers)).
		Msg("Scraped company profile")
	return lead, nil
}

// scrapeOfficers follows the profile's people link and collects the
// active officers, each with their own detail-page visit. Any failure in
// this subtree degrades to fewer officers, never to a failed company.
func (n *Navigator) scrapeOfficers(tab context.Context, companyDoc *goquery.Document, base string) []models.Officer {
	peopleSel := n.res.First("sources", "companies_house", "company_overview_page", "people_tab_link")
	if peopleSel == "" {
		return nil
	}
	href, ok := companyDoc.Find(peopleSel).First().Attr("href")
	if !ok || href == "" {
		n.log.Debug().Str("company_url", base).Msg("No people link on profile")
		return nil
	}

	officersURL := urlutil.ResolveURL(base, href)
	if err := n.navigate(tab, officersURL); err != nil {
		n.log.Debug().Err(err).Str("url", officersURL).Msg("Officers page navigation failed")
		return nil
	}
	doc, current, err := n.document(tab)
	if err != nil {
		n.log.Debug().Err(err).Str("url", officersURL).Msg("Officers page read failed")
		return nil
	}

	officers := extract.Officers(doc, n.res)
	for i := range officers {
		if officers[i].Link == "" {
			continue
		}
		detail, err := n.scrapeOfficerDetail(urlutil.ResolveURL(current, officers[i].Link))
		if err != nil {
			n.log.Debug().Err(err).Str("officer", officers[i].Name).Msg("Officer detail visit failed")
			continue
		}
		officers[i].Detail = detail
	}
	return officers
}

// scrapeOfficerDetail opens an officer's own page in a fresh tab and
// extracts their secondary details.
func (n *Navigator) scrapeOfficerDetail(officerURL string) (*models.OfficerDetail, error) {
	tab, cancel := n.browser.NewTab()
	defer cancel()

	if err := n.navigate(tab, officerURL); err != nil {
		return nil, err
	}
	doc, _, err := n.document(tab)
	if err != nil {
		return nil, err
	}
	return extract.OfficerDetail(doc, n.res), nil
}
